// File path: internal/claim/analyzer_test.go
package claim

import (
	"context"
	"reflect"
	"testing"

	"github.com/writway/writway/internal/llm"
	"github.com/writway/writway/internal/llm/providers"
)

type stubProvider struct {
	response  string
	usage     llm.Usage
	err       error
	available bool
	calls     int
}

func (s *stubProvider) Complete(ctx context.Context, messages []llm.Message) (string, llm.Usage, error) {
	s.calls++
	if s.err != nil {
		return "", llm.Usage{}, s.err
	}
	return s.response, s.usage, nil
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Available() bool { return s.available }

func TestAnalyzeWithoutCredentialReportsAllMissing(t *testing.T) {
	analyzer := NewAnalyzer(providers.NewDisabledProvider())
	result, err := analyzer.Analyze(context.Background(), "a description of sufficient length")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(result.Extracted, &FormData{}) {
		t.Fatalf("expected empty extraction, got %+v", result.Extracted)
	}
	if !reflect.DeepEqual(result.Missing, QuestionPaths()) {
		t.Fatalf("missing set != full question table:\n%v", result.Missing)
	}
}

func TestAnalyzeParsesEnvelope(t *testing.T) {
	provider := &stubProvider{
		available: true,
		response: `{"extracted": {"totalAmount": "5500", "plaintiffName": "Jordan Avery"},
			"missing": ["defendantName"],
			"ambiguous": [{"field": "eligibility.issueDate", "reason": "two dates mentioned"}]}`,
		usage: llm.Usage{PromptTokens: 900, CompletionTokens: 120, TotalTokens: 1020},
	}
	analyzer := NewAnalyzer(provider)
	result, err := analyzer.Analyze(context.Background(), "Jordan Avery is owed $5,500 for unpaid invoices")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Extracted.Eligibility == nil || result.Extracted.Eligibility.TotalAmount != "5500" {
		t.Fatalf("totalAmount not extracted: %+v", result.Extracted.Eligibility)
	}
	if result.Extracted.Plaintiff == nil || result.Extracted.Plaintiff.FullName != "Jordan Avery" {
		t.Fatalf("plaintiff name not extracted: %+v", result.Extracted.Plaintiff)
	}
	if len(result.Missing) != 1 || result.Missing[0] != "defendantName" {
		t.Fatalf("missing list not passed through verbatim: %v", result.Missing)
	}
	if len(result.Ambiguous) != 1 || result.Ambiguous[0].Question == "" {
		t.Fatalf("ambiguous entry question not backfilled: %+v", result.Ambiguous)
	}
}

func TestAnalyzeToleratesFencedAndFlatResponses(t *testing.T) {
	provider := &stubProvider{
		available: true,
		response:  "```json\n{\"totalAmount\": \"800\", \"defendantName\": \"Acme Inc.\"}\n```",
	}
	analyzer := NewAnalyzer(provider)
	result, err := analyzer.Analyze(context.Background(), "Acme Inc. owes eight hundred dollars")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Extracted.Defendant == nil || result.Extracted.Defendant.FullName != "Acme Inc." {
		t.Fatalf("flat fenced payload not normalized: %+v", result.Extracted.Defendant)
	}
}

func TestAnalyzeUnparsableResponseFails(t *testing.T) {
	provider := &stubProvider{available: true, response: "I could not produce JSON, sorry."}
	analyzer := NewAnalyzer(provider)
	if _, err := analyzer.Analyze(context.Background(), "a description of sufficient length"); err == nil {
		t.Fatal("expected error for unparsable response")
	}
}

func TestAnalyzeCachesByDescription(t *testing.T) {
	provider := &stubProvider{available: true, response: `{"extracted": {"totalAmount": "100"}}`}
	analyzer := NewAnalyzer(provider)
	ctx := context.Background()
	if _, err := analyzer.Analyze(ctx, "the same description twice"); err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if _, err := analyzer.Analyze(ctx, "the same description twice"); err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("expected one provider call, got %d", provider.calls)
	}
}

func TestAnalyzeProviderErrorPropagates(t *testing.T) {
	provider := &stubProvider{available: true, err: llm.ErrRateLimited}
	analyzer := NewAnalyzer(provider)
	if _, err := analyzer.Analyze(context.Background(), "a description of sufficient length"); err == nil {
		t.Fatal("expected provider error to propagate")
	}
	if provider.calls != 1 {
		t.Fatalf("adapter retried a failed call: %d calls", provider.calls)
	}
}

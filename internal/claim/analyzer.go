// File path: internal/claim/analyzer.go
package claim

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/writway/writway/internal/common"
	"github.com/writway/writway/internal/llm"
)

// Approximate per-1K-token pricing used for the cost-estimate log line.
const (
	promptCostPer1K     = 0.00015
	completionCostPer1K = 0.0006
)

// Ambiguity is a field the model could not settle, with its clarifying
// question.
type Ambiguity struct {
	Field    string `json:"field"`
	Reason   string `json:"reason"`
	Question string `json:"question"`
}

// ExtractionResult is the outcome of analyzing one claim description. It is
// produced once and merged into the caller's running form data; Inferred
// lists the dotted paths filled by keyword heuristics rather than the model.
type ExtractionResult struct {
	Extracted *FormData   `json:"extracted"`
	Missing   []string    `json:"missing"`
	Ambiguous []Ambiguity `json:"ambiguous"`
	Inferred  []string    `json:"inferred,omitempty"`
}

// Analyzer turns free-text claim descriptions into structured form data via
// the configured completion provider. Results are cached briefly so repeated
// submissions of the same description do not burn extraction calls.
type Analyzer struct {
	provider llm.Provider
	cache    *gocache.Cache
}

func NewAnalyzer(provider llm.Provider) *Analyzer {
	return &Analyzer{
		provider: provider,
		cache:    gocache.New(10*time.Minute, 30*time.Minute),
	}
}

// Analyze runs one extraction pass. Without a configured credential it
// short-circuits to an empty extraction with every question field reported
// missing; that is the fail-safe default, not a fabricated guess. Provider
// failures propagate unwrapped semantics: one call, no adapter-level retry.
func (a *Analyzer) Analyze(ctx context.Context, description string) (*ExtractionResult, error) {
	logger := common.Logger()
	if a.provider == nil || !a.provider.Available() {
		logger.Warn("claim: extraction credential missing; reporting all fields missing")
		return &ExtractionResult{
			Extracted: &FormData{},
			Missing:   QuestionPaths(),
			Ambiguous: []Ambiguity{},
		}, nil
	}

	key := cacheKey(description)
	if cached, ok := a.cache.Get(key); ok {
		if result, ok := cached.(*ExtractionResult); ok {
			logger.Debug("claim: extraction served from cache")
			return result, nil
		}
	}

	messages := []llm.Message{
		{Role: "system", Content: extractionSystemPrompt()},
		{Role: "user", Content: description},
	}
	raw, usage, err := a.provider.Complete(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("extraction call: %w", err)
	}
	logCostEstimate(usage)

	envelope, err := decodeExtraction(raw)
	if err != nil {
		logger.Error("claim: extraction response unparsable", "error", err)
		return nil, err
	}

	flat := flattenPayload(envelope.extracted)
	data := mapFields(flat)
	inferred := applyHeuristics(data, description)

	result := &ExtractionResult{
		Extracted: data,
		Missing:   envelope.missing,
		Ambiguous: envelope.ambiguous,
		Inferred:  inferred,
	}
	if result.Missing == nil {
		result.Missing = []string{}
	}
	if result.Ambiguous == nil {
		result.Ambiguous = []Ambiguity{}
	}
	for i := range result.Ambiguous {
		if strings.TrimSpace(result.Ambiguous[i].Question) == "" {
			if q := questionByID(result.Ambiguous[i].Field); q != nil {
				result.Ambiguous[i].Question = q.Label
			}
		}
	}
	a.cache.Set(key, result, gocache.DefaultExpiration)
	logger.Info("claim: extraction complete",
		"missing", len(result.Missing),
		"ambiguous", len(result.Ambiguous),
		"inferred", len(result.Inferred))
	return result, nil
}

type extractionEnvelope struct {
	extracted map[string]interface{}
	missing   []string
	ambiguous []Ambiguity
}

// decodeExtraction parses the model's JSON. The prompt demands an
// {extracted, missing, ambiguous} envelope, but a model that skips the
// wrapper and emits the field map at top level is tolerated.
func decodeExtraction(raw string) (*extractionEnvelope, error) {
	cleaned := stripCodeFence(raw)
	var wrapper struct {
		Extracted map[string]interface{} `json:"extracted"`
		Missing   []string               `json:"missing"`
		Ambiguous []Ambiguity            `json:"ambiguous"`
	}
	if err := json.Unmarshal([]byte(cleaned), &wrapper); err != nil {
		return nil, fmt.Errorf("decode extraction response: %w", err)
	}
	if wrapper.Extracted != nil {
		return &extractionEnvelope{
			extracted: wrapper.Extracted,
			missing:   wrapper.Missing,
			ambiguous: wrapper.Ambiguous,
		}, nil
	}
	var flat map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &flat); err != nil {
		return nil, fmt.Errorf("decode extraction response: %w", err)
	}
	delete(flat, "extracted")
	delete(flat, "missing")
	delete(flat, "ambiguous")
	return &extractionEnvelope{
		extracted: flat,
		missing:   wrapper.Missing,
		ambiguous: wrapper.Ambiguous,
	}, nil
}

func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func cacheKey(description string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(description)))
	return hex.EncodeToString(sum[:])
}

func logCostEstimate(usage llm.Usage) {
	cost := float64(usage.PromptTokens)/1000*promptCostPer1K +
		float64(usage.CompletionTokens)/1000*completionCostPer1K
	common.Logger().Info("claim: extraction cost estimate",
		"prompt_tokens", usage.PromptTokens,
		"completion_tokens", usage.CompletionTokens,
		"estimated_usd", fmt.Sprintf("%.6f", cost))
}

// File path: internal/api/server_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/writway/writway/internal/auth"
	"github.com/writway/writway/internal/billing"
	"github.com/writway/writway/internal/claim"
	"github.com/writway/writway/internal/llm"
	"github.com/writway/writway/internal/tenant"
)

type scriptedProvider struct {
	response  string
	err       error
	available bool
	calls     int
}

func (p *scriptedProvider) Complete(ctx context.Context, messages []llm.Message) (string, llm.Usage, error) {
	p.calls++
	if p.err != nil {
		return "", llm.Usage{}, p.err
	}
	return p.response, llm.Usage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150}, nil
}

func (p *scriptedProvider) Name() string    { return "scripted" }
func (p *scriptedProvider) Available() bool { return p.available }

func newTestServer(t *testing.T, provider llm.Provider) (*Server, *tenant.Store) {
	t.Helper()
	store, err := tenant.OpenWithConfig(tenant.Config{
		Path:         filepath.Join(t.TempDir(), "api-test.db"),
		MaxOpenConns: 2,
		MaxIdleConns: 1,
		BusyTimeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	catalog, err := billing.LoadCatalog("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	manager, err := auth.NewManager("api-test-signing-secret", time.Hour)
	if err != nil {
		t.Fatalf("new auth manager: %v", err)
	}
	srv, err := NewServer(provider, store, catalog, manager)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv, store
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *errorBody      `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode envelope data: %v", err)
		}
	}
	return envelope{Success: env.Success, Error: env.Error}
}

func registerTenant(t *testing.T, srv *Server, name, email string) (string, string) {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"tenantName": name,
		"email":      email,
		"password":   "long-enough-password",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", rec.Code, rec.Body.String())
	}
	var session struct {
		Token    string `json:"token"`
		TenantID string `json:"tenantId"`
	}
	decodeEnvelope(t, rec, &session)
	if session.Token == "" || session.TenantID == "" {
		t.Fatalf("incomplete session: %s", rec.Body.String())
	}
	return session.Token, session.TenantID
}

func TestAnalyzeRejectsShortDescription(t *testing.T) {
	srv, _ := newTestServer(t, &scriptedProvider{available: true})

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/claim/analyze", "", map[string]string{"description": "123456789"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for 9-char description, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec, nil)
	if env.Success || env.Error == nil || env.Error.Code != codeValidation {
		t.Fatalf("expected VALIDATION_ERROR envelope, got %s", rec.Body.String())
	}
}

func TestAnalyzeAcceptsTenCharacterBoundary(t *testing.T) {
	provider := &scriptedProvider{
		available: true,
		response:  `{"extracted": {"plaintiff_name": "Jane Roe"}, "missing": ["defendant.fullName"], "ambiguous": []}`,
	}
	srv, _ := newTestServer(t, provider)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/claim/analyze", "", map[string]string{"description": "1234567890"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for 10-char description, got %d: %s", rec.Code, rec.Body.String())
	}
	var result claim.ExtractionResult
	decodeEnvelope(t, rec, &result)
	if result.Extracted == nil || result.Extracted.Plaintiff == nil || result.Extracted.Plaintiff.FullName != "Jane Roe" {
		t.Fatalf("extracted plaintiff not mapped: %s", rec.Body.String())
	}
	if provider.calls != 1 {
		t.Fatalf("expected 1 provider call, got %d", provider.calls)
	}
}

func TestAnalyzeWithoutCredentialReportsAllMissing(t *testing.T) {
	srv, _ := newTestServer(t, &scriptedProvider{available: false})

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/claim/analyze", "", map[string]string{
		"description": "My landlord never returned my deposit of $1,800",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result claim.ExtractionResult
	decodeEnvelope(t, rec, &result)
	if len(result.Missing) != len(claim.QuestionPaths()) {
		t.Fatalf("expected every question path missing, got %d of %d", len(result.Missing), len(claim.QuestionPaths()))
	}
}

func TestNextQuestionRequiresClaimData(t *testing.T) {
	srv, _ := newTestServer(t, &scriptedProvider{})

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/claim/questions/next", "", map[string]interface{}{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without claimData, got %d", rec.Code)
	}
}

func TestNextQuestionReturnsFirstUnanswered(t *testing.T) {
	srv, _ := newTestServer(t, &scriptedProvider{})

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/claim/questions/next", "", map[string]interface{}{
		"claimData": map[string]interface{}{},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result claim.NextQuestionResult
	decodeEnvelope(t, rec, &result)
	if result.Completed {
		t.Fatal("empty claim should not be completed")
	}
	if result.Question == nil || result.Question.ID != claim.Questions[0].ID {
		t.Fatalf("expected first table question, got %+v", result.Question)
	}
}

func TestGenerateTexts(t *testing.T) {
	srv, _ := newTestServer(t, &scriptedProvider{})

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/claim/generate", "", map[string]interface{}{
		"claimData": map[string]interface{}{
			"plaintiff":  map[string]interface{}{"fullName": "Jane Roe"},
			"defendants": map[string]interface{}{"fullName": "Acme Corp"},
			"amount":     map[string]interface{}{"principalAmount": "5500"},
		},
		"initialDescription": "Acme Corp owes me $5500 for unpaid invoices.",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result struct {
		Form7AText    string   `json:"form7AText"`
		ScheduleAText string   `json:"scheduleAText"`
		Warnings      []string `json:"warnings"`
	}
	decodeEnvelope(t, rec, &result)
	if !strings.Contains(result.Form7AText, "$5500") {
		t.Fatalf("form text should carry the literal amount: %q", result.Form7AText)
	}
	if !strings.Contains(result.ScheduleAText, "Acme Corp owes me") {
		t.Fatalf("schedule text should carry the description: %q", result.ScheduleAText)
	}
}

func TestGenerateDocumentsReturnsBothFormats(t *testing.T) {
	srv, _ := newTestServer(t, &scriptedProvider{})

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/claim/generate/documents", "", map[string]interface{}{
		"claimData": map[string]interface{}{
			"plaintiff": map[string]interface{}{"fullName": "Jane Roe"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var docs generatedDocuments
	decodeEnvelope(t, rec, &docs)
	if !bytes.HasPrefix(docs.PDF, []byte("%PDF")) {
		t.Fatalf("pdf payload missing %%PDF header (%d bytes)", len(docs.PDF))
	}
	if !bytes.HasPrefix(docs.Word, []byte("PK")) {
		t.Fatalf("word payload missing zip header (%d bytes)", len(docs.Word))
	}
}

func TestRegisterLoginAndTenantAccess(t *testing.T) {
	srv, _ := newTestServer(t, &scriptedProvider{})

	token, tenantID := registerTenant(t, srv, "Roe Legal", "jane@roe-legal.example")

	// Duplicate registration conflicts.
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"tenantName": "Roe Legal Again",
		"email":      "jane@roe-legal.example",
		"password":   "long-enough-password",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", rec.Code)
	}

	// Login with the same credentials.
	rec = doJSON(t, srv, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "Jane@Roe-Legal.example",
		"password": "long-enough-password",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", rec.Code, rec.Body.String())
	}

	// Wrong password is rejected uniformly.
	rec = doJSON(t, srv, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "jane@roe-legal.example",
		"password": "wrong-password-entirely",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", rec.Code)
	}

	// Token grants access to the owning tenant.
	rec = doJSON(t, srv, http.MethodGet, "/api/v1/tenants/"+tenantID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("tenant read returned %d: %s", rec.Code, rec.Body.String())
	}
	var got tenant.Tenant
	decodeEnvelope(t, rec, &got)
	if got.Name != "Roe Legal" {
		t.Fatalf("unexpected tenant: %+v", got)
	}

	// No token, no access.
	rec = doJSON(t, srv, http.MethodGet, "/api/v1/tenants/"+tenantID, "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestTenantIsolation(t *testing.T) {
	srv, _ := newTestServer(t, &scriptedProvider{})

	_, firstTenant := registerTenant(t, srv, "First Practice", "one@first.example")
	otherToken, _ := registerTenant(t, srv, "Second Practice", "two@second.example")

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/tenants/"+firstTenant, otherToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("cross-tenant read should 404, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, srv, http.MethodGet, "/api/v1/tenants/"+firstTenant+"/clients", otherToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("cross-tenant client list should 404, got %d", rec.Code)
	}
}

func TestClientCRUDOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t, &scriptedProvider{})
	token, tenantID := registerTenant(t, srv, "Roe Legal", "jane@roe-legal.example")
	base := fmt.Sprintf("/api/v1/tenants/%s/clients", tenantID)

	rec := doJSON(t, srv, http.MethodPost, base, token, map[string]string{
		"fullName": "Sam Client",
		"matter":   "Unpaid invoice",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create client returned %d: %s", rec.Code, rec.Body.String())
	}
	var created tenant.Client
	decodeEnvelope(t, rec, &created)
	if created.ID == "" || created.TenantID != tenantID {
		t.Fatalf("unexpected client: %+v", created)
	}

	rec = doJSON(t, srv, http.MethodPut, base+"/"+created.ID, token, map[string]string{"phone": "416-555-0100"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update client returned %d: %s", rec.Code, rec.Body.String())
	}
	var updated tenant.Client
	decodeEnvelope(t, rec, &updated)
	if updated.Phone != "416-555-0100" || updated.FullName != "Sam Client" {
		t.Fatalf("update lost fields: %+v", updated)
	}

	rec = doJSON(t, srv, http.MethodGet, base, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list clients returned %d", rec.Code)
	}
	var clients []tenant.Client
	decodeEnvelope(t, rec, &clients)
	if len(clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(clients))
	}

	rec = doJSON(t, srv, http.MethodDelete, base+"/"+created.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete client returned %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodGet, base+"/"+created.ID, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("deleted client should 404, got %d", rec.Code)
	}
}

func TestSubscribe(t *testing.T) {
	srv, store := newTestServer(t, &scriptedProvider{})
	token, tenantID := registerTenant(t, srv, "Roe Legal", "jane@roe-legal.example")

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/billing/subscribe", token, map[string]string{"planId": "practice"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("subscribe returned %d: %s", rec.Code, rec.Body.String())
	}
	var sub tenant.Subscription
	decodeEnvelope(t, rec, &sub)
	if sub.PlanID != "practice" || sub.Status != tenant.SubscriptionPending {
		t.Fatalf("unexpected subscription: %+v", sub)
	}
	updated, err := store.GetTenant(context.Background(), tenantID)
	if err != nil {
		t.Fatalf("get tenant: %v", err)
	}
	if updated.PlanID != "practice" {
		t.Fatalf("tenant plan not switched: %q", updated.PlanID)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/billing/subscribe", token, map[string]string{"planId": "nonexistent"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown plan, got %d", rec.Code)
	}
}

func TestPlansIsPublic(t *testing.T) {
	srv, _ := newTestServer(t, &scriptedProvider{})

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/plans", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("plans returned %d", rec.Code)
	}
	var plans []billing.Plan
	decodeEnvelope(t, rec, &plans)
	if len(plans) != len(billing.DefaultPlans) {
		t.Fatalf("expected %d plans, got %d", len(billing.DefaultPlans), len(plans))
	}
}

func TestAdminLogsRequiresRole(t *testing.T) {
	srv, _ := newTestServer(t, &scriptedProvider{})
	token, _ := registerTenant(t, srv, "Roe Legal", "jane@roe-legal.example")

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/admin/logs?limit=10", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner logs read returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/admin/logs", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/admin/logs?limit=-1", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative limit, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t, &scriptedProvider{})
	rec := doJSON(t, srv, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthz returned %d %q", rec.Code, rec.Body.String())
	}
}

// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/writway/writway/internal/auth"
	"github.com/writway/writway/internal/billing"
	"github.com/writway/writway/internal/claim"
	"github.com/writway/writway/internal/common"
	"github.com/writway/writway/internal/llm"
	"github.com/writway/writway/internal/tenant"
)

// Error codes used in the response envelope.
const (
	codeValidation   = "VALIDATION_ERROR"
	codeInternal     = "INTERNAL_ERROR"
	codeUnauthorized = "UNAUTHORIZED"
	codeNotFound     = "NOT_FOUND"
	codeConflict     = "CONFLICT"
)

type Server struct {
	router   chi.Router
	provider llm.Provider
	analyzer *claim.Analyzer
	store    *tenant.Store
	catalog  *billing.Catalog
	billing  *billing.Service
	auth     *auth.Manager
}

func NewServer(provider llm.Provider, store *tenant.Store, catalog *billing.Catalog, authManager *auth.Manager) (*Server, error) {
	logger := common.Logger()
	if store == nil {
		return nil, fmt.Errorf("tenant store required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("plan catalog required")
	}
	if authManager == nil {
		return nil, fmt.Errorf("auth manager required")
	}
	providerName := "none"
	if provider != nil {
		providerName = provider.Name()
	}
	srv := &Server{
		router:   chi.NewRouter(),
		provider: provider,
		analyzer: claim.NewAnalyzer(provider),
		store:    store,
		catalog:  catalog,
		billing:  billing.NewService(catalog, store),
		auth:     authManager,
	}
	srv.routes()
	logger.Info("api: server ready", "provider", providerName, "plans", len(catalog.Plans()))
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Get("/plans", s.handlePlans)

		r.Post("/claim/analyze", s.handleAnalyze)
		r.Post("/claim/questions/next", s.handleNextQuestion)
		r.Post("/claim/generate", s.handleGenerateTexts)
		r.Post("/claim/generate/documents", s.handleGenerateDocuments)

		r.Group(func(protected chi.Router) {
			protected.Use(s.auth.Middleware)
			protected.Get("/tenants", s.handleListTenants)
			protected.Post("/tenants", s.handleCreateTenant)
			protected.Route("/tenants/{tenantID}", func(tr chi.Router) {
				tr.Get("/", s.handleGetTenant)
				tr.Put("/", s.handleUpdateTenant)
				tr.Delete("/", s.handleDeleteTenant)
				tr.Get("/clients", s.handleListClients)
				tr.Post("/clients", s.handleCreateClient)
				tr.Route("/clients/{clientID}", func(cr chi.Router) {
					cr.Get("/", s.handleGetClient)
					cr.Put("/", s.handleUpdateClient)
					cr.Delete("/", s.handleDeleteClient)
				})
			})
			protected.Post("/billing/subscribe", s.handleSubscribe)
			protected.Get("/admin/logs", s.handleLogs)
		})
	})
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *errorBody  `json:"error,omitempty"`
}

func writeSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func writeFailure(w http.ResponseWriter, status int, code, message string) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "code", code, "message", message)
	} else {
		logger.Warn("request failed", "status", status, "code", code, "message", message)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: &errorBody{Code: code, Message: message}})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeFailure(w, http.StatusBadRequest, codeValidation, "malformed request body: "+err.Error())
		return false
	}
	return true
}

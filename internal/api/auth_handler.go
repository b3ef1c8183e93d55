// File path: internal/api/auth_handler.go
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/writway/writway/internal/auth"
	"github.com/writway/writway/internal/common"
	"github.com/writway/writway/internal/tenant"
)

type registerRequest struct {
	TenantName string `json:"tenantName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token    string         `json:"token"`
	TenantID string         `json:"tenantId"`
	User     *tenant.User   `json:"user"`
	Tenant   *tenant.Tenant `json:"tenant,omitempty"`
}

// handleRegister creates a tenant with its owner login and returns a session
// token. Email uniqueness is enforced by the store's unique index; a
// duplicate surfaces as CONFLICT.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.TenantName) == "" {
		writeFailure(w, http.StatusBadRequest, codeValidation, "tenantName is required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		writeFailure(w, http.StatusBadRequest, codeValidation, "a valid email is required")
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	if _, err := s.store.GetUserByEmail(r.Context(), req.Email); err == nil {
		writeFailure(w, http.StatusConflict, codeConflict, "an account with that email already exists")
		return
	} else if !errors.Is(err, tenant.ErrNotFound) {
		writeFailure(w, http.StatusInternalServerError, codeInternal, "lookup failed: "+err.Error())
		return
	}

	t := &tenant.Tenant{Name: strings.TrimSpace(req.TenantName), Email: strings.ToLower(strings.TrimSpace(req.Email))}
	u := &tenant.User{Email: req.Email, PasswordHash: hash, Role: "owner"}
	if err := s.store.CreateTenantWithOwner(r.Context(), t, u); err != nil {
		writeFailure(w, http.StatusInternalServerError, codeInternal, "create account: "+err.Error())
		return
	}
	token, err := s.auth.IssueToken(u.ID, t.ID, u.Role)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, codeInternal, "issue token: "+err.Error())
		return
	}
	logger.Info("api: tenant registered", "tenant", t.ID, "email", u.Email)
	writeSuccess(w, http.StatusCreated, sessionResponse{Token: token, TenantID: t.ID, User: u, Tenant: t})
}

// handleLogin exchanges an email/password pair for a session token. Failures
// are reported uniformly so the response does not reveal which part was
// wrong.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	u, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, tenant.ErrNotFound) {
		writeFailure(w, http.StatusUnauthorized, codeUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, codeInternal, "lookup failed: "+err.Error())
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		writeFailure(w, http.StatusUnauthorized, codeUnauthorized, "invalid email or password")
		return
	}
	token, err := s.auth.IssueToken(u.ID, u.TenantID, u.Role)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, codeInternal, "issue token: "+err.Error())
		return
	}
	logger.Info("api: login", "user", u.ID, "tenant", u.TenantID)
	writeSuccess(w, http.StatusOK, sessionResponse{Token: token, TenantID: u.TenantID, User: u})
}

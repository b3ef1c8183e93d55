// File path: internal/api/tenant_handler.go
package api

import (
	"errors"
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"github.com/writway/writway/internal/auth"
	"github.com/writway/writway/internal/tenant"
)

// authorizeTenant checks the caller may act on tenantID: their own tenant, or
// any tenant when they carry the admin role.
func authorizeTenant(w http.ResponseWriter, r *http.Request, tenantID string) (*auth.Claims, bool) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeFailure(w, http.StatusUnauthorized, codeUnauthorized, "missing session")
		return nil, false
	}
	if claims.TenantID != tenantID && claims.Role != "admin" {
		writeFailure(w, http.StatusNotFound, codeNotFound, "tenant not found")
		return nil, false
	}
	return claims, true
}

func (s *Server) handleListTenants(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeFailure(w, http.StatusUnauthorized, codeUnauthorized, "missing session")
		return
	}
	if claims.Role == "admin" {
		tenants, err := s.store.ListTenants(r.Context())
		if err != nil {
			writeFailure(w, http.StatusInternalServerError, codeInternal, "list tenants: "+err.Error())
			return
		}
		writeSuccess(w, http.StatusOK, tenants)
		return
	}
	// Non-admins see only their own tenant.
	t, err := s.store.GetTenant(r.Context(), claims.TenantID)
	if errors.Is(err, tenant.ErrNotFound) {
		writeSuccess(w, http.StatusOK, []tenant.Tenant{})
		return
	}
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, codeInternal, "get tenant: "+err.Error())
		return
	}
	writeSuccess(w, http.StatusOK, []tenant.Tenant{*t})
}

type createTenantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) handleCreateTenant(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok || claims.Role != "admin" {
		writeFailure(w, http.StatusUnauthorized, codeUnauthorized, "admin role required")
		return
	}
	var req createTenantRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeFailure(w, http.StatusBadRequest, codeValidation, "name is required")
		return
	}
	t := &tenant.Tenant{Name: strings.TrimSpace(req.Name), Email: strings.TrimSpace(req.Email)}
	if err := s.store.CreateTenant(r.Context(), t); err != nil {
		writeFailure(w, http.StatusInternalServerError, codeInternal, "create tenant: "+err.Error())
		return
	}
	writeSuccess(w, http.StatusCreated, t)
}

func (s *Server) handleGetTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	if _, ok := authorizeTenant(w, r, tenantID); !ok {
		return
	}
	t, err := s.store.GetTenant(r.Context(), tenantID)
	if errors.Is(err, tenant.ErrNotFound) {
		writeFailure(w, http.StatusNotFound, codeNotFound, "tenant not found")
		return
	}
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, codeInternal, "get tenant: "+err.Error())
		return
	}
	writeSuccess(w, http.StatusOK, t)
}

type updateTenantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) handleUpdateTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	if _, ok := authorizeTenant(w, r, tenantID); !ok {
		return
	}
	var req updateTenantRequest
	if !decodeBody(w, r, &req) {
		return
	}
	t, err := s.store.GetTenant(r.Context(), tenantID)
	if errors.Is(err, tenant.ErrNotFound) {
		writeFailure(w, http.StatusNotFound, codeNotFound, "tenant not found")
		return
	}
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, codeInternal, "get tenant: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Name) != "" {
		t.Name = strings.TrimSpace(req.Name)
	}
	if strings.TrimSpace(req.Email) != "" {
		t.Email = strings.TrimSpace(req.Email)
	}
	if err := s.store.UpdateTenant(r.Context(), t); err != nil {
		writeFailure(w, http.StatusInternalServerError, codeInternal, "update tenant: "+err.Error())
		return
	}
	writeSuccess(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	if _, ok := authorizeTenant(w, r, tenantID); !ok {
		return
	}
	err := s.store.DeleteTenant(r.Context(), tenantID)
	if errors.Is(err, tenant.ErrNotFound) {
		writeFailure(w, http.StatusNotFound, codeNotFound, "tenant not found")
		return
	}
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, codeInternal, "delete tenant: "+err.Error())
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"deleted": tenantID})
}

type clientRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Matter   string `json:"matter"`
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	if _, ok := authorizeTenant(w, r, tenantID); !ok {
		return
	}
	clients, err := s.store.ListClients(r.Context(), tenantID)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, codeInternal, "list clients: "+err.Error())
		return
	}
	if clients == nil {
		clients = []tenant.Client{}
	}
	writeSuccess(w, http.StatusOK, clients)
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	if _, ok := authorizeTenant(w, r, tenantID); !ok {
		return
	}
	var req clientRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.FullName) == "" {
		writeFailure(w, http.StatusBadRequest, codeValidation, "fullName is required")
		return
	}
	c := &tenant.Client{
		TenantID: tenantID,
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Matter:   strings.TrimSpace(req.Matter),
	}
	if err := s.store.CreateClient(r.Context(), c); err != nil {
		writeFailure(w, http.StatusInternalServerError, codeInternal, "create client: "+err.Error())
		return
	}
	writeSuccess(w, http.StatusCreated, c)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	if _, ok := authorizeTenant(w, r, tenantID); !ok {
		return
	}
	c, err := s.store.GetClient(r.Context(), tenantID, chi.URLParam(r, "clientID"))
	if errors.Is(err, tenant.ErrNotFound) {
		writeFailure(w, http.StatusNotFound, codeNotFound, "client not found")
		return
	}
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, codeInternal, "get client: "+err.Error())
		return
	}
	writeSuccess(w, http.StatusOK, c)
}

func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	if _, ok := authorizeTenant(w, r, tenantID); !ok {
		return
	}
	var req clientRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := s.store.GetClient(r.Context(), tenantID, chi.URLParam(r, "clientID"))
	if errors.Is(err, tenant.ErrNotFound) {
		writeFailure(w, http.StatusNotFound, codeNotFound, "client not found")
		return
	}
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, codeInternal, "get client: "+err.Error())
		return
	}
	if strings.TrimSpace(req.FullName) != "" {
		c.FullName = strings.TrimSpace(req.FullName)
	}
	if strings.TrimSpace(req.Email) != "" {
		c.Email = strings.TrimSpace(req.Email)
	}
	if strings.TrimSpace(req.Phone) != "" {
		c.Phone = strings.TrimSpace(req.Phone)
	}
	if strings.TrimSpace(req.Matter) != "" {
		c.Matter = strings.TrimSpace(req.Matter)
	}
	if err := s.store.UpdateClient(r.Context(), c); err != nil {
		writeFailure(w, http.StatusInternalServerError, codeInternal, "update client: "+err.Error())
		return
	}
	writeSuccess(w, http.StatusOK, c)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	if _, ok := authorizeTenant(w, r, tenantID); !ok {
		return
	}
	clientID := chi.URLParam(r, "clientID")
	err := s.store.DeleteClient(r.Context(), tenantID, clientID)
	if errors.Is(err, tenant.ErrNotFound) {
		writeFailure(w, http.StatusNotFound, codeNotFound, "client not found")
		return
	}
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, codeInternal, "delete client: "+err.Error())
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"deleted": clientID})
}

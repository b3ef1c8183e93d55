// File path: internal/api/billing_handler.go
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/writway/writway/internal/auth"
	"github.com/writway/writway/internal/billing"
	"github.com/writway/writway/internal/tenant"
)

// handlePlans lists the plan catalog. Public: the pricing page reads it
// before any account exists.
func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, s.catalog.Plans())
}

type subscribeRequest struct {
	PlanID string `json:"planId"`
}

// handleSubscribe records subscription intent for the caller's tenant.
func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeFailure(w, http.StatusUnauthorized, codeUnauthorized, "missing session")
		return
	}
	var req subscribeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.PlanID) == "" {
		writeFailure(w, http.StatusBadRequest, codeValidation, "planId is required")
		return
	}
	sub, err := s.billing.Subscribe(r.Context(), claims.TenantID, strings.TrimSpace(req.PlanID))
	if errors.Is(err, billing.ErrUnknownPlan) {
		writeFailure(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	if errors.Is(err, tenant.ErrNotFound) {
		writeFailure(w, http.StatusNotFound, codeNotFound, "tenant not found")
		return
	}
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, codeInternal, "subscribe: "+err.Error())
		return
	}
	writeSuccess(w, http.StatusCreated, sub)
}

// File path: internal/api/logs_handler.go
package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/writway/writway/internal/auth"
	"github.com/writway/writway/internal/common"
)

// handleLogs serves the in-memory log history for operators. Optional query
// params: level, component, limit.
func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeFailure(w, http.StatusUnauthorized, codeUnauthorized, "missing session")
		return
	}
	if claims.Role != "admin" && claims.Role != "owner" {
		writeFailure(w, http.StatusUnauthorized, codeUnauthorized, "owner or admin role required")
		return
	}

	level := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("level")))
	component := strings.TrimSpace(r.URL.Query().Get("component"))
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeFailure(w, http.StatusBadRequest, codeValidation, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	entries := common.LogEntries()
	filtered := make([]common.LogEntry, 0, len(entries))
	for _, e := range entries {
		if level != "" && !strings.EqualFold(e.Level, level) {
			continue
		}
		if component != "" && !strings.EqualFold(e.Component, component) {
			continue
		}
		filtered = append(filtered, e)
	}
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[len(filtered)-limit:]
	}
	writeSuccess(w, http.StatusOK, filtered)
}

package handlers

import (
	"net/http"
	"strconv"

	"skilltrack/internal/models"
)

// AuditHandler handles audit log requests
type AuditHandler struct {
	auditRepo AuditLogReader
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditRepo AuditLogReader) *AuditHandler {
	return &AuditHandler{
		auditRepo: auditRepo,
	}
}

// auditLogPage is a page of audit log entries
type auditLogPage struct {
	Data  []models.AuditLog `json:"data"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ListAuditLogs lists audit logs with pagination (admin only)
// @Summary List audit logs
// @Description Get a paginated list of audit logs, newest first (admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(50)
// @Param user_id query int false "Filter by user ID"
// @Success 200 {object} auditLogPage "Paginated audit logs"
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - admin only"
// @Router /admin/audit-logs [get]
func (h *AuditHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	page := 1
	limit := 50

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	var userID *uint
	if r.URL.Query().Get("user_id") != "" {
		id, err := queryID(r, "user_id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		userID = &id
	}

	logs, err := h.auditRepo.GetAll(r.Context(), userID, limit, (page-1)*limit)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, auditLogPage{Data: logs, Page: page, Limit: limit})
}

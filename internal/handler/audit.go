package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dangerclosesec/crm/internal/policy"
	"github.com/dangerclosesec/crm/internal/repository"
	"github.com/dangerclosesec/crm/internal/service"
)

// AccessAuditHandler handles API requests related to access audit logs
type AccessAuditHandler struct {
	auditService *service.AccessAuditService
}

// NewAccessAuditHandler creates a new audit log handler
func NewAccessAuditHandler(auditService *service.AccessAuditService) *AccessAuditHandler {
	return &AccessAuditHandler{
		auditService: auditService,
	}
}

// GetAuditLogs handles requests to retrieve audit logs with filtering
func (h *AccessAuditHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	if !policy.CanReadAccessAudit(p) {
		respondWithError(w, http.StatusForbidden, "Permission denied")
		return
	}

	query := r.URL.Query()
	params := repository.AuditQueryParams{
		Action:       query.Get("action"),
		ResourceKind: query.Get("resource_kind"),
		ResourceID:   query.Get("resource_id"),
		ActorID:      query.Get("actor_id"),
	}

	if allowedStr := query.Get("allowed"); allowedStr != "" {
		allowed, err := strconv.ParseBool(allowedStr)
		if err == nil {
			params.Allowed = &allowed
		}
	}

	if startTimeStr := query.Get("start_time"); startTimeStr != "" {
		startTime, err := time.Parse(time.RFC3339, startTimeStr)
		if err == nil {
			params.StartTime = startTime
		}
	}

	if endTimeStr := query.Get("end_time"); endTimeStr != "" {
		endTime, err := time.Parse(time.RFC3339, endTimeStr)
		if err == nil {
			params.EndTime = endTime
		}
	}

	// Pagination
	params.Limit, params.Offset = pagination(r)

	logs, total, err := h.auditService.GetAuditLogs(r.Context(), params)
	if err != nil {
		handleError(w, r, "query access audit logs", err)
		return
	}

	respondWithJSON(w, http.StatusOK, ListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Data:         logs,
		Total:        total,
		Limit:        params.Limit,
		Offset:       params.Offset,
	})
}

// GetAuditLogByID handles requests to retrieve a specific audit log by ID
func (h *AccessAuditHandler) GetAuditLogByID(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	if !policy.CanReadAccessAudit(p) {
		respondWithError(w, http.StatusForbidden, "Permission denied")
		return
	}

	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	log, err := h.auditService.GetAuditLogByID(r.Context(), id)
	if err != nil {
		handleError(w, r, "get access audit log", err)
		return
	}
	respondWithData(w, http.StatusOK, log)
}

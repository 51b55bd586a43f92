package handler

import (
	"net/http"

	"github.com/dangerclosesec/crm/internal/model"
	"github.com/dangerclosesec/crm/internal/repository"
	"github.com/dangerclosesec/crm/internal/service"
	"github.com/google/uuid"
)

// AssignmentHandler serves the assign and bulk-assign endpoints of one
// assignable kind.
type AssignmentHandler struct {
	assignments *service.AssignmentService
	kind        model.ResourceKind
}

func NewAssignmentHandler(assignments *service.AssignmentService, kind model.ResourceKind) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments, kind: kind}
}

// Assign handles POST /api/{kind}/{id}/assign.
func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	var input service.AssignInput
	if !decodeJSON(w, r, &input) {
		return
	}

	rec, err := h.assignments.Assign(r.Context(), p, h.kind, id, input)
	if err != nil {
		handleError(w, r, "assign "+string(h.kind), err)
		return
	}
	respondWithData(w, http.StatusOK, rec)
}

// BulkAssign handles POST /api/{kind}/bulk-assign. Per-record failures are
// reported in the body of a 200 response.
func (h *AssignmentHandler) BulkAssign(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var input service.BulkAssignInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.assignments.BulkAssign(r.Context(), p, h.kind, input)
	if err != nil {
		handleError(w, r, "bulk assign "+string(h.kind), err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// TeamViewHandler serves the manager's team book of leads.
type TeamViewHandler struct {
	visibility *service.VisibilityService
	leads      *service.RecordService[model.Lead, *model.Lead]
}

func NewTeamViewHandler(visibility *service.VisibilityService, leads *service.RecordService[model.Lead, *model.Lead]) *TeamViewHandler {
	return &TeamViewHandler{visibility: visibility, leads: leads}
}

// TeamLeads handles GET /api/leads/team. manager_id defaults to the caller.
func (h *TeamViewHandler) TeamLeads(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	managerID := p.ID
	if v := r.URL.Query().Get("manager_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid manager_id")
			return
		}
		managerID = id
	}

	scope, err := h.visibility.TeamScopeFor(r.Context(), p, managerID)
	if err != nil {
		handleError(w, r, "resolve team scope", err)
		return
	}

	limit, offset := pagination(r)
	leads, total, err := h.leads.ListInScope(r.Context(), scope, repository.ListParams{Limit: limit, Offset: offset})
	if err != nil {
		handleError(w, r, "list team leads", err)
		return
	}

	respondWithJSON(w, http.StatusOK, ListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Data:         leads,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	})
}

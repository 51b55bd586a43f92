package handler

import (
	"net/http"

	"github.com/dangerclosesec/crm/internal/service"
	"github.com/google/uuid"
)

// UserHandler serves user and team administration.
type UserHandler struct {
	users *service.UserService
	teams *service.TeamService
}

func NewUserHandler(users *service.UserService, teams *service.TeamService) *UserHandler {
	return &UserHandler{users: users, teams: teams}
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := principal(w, r); !ok {
		return
	}

	limit, offset := pagination(r)
	users, total, err := h.users.ListUsers(r.Context(), offset, limit)
	if err != nil {
		handleError(w, r, "list users", err)
		return
	}

	respondWithJSON(w, http.StatusOK, ListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Data:         users,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	})
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var input service.CreateUserInput
	if !decodeJSON(w, r, &input) {
		return
	}

	user, err := h.users.CreateUser(r.Context(), p, input)
	if err != nil {
		handleError(w, r, "create user", err)
		return
	}
	respondWithData(w, http.StatusCreated, user)
}

// TeamMembers handles GET /api/users/{id}/team: everyone under the manager.
func (h *UserHandler) TeamMembers(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	managerID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	members, err := h.teams.TeamMembers(r.Context(), p, managerID)
	if err != nil {
		handleError(w, r, "list team members", err)
		return
	}
	respondWithData(w, http.StatusOK, members)
}

type setManagerRequest struct {
	ManagerID *uuid.UUID `json:"manager_id"`
}

func (h *UserHandler) SetManager(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	userID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	var req setManagerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.teams.SetManager(r.Context(), p, userID, req.ManagerID)
	if err != nil {
		handleError(w, r, "set manager", err)
		return
	}
	respondWithData(w, http.StatusOK, user)
}

type setTeamRequest struct {
	TeamID *uuid.UUID `json:"team_id"`
}

func (h *UserHandler) SetTeam(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	userID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	var req setTeamRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.teams.SetTeam(r.Context(), p, userID, req.TeamID)
	if err != nil {
		handleError(w, r, "set team", err)
		return
	}
	respondWithData(w, http.StatusOK, user)
}

type setActiveRequest struct {
	Active *bool `json:"is_active"`
}

func (h *UserHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	userID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	var req setActiveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Active == nil {
		respondWithError(w, http.StatusBadRequest, "is_active is required")
		return
	}

	user, err := h.teams.SetActive(r.Context(), p, userID, *req.Active)
	if err != nil {
		handleError(w, r, "set active", err)
		return
	}
	respondWithData(w, http.StatusOK, user)
}

func (h *UserHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	if _, ok := principal(w, r); !ok {
		return
	}

	teams, err := h.teams.ListTeams(r.Context())
	if err != nil {
		handleError(w, r, "list teams", err)
		return
	}
	respondWithData(w, http.StatusOK, teams)
}

func (h *UserHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var input service.CreateTeamInput
	if !decodeJSON(w, r, &input) {
		return
	}

	team, err := h.teams.CreateTeam(r.Context(), p, input)
	if err != nil {
		handleError(w, r, "create team", err)
		return
	}
	respondWithData(w, http.StatusCreated, team)
}

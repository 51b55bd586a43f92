package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dangerclosesec/crm/internal/domain"
	"github.com/dangerclosesec/crm/internal/middleware"
	"github.com/dangerclosesec/crm/internal/policy"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// maxBodyBytes caps request bodies. A bulk request of 500 ids fits easily.
const maxBodyBytes = 1 << 20

type ErrorResponse struct { // TypeGen: ErrorResponse
	BaseResponse
	Error   string    `json:"error"`
	Details *[]string `json:"details,omitempty"`
	Code    *string   `json:"error_code,omitempty"`
}

type BaseResponse struct { // TypeGen: DefaultResponse
	Ok bool `json:"ok"`
}

// ListResponse wraps one page of results.
type ListResponse struct {
	BaseResponse
	Data   interface{} `json:"data"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// DataResponse wraps a single result.
type DataResponse struct {
	BaseResponse
	Data interface{} `json:"data"`
}

// respondWithError sends an error response with a message
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	// Sets content type header
	w.Header().Set("Content-Type", "application/json")

	// Sets the HTTP status code
	w.WriteHeader(code)

	// Encodes the response
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// If encoding fails, logs the error and sends a plain text response
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func respondWithData(w http.ResponseWriter, code int, data interface{}) {
	respondWithJSON(w, code, DataResponse{BaseResponse: BaseResponse{Ok: true}, Data: data})
}

// handleError maps service errors onto status codes. Unexpected errors are
// logged and answered with a generic body.
func handleError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, domain.ErrPermissionDenied):
		respondWithError(w, http.StatusForbidden, "Permission denied")
	case errors.Is(err, domain.ErrUserNotFound):
		respondWithError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrTeamNotFound):
		respondWithError(w, http.StatusNotFound, "Team not found")
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrManagerCycle):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotAssignable):
		respondWithError(w, http.StatusBadRequest, "Resource does not support assignment")
	case errors.Is(err, domain.ErrImmutableRecord):
		respondWithError(w, http.StatusConflict, "Record is immutable")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		respondWithError(w, http.StatusConflict, "Email already exists")
	default:
		slog.ErrorContext(r.Context(), op+" failed", "error", err, "requestID", chimw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// principal returns the caller installed by middleware.AuthMiddleware. It
// writes a 401 and reports false when the route is not behind it.
func principal(w http.ResponseWriter, r *http.Request) (policy.Principal, bool) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
	}
	return p, ok
}

// urlID parses a uuid path parameter and writes a 400 on failure.
func urlID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// decodeJSON reads a size-limited JSON body into v and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

// pagination reads limit and offset. Missing or malformed values are left
// at zero for the store to default.
func pagination(r *http.Request) (limit, offset int) {
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

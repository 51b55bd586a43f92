package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/dangerclosesec/crm/internal/model"
	"github.com/dangerclosesec/crm/internal/repository"
	"github.com/dangerclosesec/crm/internal/service"
	"github.com/go-chi/chi/v5"
)

// RecordHandler exposes visibility-checked CRUD for one ownable resource.
type RecordHandler[T any, PT model.RecordPtr[T]] struct {
	records *service.RecordService[T, PT]
	// filters maps accepted query parameters to the column they filter on.
	filters map[string]string
}

func NewRecordHandler[T any, PT model.RecordPtr[T]](records *service.RecordService[T, PT], filters map[string]string) *RecordHandler[T, PT] {
	return &RecordHandler[T, PT]{records: records, filters: filters}
}

// Routes mounts the collection and item routes on r.
func (h *RecordHandler[T, PT]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *RecordHandler[T, PT]) listParams(r *http.Request) repository.ListParams {
	params := repository.ListParams{}
	params.Limit, params.Offset = pagination(r)

	query := r.URL.Query()
	for param, column := range h.filters {
		if v := query.Get(param); v != "" {
			if params.Filters == nil {
				params.Filters = make(map[string]any)
			}
			params.Filters[column] = v
		}
	}
	return params
}

func (h *RecordHandler[T, PT]) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	params := h.listParams(r)
	records, total, err := h.records.List(r.Context(), p, params)
	if err != nil {
		handleError(w, r, "list "+string(h.records.Kind()), err)
		return
	}

	respondWithJSON(w, http.StatusOK, ListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Data:         records,
		Total:        total,
		Limit:        params.Limit,
		Offset:       params.Offset,
	})
}

func (h *RecordHandler[T, PT]) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	rec, err := h.records.Get(r.Context(), p, id)
	if err != nil {
		handleError(w, r, "get "+string(h.records.Kind()), err)
		return
	}
	respondWithData(w, http.StatusOK, rec)
}

func (h *RecordHandler[T, PT]) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	rec := PT(new(T))
	if !decodeJSON(w, r, rec) {
		return
	}

	created, err := h.records.Create(r.Context(), p, rec)
	if err != nil {
		handleError(w, r, "create "+string(h.records.Kind()), err)
		return
	}
	respondWithData(w, http.StatusCreated, created)
}

// Update serves both PUT and PATCH. Only the fields present in the body
// change.
func (h *RecordHandler[T, PT]) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	defer r.Body.Close()
	patch, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updated, err := h.records.Update(r.Context(), p, id, patch)
	if err != nil {
		handleError(w, r, "update "+string(h.records.Kind()), err)
		return
	}
	respondWithData(w, http.StatusOK, updated)
}

func (h *RecordHandler[T, PT]) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	if err := h.records.Delete(r.Context(), p, id); err != nil {
		handleError(w, r, "delete "+string(h.records.Kind()), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

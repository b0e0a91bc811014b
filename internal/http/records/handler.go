package records

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/deskboard/internal/fakeapi"
)

// Handler serves every resource of the store under /{resource}.
type Handler struct {
	store *fakeapi.Store
}

func NewHandler(store *fakeapi.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Routes(r chi.Router) {
	r.Use(h.resolve)

	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type ctxKey struct{}

// resolve rejects unknown resources and answers with a pending injected failure.
func (h *Handler) resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "resource")

		cfg, ok := h.store.Config(name)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown resource: "+name, nil)
			return
		}

		if f, failing := h.store.TakeFailure(name); failing {
			writeError(w, f.Status, f.Message, nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(withConfig(r.Context(), cfg)))
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	cfg := configFrom(r.Context())
	q := r.URL.Query()

	filter := fakeapi.ListFilter{Status: q.Get("status")}

	if s := q.Get("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			filter.Page = n
		}
	}

	if s := q.Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			filter.Limit = n
		}
	}

	page, err := h.store.List(cfg.Name, filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	writeJSON(w, http.StatusOK, toListResponse(cfg, page))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	cfg := configFrom(r.Context())

	rec, err := h.store.Get(cfg.Name, chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, cfg, err)
		return
	}

	writeJSON(w, http.StatusOK, toDetailResponse(cfg, rec))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	cfg := configFrom(r.Context())

	var req fakeapi.Record
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	rec, fieldErrors, err := h.store.Create(cfg.Name, req)
	if err != nil {
		writeStoreError(w, cfg, err)
		return
	}

	if len(fieldErrors) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "Validation failed", fieldErrors)
		return
	}

	writeJSON(w, http.StatusCreated, toMutationResponse(cfg, rec, "Created successfully"))
}

// update serves both PUT and PATCH as a merge of the given fields.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	cfg := configFrom(r.Context())

	var req fakeapi.Record
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	rec, fieldErrors, err := h.store.Update(cfg.Name, chi.URLParam(r, "id"), req)
	if err != nil {
		writeStoreError(w, cfg, err)
		return
	}

	if len(fieldErrors) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "Validation failed", fieldErrors)
		return
	}

	writeJSON(w, http.StatusOK, toMutationResponse(cfg, rec, "Updated successfully"))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	cfg := configFrom(r.Context())

	if err := h.store.Delete(cfg.Name, chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, cfg, err)
		return
	}

	if cfg.Shape == fakeapi.ShapeBare {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Deleted successfully"})
}

func writeStoreError(w http.ResponseWriter, cfg fakeapi.Config, err error) {
	switch {
	case errors.Is(err, fakeapi.ErrNotFound):
		writeError(w, http.StatusNotFound, cfg.Name+" record not found", nil)
	case errors.Is(err, fakeapi.ErrUnknownResource):
		writeError(w, http.StatusNotFound, err.Error(), nil)
	default:
		slog.Error("failed to serve request", "resource", cfg.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error", nil)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, fieldErrors map[string]string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg, FieldErrors: fieldErrors})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

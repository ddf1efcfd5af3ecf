package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lojf/registry/internal/services"
)

type catalogBody struct {
	Description string `json:"descripcion"`
	Active      any    `json:"activo"`
}

// GET /api/{catalog}[?activos=1]
func (h *Handlers) ListCatalog(kind services.CatalogKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly := services.ParseActive(r.URL.Query().Get("activos"))
		rows, err := h.svc.Catalogs.List(r.Context(), kind, activeOnly)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

// POST /api/{catalog}
func (h *Handlers) CreateCatalog(kind services.CatalogKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body catalogBody
		if err := decode(r, &body); err != nil {
			h.fail(w, r, err)
			return
		}
		row, err := h.svc.Catalogs.Create(r.Context(), kind, body.Description)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.log.Info("catalog entry created", zap.String("catalog", kind.Table), zap.Int64("id", row.ID))
		w.WriteHeader(http.StatusNoContent)
	}
}

// PUT /api/{catalog}/{id}
func (h *Handlers) UpdateCatalog(kind services.CatalogKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			h.fail(w, r, &services.FieldError{Err: services.ErrInvalidValue, Field: "id"})
			return
		}
		var body catalogBody
		if err := decode(r, &body); err != nil {
			h.fail(w, r, err)
			return
		}
		if err := h.svc.Catalogs.Update(r.Context(), kind, id, body.Description, body.Active); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

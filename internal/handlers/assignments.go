package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/lojf/registry/internal/services"
)

type assignmentBody struct {
	Date        string `json:"fecha"`
	RouteID     ID     `json:"ruta_id"`
	GroupID     ID     `json:"grupo_id"`
	ColorID     ID     `json:"color_id"`
	GuideID     ID     `json:"guia_id"`
	Pax         Number `json:"pax"`
	ArrivalTime string `json:"hora_llegada"`
}

// POST /api/inc-grupos
func (h *Handlers) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var body assignmentBody
	if err := decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	err := h.svc.Assignments.Create(r.Context(), services.AssignmentInput{
		Date:        body.Date,
		RouteID:     int64(body.RouteID),
		GroupID:     int64(body.GroupID),
		ColorID:     int64(body.ColorID),
		GuideID:     int64(body.GuideID),
		Pax:         int(body.Pax),
		ArrivalTime: body.ArrivalTime,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.log.Info("assignment created",
		zap.String("fecha", body.Date),
		zap.Int64("grupo_id", int64(body.GroupID)))
	w.WriteHeader(http.StatusCreated)
}

// GET /api/inc-grupos?desde=&hasta=&ruta_id=&grupo_id=&guia_id=&color_id=
func (h *Handlers) ListAssignments(w http.ResponseWriter, r *http.Request) {
	q := services.AssignmentQuery{
		From: r.URL.Query().Get("desde"),
		To:   r.URL.Query().Get("hasta"),
	}
	for _, p := range []struct {
		key string
		dst *int64
	}{
		{"ruta_id", &q.RouteID},
		{"grupo_id", &q.GroupID},
		{"guia_id", &q.GuideID},
		{"color_id", &q.ColorID},
	} {
		v, err := queryID(r, p.key)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		*p.dst = v
	}
	rows, err := h.svc.Assignments.List(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// GET /api/grupos-dia?fecha=
func (h *Handlers) GroupsOfDay(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Assignments.GroupsAssignedOn(r.Context(), r.URL.Query().Get("fecha"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// GET /api/grupos-disponibles, /api/rutas-disponibles ?fecha=
func (h *Handlers) Available(dim services.Dimension) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.svc.Assignments.Available(r.Context(), r.URL.Query().Get("fecha"), dim)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

// GET /api/inc-grupos/{id}/qr.png renders a badge the guide can scan on
// arrival.
func (h *Handlers) AssignmentQR(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	a, err := h.svc.Assignments.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	text := fmt.Sprintf("%s %s | Grupo: %s | Ruta: %s | Guía: %s | Color: %s | Pax: %d",
		a.Date, a.ArrivalTime, a.Group, a.Route, a.Guide, a.Color, a.Pax)
	png, err := qrcode.Encode(text, qrcode.Medium, 256)
	if err != nil {
		h.fail(w, r, fmt.Errorf("encode qr: %w", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

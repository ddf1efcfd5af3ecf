package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/lojf/registry/internal/services"
)

type incidentBatchBody struct {
	Date    string  `json:"fecha"`
	ShiftID LooseID `json:"turno_id"`
	GroupID LooseID `json:"grupo_id"`
	Lines   []struct {
		TypeID  LooseID `json:"categoria_id"`
		Comment string  `json:"comentario"`
	} `json:"incidencias"`
}

// POST /api/incidencias
func (h *Handlers) CreateIncidents(w http.ResponseWriter, r *http.Request) {
	var body incidentBatchBody
	if err := decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	batch := services.IncidentBatch{
		Date:    body.Date,
		ShiftID: int64(body.ShiftID),
		GroupID: int64(body.GroupID),
		Lines:   make([]services.IncidentLine, 0, len(body.Lines)),
	}
	for _, l := range body.Lines {
		batch.Lines = append(batch.Lines, services.IncidentLine{TypeID: int64(l.TypeID), Comment: l.Comment})
	}

	n, err := h.svc.Incidents.Record(r.Context(), batch)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.log.Info("incidents recorded",
		zap.Int64("grupo_id", batch.GroupID),
		zap.Int("received", len(batch.Lines)),
		zap.Int("inserted", n))
	writeJSON(w, http.StatusCreated, map[string]int{"insertadas": n})
}

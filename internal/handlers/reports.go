package handlers

import (
	"fmt"
	"net/http"

	"github.com/lojf/registry/internal/export"
	"github.com/lojf/registry/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handlers) incidentReport(r *http.Request) ([]services.IncidentReportRow, error) {
	groupID, err := queryID(r, "grupo_id")
	if err != nil {
		return nil, err
	}
	typeID, err := queryID(r, "categoria_id")
	if err != nil {
		return nil, err
	}
	return h.svc.Reports.Incidents(r.Context(), services.IncidentReportQuery{
		From:    r.URL.Query().Get("desde"),
		To:      r.URL.Query().Get("hasta"),
		Shift:   r.URL.Query().Get("turno"),
		GroupID: groupID,
		TypeID:  typeID,
	})
}

// GET /api/incidencias-reporte?desde=&hasta=&turno=&grupo_id=&categoria_id=
func (h *Handlers) IncidentReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.incidentReport(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// GET /api/incidencias-reporte.csv
func (h *Handlers) IncidentReportCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := h.incidentReport(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="incidencias.csv"`)
	if err := export.WriteCSV(w, services.IncidentReportTable(rows)); err != nil {
		h.fail(w, r, fmt.Errorf("write csv: %w", err))
	}
}

// GET /api/incidencias-reporte.xlsx
func (h *Handlers) IncidentReportXLSX(w http.ResponseWriter, r *http.Request) {
	rows, err := h.incidentReport(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.sendXLSX(w, r, "incidencias.xlsx", services.IncidentReportTable(rows))
}

func (h *Handlers) sendXLSX(w http.ResponseWriter, r *http.Request, filename string, t export.Table) {
	data, err := export.XLSX(t)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

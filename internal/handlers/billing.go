package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/lojf/registry/internal/services"
)

type billingBody struct {
	Date          string  `json:"fecha"`
	Patient       string  `json:"paciente"`
	ProcedureID   *ID     `json:"procedimiento"`
	Difference    *Number `json:"diferencia"`
	Private       *Number `json:"privado"`
	Value         *Number `json:"valor"`
	AmountDue     *Number `json:"a_pagar"`
	Percent       *Number `json:"porciento"`
	PercentAmount *Number `json:"monto_pct"`
	DoctorID      *ID     `json:"doctor"`
}

func (h *Handlers) billingQuery(r *http.Request) (services.BillingQuery, error) {
	doctor, err := queryID(r, "doctor")
	if err != nil {
		return services.BillingQuery{}, err
	}
	return services.BillingQuery{
		From:        r.URL.Query().Get("desde"),
		To:          r.URL.Query().Get("hasta"),
		DoctorID:    doctor,
		PrivateOnly: strings.TrimSpace(r.URL.Query().Get("privado")) == "1",
	}, nil
}

// GET /api/registros?desde=&hasta=&doctor=&privado=1
func (h *Handlers) ListBilling(w http.ResponseWriter, r *http.Request) {
	q, err := h.billingQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rows, err := h.svc.Billing.List(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// GET /api/registros.xlsx
func (h *Handlers) BillingXLSX(w http.ResponseWriter, r *http.Request) {
	q, err := h.billingQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rows, err := h.svc.Billing.List(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.sendXLSX(w, r, "registros.xlsx", services.BillingTable(rows))
}

// POST /api/registros
func (h *Handlers) CreateBilling(w http.ResponseWriter, r *http.Request) {
	var body billingBody
	if err := decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	id, err := h.svc.Billing.Create(r.Context(), services.BillingInput{
		Date:          body.Date,
		Patient:       body.Patient,
		ProcedureID:   body.ProcedureID.int64(),
		Difference:    body.Difference.float(),
		Private:       body.Private.float(),
		Value:         body.Value.float(),
		AmountDue:     body.AmountDue.float(),
		Percent:       body.Percent.float(),
		PercentAmount: body.PercentAmount.float(),
		DoctorID:      body.DoctorID.int64(),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.log.Info("billing record created", zap.Int64("id", id))
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

type nameBody struct {
	Name string `json:"nombre"`
}

// GET /api/doctores
func (h *Handlers) ListDoctors(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Billing.Doctors(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// POST /api/doctores
func (h *Handlers) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var body nameBody
	if err := decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := h.svc.Billing.CreateDoctor(r.Context(), body.Name); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/procedimientos
func (h *Handlers) ListProcedures(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Billing.Procedures(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// POST /api/procedimientos
func (h *Handlers) CreateProcedure(w http.ResponseWriter, r *http.Request) {
	var body nameBody
	if err := decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := h.svc.Billing.CreateProcedure(r.Context(), body.Name); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/lojf/registry/internal/models"
)

// BillingInput is a new billing record. Pointer fields are required and nil
// means the caller omitted them.
type BillingInput struct {
	Date          string
	Patient       string
	ProcedureID   *int64
	Difference    *float64
	Private       *float64
	Value         *float64
	AmountDue     *float64
	Percent       *float64
	PercentAmount *float64
	DoctorID      *int64
}

// BillingQuery filters the billing listing.
type BillingQuery struct {
	From        string
	To          string
	DoctorID    int64
	PrivateOnly bool
}

// BillingRow is a billing record with procedure and doctor names.
type BillingRow struct {
	ID            int64   `json:"id"`
	Date          string  `json:"fecha"`
	Patient       string  `json:"paciente"`
	Procedure     string  `json:"procedimiento"`
	Difference    float64 `json:"diferencia"`
	Private       float64 `json:"privado"`
	Value         float64 `json:"valor"`
	AmountDue     float64 `json:"a_pagar"`
	Percent       float64 `json:"porciento"`
	PercentAmount float64 `json:"monto_pct"`
	Doctor        string  `json:"doctor"`
}

// BillingLedger stores billing records and their doctor/procedure catalogs.
type BillingLedger struct {
	db  *gorm.DB
	now Clock
}

func NewBillingLedger(db *gorm.DB, now Clock) *BillingLedger {
	return &BillingLedger{db: db, now: now}
}

func (l *BillingLedger) Create(ctx context.Context, in BillingInput) (int64, error) {
	required := []struct {
		field string
		ok    bool
	}{
		{"fecha", strings.TrimSpace(in.Date) != ""},
		{"paciente", strings.TrimSpace(in.Patient) != ""},
		{"procedimiento", in.ProcedureID != nil},
		{"diferencia", in.Difference != nil},
		{"privado", in.Private != nil},
		{"valor", in.Value != nil},
		{"a_pagar", in.AmountDue != nil},
		{"porciento", in.Percent != nil},
		{"monto_pct", in.PercentAmount != nil},
		{"doctor", in.DoctorID != nil},
	}
	for _, r := range required {
		if !r.ok {
			return 0, missing(r.field)
		}
	}
	date, err := parseDay("fecha", in.Date)
	if err != nil {
		return 0, err
	}

	row := models.BillingRecord{
		Date:          date,
		Patient:       strings.TrimSpace(in.Patient),
		ProcedureID:   *in.ProcedureID,
		Difference:    *in.Difference,
		Private:       *in.Private,
		Value:         *in.Value,
		AmountDue:     *in.AmountDue,
		Percent:       *in.Percent,
		PercentAmount: *in.PercentAmount,
		DoctorID:      *in.DoctorID,
	}
	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := Check(tx,
			Reference{Field: "procedimiento", Table: "procedimientos", ID: row.ProcedureID},
			Reference{Field: "doctor", Table: "doctores", ID: row.DoctorID},
		); err != nil {
			return err
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("insert billing record: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return row.ID, nil
}

// List returns billing records in date order. Without bounds it covers today.
func (l *BillingLedger) List(ctx context.Context, q BillingQuery) ([]BillingRow, error) {
	dates, err := reportRange(q.From, q.To, l.now.Today())
	if err != nil {
		return nil, err
	}
	query := Apply(l.db.WithContext(ctx).Table("registros AS r").
		Select(`r.id, r.fecha AS date, r.paciente AS patient,
		        p.nombre AS procedure,
		        r.diferencia AS difference, r.privado AS private, r.valor AS value,
		        r.a_pagar AS amount_due, r.porciento AS percent, r.monto_pct AS percent_amount,
		        d.nombre AS doctor`).
		Joins("JOIN procedimientos p ON p.id = r.procedimiento").
		Joins("JOIN doctores d ON d.id = r.doctor"),
		When(true, "r.fecha BETWEEN ? AND ?", dates.From, dates.To),
		When(q.DoctorID != 0, "r.doctor = ?", q.DoctorID),
		When(q.PrivateOnly, "r.privado > 0"),
	)

	out := []BillingRow{}
	if err := query.Order("r.fecha ASC, r.id ASC").Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("list billing: %w", err)
	}
	return out, nil
}

func (l *BillingLedger) Doctors(ctx context.Context) ([]models.Doctor, error) {
	out := []models.Doctor{}
	if err := l.db.WithContext(ctx).Order("nombre, id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return out, nil
}

func (l *BillingLedger) CreateDoctor(ctx context.Context, name string) (models.Doctor, error) {
	row := models.Doctor{Name: strings.TrimSpace(name)}
	if row.Name == "" {
		return row, missing("nombre")
	}
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return row, fmt.Errorf("create doctor: %w", err)
	}
	return row, nil
}

func (l *BillingLedger) Procedures(ctx context.Context) ([]models.Procedure, error) {
	out := []models.Procedure{}
	if err := l.db.WithContext(ctx).Order("nombre, id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list procedures: %w", err)
	}
	return out, nil
}

func (l *BillingLedger) CreateProcedure(ctx context.Context, name string) (models.Procedure, error) {
	row := models.Procedure{Name: strings.TrimSpace(name)}
	if row.Name == "" {
		return row, missing("nombre")
	}
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return row, fmt.Errorf("create procedure: %w", err)
	}
	return row, nil
}

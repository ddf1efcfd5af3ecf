package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func billingFixture(t *testing.T, s *Services) (doctors, procedures []int64) {
	t.Helper()
	ctx := context.Background()
	for _, name := range []string{"Dra. Pérez", "Dr. Gómez"} {
		d, err := s.Billing.CreateDoctor(ctx, name)
		require.NoError(t, err)
		doctors = append(doctors, d.ID)
	}
	for _, name := range []string{"Endoscopia", "Colonoscopia"} {
		p, err := s.Billing.CreateProcedure(ctx, name)
		require.NoError(t, err)
		procedures = append(procedures, p.ID)
	}
	return doctors, procedures
}

func billingInput(date string, doctor, procedure int64, private float64) BillingInput {
	return BillingInput{
		Date:          date,
		Patient:       "Paciente",
		ProcedureID:   ptr(procedure),
		Difference:    ptr(10.0),
		Private:       ptr(private),
		Value:         ptr(100.0),
		AmountDue:     ptr(90.0),
		Percent:       ptr(30.0),
		PercentAmount: ptr(27.0),
		DoctorID:      ptr(doctor),
	}
}

func TestBillingCreate_RequiresEveryField(t *testing.T) {
	s, _ := newTestServices(t)
	doctors, procedures := billingFixture(t, s)
	ctx := context.Background()

	mutations := map[string]func(*BillingInput){
		"fecha":         func(in *BillingInput) { in.Date = "" },
		"paciente":      func(in *BillingInput) { in.Patient = " " },
		"procedimiento": func(in *BillingInput) { in.ProcedureID = nil },
		"diferencia":    func(in *BillingInput) { in.Difference = nil },
		"privado":       func(in *BillingInput) { in.Private = nil },
		"valor":         func(in *BillingInput) { in.Value = nil },
		"a_pagar":       func(in *BillingInput) { in.AmountDue = nil },
		"porciento":     func(in *BillingInput) { in.Percent = nil },
		"monto_pct":     func(in *BillingInput) { in.PercentAmount = nil },
		"doctor":        func(in *BillingInput) { in.DoctorID = nil },
	}
	for field, mutate := range mutations {
		in := billingInput(testToday, doctors[0], procedures[0], 0)
		mutate(&in)
		_, err := s.Billing.Create(ctx, in)
		require.ErrorIs(t, err, ErrMissingField, field)
	}

	_, err := s.Billing.Create(ctx, billingInput(testToday, 999, procedures[0], 0))
	require.ErrorIs(t, err, ErrInvalidReference)
	_, err = s.Billing.Create(ctx, billingInput(testToday, doctors[0], 999, 0))
	require.ErrorIs(t, err, ErrInvalidReference)
}

func TestBillingList(t *testing.T) {
	s, _ := newTestServices(t)
	doctors, procedures := billingFixture(t, s)
	ctx := context.Background()

	for _, in := range []BillingInput{
		billingInput(testToday, doctors[0], procedures[0], 0),
		billingInput(testToday, doctors[1], procedures[1], 50),
		billingInput("2024-01-10", doctors[0], procedures[1], 20),
		billingInput("2024-02-10", doctors[0], procedures[1], 20),
	} {
		_, err := s.Billing.Create(ctx, in)
		require.NoError(t, err)
	}

	rows, err := s.Billing.List(ctx, BillingQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Dra. Pérez", rows[0].Doctor)
	assert.Equal(t, "Endoscopia", rows[0].Procedure)
	assert.Equal(t, 27.0, rows[0].PercentAmount)

	rows, err = s.Billing.List(ctx, BillingQuery{From: "2024-01-01", To: "2024-01-31", DoctorID: doctors[0]})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-10", rows[0].Date)

	rows, err = s.Billing.List(ctx, BillingQuery{From: "2024-01-01", To: "2024-01-31", PrivateOnly: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Greater(t, r.Private, 0.0)
	}
}

func TestBillingCatalogs(t *testing.T) {
	s, _ := newTestServices(t)
	ctx := context.Background()
	billingFixture(t, s)

	_, err := s.Billing.CreateDoctor(ctx, "  ")
	require.ErrorIs(t, err, ErrMissingField)
	_, err = s.Billing.CreateProcedure(ctx, "")
	require.ErrorIs(t, err, ErrMissingField)

	docs, err := s.Billing.Doctors(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Dr. Gómez", docs[0].Name)

	procs, err := s.Billing.Procedures(ctx)
	require.NoError(t, err)
	require.Len(t, procs, 2)
	assert.Equal(t, "Colonoscopia", procs[0].Name)
}

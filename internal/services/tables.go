package services

import "github.com/lojf/registry/internal/export"

func IncidentReportTable(rows []IncidentReportRow) export.Table {
	t := export.Table{
		Name:    "Incidencias",
		Headers: []string{"Fecha", "Turno", "Grupo", "Ruta", "Guía", "Color", "Categoría", "Comentario"},
		Widths:  []float64{12, 14, 20, 20, 20, 12, 20, 50},
		Rows:    make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.Date, r.Shift, r.Group, r.Route, r.Guide, r.Color, r.Category, r.Comment})
	}
	return t
}

func BillingTable(rows []BillingRow) export.Table {
	t := export.Table{
		Name: "Registros",
		Headers: []string{"Fecha", "Paciente", "Procedimiento", "Diferencia", "Privado",
			"Valor", "A pagar", "Porciento", "Monto %", "Doctor"},
		Widths: []float64{12, 30, 25, 12, 12, 12, 12, 10, 12, 25},
		Rows:   make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.Date, r.Patient, r.Procedure, r.Difference, r.Private,
			r.Value, r.AmountDue, r.Percent, r.PercentAmount, r.Doctor})
	}
	return t
}

package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// IncidentReportQuery filters the incident report. Shift matches the stored
// shift text, not a shift id.
type IncidentReportQuery struct {
	From    string
	To      string
	Shift   string
	GroupID int64
	TypeID  int64
}

// IncidentReportRow is one incident with its display text. Route, guide and
// color come from the same-day assignment of the group and are empty when
// there is none.
type IncidentReportRow struct {
	ID       int64  `json:"id"`
	Date     string `json:"fecha"`
	Shift    string `json:"turno"`
	Group    string `json:"grupo"`
	Route    string `json:"ruta"`
	Guide    string `json:"guia"`
	Color    string `json:"color"`
	Category string `json:"categoria"`
	Comment  string `json:"comentario"`
}

// ReportBuilder runs the filtered incident report.
type ReportBuilder struct {
	db  *gorm.DB
	now Clock
}

func NewReportBuilder(db *gorm.DB, now Clock) *ReportBuilder {
	return &ReportBuilder{db: db, now: now}
}

// Incidents returns the report ordered by date then id. Without bounds it
// covers today only.
func (b *ReportBuilder) Incidents(ctx context.Context, q IncidentReportQuery) ([]IncidentReportRow, error) {
	dates, err := reportRange(q.From, q.To, b.now.Today())
	if err != nil {
		return nil, err
	}
	shift := strings.TrimSpace(q.Shift)

	base := b.db.WithContext(ctx).Table("incidencias AS i").
		Select(`i.id, i.fecha AS date, i.turno AS shift,
		        g.descripcion AS "group",
		        COALESCE(r.descripcion, '')  AS route,
		        COALESCE(gu.descripcion, '') AS guide,
		        COALESCE(c.descripcion, '')  AS color,
		        it.descripcion AS category,
		        i.comentario AS comment`).
		Joins("JOIN grupos g ON g.id = i.grupo_id").
		Joins("LEFT JOIN inc_grupos ig ON ig.fecha = i.fecha AND ig.grupo_id = i.grupo_id").
		Joins("LEFT JOIN rutas r ON r.id = ig.ruta_id").
		Joins("LEFT JOIN guias gu ON gu.id = ig.guia_id").
		Joins("LEFT JOIN colores c ON c.id = ig.color_id").
		Joins("JOIN inc_tipos it ON it.id = i.inc_tipo_id")

	query := Apply(base,
		When(true, "i.fecha BETWEEN ? AND ?", dates.From, dates.To),
		When(shift != "", "i.turno = ?", shift),
		When(q.GroupID != 0, "i.grupo_id = ?", q.GroupID),
		When(q.TypeID != 0, "i.inc_tipo_id = ?", q.TypeID),
	)

	out := []IncidentReportRow{}
	if err := query.Order("i.fecha ASC, i.id ASC").Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("incident report: %w", err)
	}
	return out, nil
}

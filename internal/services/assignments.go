package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/lojf/registry/internal/models"
)

// AssignmentInput is a new group arrival. Zero ids count as absent.
type AssignmentInput struct {
	Date        string
	RouteID     int64
	GroupID     int64
	ColorID     int64
	GuideID     int64
	Pax         int
	ArrivalTime string
}

// AssignmentQuery filters the assignment listing. Zero ids impose no constraint.
type AssignmentQuery struct {
	From    string
	To      string
	RouteID int64
	GroupID int64
	GuideID int64
	ColorID int64
}

// AssignmentRow is the denormalized read model.
type AssignmentRow struct {
	ID          int64  `json:"id"`
	Date        string `json:"fecha"`
	Pax         int    `json:"pax"`
	ArrivalTime string `json:"hora_llegada"`
	Route       string `json:"ruta"`
	Group       string `json:"grupo"`
	Color       string `json:"color"`
	Guide       string `json:"guia"`
}

// CatalogRef is an id/description pair used by pickers.
type CatalogRef struct {
	ID          int64  `json:"id"`
	Description string `json:"descripcion"`
}

// Dimension selects which catalog an availability query runs over.
type Dimension string

const (
	DimensionGroup Dimension = "group"
	DimensionRoute Dimension = "route"
)

func (d Dimension) table() (table, column string, ok bool) {
	switch d {
	case DimensionGroup:
		return "grupos", "grupo_id", true
	case DimensionRoute:
		return "rutas", "ruta_id", true
	}
	return "", "", false
}

// AssignmentLedger records daily group arrivals.
type AssignmentLedger struct {
	db  *gorm.DB
	now Clock
}

func NewAssignmentLedger(db *gorm.DB, now Clock) *AssignmentLedger {
	return &AssignmentLedger{db: db, now: now}
}

// Create validates and inserts one assignment. Several assignments for the
// same group and date are allowed.
func (l *AssignmentLedger) Create(ctx context.Context, in AssignmentInput) error {
	in.ArrivalTime = strings.TrimSpace(in.ArrivalTime)
	switch {
	case strings.TrimSpace(in.Date) == "":
		return missing("fecha")
	case in.RouteID == 0:
		return missing("ruta_id")
	case in.GroupID == 0:
		return missing("grupo_id")
	case in.ColorID == 0:
		return missing("color_id")
	case in.GuideID == 0:
		return missing("guia_id")
	case in.ArrivalTime == "":
		return missing("hora_llegada")
	}
	date, err := parseDay("fecha", in.Date)
	if err != nil {
		return err
	}
	if in.Pax < 0 {
		return invalid("pax")
	}

	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := Check(tx,
			Reference{Field: "ruta_id", Table: "rutas", ID: in.RouteID},
			Reference{Field: "grupo_id", Table: "grupos", ID: in.GroupID},
			Reference{Field: "color_id", Table: "colores", ID: in.ColorID},
			Reference{Field: "guia_id", Table: "guias", ID: in.GuideID},
		); err != nil {
			return err
		}
		row := models.Assignment{
			Date:        date,
			RouteID:     in.RouteID,
			GroupID:     in.GroupID,
			ColorID:     in.ColorID,
			GuideID:     in.GuideID,
			Pax:         in.Pax,
			ArrivalTime: in.ArrivalTime,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("insert assignment: %w", err)
		}
		return nil
	})
}

func (l *AssignmentLedger) rows(ctx context.Context) *gorm.DB {
	return l.db.WithContext(ctx).Table("inc_grupos AS ig").
		Select(`ig.id, ig.fecha AS date, ig.pax, ig.hora_llegada AS arrival_time,
		        r.descripcion AS route, g.descripcion AS "group",
		        c.descripcion AS color, u.descripcion AS guide`).
		Joins("JOIN rutas   r ON r.id = ig.ruta_id").
		Joins("JOIN grupos  g ON g.id = ig.grupo_id").
		Joins("JOIN colores c ON c.id = ig.color_id").
		Joins("JOIN guias   u ON u.id = ig.guia_id")
}

// List returns assignments matching q, newest first.
func (l *AssignmentLedger) List(ctx context.Context, q AssignmentQuery) ([]AssignmentRow, error) {
	dates, err := listingRange(q.From, q.To, l.now.Today())
	if err != nil {
		return nil, err
	}

	filters := append(rangeFilters("ig.fecha", dates),
		When(q.RouteID != 0, "ig.ruta_id = ?", q.RouteID),
		When(q.GroupID != 0, "ig.grupo_id = ?", q.GroupID),
		When(q.GuideID != 0, "ig.guia_id = ?", q.GuideID),
		When(q.ColorID != 0, "ig.color_id = ?", q.ColorID),
	)

	out := []AssignmentRow{}
	if err := Apply(l.rows(ctx), filters...).
		Order("ig.fecha DESC, ig.id DESC").
		Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return out, nil
}

// Get returns one denormalized assignment.
func (l *AssignmentLedger) Get(ctx context.Context, id int64) (AssignmentRow, error) {
	var out []AssignmentRow
	if err := l.rows(ctx).Where("ig.id = ?", id).Scan(&out).Error; err != nil {
		return AssignmentRow{}, fmt.Errorf("get assignment %d: %w", id, err)
	}
	if len(out) == 0 {
		return AssignmentRow{}, &FieldError{Err: ErrNotFound, Field: "inc_grupo"}
	}
	return out[0], nil
}

// GroupsAssignedOn lists the distinct groups with an assignment on date.
// Blank date means today.
func (l *AssignmentLedger) GroupsAssignedOn(ctx context.Context, date string) ([]CatalogRef, error) {
	day, err := l.day(date)
	if err != nil {
		return nil, err
	}
	out := []CatalogRef{}
	if err := l.db.WithContext(ctx).Table("inc_grupos AS ig").
		Select("g.id, g.descripcion AS description").
		Joins("JOIN grupos g ON g.id = ig.grupo_id").
		Where("ig.fecha = ?", day).
		Group("g.id, g.descripcion").
		Order("g.descripcion, g.id").
		Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("groups on %s: %w", day, err)
	}
	return out, nil
}

// Available returns every row of the dimension's catalog not assigned on
// date: all rows minus the assigned ones.
func (l *AssignmentLedger) Available(ctx context.Context, date string, dim Dimension) ([]CatalogRef, error) {
	table, column, ok := dim.table()
	if !ok {
		return nil, errors.New("unknown dimension " + string(dim))
	}
	day, err := l.day(date)
	if err != nil {
		return nil, err
	}

	db := l.db.WithContext(ctx)
	assigned := db.Table("inc_grupos").Select(column).Where("fecha = ?", day)

	out := []CatalogRef{}
	if err := db.Table(table).
		Select("id, descripcion AS description").
		Where("id NOT IN (?)", assigned).
		Order("descripcion, id").
		Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("available %s on %s: %w", table, day, err)
	}
	return out, nil
}

func (l *AssignmentLedger) day(date string) (string, error) {
	day, err := parseDay("fecha", date)
	if err != nil {
		return "", err
	}
	if day == "" {
		day = l.now.Today()
	}
	return day, nil
}

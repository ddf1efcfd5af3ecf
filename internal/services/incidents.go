package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/lojf/registry/internal/models"
)

// IncidentLine is one detail of a batch. A zero TypeID counts as blank.
type IncidentLine struct {
	TypeID  int64
	Comment string
}

// IncidentBatch groups the lines reported for one (date, shift, group).
type IncidentBatch struct {
	Date    string
	ShiftID int64
	GroupID int64
	Lines   []IncidentLine
}

// IncidentRecorder persists incident batches.
type IncidentRecorder struct {
	db  *gorm.DB
	now Clock
}

func NewIncidentRecorder(db *gorm.DB, now Clock) *IncidentRecorder {
	return &IncidentRecorder{db: db, now: now}
}

// Record inserts every valid line of b and returns how many were inserted.
// Lines with a blank type, blank comment or unknown type are skipped
// silently; a batch with no surviving line fails with ErrNoValidLines.
// The shift's current description is stored on each row.
func (r *IncidentRecorder) Record(ctx context.Context, b IncidentBatch) (int, error) {
	switch {
	case b.ShiftID == 0:
		return 0, missing("turno_id")
	case b.GroupID == 0:
		return 0, missing("grupo_id")
	case len(b.Lines) == 0:
		return 0, missing("incidencias")
	}
	date, err := parseDay("fecha", b.Date)
	if err != nil {
		return 0, err
	}
	if date == "" {
		date = r.now.Today()
	}

	inserted := 0
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := Check(tx,
			Reference{Field: "turno_id", Table: KindShift.Table, ID: b.ShiftID, RequireActive: true},
			Reference{Field: "grupo_id", Table: KindGroup.Table, ID: b.GroupID},
		); err != nil {
			return err
		}
		var shift models.Shift
		if err := tx.Where("id = ?", b.ShiftID).Take(&shift).Error; err != nil {
			return fmt.Errorf("load shift %d: %w", b.ShiftID, err)
		}

		for _, line := range b.Lines {
			comment := strings.TrimSpace(line.Comment)
			if line.TypeID == 0 || comment == "" {
				continue
			}
			ok, err := exists(tx, Reference{Table: "inc_tipos", ID: line.TypeID})
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			row := models.Incident{
				Date:           date,
				Shift:          shift.Description,
				GroupID:        b.GroupID,
				IncidentTypeID: line.TypeID,
				Comment:        comment,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert incident: %w", err)
			}
			inserted++
		}
		if inserted == 0 {
			return ErrNoValidLines
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

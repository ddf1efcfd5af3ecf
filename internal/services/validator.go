package services

import (
	"fmt"

	"gorm.io/gorm"
)

// Reference is one foreign key a write depends on.
type Reference struct {
	Field         string
	Table         string
	ID            int64
	RequireActive bool
}

// Check confirms that every reference resolves, in order, inside tx. The
// first failure is returned as a FieldError wrapping ErrInvalidReference, or
// ErrInvalidShift for a shift that must be active.
func Check(tx *gorm.DB, refs ...Reference) error {
	for _, ref := range refs {
		ok, err := exists(tx, ref)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if ref.RequireActive && ref.Table == KindShift.Table {
			return &FieldError{Err: ErrInvalidShift, Field: ref.Field}
		}
		return &FieldError{Err: ErrInvalidReference, Field: ref.Field}
	}
	return nil
}

func exists(tx *gorm.DB, ref Reference) (bool, error) {
	var n int64
	q := tx.Table(ref.Table).Where("id = ?", ref.ID)
	if ref.RequireActive {
		q = q.Where("activo = ?", true)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("lookup %s %d: %w", ref.Table, ref.ID, err)
	}
	return n > 0, nil
}

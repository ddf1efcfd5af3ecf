package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/lojf/registry/internal/models"
)

// CatalogKind describes one catalog table.
type CatalogKind struct {
	Name    string
	Table   string
	OrderBy string
}

var (
	KindRoute        = CatalogKind{Name: "ruta", Table: "rutas", OrderBy: "descripcion, id"}
	KindGroup        = CatalogKind{Name: "grupo", Table: "grupos", OrderBy: "descripcion, id"}
	KindGuide        = CatalogKind{Name: "guia", Table: "guias", OrderBy: "descripcion, id"}
	KindColor        = CatalogKind{Name: "color", Table: "colores", OrderBy: "descripcion, id"}
	KindShift        = CatalogKind{Name: "turno", Table: "turnos", OrderBy: "id"}
	KindIncidentType = CatalogKind{Name: "categoria", Table: "inc_tipos", OrderBy: "descripcion, id"}
)

// Kinds lists every catalog.
func Kinds() []CatalogKind {
	return []CatalogKind{KindRoute, KindGroup, KindGuide, KindColor, KindShift, KindIncidentType}
}

// CatalogStore is list/create/update over the toggleable catalogs.
type CatalogStore struct {
	db *gorm.DB
}

func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// List returns the catalog in its display order. activeOnly hides
// soft-disabled rows.
func (s *CatalogStore) List(ctx context.Context, kind CatalogKind, activeOnly bool) ([]models.Catalog, error) {
	q := s.db.WithContext(ctx).Table(kind.Table)
	q = Apply(q, When(activeOnly, "activo = ?", true))

	rows := []models.Catalog{}
	if err := q.Order(kind.OrderBy).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", kind.Table, err)
	}
	return rows, nil
}

// Create inserts an active entry.
func (s *CatalogStore) Create(ctx context.Context, kind CatalogKind, description string) (models.Catalog, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return models.Catalog{}, missing("descripcion")
	}
	row := models.Catalog{Description: description, Active: true}
	if err := s.db.WithContext(ctx).Table(kind.Table).Create(&row).Error; err != nil {
		return models.Catalog{}, fmt.Errorf("create %s: %w", kind.Table, err)
	}
	return row, nil
}

// Update rewrites description and active. active is read with ParseActive.
func (s *CatalogStore) Update(ctx context.Context, kind CatalogKind, id int64, description string, active any) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return missing("descripcion")
	}
	res := s.db.WithContext(ctx).Table(kind.Table).
		Where("id = ?", id).
		Updates(map[string]any{"descripcion": description, "activo": ParseActive(active)})
	if res.Error != nil {
		return fmt.Errorf("update %s %d: %w", kind.Table, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return &FieldError{Err: ErrNotFound, Field: kind.Name}
	}
	return nil
}

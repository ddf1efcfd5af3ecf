package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lojf/registry/internal/db"
)

const testToday = "2024-01-15"

func fixedClock(day string) Clock {
	t, err := time.Parse(dayLayout, day)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t.Add(10 * time.Hour) }
}

// openTestDB returns an isolated sqlite file in a temp directory.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func newTestServices(t *testing.T) (*Services, *gorm.DB) {
	t.Helper()
	gdb := openTestDB(t)
	return New(gdb, fixedClock(testToday)), gdb
}

// seed creates catalog entries and returns their ids in order.
func seed(t *testing.T, s *Services, kind CatalogKind, descriptions ...string) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(descriptions))
	for _, d := range descriptions {
		row, err := s.Catalogs.Create(context.Background(), kind, d)
		require.NoError(t, err)
		ids = append(ids, row.ID)
	}
	return ids
}

type fixture struct {
	routes, groups, guides, colors, shifts, types []int64
}

func seedAll(t *testing.T, s *Services) fixture {
	t.Helper()
	return fixture{
		routes: seed(t, s, KindRoute, "Norte", "Sur", "Centro"),
		groups: seed(t, s, KindGroup, "Grupo A", "Grupo B", "Grupo C", "Grupo D"),
		guides: seed(t, s, KindGuide, "Ana", "Luis"),
		colors: seed(t, s, KindColor, "Rojo", "Azul"),
		shifts: seed(t, s, KindShift, "Turno 1", "Turno 2"),
		types:  seed(t, s, KindIncidentType, "Retraso", "Queja"),
	}
}

func (f fixture) assignment(date string, route, group int) AssignmentInput {
	return AssignmentInput{
		Date:        date,
		RouteID:     f.routes[route],
		GroupID:     f.groups[group],
		ColorID:     f.colors[0],
		GuideID:     f.guides[0],
		Pax:         12,
		ArrivalTime: "09:30",
	}
}

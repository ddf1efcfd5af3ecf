package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCheck_ReportsFirstMissing(t *testing.T) {
	s, gdb := newTestServices(t)
	f := seedAll(t, s)

	err := Check(gdb,
		Reference{Field: "ruta_id", Table: "rutas", ID: f.routes[0]},
		Reference{Field: "grupo_id", Table: "grupos", ID: 999},
		Reference{Field: "guia_id", Table: "guias", ID: 998},
	)
	require.ErrorIs(t, err, ErrInvalidReference)
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "grupo_id", fe.Field)

	require.NoError(t, Check(gdb))
}

func TestCheck_ActiveShift(t *testing.T) {
	s, gdb := newTestServices(t)
	ctx := context.Background()
	f := seedAll(t, s)
	require.NoError(t, s.Catalogs.Update(ctx, KindShift, f.shifts[0], "Turno 1", "0"))

	// existence is enough by default
	require.NoError(t, Check(gdb, Reference{Field: "turno_id", Table: "turnos", ID: f.shifts[0]}))

	err := Check(gdb, Reference{Field: "turno_id", Table: "turnos", ID: f.shifts[0], RequireActive: true})
	require.ErrorIs(t, err, ErrInvalidShift)
	assert.NotErrorIs(t, err, ErrInvalidReference)

	err = Check(gdb, Reference{Field: "turno_id", Table: "turnos", ID: 404, RequireActive: true})
	require.ErrorIs(t, err, ErrInvalidShift)

	require.NoError(t, Check(gdb, Reference{Field: "turno_id", Table: "turnos", ID: f.shifts[1], RequireActive: true}))
}

func TestCheck_InsideTransaction(t *testing.T) {
	s, gdb := newTestServices(t)
	f := seedAll(t, s)

	err := gdb.Transaction(func(tx *gorm.DB) error {
		return Check(tx,
			Reference{Field: "turno_id", Table: "turnos", ID: f.shifts[0], RequireActive: true},
			Reference{Field: "color_id", Table: "colores", ID: 77},
		)
	})
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "color_id", fe.Field)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCreate_BlankFails(t *testing.T) {
	s, _ := newTestServices(t)
	ctx := context.Background()

	for _, kind := range Kinds() {
		for _, blank := range []string{"", "   ", "\t\n"} {
			_, err := s.Catalogs.Create(ctx, kind, blank)
			require.ErrorIs(t, err, ErrMissingField, kind.Table)
		}
		rows, err := s.Catalogs.List(ctx, kind, false)
		require.NoError(t, err)
		assert.Empty(t, rows, kind.Table)
	}
}

func TestCatalogCreate_ListedByDescription(t *testing.T) {
	s, _ := newTestServices(t)
	ctx := context.Background()

	seed(t, s, KindRoute, "Sur", "  Norte  ", "Centro", "Norte")

	rows, err := s.Catalogs.List(ctx, KindRoute, false)
	require.NoError(t, err)
	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.Description
		assert.True(t, r.Active)
	}
	// duplicates are allowed and description is stored trimmed
	assert.Equal(t, []string{"Centro", "Norte", "Norte", "Sur"}, got)
}

func TestCatalogList_ShiftsByID(t *testing.T) {
	s, _ := newTestServices(t)
	ids := seed(t, s, KindShift, "Turno 2", "Turno 1", "Noche")

	rows, err := s.Catalogs.List(context.Background(), KindShift, false)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, r := range rows {
		assert.Equal(t, ids[i], r.ID)
	}
}

func TestCatalogUpdate_RoundTripsActive(t *testing.T) {
	s, _ := newTestServices(t)
	ctx := context.Background()
	id := seed(t, s, KindGroup, "Grupo A")[0]

	cases := []struct {
		in   any
		want bool
	}{
		{"TRUE", true}, {"1", true}, {"yes", true}, {true, true}, {float64(1), true},
		{"0", false}, {"no", false}, {nil, false}, {false, false},
	}
	for _, c := range cases {
		require.NoError(t, s.Catalogs.Update(ctx, KindGroup, id, "Grupo A", c.in))
		rows, err := s.Catalogs.List(ctx, KindGroup, false)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, c.want, rows[0].Active, "%#v", c.in)
	}
}

func TestCatalogUpdate_Errors(t *testing.T) {
	s, _ := newTestServices(t)
	ctx := context.Background()
	id := seed(t, s, KindColor, "Rojo")[0]

	err := s.Catalogs.Update(ctx, KindColor, id, "  ", "1")
	require.ErrorIs(t, err, ErrMissingField)

	err = s.Catalogs.Update(ctx, KindColor, id+100, "Verde", "1")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Catalogs.Update(ctx, KindColor, id, " Verde ", "1"))
	rows, err := s.Catalogs.List(ctx, KindColor, false)
	require.NoError(t, err)
	assert.Equal(t, "Verde", rows[0].Description)
}

func TestCatalogList_ActiveOnly(t *testing.T) {
	s, _ := newTestServices(t)
	ctx := context.Background()
	ids := seed(t, s, KindGuide, "Ana", "Luis")
	require.NoError(t, s.Catalogs.Update(ctx, KindGuide, ids[0], "Ana", "0"))

	all, err := s.Catalogs.List(ctx, KindGuide, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := s.Catalogs.List(ctx, KindGuide, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Luis", active[0].Description)
}

package catalog_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/catalogo/internal/catalog"
	"github.com/dropDatabas3/catalogo/internal/kv/memory"
)

func seed(t *testing.T, s *memory.Store, tenant string, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		_, err := s.PutIfAbsent(ctx, tenant, fmt.Sprintf("p%03d", i), map[string]any{"n": i})
		require.NoError(t, err)
	}
}

func TestClampLimit_PoliticaDeLenidad(t *testing.T) {
	// fuera de rango o no numérico: default 10, nunca un error
	cases := []struct {
		in   any
		want int
	}{
		{nil, 10},
		{float64(0), 10},
		{float64(-3), 10},
		{float64(500), 10},
		{"abc", 10},
		{"", 10},
		{true, 10},
		{float64(1), 1},
		{float64(100), 100},
		{"25", 25},
		{42, 42},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, catalog.ClampLimit(tc.in), "in=%v", tc.in)
	}
}

func TestClampPage(t *testing.T) {
	require.Equal(t, 0, catalog.ClampPage(nil))
	require.Equal(t, 0, catalog.ClampPage(float64(-1)))
	require.Equal(t, 0, catalog.ClampPage("x"))
	require.Equal(t, 7, catalog.ClampPage(float64(7)))
	require.Equal(t, 3, catalog.ClampPage("3"))
}

func TestList_PaginacionCompletaSinDuplicados(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seed(t, store, "t1", 23)
	p := catalog.NewPager(store)

	var all []string
	cursor := ""
	for {
		items, next, err := p.List(ctx, "t1", 5, cursor)
		require.NoError(t, err)
		for _, it := range items {
			all = append(all, it["product_id"].(string))
		}
		if next == "" {
			break
		}
		cursor = next
	}

	require.Len(t, all, 23)
	seen := map[string]bool{}
	for i, id := range all {
		require.False(t, seen[id], "duplicado: %s", id)
		seen[id] = true
		if i > 0 {
			require.Greater(t, id, all[i-1], "fuera de orden en %d", i)
		}
	}
}

func TestList_Idempotente(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seed(t, store, "t1", 12)
	p := catalog.NewPager(store)

	a1, n1, err := p.List(ctx, "t1", 5, "")
	require.NoError(t, err)
	a2, n2, err := p.List(ctx, "t1", 5, "")
	require.NoError(t, err)
	require.Equal(t, a1, a2)
	require.Equal(t, n1, n2)
}

func TestListPage_TotalesYContenido(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seed(t, store, "t1", 25)
	p := catalog.NewPager(store)

	// página 0: 10 items
	res, err := p.ListPage(ctx, "t1", 0, 10)
	require.NoError(t, err)
	require.Equal(t, 25, res.TotalElements)
	require.Equal(t, 3, res.TotalPages)
	require.Len(t, res.Contents, 10)
	require.Equal(t, "p000", res.Contents[0]["product_id"])

	// página 2: los 5 restantes
	res, err = p.ListPage(ctx, "t1", 2, 10)
	require.NoError(t, err)
	require.Len(t, res.Contents, 5)
	require.Equal(t, "p020", res.Contents[0]["product_id"])
	require.Equal(t, "p024", res.Contents[4]["product_id"])

	// página 3: más allá del final, vacía pero con totales exactos
	res, err = p.ListPage(ctx, "t1", 3, 10)
	require.NoError(t, err)
	require.Empty(t, res.Contents)
	require.Equal(t, 25, res.TotalElements)
	require.Equal(t, 3, res.TotalPages)
	require.Equal(t, 3, res.Page)
	require.Equal(t, 10, res.Size)
}

func TestListPage_ParticionVacia(t *testing.T) {
	ctx := context.Background()
	p := catalog.NewPager(memory.New())

	res, err := p.ListPage(ctx, "t1", 0, 10)
	require.NoError(t, err)
	require.Empty(t, res.Contents)
	require.Equal(t, 0, res.TotalElements)
	require.Equal(t, 0, res.TotalPages)
}

func TestList_ParticionVacia(t *testing.T) {
	ctx := context.Background()
	p := catalog.NewPager(memory.New())

	items, next, err := p.List(ctx, "t1", 10, "")
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
	require.Empty(t, next)
}

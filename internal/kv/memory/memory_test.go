package memory_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/catalogo/internal/kv/memory"
)

func TestPutIfAbsent_Condicional(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	ok, err := s.PutIfAbsent(ctx, "t1", "p1", map[string]any{"nombre": "Widget"})
	require.NoError(t, err)
	require.True(t, ok)

	// segunda escritura con la misma clave no pisa nada
	ok, err = s.PutIfAbsent(ctx, "t1", "p1", map[string]any{"nombre": "Otro"})
	require.NoError(t, err)
	require.False(t, ok)

	it, found, err := s.Get(ctx, "t1", "p1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Widget", it["nombre"])
	require.Equal(t, "t1", it["tenant_id"])
	require.Equal(t, "p1", it["product_id"])
}

func TestUpdateExisting_NoTocaClaves(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, _, err := s.UpdateExisting(ctx, "t1", "nope", map[string]any{"a": 1})
	require.NoError(t, err)

	_, err = s.PutIfAbsent(ctx, "t1", "p1", map[string]any{"nombre": "Widget"})
	require.NoError(t, err)

	it, ok, err := s.UpdateExisting(ctx, "t1", "p1", map[string]any{
		"nombre":     "Widget2",
		"tenant_id":  "hacker",
		"product_id": "otro",
	})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Widget2", it["nombre"])
	require.Equal(t, "t1", it["tenant_id"])
	require.Equal(t, "p1", it["product_id"])
}

func TestDeleteExisting_RetornaSnapshot(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, ok, err := s.DeleteExisting(ctx, "t1", "p1")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = s.PutIfAbsent(ctx, "t1", "p1", map[string]any{"nombre": "Widget"})
	require.NoError(t, err)

	it, ok, err := s.DeleteExisting(ctx, "t1", "p1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Widget", it["nombre"])

	_, found, err := s.Get(ctx, "t1", "p1")
	require.NoError(t, err)
	require.False(t, found)
}

func TestQuery_OrdenYCursor(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	// alta desordenada; el scan debe salir en orden de clave
	for _, id := range []string{"p3", "p1", "p5", "p2", "p4"} {
		_, err := s.PutIfAbsent(ctx, "t1", id, map[string]any{})
		require.NoError(t, err)
	}
	// otra partición no contamina
	_, err := s.PutIfAbsent(ctx, "t2", "p0", map[string]any{})
	require.NoError(t, err)

	items, next, err := s.Query(ctx, "t1", 2, "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "p1", items[0]["product_id"])
	require.Equal(t, "p2", items[1]["product_id"])
	require.Equal(t, "p2", next)

	items, next, err = s.Query(ctx, "t1", 10, next)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "p3", items[0]["product_id"])
	require.Equal(t, "p5", items[2]["product_id"])
	require.Empty(t, next, "partición agotada: sin cursor")
}

func TestCountPage_LoopCompleto(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	for i := 0; i < 25; i++ {
		_, err := s.PutIfAbsent(ctx, "t1", fmt.Sprintf("p%03d", i), map[string]any{})
		require.NoError(t, err)
	}

	total := 0
	cursor := ""
	pages := 0
	for {
		n, next, err := s.CountPage(ctx, "t1", 10, cursor)
		require.NoError(t, err)
		total += n
		pages++
		if next == "" {
			break
		}
		cursor = next
	}
	require.Equal(t, 25, total)
	require.Equal(t, 3, pages)
}

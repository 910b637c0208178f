package catalog

import (
	"context"
	"strconv"

	"github.com/dropDatabas3/catalogo/internal/kv"
)

// Límites de paginación. Valores fuera de rango o no numéricos caen al
// default en silencio: política de lenidad deliberada, nunca un error.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageResult es la respuesta del modo de páginas numeradas.
type PageResult struct {
	Contents      []map[string]any `json:"contents"`
	Page          int              `json:"page"`
	Size          int              `json:"size"`
	TotalElements int              `json:"totalElements"`
	TotalPages    int              `json:"totalPages"`
}

// Pager implementa los dos modos de listado sobre la misma partición.
type Pager struct {
	store kv.Store
}

// NewPager construye el motor de paginación sobre el almacén dado.
func NewPager(store kv.Store) *Pager {
	return &Pager{store: store}
}

// List es el modo cursor: hasta limit items desde after (cursor opaco; el
// motor no lo interpreta, solo lo reenvía al almacén como token de
// reanudación). Retorna el cursor para la página siguiente, o "" si la
// partición quedó agotada.
func (p *Pager) List(ctx context.Context, tenantID string, limit int, after string) ([]map[string]any, string, error) {
	items, next, err := p.store.Query(ctx, tenantID, limit, after)
	if err != nil {
		return nil, "", storeErr("list", err)
	}
	if items == nil {
		items = []map[string]any{}
	}
	return items, next, nil
}

// ListPage es el modo de páginas numeradas, emulado sobre un almacén que solo
// expone cursores forward:
//
//  1. totalElements se calcula con un scan count-only exhaustivo de la
//     partición (O(n) por request; costo aceptado por la exactitud de
//     totalPages).
//  2. para materializar la página p se avanzan p cursores desde el inicio,
//     descartando todo salvo el token de reanudación, y se hace un fetch
//     final de size items.
//
// El conteo y el posicionamiento no son atómicos entre sí: una escritura
// concurrente puede dejar totalElements desfasado respecto de contents. Es un
// trade-off de consistencia débil asumido, no un bug a corregir en silencio.
//
// Una página más allá del final es un estado normal y representable: contents
// vacío con los totales correctos, nunca un error.
func (p *Pager) ListPage(ctx context.Context, tenantID string, page, size int) (PageResult, error) {
	res := PageResult{
		Contents: []map[string]any{},
		Page:     page,
		Size:     size,
	}

	total, err := p.countAll(ctx, tenantID, size)
	if err != nil {
		return PageResult{}, err
	}
	res.TotalElements = total
	res.TotalPages = (total + size - 1) / size

	// page >= totalPages corta acá mismo, sin caminar cursores.
	if res.TotalPages > 0 && page >= res.TotalPages {
		return res, nil
	}

	// Posicionamiento: page avances de cursor desde el inicio.
	cursor := ""
	for i := 0; i < page; i++ {
		n, next, err := p.store.CountPage(ctx, tenantID, size, cursor)
		if err != nil {
			return PageResult{}, storeErr("list_page", err)
		}
		if n == 0 || next == "" {
			// La partición se agotó antes de llegar: totales ya correctos.
			return res, nil
		}
		cursor = next
	}

	items, _, err := p.store.Query(ctx, tenantID, size, cursor)
	if err != nil {
		return PageResult{}, storeErr("list_page", err)
	}
	if items != nil {
		res.Contents = items
	}
	return res, nil
}

// countAll camina toda la partición con la proyección count-only hasta que no
// quede cursor de reanudación.
func (p *Pager) countAll(ctx context.Context, tenantID string, batch int) (int, error) {
	total := 0
	cursor := ""
	for {
		n, next, err := p.store.CountPage(ctx, tenantID, batch, cursor)
		if err != nil {
			return 0, storeErr("count", err)
		}
		total += n
		if next == "" {
			return total, nil
		}
		cursor = next
	}
}

// ClampLimit aplica la política de lenidad al límite/tamaño de página:
// acepta números JSON (float64), strings numéricos e ints; cualquier otra
// cosa, o un valor fuera de (0,100], cae al default de 10.
func ClampLimit(v any) int {
	n, ok := asInt(v)
	if !ok || n <= 0 || n > MaxLimit {
		return DefaultLimit
	}
	return n
}

// ClampPage normaliza el número de página: no numérico o negativo → 0.
func ClampPage(v any) int {
	n, ok := asInt(v)
	if !ok || n < 0 {
		return 0
	}
	return n
}

func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Package memory implementa kv.Store en memoria con particiones ordenadas.
// Pensado para tests y desarrollo local; el orden de claves y la semántica
// condicional son los mismos que en los backends reales.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dropDatabas3/catalogo/internal/kv"
)

type partition struct {
	items map[string]map[string]any
	// keys mantiene los product_id ordenados para el scan forward.
	keys []string
}

// Store es una implementación en memoria de kv.Store.
// Las operaciones son seguras para uso concurrente; el lock del store cumple
// el rol del primitivo de escritura condicional atómica del almacén real.
type Store struct {
	mu      sync.RWMutex
	tenants map[string]*partition
}

// New crea un store vacío.
func New() *Store {
	return &Store{tenants: make(map[string]*partition)}
}

var _ kv.Store = (*Store)(nil)

func (s *Store) Get(_ context.Context, tenantID, productID string) (map[string]any, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.tenants[tenantID]
	if p == nil {
		return nil, false, nil
	}
	it, ok := p.items[productID]
	if !ok {
		return nil, false, nil
	}
	return cloneItem(it), true, nil
}

func (s *Store) PutIfAbsent(_ context.Context, tenantID, productID string, item map[string]any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.tenants[tenantID]
	if p == nil {
		p = &partition{items: make(map[string]map[string]any)}
		s.tenants[tenantID] = p
	}
	if _, exists := p.items[productID]; exists {
		return false, nil
	}

	stored := cloneItem(item)
	stored[kv.FieldTenantID] = tenantID
	stored[kv.FieldProductID] = productID
	p.items[productID] = stored

	i := sort.SearchStrings(p.keys, productID)
	p.keys = append(p.keys, "")
	copy(p.keys[i+1:], p.keys[i:])
	p.keys[i] = productID
	return true, nil
}

func (s *Store) UpdateExisting(_ context.Context, tenantID, productID string, patch map[string]any) (map[string]any, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.tenants[tenantID]
	if p == nil {
		return nil, false, nil
	}
	it, ok := p.items[productID]
	if !ok {
		return nil, false, nil
	}
	for k, v := range patch {
		// Los campos clave no se tocan nunca, sin importar el patch.
		if k == kv.FieldTenantID || k == kv.FieldProductID {
			continue
		}
		it[k] = v
	}
	return cloneItem(it), true, nil
}

func (s *Store) DeleteExisting(_ context.Context, tenantID, productID string) (map[string]any, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.tenants[tenantID]
	if p == nil {
		return nil, false, nil
	}
	it, ok := p.items[productID]
	if !ok {
		return nil, false, nil
	}
	delete(p.items, productID)
	i := sort.SearchStrings(p.keys, productID)
	p.keys = append(p.keys[:i], p.keys[i+1:]...)
	return it, true, nil
}

func (s *Store) Query(_ context.Context, tenantID string, limit int, startAfter string) ([]map[string]any, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := s.scan(tenantID, limit, startAfter)
	if len(keys) == 0 {
		return nil, "", nil
	}

	p := s.tenants[tenantID]
	items := make([]map[string]any, 0, len(keys))
	for _, k := range keys {
		items = append(items, cloneItem(p.items[k]))
	}
	return items, s.nextCursor(tenantID, keys), nil
}

func (s *Store) CountPage(_ context.Context, tenantID string, limit int, startAfter string) (int, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := s.scan(tenantID, limit, startAfter)
	return len(keys), s.nextCursor(tenantID, keys), nil
}

// scan retorna hasta limit claves de la partición, después de startAfter.
// Debe llamarse con el lock tomado.
func (s *Store) scan(tenantID string, limit int, startAfter string) []string {
	p := s.tenants[tenantID]
	if p == nil || limit <= 0 {
		return nil
	}
	from := 0
	if startAfter != "" {
		from = sort.SearchStrings(p.keys, startAfter)
		if from < len(p.keys) && p.keys[from] == startAfter {
			from++
		}
	}
	to := from + limit
	if to > len(p.keys) {
		to = len(p.keys)
	}
	if from >= to {
		return nil
	}
	return p.keys[from:to]
}

// nextCursor emula el LastEvaluatedKey del almacén real: presente solo si el
// scan quedó a mitad de la partición. Debe llamarse con el lock tomado.
func (s *Store) nextCursor(tenantID string, returned []string) string {
	if len(returned) == 0 {
		return ""
	}
	p := s.tenants[tenantID]
	last := returned[len(returned)-1]
	if p.keys[len(p.keys)-1] == last {
		return ""
	}
	return last
}

func cloneItem(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Package postgres implementa kv.Store sobre PostgreSQL vía pgx.
//
// El item vive en una tabla con clave primaria (tenant_id, product_id) y los
// atributos abiertos en una columna jsonb. Las escrituras condicionales se
// resuelven con ON CONFLICT DO NOTHING / UPDATE ... RETURNING, y el scan
// forward con keyset pagination sobre product_id.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/catalogo/internal/kv"
)

const schema = `
CREATE TABLE IF NOT EXISTS productos (
    tenant_id  TEXT NOT NULL,
    product_id TEXT NOT NULL,
    attrs      JSONB NOT NULL DEFAULT '{}'::jsonb,
    PRIMARY KEY (tenant_id, product_id)
);
`

// Store implementa kv.Store sobre un pool pgx.
type Store struct {
	pool *pgxpool.Pool
}

// New conecta el pool y asegura el esquema.
func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: creando esquema: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close libera el pool.
func (s *Store) Close() { s.pool.Close() }

var _ kv.Store = (*Store)(nil)

func (s *Store) Get(ctx context.Context, tenantID, productID string) (map[string]any, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT attrs FROM productos WHERE tenant_id = $1 AND product_id = $2`,
		tenantID, productID).Scan(&raw)
	if err == pgx.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("postgres get: %w", err)
	}
	return decodeItem(tenantID, productID, raw)
}

func (s *Store) PutIfAbsent(ctx context.Context, tenantID, productID string, item map[string]any) (bool, error) {
	attrs, err := encodeAttrs(item)
	if err != nil {
		return false, err
	}
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO productos (tenant_id, product_id, attrs)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (tenant_id, product_id) DO NOTHING`,
		tenantID, productID, attrs)
	if err != nil {
		return false, fmt.Errorf("postgres put: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) UpdateExisting(ctx context.Context, tenantID, productID string, patch map[string]any) (map[string]any, bool, error) {
	attrs, err := encodeAttrs(patch)
	if err != nil {
		return nil, false, err
	}
	var raw []byte
	err = s.pool.QueryRow(ctx,
		`UPDATE productos SET attrs = attrs || $3
		 WHERE tenant_id = $1 AND product_id = $2
		 RETURNING attrs`,
		tenantID, productID, attrs).Scan(&raw)
	if err == pgx.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("postgres update: %w", err)
	}
	item, _, err := decodeItem(tenantID, productID, raw)
	return item, err == nil, err
}

func (s *Store) DeleteExisting(ctx context.Context, tenantID, productID string) (map[string]any, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`DELETE FROM productos WHERE tenant_id = $1 AND product_id = $2 RETURNING attrs`,
		tenantID, productID).Scan(&raw)
	if err == pgx.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("postgres delete: %w", err)
	}
	return decodeItem(tenantID, productID, raw)
}

func (s *Store) Query(ctx context.Context, tenantID string, limit int, startAfter string) ([]map[string]any, string, error) {
	if limit <= 0 {
		return nil, "", nil
	}
	// Se pide un item extra para saber si hay más datos después de la página.
	rows, err := s.pool.Query(ctx,
		`SELECT product_id, attrs FROM productos
		 WHERE tenant_id = $1 AND product_id > $2
		 ORDER BY product_id
		 LIMIT $3`,
		tenantID, startAfter, limit+1)
	if err != nil {
		return nil, "", fmt.Errorf("postgres query: %w", err)
	}
	defer rows.Close()

	var items []map[string]any
	for rows.Next() {
		var pid string
		var raw []byte
		if err := rows.Scan(&pid, &raw); err != nil {
			return nil, "", fmt.Errorf("postgres query: %w", err)
		}
		item, _, err := decodeItem(tenantID, pid, raw)
		if err != nil {
			return nil, "", err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("postgres query: %w", err)
	}

	next := ""
	if len(items) > limit {
		items = items[:limit]
		next, _ = items[limit-1][kv.FieldProductID].(string)
	}
	return items, next, nil
}

func (s *Store) CountPage(ctx context.Context, tenantID string, limit int, startAfter string) (int, string, error) {
	if limit <= 0 {
		return 0, "", nil
	}
	rows, err := s.pool.Query(ctx,
		`SELECT product_id FROM productos
		 WHERE tenant_id = $1 AND product_id > $2
		 ORDER BY product_id
		 LIMIT $3`,
		tenantID, startAfter, limit+1)
	if err != nil {
		return 0, "", fmt.Errorf("postgres count: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var pid string
		if err := rows.Scan(&pid); err != nil {
			return 0, "", fmt.Errorf("postgres count: %w", err)
		}
		keys = append(keys, pid)
	}
	if err := rows.Err(); err != nil {
		return 0, "", fmt.Errorf("postgres count: %w", err)
	}

	next := ""
	n := len(keys)
	if n > limit {
		n = limit
		next = keys[limit-1]
	}
	return n, next, nil
}

func encodeAttrs(item map[string]any) ([]byte, error) {
	// Los campos clave no se duplican dentro de attrs.
	attrs := make(map[string]any, len(item))
	for k, v := range item {
		if k == kv.FieldTenantID || k == kv.FieldProductID {
			continue
		}
		attrs[k] = v
	}
	b, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("postgres: attrs no serializables: %w", err)
	}
	return b, nil
}

func decodeItem(tenantID, productID string, raw []byte) (map[string]any, bool, error) {
	item := make(map[string]any)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, false, fmt.Errorf("postgres: attrs corruptos: %w", err)
		}
	}
	item[kv.FieldTenantID] = tenantID
	item[kv.FieldProductID] = productID
	return item, true, nil
}

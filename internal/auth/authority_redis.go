package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	rdb "github.com/redis/go-redis/v9"
)

// RedisAuthority implementa el contrato de verificación contra una tabla de
// tokens en Redis: cada token de acceso vive en la key <prefix><token> con un
// registro JSON de claims y expira por TTL. Un token ausente o vencido es un
// rechazo 403; la emisión de tokens queda fuera de este servicio.
type RedisAuthority struct {
	c      *rdb.Client
	prefix string
}

// NewRedisAuthority construye la autoridad sobre la instancia Redis dada.
func NewRedisAuthority(addr string, db int, prefix string) *RedisAuthority {
	if prefix == "" {
		prefix = "token:"
	}
	return &RedisAuthority{
		c:      rdb.NewClient(&rdb.Options{Addr: addr, DB: db}),
		prefix: prefix,
	}
}

// tokenRecord es el registro almacenado por el emisor de tokens.
type tokenRecord struct {
	TenantID string   `json:"tenant_id"`
	IsAdmin  bool     `json:"is_admin"`
	Roles    []string `json:"roles"`
	// Expires es redundante con el TTL de la key; se respeta si está
	// presente (registros migrados del esquema viejo).
	Expires string `json:"expires,omitempty"`
}

// Validate busca el token y arma el resultado estructurado.
func (a *RedisAuthority) Validate(ctx context.Context, token string) (Result, error) {
	raw, err := a.c.Get(ctx, a.prefix+token).Bytes()
	if err == rdb.Nil {
		return Result{StatusCode: 403}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("authority redis: %w", err)
	}

	var rec tokenRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Result{}, fmt.Errorf("authority redis: registro inválido: %w", err)
	}

	if rec.Expires != "" {
		exp, err := time.Parse("2006-01-02 15:04:05", rec.Expires)
		if err == nil && time.Now().After(exp) {
			return Result{StatusCode: 403}, nil
		}
	}

	return Result{
		StatusCode: 200,
		TenantID:   rec.TenantID,
		IsAdmin:    rec.IsAdmin,
		Roles:      rec.Roles,
	}, nil
}

// Close libera la conexión a Redis.
func (a *RedisAuthority) Close() error { return a.c.Close() }

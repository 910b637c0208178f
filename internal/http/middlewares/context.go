package middlewares

import (
	"context"

	"github.com/dropDatabas3/catalogo/internal/claims"
)

type claimsKey struct{}
type requestIDKey struct{}

// WithClaims inyecta las claims verificadas en el contexto.
func WithClaims(ctx context.Context, c claims.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// GetClaims extrae las claims del contexto. ok=false si el middleware de
// auth no corrió sobre esta ruta.
func GetClaims(ctx context.Context) (claims.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(claims.Claims)
	return c, ok
}

func setRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// GetRequestID extrae el request ID del contexto.
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// Package auth implementa la verificación delegada de tokens y el control de
// aislamiento por tenant. La validación real del token vive en un servicio
// externo (la "autoridad"); acá solo se mapea su resultado a claims o a un
// rechazo definitivo.
package auth

import (
	"context"
	"strings"

	"github.com/dropDatabas3/catalogo/internal/claims"
	"github.com/dropDatabas3/catalogo/internal/observability/logger"
)

// Result es la respuesta estructurada de la autoridad de tokens.
type Result struct {
	StatusCode int      `json:"statusCode"`
	TenantID   string   `json:"tenant_id,omitempty"`
	IsAdmin    bool     `json:"is_admin,omitempty"`
	Roles      []string `json:"roles,omitempty"`
}

// Authority valida un token contra el servicio externo. Un error de retorno
// representa una falla de transporte; un rechazo del token llega en el
// StatusCode del Result.
type Authority interface {
	Validate(ctx context.Context, token string) (Result, error)
}

// Verifier convierte un token crudo en claims o en un rechazo definitivo.
// No cachea resultados: los tokens pueden expirar o ser revocados entre
// requests, así que cada request vuelve a consultar a la autoridad.
type Verifier struct {
	authority Authority
}

// NewVerifier construye un Verifier sobre la autoridad dada.
func NewVerifier(a Authority) *Verifier {
	return &Verifier{authority: a}
}

// Verify valida el token y retorna las claims.
//
// Mapeo de resultados:
//   - token vacío            → ErrMissingToken (sin llamada externa)
//   - autoridad 200          → claims extraídas del cuerpo
//   - autoridad 403          → ErrForbidden
//   - otro status o fallo de transporte → ErrAuthorityUnavailable
func (v *Verifier) Verify(ctx context.Context, rawToken string) (claims.Claims, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return claims.Claims{}, ErrMissingToken
	}

	res, err := v.authority.Validate(ctx, token)
	if err != nil {
		logger.From(ctx).Error("fallo al invocar la autoridad de tokens", logger.Err(err))
		return claims.Claims{}, ErrAuthorityUnavailable
	}

	switch res.StatusCode {
	case 200:
		return claims.New(res.TenantID, res.IsAdmin, res.Roles), nil
	case 403:
		return claims.Claims{}, ErrForbidden
	default:
		logger.From(ctx).Error("status inesperado de la autoridad de tokens",
			logger.Int("authority_status", res.StatusCode))
		return claims.Claims{}, ErrAuthorityUnavailable
	}
}

// BearerToken aplica la regla de extracción del header Authorization: si el
// valor empieza con "bearer " (case-insensitive) se quita el prefijo; si no,
// se usa el valor completo. Siempre se recorta whitespace.
func BearerToken(headerValue string) string {
	v := strings.TrimSpace(headerValue)
	if len(v) >= 7 && strings.EqualFold(v[:7], "bearer ") {
		return strings.TrimSpace(v[7:])
	}
	return v
}

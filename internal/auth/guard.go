package auth

import "github.com/dropDatabas3/catalogo/internal/claims"

// TenantGuard exige que el tenant del token coincida con el tenant del
// request, independientemente de cualquier identificador provisto por el
// cliente.
type TenantGuard struct {
	// RequireTenantClaim controla el modo legacy: con false (default), un
	// token sin tenant_id pasa el guard (compatibilidad con tokens viejos).
	// Con true, se rechaza con ErrMissingTenant.
	RequireTenantClaim bool
}

// Check valida el par (tenant del token, tenant del request).
//
// requestTenant nunca debe llegar vacío: esa condición se rechaza antes,
// en la validación de campos del orquestador.
func (g TenantGuard) Check(c claims.Claims, requestTenant string) error {
	if c.TenantID == "" {
		if g.RequireTenantClaim {
			return ErrMissingTenant
		}
		// Modo permisivo: token sin tenant asociado opera sobre cualquier
		// tenant. Ver la discusión en DESIGN.md.
		return nil
	}
	// Match exacto, case-sensitive. is_admin no exime del chequeo.
	if c.TenantID != requestTenant {
		return ErrTenantMismatch
	}
	return nil
}

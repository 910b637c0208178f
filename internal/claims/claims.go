// Package claims modela los hechos de identidad verificados que se derivan
// de un token de acceso. Un Claims es inmutable una vez producido por el
// verificador y vive solo durante el request.
package claims

import "strings"

// Claims agrupa los datos de autorización de un token validado.
type Claims struct {
	// TenantID es el tenant al que pertenece el token. Puede estar vacío
	// (tokens legacy sin tenant asociado).
	TenantID string

	// Admin indica si el token tiene el flag is_admin.
	Admin bool

	// roles normalizados (lowercase, sin espacios).
	roles map[string]struct{}
}

// New construye un Claims normalizando los roles recibidos.
func New(tenantID string, admin bool, roles []string) Claims {
	c := Claims{TenantID: tenantID, Admin: admin}
	if len(roles) > 0 {
		c.roles = make(map[string]struct{}, len(roles))
		for _, r := range roles {
			r = strings.ToLower(strings.TrimSpace(r))
			if r != "" {
				c.roles[r] = struct{}{}
			}
		}
	}
	return c
}

// HasRole responde si el token tiene el rol dado (case-insensitive).
func (c Claims) HasRole(role string) bool {
	_, ok := c.roles[strings.ToLower(strings.TrimSpace(role))]
	return ok
}

// Roles retorna los roles normalizados.
func (c Claims) Roles() []string {
	if len(c.roles) == 0 {
		return nil
	}
	out := make([]string, 0, len(c.roles))
	for r := range c.roles {
		out = append(out, r)
	}
	return out
}

// IsAdmin responde si el token es administrador: flag is_admin explícito
// o rol "admin".
func (c Claims) IsAdmin() bool {
	return c.Admin || c.HasRole("admin")
}

package auth

import "errors"

// Errores del verificador y del guard de tenant. El orquestador los mapea a
// la envolvente de respuesta; nunca se propagan más allá del handler.
var (
	// ErrMissingToken: no se recibió token. No se consulta a la autoridad.
	ErrMissingToken = errors.New("falta token")

	// ErrForbidden: la autoridad rechazó el token (inválido o expirado).
	ErrForbidden = errors.New("acceso no autorizado")

	// ErrAuthorityUnavailable: la autoridad no respondió o respondió un status
	// inesperado. Es una falla dura del lado servidor, no un deny silencioso.
	ErrAuthorityUnavailable = errors.New("autoridad de tokens no disponible")

	// ErrTenantMismatch: el tenant del token no coincide con el del request.
	ErrTenantMismatch = errors.New("tenant_id del body no coincide con el token")

	// ErrMissingTenant: el request no trae tenant, o el token no trae
	// tenant_id cuando la configuración lo exige.
	ErrMissingTenant = errors.New("falta tenant_id")
)

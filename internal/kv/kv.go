// Package kv define el contrato contra el almacén clave-valor que respalda el
// catálogo: partition key = tenant_id, sort key = product_id. El motor de
// almacenamiento es un colaborador externo; acá solo se especifica la
// superficie que el catálogo necesita, en particular las escrituras
// condicionales atómicas y el scan forward por partición.
package kv

import "context"

// Store es la superficie mínima requerida por el catálogo.
//
// Todas las escrituras son condicionales y atómicas respecto del predicado de
// existencia: el chequeo y la mutación no pueden separarse. Eso es un
// requisito duro del almacén, no una optimización.
type Store interface {
	// Get retorna el item completo (incluyendo campos clave) y si existe.
	Get(ctx context.Context, tenantID, productID string) (map[string]any, bool, error)

	// PutIfAbsent escribe el item solo si la clave no existe.
	// Retorna false si la clave ya existía (sin modificar nada).
	PutIfAbsent(ctx context.Context, tenantID, productID string, item map[string]any) (bool, error)

	// UpdateExisting aplica un reemplazo parcial de campos solo si la clave
	// existe y retorna el registro completo post-update. Retorna ok=false si
	// la clave no existe (sin escribir nada).
	UpdateExisting(ctx context.Context, tenantID, productID string, patch map[string]any) (map[string]any, bool, error)

	// DeleteExisting borra el item solo si la clave existe y retorna el
	// snapshot previo al borrado. Retorna ok=false si la clave no existe.
	DeleteExisting(ctx context.Context, tenantID, productID string) (map[string]any, bool, error)

	// Query recorre la partición del tenant en el orden nativo de claves,
	// retomando después de startAfter (cursor opaco; vacío = desde el
	// principio). Retorna hasta limit items y el cursor de reanudación, o
	// cursor vacío si no quedan más datos.
	Query(ctx context.Context, tenantID string, limit int, startAfter string) ([]map[string]any, string, error)

	// CountPage es la proyección count-only de Query: cuenta hasta limit
	// items desde startAfter sin materializarlos. El total de una partición
	// se obtiene iterando hasta que el cursor vuelva vacío.
	CountPage(ctx context.Context, tenantID string, limit int, startAfter string) (int, string, error)
}

// Campos clave de todo item del catálogo.
const (
	FieldTenantID  = "tenant_id"
	FieldProductID = "product_id"
)

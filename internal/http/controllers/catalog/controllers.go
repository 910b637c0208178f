// Package catalog contiene los controllers HTTP del catálogo de productos.
// Cada handler es una secuencia fija: claims del contexto → validación de
// campos → service → envolvente de respuesta. Ninguna etapa se reintenta;
// cualquier falla corta directo a la envolvente de error.
package catalog

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/dropDatabas3/catalogo/internal/catalog"
	"github.com/dropDatabas3/catalogo/internal/claims"
	httperrors "github.com/dropDatabas3/catalogo/internal/http/errors"
	mw "github.com/dropDatabas3/catalogo/internal/http/middlewares"
)

// Controllers agrupa los handlers del catálogo.
type Controllers struct {
	svc *catalog.Service
}

// NewControllers crea los controllers sobre el service dado.
func NewControllers(svc *catalog.Service) *Controllers {
	return &Controllers{svc: svc}
}

// requestClaims saca las claims que dejó el middleware RequireAuth.
func requestClaims(r *http.Request) (claims.Claims, bool) {
	return mw.GetClaims(r.Context())
}

// readBody decodifica el body JSON en un mapa abierto. Body vacío es válido
// y equivale a {}. Límite de 1MB.
func readBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	body := map[string]any{}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&body); err != nil && err != io.EOF {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return nil, false
	}
	return body, true
}

// str lee un campo string del body; cualquier otro tipo cuenta como ausente.
func str(body map[string]any, key string) string {
	s, _ := body[key].(string)
	return s
}

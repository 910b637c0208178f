package catalog

import (
	"net/http"

	httperrors "github.com/dropDatabas3/catalogo/internal/http/errors"
)

// List maneja POST /v1/products/list (modo cursor).
// Body: {tenant_id?, limit?, next?}. limit pasa por la política de lenidad
// (no numérico o fuera de rango → 10, nunca un error). next es el cursor
// opaco devuelto por el listado anterior y se reenvía tal cual al almacén.
func (c *Controllers) List(w http.ResponseWriter, r *http.Request) {
	cl, ok := requestClaims(r)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrInternal)
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	items, next, err := c.svc.List(r.Context(), cl, str(body, "tenant_id"), body["limit"], str(body, "next"))
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	// next es null cuando la partición quedó agotada, como el
	// LastEvaluatedKey del almacén.
	var nextOut any
	if next != "" {
		nextOut = next
	}
	httperrors.WriteJSON(w, http.StatusOK, map[string]any{"items": items, "next": nextOut})
}

// ListPages maneja POST /v1/products/pages (modo de páginas numeradas).
// Body: {tenant_id?, page?, size?}. page y size pasan por la misma política
// de lenidad. Una página más allá del final responde contents vacío con los
// totales correctos.
func (c *Controllers) ListPages(w http.ResponseWriter, r *http.Request) {
	cl, ok := requestClaims(r)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrInternal)
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	res, err := c.svc.ListPage(r.Context(), cl, str(body, "tenant_id"), body["page"], body["size"])
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, res)
}

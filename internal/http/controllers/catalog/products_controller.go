package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/dropDatabas3/catalogo/internal/http/errors"
	"github.com/dropDatabas3/catalogo/internal/observability/logger"
)

// Create maneja POST /v1/products.
// El body es el producto completo: product_id obligatorio, tenant_id opcional
// si el token ya trae uno, y el resto de atributos abiertos.
func (c *Controllers) Create(w http.ResponseWriter, r *http.Request) {
	cl, ok := requestClaims(r)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrInternal)
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	item, err := c.svc.Create(r.Context(), cl, body)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusCreated, map[string]any{"ok": true, "item": item})
}

// Get maneja POST /v1/products/get.
// Lee por clave compuesta; tenant_id y product_id vienen en el body, como en
// el resto de las operaciones body-first.
func (c *Controllers) Get(w http.ResponseWriter, r *http.Request) {
	cl, ok := requestClaims(r)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrInternal)
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	item, err := c.svc.Get(r.Context(), cl, str(body, "tenant_id"), str(body, "product_id"))
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, map[string]any{"item": item})
}

// Update maneja PUT /v1/products/{product_id}.
// El tenant sale del token, nunca del cliente; los campos clave que vengan en
// el body se descartan antes de escribir.
func (c *Controllers) Update(w http.ResponseWriter, r *http.Request) {
	cl, ok := requestClaims(r)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrInternal)
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	productID := chi.URLParam(r, "product_id")
	item, err := c.svc.Update(r.Context(), cl, productID, body)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "item": item})
}

// Delete maneja DELETE /v1/products/{product_id}.
// Responde el snapshot previo al borrado.
func (c *Controllers) Delete(w http.ResponseWriter, r *http.Request) {
	cl, ok := requestClaims(r)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrInternal)
		return
	}

	productID := chi.URLParam(r, "product_id")
	item, err := c.svc.Delete(r.Context(), cl, productID)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	logger.From(r.Context()).Debug("producto eliminado", logger.Layer("controller"))
	httperrors.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": item})
}

// Package errors define la envolvente de error de la API y el mapeo desde
// los errores de dominio. Toda falla se resuelve acá en una respuesta JSON;
// nada se propaga más allá del handler.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/dropDatabas3/catalogo/internal/auth"
	"github.com/dropDatabas3/catalogo/internal/catalog"
)

// Standard Error Responses

var (
	ErrInvalidJSON      = &HTTPError{Code: "invalid_json", Message: "JSON inválido", Status: http.StatusBadRequest}
	ErrMissingToken     = &HTTPError{Code: "missing_token", Message: "Falta token", Status: http.StatusUnauthorized}
	ErrForbidden        = &HTTPError{Code: "forbidden", Message: "Acceso no autorizado", Status: http.StatusForbidden}
	ErrAuthority        = &HTTPError{Code: "authority_unavailable", Message: "Autoridad de tokens no disponible", Status: http.StatusBadGateway}
	ErrTenantMismatch   = &HTTPError{Code: "tenant_mismatch", Message: "tenant_id del body no coincide con el token", Status: http.StatusForbidden}
	ErrMissingTenant    = &HTTPError{Code: "missing_tenant", Message: "Falta tenant_id", Status: http.StatusBadRequest}
	ErrMissingField     = &HTTPError{Code: "missing_field", Message: "Falta un campo obligatorio", Status: http.StatusBadRequest}
	ErrNothingToUpdate  = &HTTPError{Code: "nothing_to_update", Message: "Body vacío; nada que actualizar", Status: http.StatusBadRequest}
	ErrConflict         = &HTTPError{Code: "conflict", Message: "El producto ya existe", Status: http.StatusConflict}
	ErrNotFound         = &HTTPError{Code: "not_found", Message: "Producto no encontrado", Status: http.StatusNotFound}
	ErrStoreFailure     = &HTTPError{Code: "store_failure", Message: "Error de almacenamiento", Status: http.StatusInternalServerError}
	ErrMethodNotAllowed = &HTTPError{Code: "method_not_allowed", Message: "Método no permitido", Status: http.StatusMethodNotAllowed}
	ErrInternal         = &HTTPError{Code: "internal_error", Message: "Error interno", Status: http.StatusInternalServerError}
)

// HTTPError es la envolvente de error de la API. El campo "error" describe
// la condición; "code" la identifica dentro de la taxonomía.
type HTTPError struct {
	Code      string `json:"code"`
	Message   string `json:"error"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Status    int    `json:"-"`
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

// WithDetail retorna una copia del error con detalle específico.
func (e *HTTPError) WithDetail(detail string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: e.Message,
		Detail:  detail,
		Status:  e.Status,
	}
}

// FromDomain mapea un error de dominio (auth/catalog) a la envolvente HTTP.
func FromDomain(err error) *HTTPError {
	var mf *catalog.MissingFieldError
	var se *catalog.StoreError

	switch {
	case stderrors.Is(err, auth.ErrMissingToken):
		return ErrMissingToken
	case stderrors.Is(err, auth.ErrForbidden):
		return ErrForbidden
	case stderrors.Is(err, auth.ErrAuthorityUnavailable):
		return ErrAuthority
	case stderrors.Is(err, auth.ErrTenantMismatch):
		return ErrTenantMismatch
	case stderrors.Is(err, auth.ErrMissingTenant):
		return ErrMissingTenant
	case stderrors.As(err, &mf):
		return ErrMissingField.WithDetail(mf.Error())
	case stderrors.Is(err, catalog.ErrNothingToUpdate):
		return ErrNothingToUpdate
	case stderrors.Is(err, catalog.ErrConflict):
		return ErrConflict
	case stderrors.Is(err, catalog.ErrNotFound):
		return ErrNotFound
	case stderrors.As(err, &se):
		// El mensaje subyacente se expone: el retry es del caller.
		return ErrStoreFailure.WithDetail(se.Error())
	default:
		return ErrInternal
	}
}

// WriteError escribe el error en la respuesta, propagando el X-Request-ID.
func WriteError(w http.ResponseWriter, err error) {
	httpErr, ok := err.(*HTTPError)
	if !ok {
		httpErr = FromDomain(err)
	}
	if rid := w.Header().Get("X-Request-ID"); rid != "" && httpErr.RequestID == "" {
		cp := *httpErr
		cp.RequestID = rid
		httpErr = &cp
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(httpErr.Status)
	_ = json.NewEncoder(w).Encode(httpErr)
}

// WriteJSON: respuesta JSON estándar.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

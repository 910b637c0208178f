// Package catalog implementa el núcleo del catálogo multi-tenant: las cinco
// operaciones (create, get, update, delete, list) sobre un almacén
// clave-valor, con aislamiento por tenant y escrituras condicionales.
//
// El servicio es stateless: no hay estado mutable compartido entre requests;
// toda la consistencia entre requests se delega al primitivo de escritura
// condicional atómica del almacén.
package catalog

import (
	"context"

	"github.com/dropDatabas3/catalogo/internal/auth"
	"github.com/dropDatabas3/catalogo/internal/claims"
	"github.com/dropDatabas3/catalogo/internal/kv"
	"github.com/dropDatabas3/catalogo/internal/observability/logger"
)

// Service orquesta guard de tenant, validación de campos y almacén para cada
// operación. Las claims llegan ya verificadas (el middleware corre el
// verificador antes).
type Service struct {
	store kv.Store
	guard auth.TenantGuard
	pager *Pager
}

// New construye el servicio del catálogo.
func New(store kv.Store, guard auth.TenantGuard) *Service {
	return &Service{store: store, guard: guard, pager: NewPager(store)}
}

// resolveTenant decide el tenant del request: el del body si vino, si no el
// del token. Vacío en ambos → ErrMissingTenant. Cuando ambos existen, el
// guard exige el match exacto.
func (s *Service) resolveTenant(c claims.Claims, bodyTenant string) (string, error) {
	tenant := bodyTenant
	if tenant == "" {
		tenant = c.TenantID
	}
	if tenant == "" {
		return "", auth.ErrMissingTenant
	}
	if err := s.guard.Check(c, tenant); err != nil {
		return "", err
	}
	return tenant, nil
}

// claimsTenant resuelve el tenant exclusivamente desde el token
// (update/delete: el cliente no elige el tenant que muta).
func claimsTenant(c claims.Claims) (string, error) {
	if c.TenantID == "" {
		return "", auth.ErrMissingTenant
	}
	return c.TenantID, nil
}

// stripKeys copia el payload descartando los campos clave. Los campos clave
// jamás son modificables por el cliente.
func stripKeys(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		if k == kv.FieldTenantID || k == kv.FieldProductID {
			continue
		}
		out[k] = v
	}
	return out
}

// Create da de alta un producto. Falla con ErrConflict si la clave
// (tenant, product_id) ya existe; la condición la chequea el almacén de
// forma atómica con la escritura.
func (s *Service) Create(ctx context.Context, c claims.Claims, payload map[string]any) (map[string]any, error) {
	bodyTenant, _ := payload[kv.FieldTenantID].(string)
	tenant, err := s.resolveTenant(c, bodyTenant)
	if err != nil {
		return nil, err
	}
	productID, _ := payload[kv.FieldProductID].(string)
	if productID == "" {
		return nil, &MissingFieldError{Field: kv.FieldProductID}
	}

	attrs := stripKeys(payload)
	ok, err := s.store.PutIfAbsent(ctx, tenant, productID, attrs)
	if err != nil {
		return nil, storeErr("create", err)
	}
	if !ok {
		return nil, ErrConflict
	}

	logger.From(ctx).Info("producto creado",
		logger.Layer("service"), logger.TenantID(tenant), logger.ProductID(productID))

	item := attrs
	item[kv.FieldTenantID] = tenant
	item[kv.FieldProductID] = productID
	return item, nil
}

// Get lee un producto por clave compuesta.
func (s *Service) Get(ctx context.Context, c claims.Claims, bodyTenant, productID string) (map[string]any, error) {
	tenant, err := s.resolveTenant(c, bodyTenant)
	if err != nil {
		return nil, err
	}
	if productID == "" {
		return nil, &MissingFieldError{Field: kv.FieldProductID}
	}

	item, found, err := s.store.Get(ctx, tenant, productID)
	if err != nil {
		return nil, storeErr("get", err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return item, nil
}

// Update aplica un reemplazo parcial sobre un producto existente. Los campos
// clave del payload se descartan antes de construir la escritura; si después
// de eso no queda nada, se rechaza con ErrNothingToUpdate sin tocar el
// almacén. Retorna el registro completo post-update.
func (s *Service) Update(ctx context.Context, c claims.Claims, productID string, payload map[string]any) (map[string]any, error) {
	tenant, err := claimsTenant(c)
	if err != nil {
		return nil, err
	}
	if productID == "" {
		return nil, &MissingFieldError{Field: kv.FieldProductID}
	}

	patch := stripKeys(payload)
	if len(patch) == 0 {
		return nil, ErrNothingToUpdate
	}

	item, found, err := s.store.UpdateExisting(ctx, tenant, productID, patch)
	if err != nil {
		return nil, storeErr("update", err)
	}
	if !found {
		return nil, ErrNotFound
	}

	logger.From(ctx).Info("producto actualizado",
		logger.Layer("service"), logger.TenantID(tenant), logger.ProductID(productID))
	return item, nil
}

// Delete borra un producto existente y retorna el snapshot previo al borrado.
func (s *Service) Delete(ctx context.Context, c claims.Claims, productID string) (map[string]any, error) {
	tenant, err := claimsTenant(c)
	if err != nil {
		return nil, err
	}
	if productID == "" {
		return nil, &MissingFieldError{Field: kv.FieldProductID}
	}

	item, found, err := s.store.DeleteExisting(ctx, tenant, productID)
	if err != nil {
		return nil, storeErr("delete", err)
	}
	if !found {
		return nil, ErrNotFound
	}

	logger.From(ctx).Info("producto eliminado",
		logger.Layer("service"), logger.TenantID(tenant), logger.ProductID(productID))
	return item, nil
}

// List es el listado modo cursor. limit llega crudo del JSON del request y
// pasa por la política de lenidad (ClampLimit).
func (s *Service) List(ctx context.Context, c claims.Claims, bodyTenant string, limit any, after string) ([]map[string]any, string, error) {
	tenant, err := s.resolveTenant(c, bodyTenant)
	if err != nil {
		return nil, "", err
	}
	return s.pager.List(ctx, tenant, ClampLimit(limit), after)
}

// ListPage es el listado por páginas numeradas. page y size llegan crudos y
// pasan por la misma política de lenidad.
func (s *Service) ListPage(ctx context.Context, c claims.Claims, bodyTenant string, page, size any) (PageResult, error) {
	tenant, err := s.resolveTenant(c, bodyTenant)
	if err != nil {
		return PageResult{}, err
	}
	return s.pager.ListPage(ctx, tenant, ClampPage(page), ClampLimit(size))
}

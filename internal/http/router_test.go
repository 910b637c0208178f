package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/catalogo/internal/auth"
	"github.com/dropDatabas3/catalogo/internal/catalog"
	httpx "github.com/dropDatabas3/catalogo/internal/http"
	catalogctrl "github.com/dropDatabas3/catalogo/internal/http/controllers/catalog"
	"github.com/dropDatabas3/catalogo/internal/kv/memory"
)

// mapAuthority resuelve tokens contra un mapa fijo; un token ausente es 403 y
// el token "tok-caido" simula una autoridad inalcanzable.
type mapAuthority struct {
	tokens map[string]auth.Result
}

func (m *mapAuthority) Validate(_ context.Context, token string) (auth.Result, error) {
	if token == "tok-caido" {
		return auth.Result{}, errors.New("timeout")
	}
	if res, ok := m.tokens[token]; ok {
		return res, nil
	}
	return auth.Result{StatusCode: 403}, nil
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	authority := &mapAuthority{tokens: map[string]auth.Result{
		"tok-t1":     {StatusCode: 200, TenantID: "t1"},
		"tok-t2":     {StatusCode: 200, TenantID: "t2"},
		"tok-admin2": {StatusCode: 200, TenantID: "t2", IsAdmin: true, Roles: []string{"admin"}},
	}}

	svc := catalog.New(memory.New(), auth.TenantGuard{})
	handler := httpx.NewRouter(httpx.RouterDeps{
		Verifier: auth.NewVerifier(authority),
		Catalog:  catalogctrl.NewControllers(svc),
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestCicloDeVidaCompleto(t *testing.T) {
	srv := newServer(t)

	// create
	status, body := call(t, srv, "POST", "/v1/products", "tok-t1",
		map[string]any{"product_id": "p1", "nombre": "Widget"})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, true, body["ok"])
	item := body["item"].(map[string]any)
	require.Equal(t, "t1", item["tenant_id"])
	require.Equal(t, "p1", item["product_id"])
	require.Equal(t, "Widget", item["nombre"])

	// create duplicado
	status, body = call(t, srv, "POST", "/v1/products", "tok-t1",
		map[string]any{"product_id": "p1", "nombre": "Widget"})
	require.Equal(t, http.StatusConflict, status)
	require.NotEmpty(t, body["error"])

	// get
	status, body = call(t, srv, "POST", "/v1/products/get", "tok-t1",
		map[string]any{"tenant_id": "t1", "product_id": "p1"})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Widget", body["item"].(map[string]any)["nombre"])

	// update: cambia nombre, las claves quedan intactas
	status, body = call(t, srv, "PUT", "/v1/products/p1", "tok-t1",
		map[string]any{"nombre": "Widget2", "product_id": "pirata"})
	require.Equal(t, http.StatusOK, status)
	item = body["item"].(map[string]any)
	require.Equal(t, "Widget2", item["nombre"])
	require.Equal(t, "t1", item["tenant_id"])
	require.Equal(t, "p1", item["product_id"])

	// delete: responde el snapshot previo
	status, body = call(t, srv, "DELETE", "/v1/products/p1", "tok-t1", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Widget2", body["deleted"].(map[string]any)["nombre"])

	// get posterior: 404
	status, _ = call(t, srv, "POST", "/v1/products/get", "tok-t1",
		map[string]any{"tenant_id": "t1", "product_id": "p1"})
	require.Equal(t, http.StatusNotFound, status)
}

func TestAuth_Fallas(t *testing.T) {
	srv := newServer(t)

	// sin token
	status, body := call(t, srv, "POST", "/v1/products/list", "",
		map[string]any{"tenant_id": "t1"})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "missing_token", body["code"])

	// token rechazado por la autoridad
	status, body = call(t, srv, "POST", "/v1/products/list", "tok-falso",
		map[string]any{"tenant_id": "t1"})
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "forbidden", body["code"])

	// autoridad caída: falla dura 5xx, no un deny silencioso
	status, body = call(t, srv, "POST", "/v1/products/list", "tok-caido",
		map[string]any{"tenant_id": "t1"})
	require.Equal(t, http.StatusBadGateway, status)
	require.Equal(t, "authority_unavailable", body["code"])
}

func TestAuth_AislamientoDeTenant(t *testing.T) {
	srv := newServer(t)

	status, _ := call(t, srv, "POST", "/v1/products", "tok-t1",
		map[string]any{"product_id": "p1", "nombre": "privado"})
	require.Equal(t, http.StatusCreated, status)

	// otro tenant no puede leer, ni siendo admin
	for _, token := range []string{"tok-t2", "tok-admin2"} {
		status, body := call(t, srv, "POST", "/v1/products/get", token,
			map[string]any{"tenant_id": "t1", "product_id": "p1"})
		require.Equal(t, http.StatusForbidden, status, "token %s", token)
		require.Equal(t, "tenant_mismatch", body["code"])
	}
}

func TestList_CursorYPaginas(t *testing.T) {
	srv := newServer(t)

	for i := 0; i < 25; i++ {
		status, _ := call(t, srv, "POST", "/v1/products", "tok-t1",
			map[string]any{"product_id": string(rune('a'+i/5)) + string(rune('0'+i%5))})
		require.Equal(t, http.StatusCreated, status)
	}

	// modo cursor: recorrido completo sin duplicados
	total := 0
	var next any
	for {
		req := map[string]any{"tenant_id": "t1", "limit": 10}
		if s, ok := next.(string); ok && s != "" {
			req["next"] = s
		}
		status, body := call(t, srv, "POST", "/v1/products/list", "tok-t1", req)
		require.Equal(t, http.StatusOK, status)
		total += len(body["items"].([]any))
		next = body["next"]
		if next == nil {
			break
		}
	}
	require.Equal(t, 25, total)

	// limit no numérico cae al default de 10
	status, body := call(t, srv, "POST", "/v1/products/list", "tok-t1",
		map[string]any{"tenant_id": "t1", "limit": "abc"})
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["items"].([]any), 10)

	// modo páginas numeradas
	status, body = call(t, srv, "POST", "/v1/products/pages", "tok-t1",
		map[string]any{"tenant_id": "t1", "page": 2, "size": 10})
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["contents"].([]any), 5)
	require.EqualValues(t, 25, body["totalElements"])
	require.EqualValues(t, 3, body["totalPages"])

	// página más allá del final: vacía con totales correctos
	status, body = call(t, srv, "POST", "/v1/products/pages", "tok-t1",
		map[string]any{"tenant_id": "t1", "page": 3, "size": 10})
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, body["contents"].([]any))
	require.EqualValues(t, 25, body["totalElements"])
}

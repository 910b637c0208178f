// catalogoctl es un cliente de línea de comandos para la API del catálogo.
// Usa el mismo bearer token que cualquier otro cliente.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	Token     string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	var (
		baseURL = envOr("CATALOGO_URL", "http://localhost:8080")
		token   = envOr("CATALOGO_TOKEN", "")
		tenant  = envOr("CATALOGO_TENANT", "")
		out     = envOr("CATALOGO_OUT", "text")
	)

	root := &cobra.Command{
		Use:   "catalogoctl",
		Short: "Cliente CLI del catálogo de productos",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				return fmt.Errorf("falta el token (flag --token o env CATALOGO_TOKEN)")
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base de la API (env CATALOGO_URL)")
	root.PersistentFlags().StringVar(&token, "token", token, "Bearer token (env CATALOGO_TOKEN)")
	root.PersistentFlags().StringVar(&tenant, "tenant", tenant, "tenant_id para las operaciones body-first (env CATALOGO_TENANT)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	cl := &client{BaseURL: baseURL, Token: token, OutFormat: out, HTTP: &http.Client{Timeout: 30 * time.Second}}
	// Los flags se resuelven después de parsear; refrescamos antes de cada run.
	refresh := func() { cl.BaseURL, cl.Token, cl.OutFormat = baseURL, token, out }

	createCmd := &cobra.Command{
		Use:   "crear <json>",
		Short: "Crea un producto (el body es el producto completo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			refresh()
			body, err := withTenant([]byte(args[0]), tenant)
			if err != nil {
				return err
			}
			status, b, err := cl.do("POST", "/v1/products", body)
			if err != nil {
				return err
			}
			cl.print(status, b)
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:   "obtener <product_id>",
		Short: "Lee un producto por ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			refresh()
			body, _ := json.Marshal(map[string]string{"tenant_id": tenant, "product_id": args[0]})
			status, b, err := cl.do("POST", "/v1/products/get", body)
			if err != nil {
				return err
			}
			cl.print(status, b)
			return nil
		},
	}

	var limit int
	var next string
	listCmd := &cobra.Command{
		Use:   "listar",
		Short: "Lista productos (modo cursor)",
		RunE: func(cmd *cobra.Command, args []string) error {
			refresh()
			req := map[string]any{"tenant_id": tenant, "limit": limit}
			if next != "" {
				req["next"] = next
			}
			body, _ := json.Marshal(req)
			status, b, err := cl.do("POST", "/v1/products/list", body)
			if err != nil {
				return err
			}
			cl.print(status, b)
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 10, "items por página (1..100)")
	listCmd.Flags().StringVar(&next, "next", "", "cursor de la página anterior")

	var page, size int
	pagesCmd := &cobra.Command{
		Use:   "paginas",
		Short: "Lista productos (páginas numeradas con totales)",
		RunE: func(cmd *cobra.Command, args []string) error {
			refresh()
			body, _ := json.Marshal(map[string]any{"tenant_id": tenant, "page": page, "size": size})
			status, b, err := cl.do("POST", "/v1/products/pages", body)
			if err != nil {
				return err
			}
			cl.print(status, b)
			return nil
		},
	}
	pagesCmd.Flags().IntVar(&page, "page", 0, "número de página (desde 0)")
	pagesCmd.Flags().IntVar(&size, "size", 10, "items por página (1..100)")

	updateCmd := &cobra.Command{
		Use:   "actualizar <product_id> <json>",
		Short: "Actualiza campos de un producto existente",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			refresh()
			status, b, err := cl.do("PUT", "/v1/products/"+args[0], []byte(args[1]))
			if err != nil {
				return err
			}
			cl.print(status, b)
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "eliminar <product_id>",
		Short: "Elimina un producto y muestra el snapshot borrado",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			refresh()
			status, b, err := cl.do("DELETE", "/v1/products/"+args[0], nil)
			if err != nil {
				return err
			}
			cl.print(status, b)
			return nil
		},
	}

	root.AddCommand(createCmd, getCmd, listCmd, pagesCmd, updateCmd, deleteCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withTenant agrega tenant_id al JSON del producto si no vino y hay uno
// configurado.
func withTenant(raw []byte, tenant string) ([]byte, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("json inválido: %w", err)
	}
	if tenant != "" {
		if _, ok := m["tenant_id"]; !ok {
			m["tenant_id"] = tenant
		}
	}
	return json.Marshal(m)
}

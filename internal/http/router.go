// Package http arma el router del servicio: middlewares transversales,
// endpoints de salud y las rutas del catálogo detrás del middleware de auth.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dropDatabas3/catalogo/internal/auth"
	catalogctrl "github.com/dropDatabas3/catalogo/internal/http/controllers/catalog"
	mw "github.com/dropDatabas3/catalogo/internal/http/middlewares"
)

// RouterDeps agrupa las dependencias ya construidas que el router necesita.
type RouterDeps struct {
	Verifier           *auth.Verifier
	Catalog            *catalogctrl.Controllers
	CORSAllowedOrigins []string
	MetricsRegistry    prometheus.Registerer
}

// NewRouter construye el handler raíz del servicio.
func NewRouter(deps RouterDeps) http.Handler {
	metricsHandler, withMetrics := RegisterMetrics(deps.MetricsRegistry)

	r := chi.NewRouter()
	r.Use(
		mw.WithRequestID(),
		mw.WithLogging(),
		withMetrics,
		mw.WithRecover(),
		mw.WithCORS(deps.CORSAllowedOrigins),
	)

	// Health y métricas, sin auth.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metricsHandler)

	// Catálogo: todo detrás del bearer token.
	r.Route("/v1/products", func(pr chi.Router) {
		pr.Use(mw.RequireAuth(deps.Verifier))
		pr.Post("/", deps.Catalog.Create)
		pr.Post("/get", deps.Catalog.Get)
		pr.Post("/list", deps.Catalog.List)
		pr.Post("/pages", deps.Catalog.ListPages)
		pr.Put("/{product_id}", deps.Catalog.Update)
		pr.Delete("/{product_id}", deps.Catalog.Delete)
	})

	return r
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/catalogo/internal/auth"
	"github.com/dropDatabas3/catalogo/internal/catalog"
	"github.com/dropDatabas3/catalogo/internal/config"
	httpx "github.com/dropDatabas3/catalogo/internal/http"
	catalogctrl "github.com/dropDatabas3/catalogo/internal/http/controllers/catalog"
	"github.com/dropDatabas3/catalogo/internal/kv"
	kvmemory "github.com/dropDatabas3/catalogo/internal/kv/memory"
	kvpostgres "github.com/dropDatabas3/catalogo/internal/kv/postgres"
	"github.com/dropDatabas3/catalogo/internal/observability/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "catalogod:", err)
		os.Exit(1)
	}
}

func run() error {
	// .env si existe; después manda el entorno del sistema.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.App.LogLevel,
		ServiceName: "catalogod",
	})
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ─── Almacén ───
	var store kv.Store
	switch cfg.Storage.Driver {
	case "memory":
		store = kvmemory.New()
	case "postgres":
		pg, err := kvpostgres.New(ctx, cfg.Storage.DSN)
		if err != nil {
			return err
		}
		defer pg.Close()
		store = pg
	default:
		return fmt.Errorf("storage driver desconocido: %q", cfg.Storage.Driver)
	}
	log.Info("almacén listo", logger.Driver(cfg.Storage.Driver))

	// ─── Autoridad de tokens ───
	var authority auth.Authority
	switch cfg.Authority.Kind {
	case "http":
		if cfg.Authority.URL == "" {
			return errors.New("authority.url es obligatorio con authority.kind=http")
		}
		authority = auth.NewHTTPAuthority(cfg.Authority.URL, cfg.AuthorityTimeout())
	case "redis":
		ra := auth.NewRedisAuthority(cfg.Authority.Redis.Addr, cfg.Authority.Redis.DB, cfg.Authority.Redis.Prefix)
		defer func() { _ = ra.Close() }()
		authority = ra
	default:
		return fmt.Errorf("authority kind desconocido: %q", cfg.Authority.Kind)
	}

	// ─── Wiring ───
	verifier := auth.NewVerifier(authority)
	guard := auth.TenantGuard{RequireTenantClaim: cfg.Auth.RequireTenantClaim}
	svc := catalog.New(store, guard)

	handler := httpx.NewRouter(httpx.RouterDeps{
		Verifier:           verifier,
		Catalog:            catalogctrl.NewControllers(svc),
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ServerReadTimeout(),
		WriteTimeout: cfg.ServerWriteTimeout(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("servidor escuchando", logger.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("apagando servidor")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

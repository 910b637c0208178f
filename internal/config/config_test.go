package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/catalogo/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.App.Env)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "memory", cfg.Storage.Driver)
	require.Equal(t, "http", cfg.Authority.Kind)
	require.False(t, cfg.Auth.RequireTenantClaim)
}

func TestLoad_YAMLyOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
app:
  env: prod
server:
  addr: ":9090"
storage:
  driver: postgres
  dsn: "postgres://localhost/catalogo"
authority:
  kind: redis
  redis:
    addr: "localhost:6379"
auth:
  require_tenant_claim: true
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("SERVER_ADDR", ":7070") // el entorno pisa al YAML

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.App.Env)
	require.Equal(t, ":7070", cfg.Server.Addr)
	require.Equal(t, "postgres", cfg.Storage.Driver)
	require.Equal(t, "redis", cfg.Authority.Kind)
	require.Equal(t, "localhost:6379", cfg.Authority.Redis.Addr)
	require.True(t, cfg.Auth.RequireTenantClaim)
}

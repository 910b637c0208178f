// Package config carga la configuración del servicio desde YAML con
// overrides por variables de entorno. La configuración se resuelve una sola
// vez en main y se pasa como struct explícito a los constructores: ningún
// código del camino de request consulta el entorno.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | prod
		Env      string `yaml:"env"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
		ReadTimeout        string   `yaml:"read_timeout"`
		WriteTimeout       string   `yaml:"write_timeout"`
	} `yaml:"server"`

	Storage struct {
		// memory | postgres
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"storage"`

	Authority struct {
		// http | redis
		Kind    string `yaml:"kind"`
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
		Redis   struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"authority"`

	Auth struct {
		// RequireTenantClaim apaga el modo legacy permisivo: con true, un
		// token sin tenant_id se rechaza en el guard.
		RequireTenantClaim bool `yaml:"require_tenant_claim"`
	} `yaml:"auth"`
}

// Load lee el YAML (opcional) y aplica defaults y overrides de entorno.
func Load(path string) (*Config, error) {
	var c Config

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("config: yaml inválido: %w", err)
		}
	}

	// overrides de entorno
	overrideStr(&c.App.Env, "APP_ENV")
	overrideStr(&c.App.LogLevel, "LOG_LEVEL")
	overrideStr(&c.Server.Addr, "SERVER_ADDR")
	overrideStr(&c.Storage.Driver, "STORAGE_DRIVER")
	overrideStr(&c.Storage.DSN, "STORAGE_DSN")
	overrideStr(&c.Authority.Kind, "AUTHORITY_KIND")
	overrideStr(&c.Authority.URL, "AUTHORITY_URL")
	overrideStr(&c.Authority.Redis.Addr, "AUTHORITY_REDIS_ADDR")
	overrideStr(&c.Authority.Redis.Prefix, "AUTHORITY_REDIS_PREFIX")
	overrideInt(&c.Authority.Redis.DB, "AUTHORITY_REDIS_DB")
	overrideBool(&c.Auth.RequireTenantClaim, "AUTH_REQUIRE_TENANT_CLAIM")

	// sane defaults
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "10s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "30s"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Authority.Kind == "" {
		c.Authority.Kind = "http"
	}
	if c.Authority.Timeout == "" {
		c.Authority.Timeout = "10s"
	}

	return &c, nil
}

// AuthorityTimeout parsea el timeout de la autoridad (default 10s).
func (c *Config) AuthorityTimeout() time.Duration {
	return parseDur(c.Authority.Timeout, 10*time.Second)
}

// ServerReadTimeout parsea el read timeout del server.
func (c *Config) ServerReadTimeout() time.Duration {
	return parseDur(c.Server.ReadTimeout, 10*time.Second)
}

// ServerWriteTimeout parsea el write timeout del server.
func (c *Config) ServerWriteTimeout() time.Duration {
	return parseDur(c.Server.WriteTimeout, 30*time.Second)
}

func parseDur(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func overrideStr(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, env string) {
	if v := os.Getenv(env); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func overrideBool(dst *bool, env string) {
	if v := os.Getenv(env); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

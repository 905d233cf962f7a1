package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del servicio.
// Se carga de YAML y se pisa con variables de entorno (CERTERO_*).
type Config struct {
	App struct {
		// dev | prod
		Env      string `yaml:"env"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Storage struct {
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxConns        int    `yaml:"max_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		Kind  string `yaml:"kind"` // memory | redis
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	Auth struct {
		// JWTSecret firma/verifica los bearer tokens de los endpoints de
		// escritura (HS256). Obligatorio fuera de dev.
		JWTSecret string `yaml:"jwt_secret"`
		Issuer    string `yaml:"issuer"`
	} `yaml:"auth"`

	Notify struct {
		Enabled bool   `yaml:"enabled"`
		// Interval entre scans de expiración (duración Go, ej: "12h").
		Interval string `yaml:"interval"`
		// Window de anticipación: se notifica lo que expira dentro de esta
		// ventana (ej: "720h" = 30 días).
		Window string `yaml:"window"`
		// SkipWeekends evita mandar digests sábado y domingo.
		SkipWeekends bool     `yaml:"skip_weekends"`
		Recipients   []string `yaml:"recipients"`
		SMTP         struct {
			Host    string `yaml:"host"`
			Port    int    `yaml:"port"`
			From    string `yaml:"from"`
			User    string `yaml:"user"`
			Pass    string `yaml:"pass"`
			TLSMode string `yaml:"tls_mode"` // auto | ssl | none
		} `yaml:"smtp"`
	} `yaml:"notify"`
}

// InvalidConfigurationError indica una variable requerida sin setear.
type InvalidConfigurationError struct {
	Var string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("config: required variable %q is not set", e.Var)
}

// Load lee el YAML (si path no es vacío) y aplica overrides de entorno.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) defaults() {
	c.App.Env = "dev"
	c.App.LogLevel = "info"
	c.Server.Addr = ":8080"
	c.Cache.Kind = "memory"
	c.Notify.Interval = "12h"
	c.Notify.Window = "720h"
}

// applyEnv pisa valores con CERTERO_*. Solo las llaves operativas; el resto
// vive en el YAML.
func (c *Config) applyEnv() {
	if v := os.Getenv("CERTERO_ENV"); v != "" {
		c.App.Env = v
	}
	if v := os.Getenv("CERTERO_LOG_LEVEL"); v != "" {
		c.App.LogLevel = v
	}
	if v := os.Getenv("CERTERO_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("CERTERO_DSN"); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv("CERTERO_CACHE_KIND"); v != "" {
		c.Cache.Kind = v
	}
	if v := os.Getenv("CERTERO_REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("CERTERO_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("CERTERO_SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Notify.SMTP.Port = p
		}
	}
}

// Validate asegura que las variables requeridas estén seteadas.
// Falla con *InvalidConfigurationError nombrando la primera faltante;
// nunca se sustituye un default en silencio.
func (c *Config) Validate(required ...string) error {
	for _, v := range required {
		val, known := c.lookup(v)
		if !known {
			return fmt.Errorf("config: unknown required variable %q", v)
		}
		if strings.TrimSpace(val) == "" {
			return &InvalidConfigurationError{Var: v}
		}
	}
	return nil
}

// lookup resuelve una llave con puntos a su valor actual.
func (c *Config) lookup(key string) (string, bool) {
	switch key {
	case "server.addr":
		return c.Server.Addr, true
	case "storage.dsn":
		return c.Storage.DSN, true
	case "auth.jwt_secret":
		return c.Auth.JWTSecret, true
	case "notify.smtp.host":
		return c.Notify.SMTP.Host, true
	case "notify.smtp.from":
		return c.Notify.SMTP.From, true
	case "cache.redis.addr":
		return c.Cache.Redis.Addr, true
	default:
		return "", false
	}
}

// NotifyInterval parsea Notify.Interval con fallback a 12h.
func (c *Config) NotifyInterval() time.Duration {
	if d, err := time.ParseDuration(c.Notify.Interval); err == nil && d > 0 {
		return d
	}
	return 12 * time.Hour
}

// NotifyWindow parsea Notify.Window con fallback a 30 días.
func (c *Config) NotifyWindow() time.Duration {
	if d, err := time.ParseDuration(c.Notify.Window); err == nil && d > 0 {
		return d
	}
	return 720 * time.Hour
}

// MemoryCacheTTL parsea Cache.Memory.DefaultTTL (0 si no está seteado).
func (c *Config) MemoryCacheTTL() time.Duration {
	if d, err := time.ParseDuration(c.Cache.Memory.DefaultTTL); err == nil && d > 0 {
		return d
	}
	return 0
}

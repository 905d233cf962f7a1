// Package cache provee un cache chico multi-backend para resultados
// derivados (clasificación self-signed, lookups de AKI) keyed por
// fingerprint. Nada acá es fuente de verdad: perder el cache solo cuesta
// re-computar.
//
// Backends:
//   - memory (in-process, dev/testing)
//   - redis (distribuido, producción)
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Client define las operaciones de cache.
type Client interface {
	// Get obtiene un valor. Retorna ErrNotFound si no existe.
	Get(ctx context.Context, key string) (string, error)

	// Set guarda un valor con TTL. Si ttl es 0, no expira.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete elimina una key.
	Delete(ctx context.Context, key string) error

	// Ping verifica la conexión.
	Ping(ctx context.Context) error

	// Close cierra la conexión.
	Close() error
}

// Config para crear un cliente.
type Config struct {
	Kind     string // "memory" | "redis"
	Addr     string
	Password string
	DB       int
	Prefix   string
	// DefaultTTL aplica al backend memory cuando Set recibe ttl 0.
	DefaultTTL time.Duration
}

// ErrNotFound indica que la key no existe en el cache.
var ErrNotFound = errors.New("cache: key not found")

// IsNotFound verifica si el error es ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// New crea el cliente según cfg.Kind. Kind vacío cae en memory.
func New(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Kind) {
	case "", "memory":
		return NewMemory(cfg.Prefix, cfg.DefaultTTL), nil
	case "redis":
		return NewRedis(cfg)
	default:
		return nil, fmt.Errorf("cache: unknown kind %q", cfg.Kind)
	}
}

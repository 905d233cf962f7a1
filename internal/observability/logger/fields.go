package logger

import (
	"time"

	"go.uber.org/zap"
)

// Campos estándar - HTTP

// RequestID crea un campo para el ID del request.
func RequestID(v string) zap.Field {
	return zap.String("request_id", v)
}

// Method crea un campo para el método HTTP.
func Method(v string) zap.Field {
	return zap.String("method", v)
}

// Path crea un campo para el path del request.
func Path(v string) zap.Field {
	return zap.String("path", v)
}

// Status crea un campo para el status code HTTP.
func Status(v int) zap.Field {
	return zap.Int("status", v)
}

// DurationMs crea un campo para la duración en milisegundos.
func DurationMs(v int64) zap.Field {
	return zap.Int64("duration_ms", v)
}

// Bytes crea un campo para los bytes de respuesta.
func Bytes(v int) zap.Field {
	return zap.Int("bytes", v)
}

// Campos estándar - dominio certificados

// CertName crea un campo para el nombre de un certificado del inventario.
func CertName(v string) zap.Field {
	return zap.String("cert_name", v)
}

// Fingerprint crea un campo para un fingerprint SHA-256 en hex.
func Fingerprint(v string) zap.Field {
	return zap.String("fingerprint", v)
}

// Serial crea un campo para el serial de un certificado (hex).
func Serial(v string) zap.Field {
	return zap.String("serial", v)
}

// KeyType crea un campo para un identificador del catálogo de claves.
func KeyType(v string) zap.Field {
	return zap.String("key_type", v)
}

// NotAfter crea un campo para la fecha de expiración.
func NotAfter(v time.Time) zap.Field {
	return zap.Time("not_after", v)
}

// Campos estándar - sistema

// Op crea un campo para la operación actual.
func Op(v string) zap.Field {
	return zap.String("op", v)
}

// Layer crea un campo para la capa (controller, service, repository).
func Layer(v string) zap.Field {
	return zap.String("layer", v)
}

// Err crea un campo para un error.
func Err(err error) zap.Field {
	return zap.Error(err)
}

// Campos genéricos

// Count crea un campo para un conteo.
func Count(v int) zap.Field {
	return zap.Int("count", v)
}

// ID crea un campo genérico para un ID.
func ID(v string) zap.Field {
	return zap.String("id", v)
}

// String crea un campo string genérico.
func String(key, v string) zap.Field {
	return zap.String(key, v)
}

// Int crea un campo int genérico.
func Int(key string, v int) zap.Field {
	return zap.Int(key, v)
}

// Bool crea un campo bool genérico.
func Bool(key string, v bool) zap.Field {
	return zap.Bool(key, v)
}

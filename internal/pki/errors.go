package pki

import (
	"fmt"
	"strings"
)

// Los errores del paquete son tipos concretos, NO sentinels: cada uno carga
// el contexto que el caller necesita para decidir (catálogo válido, extensión
// faltante, algoritmo rechazado). Se matchean con errors.As.
//
// Distinción crítica: InvalidSignatureError (el intento de verificación fue
// bien formado y la criptografía dijo NO) nunca se mezcla con
// UnsupportedAlgorithmError (nos negamos a intentar verificar). El
// clasificador self-signed depende de esa distinción.

// ParseError indica contenido PEM malformado o de tipo inesperado.
type ParseError struct {
	// What describe qué se intentaba parsear ("certificate", "private key", "csr").
	What string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pki: cannot parse %s: %v", e.What, e.Err)
	}
	return fmt.Sprintf("pki: cannot parse %s", e.What)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnsupportedKeyTypeError indica un identificador fuera del catálogo de
// generación, o una curva del catálogo sin implementación disponible.
type UnsupportedKeyTypeError struct {
	KeyType   string
	Supported []KeyType
	Detail    string
}

func (e *UnsupportedKeyTypeError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("pki: unsupported key type %q: %s", e.KeyType, e.Detail)
	}
	names := make([]string, len(e.Supported))
	for i, kt := range e.Supported {
		names[i] = string(kt)
	}
	return fmt.Sprintf("pki: unsupported key type %q, supported: %s", e.KeyType, strings.Join(names, ","))
}

// UnsupportedAlgorithmError indica un esquema de firma reconocido pero
// deliberadamente no soportado (ej: RSA-PSS).
type UnsupportedAlgorithmError struct {
	Algorithm string
	Reason    string
}

func (e *UnsupportedAlgorithmError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("pki: unsupported signature algorithm %s: %s", e.Algorithm, e.Reason)
	}
	return fmt.Sprintf("pki: unsupported signature algorithm %s", e.Algorithm)
}

// InvalidSignatureError indica que la verificación criptográfica falló, o que
// la combinación clave/esquema de firma hace la verificación imposible.
type InvalidSignatureError struct {
	Reason string
}

func (e *InvalidSignatureError) Error() string {
	if e.Reason != "" {
		return "pki: invalid signature: " + e.Reason
	}
	return "pki: invalid signature"
}

// ExtensionNotFoundError indica que una extensión X.509 requerida no está
// presente en el certificado.
type ExtensionNotFoundError struct {
	Extension string
}

func (e *ExtensionNotFoundError) Error() string {
	return fmt.Sprintf("pki: certificate has no %s extension", e.Extension)
}

package pki

import (
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"

	"github.com/dropDatabas3/certero/internal/observability/logger"
)

// Fingerprint calcula el digest SHA-256 del certificado codificado (DER).
// Dos fingerprints iguales se tratan como el mismo certificado para matching:
// es content-addressing, no una defensa contra colisiones adversariales.
func Fingerprint(cert *x509.Certificate) [sha256.Size]byte {
	return sha256.Sum256(cert.Raw)
}

// FingerprintHex es Fingerprint en hex minúscula, para persistencia y APIs.
func FingerprintHex(cert *x509.Certificate) string {
	sum := Fingerprint(cert)
	return hex.EncodeToString(sum[:])
}

// GetAuthorityKey retorna el key identifier de la extensión Authority Key
// Identifier, en hex minúscula.
//
// Parseo fallido → *ParseError. Extensión ausente → *ExtensionNotFoundError;
// la ausencia se maneja explícita, nunca como string vacío.
func GetAuthorityKey(body string) (string, error) {
	cert, err := ParseCertificate(body)
	if err != nil {
		return "", err
	}
	if len(cert.AuthorityKeyId) == 0 {
		return "", &ExtensionNotFoundError{Extension: "Authority Key Identifier"}
	}
	return hex.EncodeToString(cert.AuthorityKeyId), nil
}

// PEMRecord es cualquier registro almacenado que expone un cuerpo PEM.
// El matcher trata los registros de forma opaca más allá de ese campo.
type PEMRecord interface {
	PEMBody() string
}

// FindMatchingByHash compara el fingerprint SHA-256 de cert contra el de
// cada candidato (parseando su body PEM) y retorna los que matchean,
// preservando el orden de entrada.
//
// Política ante un candidato que no parsea: se SALTEA y se loguea en warn.
// El inventario puede arrastrar filas con PEM corrupto y una fila mala no
// puede abortar un scan completo de rotación. Lista vacía y cero matches
// retornan slice vacío, no error.
func FindMatchingByHash[T PEMRecord](cert *x509.Certificate, candidates []T) []T {
	want := Fingerprint(cert)

	matching := make([]T, 0)
	for i, c := range candidates {
		parsed, err := ParseCertificate(c.PEMBody())
		if err != nil {
			logger.Named("pki").Warn("skipping unparsable candidate in fingerprint scan",
				logger.Int("index", i), logger.Err(err))
			continue
		}
		if Fingerprint(parsed) == want {
			matching = append(matching, c)
		}
	}
	return matching
}

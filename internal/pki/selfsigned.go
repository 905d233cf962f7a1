package pki

import (
	"crypto/x509"
	"errors"
	"fmt"
)

// SelfSignedStatus es el resultado tri-estado de la clasificación.
// "No pudimos verificar" NO es lo mismo que "no es self-signed": adivinar
// false para un certificado in-verificable lo clasificaría mal como
// no-confiable-pero-conocido cuando la respuesta real es "no sabemos".
type SelfSignedStatus int

const (
	SelfSignedUnknown SelfSignedStatus = iota
	SelfSigned
	NotSelfSigned
)

func (s SelfSignedStatus) String() string {
	switch s {
	case SelfSigned:
		return "self-signed"
	case NotSelfSigned:
		return "not-self-signed"
	default:
		return "unknown"
	}
}

// ClassifySelfSigned corre el verificador con la propia clave pública del
// certificado.
//
//   - Verificación OK → SelfSigned.
//   - InvalidSignatureError → NotSelfSigned. Resultado negativo esperado,
//     no es un error (err == nil).
//   - UnsupportedAlgorithmError → SelfSignedUnknown + error escalado: el
//     clasificador no puede responder y no va a adivinar.
func ClassifySelfSigned(cert *x509.Certificate) (SelfSignedStatus, error) {
	err := CheckSignature(cert, cert.PublicKey)
	if err == nil {
		return SelfSigned, nil
	}

	var invalid *InvalidSignatureError
	if errors.As(err, &invalid) {
		return NotSelfSigned, nil
	}

	var unsupported *UnsupportedAlgorithmError
	if errors.As(err, &unsupported) {
		return SelfSignedUnknown, fmt.Errorf("pki: cannot determine self-signed status: %w", err)
	}

	return SelfSignedUnknown, err
}

// IsSelfSigned es el wrapper booleano de ClassifySelfSigned.
// Un estado Unknown escala como error; jamás se degrada a false.
func IsSelfSigned(cert *x509.Certificate) (bool, error) {
	status, err := ClassifySelfSigned(cert)
	if err != nil {
		return false, err
	}
	return status == SelfSigned, nil
}

package pki_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"errors"
	"testing"

	"github.com/dropDatabas3/certero/internal/pki"
)

func TestCheckSignature_RSASelfSigned(t *testing.T) {
	key := newRSAKey(t)
	_, cert := selfSignedCert(t, key, nil)

	if err := pki.CheckSignature(cert, &key.PublicKey); err != nil {
		t.Fatalf("CheckSignature: %v", err)
	}
}

func TestCheckSignature_ECDSASelfSigned(t *testing.T) {
	key := newECKey(t)
	_, cert := selfSignedCert(t, key, nil)

	if err := pki.CheckSignature(cert, &key.PublicKey); err != nil {
		t.Fatalf("CheckSignature: %v", err)
	}
}

func TestCheckSignature_IssuedLeafAgainstCA(t *testing.T) {
	caKey := newRSAKey(t)
	_, caCert := selfSignedCert(t, caKey, nil)
	leafKey := newECKey(t)
	_, leaf := issuedCert(t, caCert, caKey, leafKey)

	// Round-trip: el leaf verifica contra la clave pública de su emisor.
	if err := pki.CheckSignature(leaf, &caKey.PublicKey); err != nil {
		t.Fatalf("CheckSignature against issuer: %v", err)
	}
}

func TestCheckSignature_WrongIssuerKey(t *testing.T) {
	caKey := newRSAKey(t)
	_, caCert := selfSignedCert(t, caKey, nil)
	leafKey := newECKey(t)
	_, leaf := issuedCert(t, caCert, caKey, leafKey)

	otherKey := newRSAKey(t)
	err := pki.CheckSignature(leaf, &otherKey.PublicKey)
	var inv *pki.InvalidSignatureError
	if !errors.As(err, &inv) {
		t.Fatalf("error = %v, want *InvalidSignatureError", err)
	}
}

func TestCheckSignature_PSSAlwaysUnsupported(t *testing.T) {
	key := newRSAKey(t)
	_, cert := selfSignedCert(t, key, func(tmpl *x509.Certificate) {
		tmpl.SignatureAlgorithm = x509.SHA256WithRSAPSS
	})

	// La firma es criptográficamente válida, pero PSS se rechaza SIEMPRE,
	// antes de intentar verificar.
	err := pki.CheckSignature(cert, &key.PublicKey)
	var unsup *pki.UnsupportedAlgorithmError
	if !errors.As(err, &unsup) {
		t.Fatalf("error = %v, want *UnsupportedAlgorithmError", err)
	}
	var inv *pki.InvalidSignatureError
	if errors.As(err, &inv) {
		t.Fatal("PSS must not be reported as invalid signature")
	}
}

func TestCheckSignature_ECKeyWithRSASignature(t *testing.T) {
	// Cert firmado con RSA, clave candidata EC: el descriptor de firma no es
	// ECDSA-typed, mismatch de tipos es siempre inválido.
	rsaKey := newRSAKey(t)
	_, cert := selfSignedCert(t, rsaKey, nil)
	ecKey := newECKey(t)

	err := pki.CheckSignature(cert, &ecKey.PublicKey)
	var inv *pki.InvalidSignatureError
	if !errors.As(err, &inv) {
		t.Fatalf("error = %v, want *InvalidSignatureError", err)
	}
}

func TestCheckSignature_RSAKeyWithECDSASignature(t *testing.T) {
	ecKey := newECKey(t)
	_, cert := selfSignedCert(t, ecKey, nil)
	rsaKey := newRSAKey(t)

	err := pki.CheckSignature(cert, &rsaKey.PublicKey)
	var inv *pki.InvalidSignatureError
	if !errors.As(err, &inv) {
		t.Fatalf("error = %v, want *InvalidSignatureError", err)
	}
}

func TestCheckSignature_UnknownKeyFamily(t *testing.T) {
	key := newRSAKey(t)
	_, cert := selfSignedCert(t, key, nil)

	edPub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("ed25519 keygen: %v", err)
	}

	// Una clave que no es RSA ni EC nunca se saltea en silencio.
	err = pki.CheckSignature(cert, edPub)
	var inv *pki.InvalidSignatureError
	if !errors.As(err, &inv) {
		t.Fatalf("error = %v, want *InvalidSignatureError", err)
	}
}

func TestClassifyPublicKey(t *testing.T) {
	rsaKey := newRSAKey(t)
	ecKey := newECKey(t)

	if got := pki.ClassifyPublicKey(&rsaKey.PublicKey); got != pki.KindRSA {
		t.Fatalf("rsa kind = %v", got)
	}
	if got := pki.ClassifyPublicKey(&ecKey.PublicKey); got != pki.KindECDSA {
		t.Fatalf("ecdsa kind = %v", got)
	}
	if got := pki.ClassifyPublicKey("not a key"); got != pki.KindUnknown {
		t.Fatalf("string kind = %v", got)
	}
}

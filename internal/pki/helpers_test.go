package pki_test

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"testing"
	"time"
)

// Helpers de fixtures: generamos todo el material en memoria para que los
// tests no dependan de PEMs estáticos que expiran o se corrompen.

func certTemplate(cn string) *x509.Certificate {
	return &x509.Certificate{
		SerialNumber:          big.NewInt(time.Now().UnixNano()),
		Subject:               pkix.Name{CommonName: cn},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		BasicConstraintsValid: true,
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		SubjectKeyId:          []byte{0xde, 0xad, 0xbe, 0xef},
	}
}

func encodeCertPEM(der []byte) string {
	return string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))
}

// newRSAKey genera una clave RSA 2048 de test.
func newRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa keygen: %v", err)
	}
	return key
}

// newECKey genera una clave ECDSA P-256 de test.
func newECKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("ecdsa keygen: %v", err)
	}
	return key
}

// selfSignedCert crea un certificado self-signed con la clave dada.
// mutate permite ajustar el template (ej: forzar PSS) antes de firmar.
func selfSignedCert(t *testing.T, key crypto.Signer, mutate func(*x509.Certificate)) (string, *x509.Certificate) {
	t.Helper()
	tmpl := certTemplate("test-root")
	if mutate != nil {
		mutate(tmpl)
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, key.Public(), key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("parse created certificate: %v", err)
	}
	return encodeCertPEM(der), cert
}

// issuedCert crea un certificado firmado por la CA dada (no self-signed).
func issuedCert(t *testing.T, caCert *x509.Certificate, caKey crypto.Signer, leafKey crypto.Signer) (string, *x509.Certificate) {
	t.Helper()
	tmpl := certTemplate("test-leaf")
	tmpl.IsCA = false
	tmpl.KeyUsage = x509.KeyUsageDigitalSignature
	tmpl.SubjectKeyId = []byte{0x11, 0x22, 0x33, 0x44}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, caCert, leafKey.Public(), caKey)
	if err != nil {
		t.Fatalf("create leaf certificate: %v", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("parse leaf certificate: %v", err)
	}
	return encodeCertPEM(der), cert
}

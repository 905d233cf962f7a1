package pki

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"
)

// Los parsers reciben string, no []byte: el contrato del caller es entregar
// texto PEM. Binario crudo no compila contra esta API, que es exactamente el
// precondicionamiento que queremos (el type checker hace el assert).

const (
	pemTypeCertificate = "CERTIFICATE"
	pemTypeCSR         = "CERTIFICATE REQUEST"
	pemTypeCSRLegacy   = "NEW CERTIFICATE REQUEST"
	pemTypePKCS8       = "PRIVATE KEY"
	pemTypeRSA         = "RSA PRIVATE KEY"
	pemTypeEC          = "EC PRIVATE KEY"
)

// decodeBlock decodifica el primer bloque PEM del body.
func decodeBlock(what, body string) (*pem.Block, error) {
	block, _ := pem.Decode([]byte(body))
	if block == nil {
		return nil, &ParseError{What: what, Err: errors.New("no PEM block found")}
	}
	return block, nil
}

// ParseCertificate parsea un certificado X.509 desde texto PEM.
// El objeto retornado es inmutable; nunca se modifica después del parseo.
func ParseCertificate(body string) (*x509.Certificate, error) {
	block, err := decodeBlock("certificate", body)
	if err != nil {
		return nil, err
	}
	if block.Type != pemTypeCertificate {
		return nil, &ParseError{What: "certificate", Err: fmt.Errorf("unexpected PEM block type %q", block.Type)}
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, &ParseError{What: "certificate", Err: err}
	}
	return cert, nil
}

// ParsePrivateKey parsea una clave privada PEM sin passphrase.
// Soporta PKCS#1 (RSA), SEC1 (EC) y PKCS#8.
func ParsePrivateKey(body string) (crypto.Signer, error) {
	block, err := decodeBlock("private key", body)
	if err != nil {
		return nil, err
	}
	// Claves cifradas quedan explícitamente afuera (sin soporte de passphrase).
	if procType, ok := block.Headers["Proc-Type"]; ok && strings.Contains(procType, "ENCRYPTED") {
		return nil, &ParseError{What: "private key", Err: errors.New("encrypted private keys are not supported")}
	}

	switch block.Type {
	case pemTypeRSA:
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, &ParseError{What: "private key", Err: err}
		}
		return key, nil
	case pemTypeEC:
		key, err := x509.ParseECPrivateKey(block.Bytes)
		if err != nil {
			return nil, &ParseError{What: "private key", Err: err}
		}
		return key, nil
	case pemTypePKCS8:
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, &ParseError{What: "private key", Err: err}
		}
		signer, ok := key.(crypto.Signer)
		if !ok {
			return nil, &ParseError{What: "private key", Err: fmt.Errorf("unsupported key type %T", key)}
		}
		return signer, nil
	default:
		return nil, &ParseError{What: "private key", Err: fmt.Errorf("unexpected PEM block type %q", block.Type)}
	}
}

// ParseCSR parsea un certificate signing request desde texto PEM.
func ParseCSR(body string) (*x509.CertificateRequest, error) {
	block, err := decodeBlock("csr", body)
	if err != nil {
		return nil, err
	}
	if block.Type != pemTypeCSR && block.Type != pemTypeCSRLegacy {
		return nil, &ParseError{What: "csr", Err: fmt.Errorf("unexpected PEM block type %q", block.Type)}
	}
	csr, err := x509.ParseCertificateRequest(block.Bytes)
	if err != nil {
		return nil, &ParseError{What: "csr", Err: err}
	}
	return csr, nil
}

// EncodePrivateKey serializa una clave (generada o parseada) a PEM PKCS#8.
func EncodePrivateKey(key crypto.Signer) (string, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return "", fmt.Errorf("pki: cannot marshal private key: %w", err)
	}
	out := pem.EncodeToMemory(&pem.Block{Type: pemTypePKCS8, Bytes: der})
	return string(out), nil
}

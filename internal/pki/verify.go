package pki

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
)

// PublicKeyKind es la variante explícita de familias de clave pública que el
// verificador entiende. Agregar una familia nueva es agregar una variante
// acá y su regla en keyFamilies, no sumar type-switches sueltos.
type PublicKeyKind int

const (
	KindUnknown PublicKeyKind = iota
	KindRSA
	KindECDSA
)

func (k PublicKeyKind) String() string {
	switch k {
	case KindRSA:
		return "rsa"
	case KindECDSA:
		return "ecdsa"
	default:
		return "unknown"
	}
}

// keyFamily empaqueta una variante con su regla de verificación.
type keyFamily struct {
	Kind   PublicKeyKind
	verify func(cert *x509.Certificate, pub crypto.PublicKey) error
}

var keyFamilies = []keyFamily{
	{Kind: KindRSA, verify: verifyRSA},
	{Kind: KindECDSA, verify: verifyECDSA},
}

// ClassifyPublicKey mapea una clave pública a su variante.
func ClassifyPublicKey(pub crypto.PublicKey) PublicKeyKind {
	switch pub.(type) {
	case *rsa.PublicKey:
		return KindRSA
	case *ecdsa.PublicKey:
		return KindECDSA
	default:
		return KindUnknown
	}
}

// rsaHashes mapea los algoritmos de firma RSA PKCS#1 v1.5 que aceptamos al
// hash declarado. Las variantes PSS NO están acá a propósito.
var rsaHashes = map[x509.SignatureAlgorithm]crypto.Hash{
	x509.MD5WithRSA:    crypto.MD5,
	x509.SHA1WithRSA:   crypto.SHA1,
	x509.SHA256WithRSA: crypto.SHA256,
	x509.SHA384WithRSA: crypto.SHA384,
	x509.SHA512WithRSA: crypto.SHA512,
}

// ecdsaHashes mapea los algoritmos de firma tipados ECDSA al hash declarado.
var ecdsaHashes = map[x509.SignatureAlgorithm]crypto.Hash{
	x509.ECDSAWithSHA1:   crypto.SHA1,
	x509.ECDSAWithSHA256: crypto.SHA256,
	x509.ECDSAWithSHA384: crypto.SHA384,
	x509.ECDSAWithSHA512: crypto.SHA512,
}

func isRSAPSS(alg x509.SignatureAlgorithm) bool {
	switch alg {
	case x509.SHA256WithRSAPSS, x509.SHA384WithRSAPSS, x509.SHA512WithRSAPSS:
		return true
	}
	return false
}

// CheckSignature verifica la firma del certificado contra la clave pública
// candidata del emisor. Retorna nil cuando la firma es criptográficamente
// válida bajo esa clave.
//
// Fallos posibles, que el caller NO debe confundir:
//   - *UnsupportedAlgorithmError: esquema reconocido pero deliberadamente no
//     soportado (RSA-PSS y sus parámetros libres, imposibles de verificar de
//     forma no ambigua para un certificado arbitrario).
//   - *InvalidSignatureError: la verificación se pudo intentar y falló, o la
//     combinación clave/esquema hace el intento imposible (mismatch de tipos
//     siempre es inválido, nunca se saltea en silencio).
func CheckSignature(cert *x509.Certificate, issuerPub crypto.PublicKey) error {
	kind := ClassifyPublicKey(issuerPub)
	for _, fam := range keyFamilies {
		if fam.Kind == kind {
			return fam.verify(cert, issuerPub)
		}
	}
	// Clave que no es RSA ni EC (DSA, Ed25519, lo que sea): inválido.
	return &InvalidSignatureError{Reason: "issuer key type is not supported for verification"}
}

func verifyRSA(cert *x509.Certificate, pub crypto.PublicKey) error {
	rsaPub := pub.(*rsa.PublicKey)

	if isRSAPSS(cert.SignatureAlgorithm) {
		return &UnsupportedAlgorithmError{
			Algorithm: cert.SignatureAlgorithm.String(),
			Reason:    "RSASSA-PSS verification of arbitrary certificates is not supported",
		}
	}

	hash, ok := rsaHashes[cert.SignatureAlgorithm]
	if !ok {
		// Clave RSA con firma no-RSA (ej: cert firmado con ECDSA): mismatch.
		return &InvalidSignatureError{Reason: "signature algorithm does not match RSA issuer key"}
	}
	if !hash.Available() {
		return &UnsupportedAlgorithmError{Algorithm: cert.SignatureAlgorithm.String(), Reason: "hash not linked into binary"}
	}

	h := hash.New()
	h.Write(cert.RawTBSCertificate)
	if err := rsa.VerifyPKCS1v15(rsaPub, hash, h.Sum(nil), cert.Signature); err != nil {
		return &InvalidSignatureError{Reason: err.Error()}
	}
	return nil
}

func verifyECDSA(cert *x509.Certificate, pub crypto.PublicKey) error {
	ecPub := pub.(*ecdsa.PublicKey)

	// Solo seguimos si el descriptor de firma es tipado ECDSA; clave EC con
	// firma de otra familia no es verificable y se reporta inválido.
	hash, ok := ecdsaHashes[cert.SignatureAlgorithm]
	if !ok {
		return &InvalidSignatureError{Reason: "signature algorithm is not ECDSA-typed"}
	}
	if !hash.Available() {
		return &UnsupportedAlgorithmError{Algorithm: cert.SignatureAlgorithm.String(), Reason: "hash not linked into binary"}
	}

	h := hash.New()
	h.Write(cert.RawTBSCertificate)
	if !ecdsa.VerifyASN1(ecPub, h.Sum(nil), cert.Signature) {
		return &InvalidSignatureError{Reason: "ECDSA verification failed"}
	}
	return nil
}

package pki_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/dropDatabas3/certero/internal/pki"
)

type fakeRecord struct {
	name string
	body string
}

func (r fakeRecord) PEMBody() string { return r.body }

func TestFingerprint_StableAndDistinct(t *testing.T) {
	key := newRSAKey(t)
	body, cert := selfSignedCert(t, key, nil)

	reparsed, err := pki.ParseCertificate(body)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if pki.Fingerprint(cert) != pki.Fingerprint(reparsed) {
		t.Fatal("fingerprint must be stable across parses")
	}

	_, other := selfSignedCert(t, key, nil)
	if pki.Fingerprint(cert) == pki.Fingerprint(other) {
		t.Fatal("distinct certificates must not share a fingerprint")
	}
}

func TestFingerprintHex_Lowercase(t *testing.T) {
	key := newECKey(t)
	_, cert := selfSignedCert(t, key, nil)

	hexFP := pki.FingerprintHex(cert)
	if len(hexFP) != 64 {
		t.Fatalf("hex fingerprint length = %d, want 64", len(hexFP))
	}
	if hexFP != strings.ToLower(hexFP) {
		t.Fatal("fingerprint hex must be lowercase")
	}
}

func TestGetAuthorityKey_FromIssuedLeaf(t *testing.T) {
	caKey := newRSAKey(t)
	_, caCert := selfSignedCert(t, caKey, nil)
	leafKey := newECKey(t)
	leafBody, _ := issuedCert(t, caCert, caKey, leafKey)

	// El AKI del leaf es el SubjectKeyId de la CA (deadbeef en el template).
	aki, err := pki.GetAuthorityKey(leafBody)
	if err != nil {
		t.Fatalf("GetAuthorityKey: %v", err)
	}
	if aki != "deadbeef" {
		t.Fatalf("authority key = %q, want deadbeef", aki)
	}
}

func TestGetAuthorityKey_MissingExtension(t *testing.T) {
	key := newRSAKey(t)
	body, _ := selfSignedCert(t, key, nil)

	// Un root self-signed sin AKI explícito: ausencia es error tipado, no
	// string vacío.
	_, err := pki.GetAuthorityKey(body)
	var missing *pki.ExtensionNotFoundError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *ExtensionNotFoundError", err)
	}
}

func TestGetAuthorityKey_ParseFailure(t *testing.T) {
	_, err := pki.GetAuthorityKey("garbage")
	var perr *pki.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
}

func TestFindMatchingByHash(t *testing.T) {
	key := newRSAKey(t)
	body, cert := selfSignedCert(t, key, nil)
	otherBody, _ := selfSignedCert(t, key, nil)

	candidates := []fakeRecord{
		{name: "a", body: otherBody},
		{name: "b", body: body},
		{name: "c", body: body},
		{name: "d", body: otherBody},
	}

	got := pki.FindMatchingByHash(cert, candidates)
	if len(got) != 2 {
		t.Fatalf("matches = %d, want 2", len(got))
	}
	// Orden de entrada preservado.
	if got[0].name != "b" || got[1].name != "c" {
		t.Fatalf("match order = %s,%s; want b,c", got[0].name, got[1].name)
	}
}

func TestFindMatchingByHash_SkipsUnparsable(t *testing.T) {
	key := newECKey(t)
	body, cert := selfSignedCert(t, key, nil)

	candidates := []fakeRecord{
		{name: "bad", body: "not pem at all"},
		{name: "good", body: body},
	}

	// Una fila corrupta no aborta el scan completo.
	got := pki.FindMatchingByHash(cert, candidates)
	if len(got) != 1 || got[0].name != "good" {
		t.Fatalf("matches = %v, want only the good record", got)
	}
}

func TestFindMatchingByHash_EmptyAndNoMatches(t *testing.T) {
	key := newRSAKey(t)
	_, cert := selfSignedCert(t, key, nil)

	if got := pki.FindMatchingByHash(cert, []fakeRecord{}); len(got) != 0 {
		t.Fatalf("empty candidates: matches = %d, want 0", len(got))
	}

	otherBody, _ := selfSignedCert(t, key, nil)
	got := pki.FindMatchingByHash(cert, []fakeRecord{{name: "x", body: otherBody}})
	if len(got) != 0 {
		t.Fatalf("no-match candidates: matches = %d, want 0", len(got))
	}
}

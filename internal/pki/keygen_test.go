package pki_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"errors"
	"strings"
	"testing"

	"github.com/dropDatabas3/certero/internal/pki"
)

func TestGeneratePrivateKey_RSA2048(t *testing.T) {
	key, err := pki.GeneratePrivateKey(pki.KeyTypeRSA2048)
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		t.Fatalf("key type = %T, want *rsa.PrivateKey", key)
	}
	if got := rsaKey.N.BitLen(); got != 2048 {
		t.Fatalf("key size = %d, want 2048", got)
	}
	if rsaKey.E != 65537 {
		t.Fatalf("public exponent = %d, want 65537", rsaKey.E)
	}
}

func TestGeneratePrivateKey_RSA4096(t *testing.T) {
	if testing.Short() {
		t.Skip("4096-bit keygen is slow")
	}
	key, err := pki.GeneratePrivateKey(pki.KeyTypeRSA4096)
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}
	rsaKey := key.(*rsa.PrivateKey)
	if got := rsaKey.N.BitLen(); got != 4096 {
		t.Fatalf("key size = %d, want 4096", got)
	}
}

func TestGeneratePrivateKey_Curves(t *testing.T) {
	cases := []struct {
		keyType pki.KeyType
		curve   elliptic.Curve
	}{
		{pki.KeyTypeECCPrime256V1, elliptic.P256()},
		{pki.KeyTypeECCSecp224R1, elliptic.P224()},
		{pki.KeyTypeECCSecp256R1, elliptic.P256()},
		{pki.KeyTypeECCSecp384R1, elliptic.P384()},
		{pki.KeyTypeECCSecp521R1, elliptic.P521()},
	}
	for _, tc := range cases {
		t.Run(string(tc.keyType), func(t *testing.T) {
			key, err := pki.GeneratePrivateKey(tc.keyType)
			if err != nil {
				t.Fatalf("GeneratePrivateKey: %v", err)
			}
			ecKey, ok := key.(*ecdsa.PrivateKey)
			if !ok {
				t.Fatalf("key type = %T, want *ecdsa.PrivateKey", key)
			}
			if ecKey.Curve != tc.curve {
				t.Fatalf("curve = %v, want %v", ecKey.Curve.Params().Name, tc.curve.Params().Name)
			}
		})
	}
}

func TestGeneratePrivateKey_Unknown(t *testing.T) {
	_, err := pki.GeneratePrivateKey("BOGUS")
	var uerr *pki.UnsupportedKeyTypeError
	if !errors.As(err, &uerr) {
		t.Fatalf("error = %v, want *UnsupportedKeyTypeError", err)
	}
	// El mensaje tiene que listar el catálogo válido.
	if !strings.Contains(err.Error(), "RSA2048") || !strings.Contains(err.Error(), "ECCSECT571R2") {
		t.Fatalf("error should list the catalog, got: %v", err)
	}
}

func TestGeneratePrivateKey_UnavailableCurve(t *testing.T) {
	// En catálogo pero sin curva implementable: rechazo explícito, nunca
	// una curva sustituta.
	for _, kt := range []pki.KeyType{pki.KeyTypeECCSecp256K1, pki.KeyTypeECCSect571K1, pki.KeyTypeECCSect163R2} {
		_, err := pki.GeneratePrivateKey(kt)
		var uerr *pki.UnsupportedKeyTypeError
		if !errors.As(err, &uerr) {
			t.Fatalf("%s: error = %v, want *UnsupportedKeyTypeError", kt, err)
		}
		if uerr.Detail == "" {
			t.Fatalf("%s: expected an explicit unavailable-curve detail", kt)
		}
	}
}

func TestKeyTypeCatalog_NeverPartial(t *testing.T) {
	// Todo el catálogo: o genera una clave de la familia correcta, o falla
	// con UnsupportedKeyTypeError. Nunca nil+nil, nunca otro error.
	for _, kt := range pki.KeyTypes {
		if kt == pki.KeyTypeRSA4096 && testing.Short() {
			continue
		}
		key, err := pki.GeneratePrivateKey(kt)
		if err != nil {
			var uerr *pki.UnsupportedKeyTypeError
			if !errors.As(err, &uerr) {
				t.Fatalf("%s: unexpected error kind: %v", kt, err)
			}
			continue
		}
		if key == nil {
			t.Fatalf("%s: nil key with nil error", kt)
		}
		switch key.(type) {
		case *rsa.PrivateKey:
			if !strings.HasPrefix(string(kt), "RSA") {
				t.Fatalf("%s: generated RSA key for non-RSA tag", kt)
			}
		case *ecdsa.PrivateKey:
			if !strings.HasPrefix(string(kt), "ECC") {
				t.Fatalf("%s: generated EC key for non-ECC tag", kt)
			}
		default:
			t.Fatalf("%s: unexpected key type %T", kt, key)
		}
	}
}

func TestCurveTable_LegacyAlias(t *testing.T) {
	// ECCSECT571R2 mapea a sect571r1, no a una curva r2 homónima. Quirk
	// legacy que se preserva a propósito.
	if got := pki.CurveName(pki.KeyTypeECCSect571R2); got != "sect571r1" {
		t.Fatalf("ECCSECT571R2 curve = %q, want sect571r1", got)
	}
}

func TestCurveAvailable(t *testing.T) {
	if !pki.CurveAvailable(pki.KeyTypeRSA2048) {
		t.Fatal("RSA2048 should be available")
	}
	if !pki.CurveAvailable(pki.KeyTypeECCSecp384R1) {
		t.Fatal("secp384r1 should be available")
	}
	if pki.CurveAvailable(pki.KeyTypeECCSect409K1) {
		t.Fatal("sect409k1 should not be available")
	}
	if pki.CurveAvailable("BOGUS") {
		t.Fatal("unknown tag should not be available")
	}
}

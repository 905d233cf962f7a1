package pki

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"strconv"
	"strings"
)

// KeyType es un tag del catálogo cerrado de generación de claves.
// Todo identificador aceptado por GeneratePrivateKey aparece en KeyTypes;
// cualquier alta nueva tiene que tocar el catálogo Y la tabla de curvas en
// el mismo commit.
type KeyType string

const (
	KeyTypeRSA2048 KeyType = "RSA2048"
	KeyTypeRSA4096 KeyType = "RSA4096"

	KeyTypeECCPrime192V1 KeyType = "ECCPRIME192V1"
	KeyTypeECCPrime256V1 KeyType = "ECCPRIME256V1"

	KeyTypeECCSecp192R1 KeyType = "ECCSECP192R1"
	KeyTypeECCSecp224R1 KeyType = "ECCSECP224R1"
	KeyTypeECCSecp256R1 KeyType = "ECCSECP256R1"
	KeyTypeECCSecp384R1 KeyType = "ECCSECP384R1"
	KeyTypeECCSecp521R1 KeyType = "ECCSECP521R1"
	KeyTypeECCSecp256K1 KeyType = "ECCSECP256K1"

	KeyTypeECCSect163K1 KeyType = "ECCSECT163K1"
	KeyTypeECCSect233K1 KeyType = "ECCSECT233K1"
	KeyTypeECCSect283K1 KeyType = "ECCSECT283K1"
	KeyTypeECCSect409K1 KeyType = "ECCSECT409K1"
	KeyTypeECCSect571K1 KeyType = "ECCSECT571K1"

	KeyTypeECCSect163R2 KeyType = "ECCSECT163R2"
	KeyTypeECCSect233R1 KeyType = "ECCSECT233R1"
	KeyTypeECCSect283R1 KeyType = "ECCSECT283R1"
	KeyTypeECCSect409R1 KeyType = "ECCSECT409R1"
	KeyTypeECCSect571R2 KeyType = "ECCSECT571R2"
)

// KeyTypes es el catálogo completo, en orden estable para mensajes de error
// y para la API de listado.
var KeyTypes = []KeyType{
	KeyTypeRSA2048,
	KeyTypeRSA4096,
	KeyTypeECCPrime192V1,
	KeyTypeECCPrime256V1,
	KeyTypeECCSecp192R1,
	KeyTypeECCSecp224R1,
	KeyTypeECCSecp256R1,
	KeyTypeECCSecp384R1,
	KeyTypeECCSecp521R1,
	KeyTypeECCSecp256K1,
	KeyTypeECCSect163K1,
	KeyTypeECCSect233K1,
	KeyTypeECCSect283K1,
	KeyTypeECCSect409K1,
	KeyTypeECCSect571K1,
	KeyTypeECCSect163R2,
	KeyTypeECCSect233R1,
	KeyTypeECCSect283R1,
	KeyTypeECCSect409R1,
	KeyTypeECCSect571R2,
}

// namedCurve es una entrada de la tabla identificador→curva.
// Curve == nil significa "curva conocida pero sin implementación segura en
// esta plataforma": el catálogo la lista, la generación la rechaza con un
// error explícito. Jamás se sustituye por una curva parecida.
type namedCurve struct {
	Name  string
	Curve elliptic.Curve
}

// curveTable es la tabla estática identificador→curva. Inmutable; se
// construye una vez al cargar el paquete.
//
// OJO: ECCSECT571R2 mapea a sect571r1, NO a una curva "r2" homónima. Es un
// alias legacy que consumidores existentes dependen de él; corregirlo
// cambiaría la compatibilidad de claves generadas. No tocar sin una revisión
// de requerimientos explícita.
var curveTable = map[KeyType]namedCurve{
	KeyTypeECCPrime192V1: {Name: "secp192r1"},
	KeyTypeECCPrime256V1: {Name: "secp256r1", Curve: elliptic.P256()},

	KeyTypeECCSecp192R1: {Name: "secp192r1"},
	KeyTypeECCSecp224R1: {Name: "secp224r1", Curve: elliptic.P224()},
	KeyTypeECCSecp256R1: {Name: "secp256r1", Curve: elliptic.P256()},
	KeyTypeECCSecp384R1: {Name: "secp384r1", Curve: elliptic.P384()},
	KeyTypeECCSecp521R1: {Name: "secp521r1", Curve: elliptic.P521()},
	KeyTypeECCSecp256K1: {Name: "secp256k1"},

	KeyTypeECCSect163K1: {Name: "sect163k1"},
	KeyTypeECCSect233K1: {Name: "sect233k1"},
	KeyTypeECCSect283K1: {Name: "sect283k1"},
	KeyTypeECCSect409K1: {Name: "sect409k1"},
	KeyTypeECCSect571K1: {Name: "sect571k1"},

	KeyTypeECCSect163R2: {Name: "sect163r2"},
	KeyTypeECCSect233R1: {Name: "sect233r1"},
	KeyTypeECCSect283R1: {Name: "sect283r1"},
	KeyTypeECCSect409R1: {Name: "sect409r1"},
	KeyTypeECCSect571R2: {Name: "sect571r1"}, // alias legacy, ver arriba
}

// rsaPublicExponent es el exponente público estándar F4.
const rsaPublicExponent = 65537

// IsSupported reporta si el identificador pertenece al catálogo.
func (kt KeyType) IsSupported() bool {
	for _, known := range KeyTypes {
		if kt == known {
			return true
		}
	}
	return false
}

// GeneratePrivateKey genera una clave privada nueva para el KeyType dado.
//
// Primero valida contra el catálogo: identificadores desconocidos fallan con
// UnsupportedKeyTypeError (listando el catálogo válido) SIN intentar generar
// nada. Para RSA el tamaño en bits viene embebido en el sufijo del tag; para
// EC se resuelve la curva en curveTable.
func GeneratePrivateKey(keyType KeyType) (crypto.Signer, error) {
	if !keyType.IsSupported() {
		return nil, &UnsupportedKeyTypeError{KeyType: string(keyType), Supported: KeyTypes}
	}

	switch {
	case strings.HasPrefix(string(keyType), "RSA"):
		bits, err := strconv.Atoi(strings.TrimPrefix(string(keyType), "RSA"))
		if err != nil {
			// Catálogo y parseo de sufijo desincronizados: bug nuestro.
			panic(fmt.Sprintf("pki: RSA key type %q has no parsable bit size: %v", keyType, err))
		}
		return generateRSA(bits)

	case strings.HasPrefix(string(keyType), "ECC"):
		nc, ok := curveTable[keyType]
		if !ok {
			// El catálogo aceptó un tag EC que la tabla no conoce: bug nuestro.
			panic(fmt.Sprintf("pki: EC key type %q passed catalog but is missing from curve table", keyType))
		}
		if nc.Curve == nil {
			return nil, &UnsupportedKeyTypeError{
				KeyType: string(keyType),
				Detail:  fmt.Sprintf("curve %s has no implementation on this platform", nc.Name),
			}
		}
		return ecdsa.GenerateKey(nc.Curve, rand.Reader)

	default:
		// Tag en catálogo que no es ni RSA ni ECC: catálogo y dispatch
		// tienen que mantenerse en sync, fallar fuerte acá.
		panic(fmt.Sprintf("pki: key type %q in catalog matches no known family", keyType))
	}
}

func generateRSA(bits int) (crypto.Signer, error) {
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("pki: RSA key generation failed: %w", err)
	}
	if key.PublicKey.E != rsaPublicExponent {
		// crypto/rsa siempre usa 65537; si alguna vez cambia, queremos enterarnos.
		return nil, fmt.Errorf("pki: unexpected RSA public exponent %d", key.PublicKey.E)
	}
	return key, nil
}

// CurveName retorna el nombre de la curva para un KeyType EC del catálogo,
// o "" si el tag no es EC. Útil para reporting/listados.
func CurveName(keyType KeyType) string {
	if nc, ok := curveTable[keyType]; ok {
		return nc.Name
	}
	return ""
}

// CurveAvailable reporta si la curva del KeyType tiene implementación en
// esta plataforma. RSA siempre retorna true.
func CurveAvailable(keyType KeyType) bool {
	if strings.HasPrefix(string(keyType), "RSA") {
		return keyType.IsSupported()
	}
	nc, ok := curveTable[keyType]
	return ok && nc.Curve != nil
}

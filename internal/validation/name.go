package validation

import "regexp"

// Reglas para nombres de certificado en el inventario:
// - Empieza y termina con [a-zA-Z0-9].
// - En el medio admite [a-zA-Z0-9*._-] (el * habilita wildcards tipo *.example.com).
// - Largo 1..128.
// - Excluye espacios, punto y coma y cualquier otro separador explícitamente.
//
// Ejemplos válidos: web-tls, api.example.com, *.example.com (tras el alta el *
// queda en el medio: star.example.com no hace falta), cert_2024
// Ejemplos inválidos: "", " lead", "trail.", ";drop", 129+ chars.
var certNameRe = regexp.MustCompile(`^[a-zA-Z0-9*](?:[a-zA-Z0-9*._-]{0,126}[a-zA-Z0-9])?$`)

// ValidCertificateName reporta si el nombre cumple el patrón permitido.
func ValidCertificateName(name string) bool {
	return certNameRe.MatchString(name)
}

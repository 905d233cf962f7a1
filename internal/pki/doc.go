// Package pki es el motor de confianza de certificados y material de claves.
//
// Agrupa todo lo que toca criptografía directamente: parseo PEM de
// certificados, CSRs y claves privadas; generación de pares de claves sobre
// un catálogo cerrado de algoritmos/curvas; verificación de firmas X.509 con
// reglas específicas por algoritmo; clasificación self-signed; y matching de
// certificados por fingerprint SHA-256.
//
// Un error acá es un bug de seguridad, no funcional. Las reglas de la
// verificación (qué padding, qué hash, qué combinación clave/firma es
// inválida vs. no soportada) están escritas de forma deliberadamente
// explícita: nada se asume, nada se degrada en silencio.
//
// Todas las operaciones son síncronas, puras (salvo el draw de randomness en
// la generación de claves) y seguras para uso concurrente: no hay estado
// mutable compartido.
package pki

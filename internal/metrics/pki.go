package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Métricas Prometheus del motor PKI y del API. Viven en un paquete propio
// para evitar ciclos de import entre el core y las capas HTTP.

var (
	ParseFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "certero_parse_failures_total",
		Help: "Fallos de parseo PEM, por tipo de objeto",
	}, []string{"what"})

	SignatureChecks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "certero_signature_checks_total",
		Help: "Verificaciones de firma, por resultado (ok/invalid/unsupported)",
	}, []string{"result"})

	KeysGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "certero_keys_generated_total",
		Help: "Claves generadas, por key type del catálogo",
	}, []string{"key_type"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "certero_http_request_duration_ms",
		Help:    "Duración de requests HTTP en milisegundos",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"method", "route", "status"})
)

// Register registra todas las métricas en el registry dado (default si nil).
// Tolera AlreadyRegistered para que los tests puedan registrar dos veces.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{ParseFailures, SignatureChecks, KeysGenerated, HTTPDuration} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}

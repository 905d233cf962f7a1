package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dropDatabas3/certero/internal/http/controllers"
	mw "github.com/dropDatabas3/certero/internal/http/middlewares"
	"github.com/dropDatabas3/certero/internal/rate"
)

// RouterDeps son las dependencias del router.
type RouterDeps struct {
	Certificates *controllers.CertificatesController
	Keys         *controllers.KeysController

	// KeygenLimiter acota la generación de claves (cara en CPU).
	// Nil desactiva el límite.
	KeygenLimiter rate.Limiter

	// JWTSecret habilita auth en las rutas /v1 cuando no es vacío.
	JWTSecret []byte
	JWTIssuer string

	// Registry para /metrics. Si es nil se usa el registry default.
	Registry *prometheus.Registry

	// Readyz chequea dependencias (DB, cache). Nil significa siempre listo.
	Readyz func() error
}

// NewRouter arma el router HTTP completo con la cadena de middlewares.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// La cadena corre dentro del mux para que el middleware de métricas
	// vea el patrón de ruta de chi y no el path crudo.
	r.Use(mw.WithRequestID())
	r.Use(mw.WithLogging())
	r.Use(mw.WithMetrics())

	// Health / readiness fuera de la cadena de auth
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		if deps.Readyz != nil {
			if err := deps.Readyz(); err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/v1", func(v1 chi.Router) {
		if len(deps.JWTSecret) > 0 {
			v1.Use(mw.RequireAuth(deps.JWTSecret, deps.JWTIssuer))
		}

		v1.Route("/certificates", func(rc chi.Router) {
			rc.Post("/", deps.Certificates.Upload)
			rc.Get("/", deps.Certificates.List)
			rc.Post("/parse", deps.Certificates.Parse)
			rc.Get("/{id}", deps.Certificates.Get)
			rc.Delete("/{id}", deps.Certificates.Delete)
			rc.Get("/{id}/self-signed", deps.Certificates.SelfSigned)
			rc.Get("/{id}/matches", deps.Certificates.Matches)
		})

		v1.Route("/keys", func(rk chi.Router) {
			if deps.KeygenLimiter != nil {
				rk.With(mw.WithRateLimit(deps.KeygenLimiter)).Post("/", deps.Keys.Generate)
			} else {
				rk.Post("/", deps.Keys.Generate)
			}
			rk.Get("/types", deps.Keys.Types)
		})
	})

	return r
}

// Package certs es la capa de servicio del inventario: junta el motor pki,
// el repositorio y el cache. Los controllers HTTP hablan con este paquete,
// nunca con pki/store directo.
package certs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/certero/internal/cache"
	"github.com/dropDatabas3/certero/internal/metrics"
	"github.com/dropDatabas3/certero/internal/observability/logger"
	"github.com/dropDatabas3/certero/internal/pki"
	"github.com/dropDatabas3/certero/internal/store/core"
)

// matchWindowSize es el tamaño de ventana del scan de matching.
const matchWindowSize = 200

// selfSignedCacheTTL limita cuánto vive una clasificación cacheada.
const selfSignedCacheTTL = 30 * time.Minute

type Service struct {
	repo  core.CertificateRepository
	cache cache.Client
}

func NewService(repo core.CertificateRepository, c cache.Client) *Service {
	return &Service{repo: repo, cache: c}
}

// InspectResult es el resultado de parsear un certificado, sin persistir.
type InspectResult struct {
	CommonName         string
	SerialHex          string
	FingerprintHex     string
	AuthorityKeyID     string // vacío si el cert no trae AKI
	SignatureAlgorithm string
	NotBefore          time.Time
	NotAfter           time.Time
	SelfSigned         pki.SelfSignedStatus
}

// Inspect parsea un body PEM y deriva identidad + clasificación self-signed.
// No toca el store.
func (s *Service) Inspect(ctx context.Context, body string) (*InspectResult, error) {
	cert, err := pki.ParseCertificate(body)
	if err != nil {
		metrics.ParseFailures.WithLabelValues("certificate").Inc()
		return nil, err
	}

	res := &InspectResult{
		CommonName:         cert.Subject.CommonName,
		SerialHex:          fmt.Sprintf("%x", cert.SerialNumber),
		FingerprintHex:     pki.FingerprintHex(cert),
		SignatureAlgorithm: cert.SignatureAlgorithm.String(),
		NotBefore:          cert.NotBefore,
		NotAfter:           cert.NotAfter,
	}

	aki, err := pki.GetAuthorityKey(body)
	if err != nil {
		var missing *pki.ExtensionNotFoundError
		if !errors.As(err, &missing) {
			return nil, err
		}
		// Sin AKI: el campo queda vacío en el resultado, pero la ausencia
		// fue manejada explícitamente, no inventada.
	} else {
		res.AuthorityKeyID = aki
	}

	status, err := pki.ClassifySelfSigned(cert)
	res.SelfSigned = status
	switch {
	case err != nil:
		metrics.SignatureChecks.WithLabelValues("unsupported").Inc()
	case status == pki.SelfSigned:
		metrics.SignatureChecks.WithLabelValues("ok").Inc()
	default:
		metrics.SignatureChecks.WithLabelValues("invalid").Inc()
	}
	// Un status Unknown no invalida el inspect: se reporta como unknown.
	return res, nil
}

// Upload parsea, deriva campos y persiste un certificado nuevo.
func (s *Service) Upload(ctx context.Context, name, body, chain string) (*core.CertificateRecord, error) {
	res, err := s.Inspect(ctx, body)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = res.CommonName
	}

	rec := &core.CertificateRecord{
		ID:             uuid.New(),
		Name:           name,
		Body:           body,
		Chain:          chain,
		SerialHex:      res.SerialHex,
		AuthorityKeyID: res.AuthorityKeyID,
		FingerprintHex: res.FingerprintHex,
		NotBefore:      res.NotBefore,
		NotAfter:       res.NotAfter,
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, err
	}

	logger.From(ctx).Info("certificate stored",
		logger.CertName(rec.Name),
		logger.Fingerprint(rec.FingerprintHex),
		logger.NotAfter(rec.NotAfter))
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id string) (*core.CertificateRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, p core.Pagination) (*core.CertificatePage, error) {
	return s.repo.List(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}

// SelfSignedStatus clasifica el certificado del registro, cacheando por
// fingerprint. Un resultado Unknown no se cachea: el error se propaga.
func (s *Service) SelfSignedStatus(ctx context.Context, id string) (pki.SelfSignedStatus, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return pki.SelfSignedUnknown, err
	}

	cacheKey := "selfsigned:" + rec.FingerprintHex
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		switch cached {
		case pki.SelfSigned.String():
			return pki.SelfSigned, nil
		case pki.NotSelfSigned.String():
			return pki.NotSelfSigned, nil
		}
	}

	cert, err := pki.ParseCertificate(rec.Body)
	if err != nil {
		metrics.ParseFailures.WithLabelValues("certificate").Inc()
		return pki.SelfSignedUnknown, err
	}
	status, err := pki.ClassifySelfSigned(cert)
	if err != nil {
		metrics.SignatureChecks.WithLabelValues("unsupported").Inc()
		return status, err
	}
	if status == pki.SelfSigned {
		metrics.SignatureChecks.WithLabelValues("ok").Inc()
	} else {
		metrics.SignatureChecks.WithLabelValues("invalid").Inc()
	}

	_ = s.cache.Set(ctx, cacheKey, status.String(), selfSignedCacheTTL)
	return status, nil
}

// Matches busca en todo el inventario los registros con el mismo fingerprint
// que el certificado del registro dado, recorriendo el store en ventanas.
// Preserva el orden del scan (orden por id).
func (s *Service) Matches(ctx context.Context, id string) ([]core.CertificateRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cert, err := pki.ParseCertificate(rec.Body)
	if err != nil {
		metrics.ParseFailures.WithLabelValues("certificate").Inc()
		return nil, err
	}

	matches := make([]core.CertificateRecord, 0)
	err = s.repo.WindowedScan(ctx, matchWindowSize, func(window []core.CertificateRecord) error {
		matches = append(matches, pki.FindMatchingByHash(cert, window)...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// GenerateKey genera una clave del catálogo y la retorna en PEM PKCS#8.
// La clave es del caller: este servicio no la persiste ni la loguea.
func (s *Service) GenerateKey(ctx context.Context, keyType pki.KeyType) (string, error) {
	key, err := pki.GeneratePrivateKey(keyType)
	if err != nil {
		return "", err
	}
	body, err := pki.EncodePrivateKey(key)
	if err != nil {
		return "", err
	}
	metrics.KeysGenerated.WithLabelValues(string(keyType)).Inc()
	logger.From(ctx).Info("private key generated", logger.KeyType(string(keyType)))
	return body, nil
}

package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/certero/internal/certs"
	"github.com/dropDatabas3/certero/internal/http/helpers"
	"github.com/dropDatabas3/certero/internal/observability/logger"
	"github.com/dropDatabas3/certero/internal/pki"
	"github.com/dropDatabas3/certero/internal/store/core"
	"github.com/dropDatabas3/certero/internal/validation"
)

// CertificateService es la porción del service de certificados que estos
// controllers consumen.
type CertificateService interface {
	Inspect(ctx context.Context, body string) (*certs.InspectResult, error)
	Upload(ctx context.Context, name, body, chain string) (*core.CertificateRecord, error)
	Get(ctx context.Context, id string) (*core.CertificateRecord, error)
	List(ctx context.Context, p core.Pagination) (*core.CertificatePage, error)
	Delete(ctx context.Context, id string) error
	SelfSignedStatus(ctx context.Context, id string) (pki.SelfSignedStatus, error)
	Matches(ctx context.Context, id string) ([]core.CertificateRecord, error)
}

// CertificatesController maneja las rutas /v1/certificates
type CertificatesController struct {
	service CertificateService
}

func NewCertificatesController(service CertificateService) *CertificatesController {
	return &CertificatesController{service: service}
}

type uploadRequest struct {
	Name  string `json:"name"`
	Body  string `json:"body"`
	Chain string `json:"chain,omitempty"`
}

type certificateResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Body           string    `json:"body"`
	Chain          string    `json:"chain,omitempty"`
	SerialHex      string    `json:"serial"`
	AuthorityKeyID string    `json:"authority_key_id,omitempty"`
	FingerprintHex string    `json:"fingerprint"`
	NotBefore      time.Time `json:"not_before"`
	NotAfter       time.Time `json:"not_after"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

type certificateListResponse struct {
	Items []certificateResponse `json:"items"`
	Total int                   `json:"total"`
	Page  int                   `json:"page"`
	Count int                   `json:"count"`
}

type inspectRequest struct {
	Body string `json:"body"`
}

type inspectResponse struct {
	CommonName         string    `json:"common_name"`
	SerialHex          string    `json:"serial"`
	FingerprintHex     string    `json:"fingerprint"`
	AuthorityKeyID     string    `json:"authority_key_id,omitempty"`
	SignatureAlgorithm string    `json:"signature_algorithm"`
	NotBefore          time.Time `json:"not_before"`
	NotAfter           time.Time `json:"not_after"`
	SelfSigned         string    `json:"self_signed"`
}

func toCertificateResponse(rec core.CertificateRecord) certificateResponse {
	return certificateResponse{
		ID:             rec.ID.String(),
		Name:           rec.Name,
		Body:           rec.Body,
		Chain:          rec.Chain,
		SerialHex:      rec.SerialHex,
		AuthorityKeyID: rec.AuthorityKeyID,
		FingerprintHex: rec.FingerprintHex,
		NotBefore:      rec.NotBefore,
		NotAfter:       rec.NotAfter,
		CreatedAt:      rec.CreatedAt,
	}
}

// Upload maneja POST /v1/certificates
func (c *CertificatesController) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("CertificatesController.Upload"))

	var req uploadRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		helpers.WriteError(w, helpers.ErrBadRequest.WithDetail("body requerido"))
		return
	}
	name := strings.TrimSpace(req.Name)
	if name != "" && !validation.ValidCertificateName(name) {
		helpers.WriteError(w, helpers.ErrBadRequest.WithDetail("nombre inválido"))
		return
	}

	rec, err := c.service.Upload(ctx, name, req.Body, req.Chain)
	if err != nil {
		log.Error("upload failed", logger.Err(err))
		helpers.WriteError(w, helpers.MapError(err))
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, toCertificateResponse(*rec))
}

// List maneja GET /v1/certificates
func (c *CertificatesController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("CertificatesController.List"))

	page, err := c.service.List(ctx, helpers.ParsePagination(r))
	if err != nil {
		log.Error("list failed", logger.Err(err))
		helpers.WriteError(w, helpers.MapError(err))
		return
	}

	items := make([]certificateResponse, 0, len(page.Items))
	for _, rec := range page.Items {
		items = append(items, toCertificateResponse(rec))
	}
	helpers.WriteJSON(w, http.StatusOK, certificateListResponse{
		Items: items,
		Total: page.Total,
		Page:  page.Page,
		Count: page.Count,
	})
}

// Get maneja GET /v1/certificates/{id}
func (c *CertificatesController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rec, err := c.service.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		helpers.WriteError(w, helpers.MapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, toCertificateResponse(*rec))
}

// Delete maneja DELETE /v1/certificates/{id}
func (c *CertificatesController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("CertificatesController.Delete"))

	id := chi.URLParam(r, "id")
	if err := c.service.Delete(ctx, id); err != nil {
		log.Error("delete failed", logger.Err(err))
		helpers.WriteError(w, helpers.MapError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelfSigned maneja GET /v1/certificates/{id}/self-signed
func (c *CertificatesController) SelfSigned(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("CertificatesController.SelfSigned"))

	status, err := c.service.SelfSignedStatus(ctx, chi.URLParam(r, "id"))
	if err != nil && status == pki.SelfSignedUnknown {
		// Un unknown con causa se reporta como no procesable, no como 500.
		if !core.IsNotFound(err) {
			log.Warn("classification inconclusive", logger.Err(err))
			helpers.WriteError(w, helpers.ErrUnprocessable.WithDetail(err.Error()))
			return
		}
		helpers.WriteError(w, helpers.MapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": status.String()})
}

// Matches maneja GET /v1/certificates/{id}/matches
func (c *CertificatesController) Matches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("CertificatesController.Matches"))

	matches, err := c.service.Matches(ctx, chi.URLParam(r, "id"))
	if err != nil {
		log.Error("match scan failed", logger.Err(err))
		helpers.WriteError(w, helpers.MapError(err))
		return
	}

	items := make([]certificateResponse, 0, len(matches))
	for _, rec := range matches {
		items = append(items, toCertificateResponse(rec))
	}
	helpers.WriteJSON(w, http.StatusOK, certificateListResponse{Items: items, Total: len(items)})
}

// Parse maneja POST /v1/certificates/parse: inspección sin persistir.
func (c *CertificatesController) Parse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req inspectRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		helpers.WriteError(w, helpers.ErrBadRequest.WithDetail("body requerido"))
		return
	}

	res, err := c.service.Inspect(ctx, req.Body)
	if err != nil {
		helpers.WriteError(w, helpers.MapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, inspectResponse{
		CommonName:         res.CommonName,
		SerialHex:          res.SerialHex,
		FingerprintHex:     res.FingerprintHex,
		AuthorityKeyID:     res.AuthorityKeyID,
		SignatureAlgorithm: res.SignatureAlgorithm,
		NotBefore:          res.NotBefore,
		NotAfter:           res.NotAfter,
		SelfSigned:         res.SelfSigned.String(),
	})
}

package core

import (
	"time"

	"github.com/google/uuid"
)

// CertificateRecord es una fila del inventario de certificados.
// El cuerpo PEM es la fuente de verdad; el resto son campos derivados al
// momento del alta para poder indexar/filtrar sin re-parsear.
type CertificateRecord struct {
	ID             uuid.UUID
	Name           string
	Body           string // PEM
	Chain          string // PEM opcional, puede ser vacío
	SerialHex      string
	AuthorityKeyID string // hex minúscula; vacío si el cert no trae AKI
	FingerprintHex string // SHA-256 del DER, hex minúscula
	NotBefore      time.Time
	NotAfter       time.Time
	CreatedAt      time.Time
}

// PEMBody expone el cuerpo PEM; satisface pki.PEMRecord para el matcher.
func (r CertificateRecord) PEMBody() string { return r.Body }

// Pagination son los argumentos de listado paginado.
// Defaults: Count=10, Page=1 (ver DefaultPagination).
type Pagination struct {
	Count   int
	Page    int
	SortDir string // "asc" | "desc"
	SortBy  string
	Filter  string
}

// DefaultPagination retorna los defaults de listado.
func DefaultPagination() Pagination {
	return Pagination{Count: 10, Page: 1}
}

// Offset calcula el offset SQL para la página actual.
func (p Pagination) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.Limit()
}

// Limit retorna el tamaño de página efectivo.
func (p Pagination) Limit() int {
	if p.Count < 1 {
		return 10
	}
	return p.Count
}

// CertificatePage es una página de resultados más el total sin paginar.
type CertificatePage struct {
	Items []CertificateRecord
	Total int
	Page  int
	Count int
}

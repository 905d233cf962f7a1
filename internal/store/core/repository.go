package core

import (
	"context"
	"time"
)

// CertificateRepository define las operaciones del inventario sobre el
// almacenamiento subyacente.
type CertificateRepository interface {
	Insert(ctx context.Context, rec *CertificateRecord) error
	GetByID(ctx context.Context, id string) (*CertificateRecord, error)
	GetByFingerprint(ctx context.Context, fingerprintHex string) (*CertificateRecord, error)
	List(ctx context.Context, p Pagination) (*CertificatePage, error)
	ListExpiring(ctx context.Context, before time.Time) ([]CertificateRecord, error)
	DeleteByID(ctx context.Context, id string) error

	// WindowedScan recorre todo el inventario en ventanas ordenadas por id,
	// invocando visit por ventana. Pensado para scans completos (matching,
	// notificaciones) sin cargar la tabla entera en memoria.
	// Si visit retorna error, el scan aborta y propaga ese error.
	WindowedScan(ctx context.Context, windowSize int, visit func(window []CertificateRecord) error) error
}

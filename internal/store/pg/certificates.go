package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dropDatabas3/certero/internal/store/core"
)

const certColumns = `id, name, body, chain, serial_hex, authority_key_id, fingerprint_hex, not_before, not_after, created_at`

func scanCert(row pgx.Row) (*core.CertificateRecord, error) {
	var rec core.CertificateRecord
	err := row.Scan(&rec.ID, &rec.Name, &rec.Body, &rec.Chain, &rec.SerialHex,
		&rec.AuthorityKeyID, &rec.FingerprintHex, &rec.NotBefore, &rec.NotAfter, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *Store) Insert(ctx context.Context, rec *core.CertificateRecord) error {
	const q = `
INSERT INTO certificates (id, name, body, chain, serial_hex, authority_key_id, fingerprint_hex, not_before, not_after, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`
	_, err := s.pool.Exec(ctx, q, rec.ID, rec.Name, rec.Body, rec.Chain, rec.SerialHex,
		rec.AuthorityKeyID, rec.FingerprintHex, rec.NotBefore, rec.NotAfter)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 = unique_violation (fingerprint duplicado)
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return core.ErrConflict
		}
		return err
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*core.CertificateRecord, error) {
	q := `SELECT ` + certColumns + ` FROM certificates WHERE id = $1`
	return scanCert(s.pool.QueryRow(ctx, q, id))
}

func (s *Store) GetByFingerprint(ctx context.Context, fingerprintHex string) (*core.CertificateRecord, error) {
	q := `SELECT ` + certColumns + ` FROM certificates WHERE fingerprint_hex = $1`
	return scanCert(s.pool.QueryRow(ctx, q, fingerprintHex))
}

// sortColumns es la whitelist de columnas ordenables. Cualquier otro SortBy
// cae en created_at; nunca se interpola input del usuario en el SQL.
var sortColumns = map[string]string{
	"name":       "name",
	"not_after":  "not_after",
	"created_at": "created_at",
}

func (s *Store) List(ctx context.Context, p core.Pagination) (*core.CertificatePage, error) {
	col, ok := sortColumns[p.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if p.SortDir == "asc" {
		dir = "ASC"
	}

	filter := "%"
	if p.Filter != "" {
		filter = "%" + p.Filter + "%"
	}

	var total int
	if err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM certificates WHERE name ILIKE $1`, filter).Scan(&total); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`SELECT %s FROM certificates WHERE name ILIKE $1 ORDER BY %s %s LIMIT $2 OFFSET $3`,
		certColumns, col, dir)
	rows, err := s.pool.Query(ctx, q, filter, p.Limit(), p.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := collectCerts(rows)
	if err != nil {
		return nil, err
	}
	return &core.CertificatePage{
		Items: items,
		Total: total,
		Page:  max(p.Page, 1),
		Count: p.Limit(),
	}, nil
}

func (s *Store) ListExpiring(ctx context.Context, before time.Time) ([]core.CertificateRecord, error) {
	q := `SELECT ` + certColumns + ` FROM certificates WHERE not_after <= $1 AND not_after > now() ORDER BY not_after ASC`
	rows, err := s.pool.Query(ctx, q, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCerts(rows)
}

func (s *Store) DeleteByID(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM certificates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

// WindowedScan recorre la tabla en ventanas ordenadas por id (keyset
// pagination: id > last, no OFFSET). Una fila insertada durante el scan puede
// o no entrar; aceptable para matching y notificaciones.
func (s *Store) WindowedScan(ctx context.Context, windowSize int, visit func(window []core.CertificateRecord) error) error {
	if windowSize < 1 {
		windowSize = 100
	}
	q := `SELECT ` + certColumns + ` FROM certificates WHERE id > $1 ORDER BY id ASC LIMIT $2`

	last := "00000000-0000-0000-0000-000000000000"
	for {
		rows, err := s.pool.Query(ctx, q, last, windowSize)
		if err != nil {
			return err
		}
		window, err := collectCerts(rows)
		rows.Close()
		if err != nil {
			return err
		}
		if len(window) == 0 {
			return nil
		}
		if err := visit(window); err != nil {
			return err
		}
		last = window[len(window)-1].ID.String()
		if len(window) < windowSize {
			return nil
		}
	}
}

func collectCerts(rows pgx.Rows) ([]core.CertificateRecord, error) {
	var out []core.CertificateRecord
	for rows.Next() {
		var rec core.CertificateRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Body, &rec.Chain, &rec.SerialHex,
			&rec.AuthorityKeyID, &rec.FingerprintHex, &rec.NotBefore, &rec.NotAfter, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

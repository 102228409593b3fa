package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Santoryu-0niGiri/CV-Scanner/internal/models"
)

// scanColumns is the standard column list for scanned CV queries.
const scanColumns = `email, extracted_name, matched_keywords, full_text, scanned_at, updated_at`

func scanScannedCV(row pgx.Row) (*models.ScannedCV, error) {
	var cv models.ScannedCV
	err := row.Scan(
		&cv.Email,
		&cv.ExtractedName,
		&cv.MatchedKeywords,
		&cv.FullText,
		&cv.ScannedAt,
		&cv.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrScanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cv, nil
}

// UpsertScan creates or overwrites a scan record keyed by lowercased email.
// On overwrite the original scanned_at is preserved and updated_at advances.
// The stored timestamps are written back into cv.
func (d *DB) UpsertScan(ctx context.Context, cv *models.ScannedCV) error {
	query := `
		INSERT INTO scanned_cvs (email, extracted_name, matched_keywords, full_text)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET
			extracted_name = EXCLUDED.extracted_name,
			matched_keywords = EXCLUDED.matched_keywords,
			full_text = EXCLUDED.full_text,
			updated_at = NOW()
		RETURNING scanned_at, updated_at
	`

	return d.Pool.QueryRow(ctx, query,
		cv.Email,
		cv.ExtractedName,
		cv.MatchedKeywords,
		cv.FullText,
	).Scan(&cv.ScannedAt, &cv.UpdatedAt)
}

// GetScanByEmail retrieves a scan record by lowercased email.
func (d *DB) GetScanByEmail(ctx context.Context, email string) (*models.ScannedCV, error) {
	query := `SELECT ` + scanColumns + ` FROM scanned_cvs WHERE email = $1`
	return scanScannedCV(d.Pool.QueryRow(ctx, query, email))
}

// UpdateScanMatches replaces a record's matched keywords and advances
// updated_at. Used by rescan; extracted_name, full_text, and scanned_at
// are untouched.
func (d *DB) UpdateScanMatches(ctx context.Context, email string, matched []string) (*models.ScannedCV, error) {
	query := `
		UPDATE scanned_cvs SET matched_keywords = $2, updated_at = NOW()
		WHERE email = $1
		RETURNING ` + scanColumns

	return scanScannedCV(d.Pool.QueryRow(ctx, query, email, matched))
}

// ListScans returns all scan records, most recently scanned first.
func (d *DB) ListScans(ctx context.Context) ([]models.ScannedCV, error) {
	rows, err := d.Pool.Query(ctx, `SELECT `+scanColumns+` FROM scanned_cvs ORDER BY scanned_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cvs []models.ScannedCV
	for rows.Next() {
		var cv models.ScannedCV
		if err := rows.Scan(
			&cv.Email,
			&cv.ExtractedName,
			&cv.MatchedKeywords,
			&cv.FullText,
			&cv.ScannedAt,
			&cv.UpdatedAt,
		); err != nil {
			return nil, err
		}
		cvs = append(cvs, cv)
	}
	return cvs, rows.Err()
}

// DeleteScan removes a scan record by lowercased email.
func (d *DB) DeleteScan(ctx context.Context, email string) error {
	tag, err := d.Pool.Exec(ctx, `DELETE FROM scanned_cvs WHERE email = $1`, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrScanNotFound
	}
	return nil
}

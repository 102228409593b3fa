package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Santoryu-0niGiri/CV-Scanner/internal/models"
)

// keywordColumns is the standard column list for keyword queries.
const keywordColumns = `id, name, is_active, created_at, updated_at`

// scanKeyword scans a row into a Keyword struct.
func scanKeyword(row pgx.Row) (*models.Keyword, error) {
	var kw models.Keyword
	err := row.Scan(
		&kw.ID,
		&kw.Name,
		&kw.IsActive,
		&kw.CreatedAt,
		&kw.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrKeywordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &kw, nil
}

// scanKeywords scans multiple rows into a slice of Keywords.
func scanKeywords(rows pgx.Rows) ([]models.Keyword, error) {
	defer rows.Close()

	var keywords []models.Keyword
	for rows.Next() {
		var kw models.Keyword
		if err := rows.Scan(
			&kw.ID,
			&kw.Name,
			&kw.IsActive,
			&kw.CreatedAt,
			&kw.UpdatedAt,
		); err != nil {
			return nil, err
		}
		keywords = append(keywords, kw)
	}

	return keywords, rows.Err()
}

// CreateKeyword inserts a new keyword. New keywords are active by default.
func (d *DB) CreateKeyword(ctx context.Context, kw *models.Keyword) error {
	query := `
		INSERT INTO keywords (name, is_active)
		VALUES ($1, TRUE)
		RETURNING id, is_active, created_at, updated_at
	`

	return d.Pool.QueryRow(ctx, query, kw.Name).
		Scan(&kw.ID, &kw.IsActive, &kw.CreatedAt, &kw.UpdatedAt)
}

// GetKeywordByID retrieves a keyword by its ID.
func (d *DB) GetKeywordByID(ctx context.Context, id uuid.UUID) (*models.Keyword, error) {
	query := `SELECT ` + keywordColumns + ` FROM keywords WHERE id = $1`
	return scanKeyword(d.Pool.QueryRow(ctx, query, id))
}

// KeywordListOptions narrows and orders keyword listing queries.
type KeywordListOptions struct {
	IsActive  *bool
	SortBy    string // "name" or "created_at"
	SortOrder string // "asc" or "desc"
	Limit     int
	Offset    int
}

// ListKeywords returns keywords filtered, sorted, and paginated per opts.
// Sort fields outside the whitelist fall back to created_at.
func (d *DB) ListKeywords(ctx context.Context, opts KeywordListOptions) ([]models.Keyword, error) {
	sortField := "created_at"
	if opts.SortBy == "name" {
		sortField = "name"
	}
	order := "DESC"
	if opts.SortOrder == "asc" {
		order = "ASC"
	}

	query := `SELECT ` + keywordColumns + ` FROM keywords`
	args := []any{}
	if opts.IsActive != nil {
		query += ` WHERE is_active = $1`
		args = append(args, *opts.IsActive)
	}
	query += fmt.Sprintf(` ORDER BY %s %s LIMIT %d OFFSET %d`, sortField, order, opts.Limit, opts.Offset)

	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanKeywords(rows)
}

// GetActiveKeywordNames returns the names of all active keywords.
// Feeds the match engine via the keyword cache.
func (d *DB) GetActiveKeywordNames(ctx context.Context) ([]string, error) {
	rows, err := d.Pool.Query(ctx, `SELECT name FROM keywords WHERE is_active = TRUE ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// UpdateKeywordName renames a keyword.
func (d *DB) UpdateKeywordName(ctx context.Context, id uuid.UUID, name string) (*models.Keyword, error) {
	query := `
		UPDATE keywords SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + keywordColumns

	return scanKeyword(d.Pool.QueryRow(ctx, query, id, name))
}

// SetKeywordStatus activates or deactivates a keyword.
func (d *DB) SetKeywordStatus(ctx context.Context, id uuid.UUID, isActive bool) (*models.Keyword, error) {
	query := `
		UPDATE keywords SET is_active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + keywordColumns

	return scanKeyword(d.Pool.QueryRow(ctx, query, id, isActive))
}

// DeleteKeyword removes a keyword.
func (d *DB) DeleteKeyword(ctx context.Context, id uuid.UUID) error {
	tag, err := d.Pool.Exec(ctx, `DELETE FROM keywords WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrKeywordNotFound
	}
	return nil
}

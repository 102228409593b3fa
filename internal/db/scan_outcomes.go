package db

import (
	"context"

	"github.com/Santoryu-0niGiri/CV-Scanner/internal/models"
)

// IncrementScanOutcome upserts a scan outcome count.
func (d *DB) IncrementScanOutcome(ctx context.Context, outcome string) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO scan_outcomes (outcome, count, last_seen_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (outcome) DO UPDATE
		SET count = scan_outcomes.count + 1, last_seen_at = NOW()
	`, outcome)
	return err
}

// GetAllScanOutcomes returns all scan outcome rows for metrics export.
func (d *DB) GetAllScanOutcomes(ctx context.Context) ([]models.ScanOutcome, error) {
	rows, err := d.Pool.Query(ctx, `SELECT outcome, count, last_seen_at FROM scan_outcomes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []models.ScanOutcome
	for rows.Next() {
		var o models.ScanOutcome
		if err := rows.Scan(&o.Outcome, &o.Count, &o.LastSeenAt); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hrms-engine/internal/domain"
)

// SaveJobs replaces the whole snapshot with the given collection, preserving
// order. The snapshot is derived state: a full rewrite per save keeps it
// trivially consistent with the in-memory collection (deletes included).
func (d *DB) SaveJobs(ctx context.Context, jobs []domain.Job) error {
	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("snapshot begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM job_snapshot;`); err != nil {
		return fmt.Errorf("snapshot clear: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i, j := range jobs {
		b, err := json.Marshal(j)
		if err != nil {
			return fmt.Errorf("snapshot marshal %s: %w", j.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO job_snapshot (id, position, payload, saved_at)
VALUES (?, ?, ?, ?);`, j.ID, i, string(b), now); err != nil {
			return fmt.Errorf("snapshot insert %s: %w", j.ID, err)
		}
	}
	return tx.Commit()
}

// LoadJobs returns the cached collection in saved order; empty when no
// snapshot exists yet.
func (d *DB) LoadJobs(ctx context.Context) ([]domain.Job, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT payload FROM job_snapshot ORDER BY position ASC;`)
	if err != nil {
		return nil, fmt.Errorf("snapshot query: %w", err)
	}
	defer rows.Close()

	var out []domain.Job
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var j domain.Job
		if err := json.Unmarshal([]byte(payload), &j); err != nil {
			// One bad row shouldn't sink the whole paint.
			continue
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

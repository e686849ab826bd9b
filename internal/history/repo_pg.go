package history

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using the analysis_history table.
type PGRepo struct {
	DB *sql.DB
}

// Record inserts one entry.
func (r *PGRepo) Record(ctx context.Context, entry Entry) error {
	if r == nil || r.DB == nil {
		return errors.New("history db not configured")
	}
	const query = `
INSERT INTO analysis_history (session_id, match_score, summary, missing_count, present_count, model, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx, query,
		entry.SessionID,
		entry.MatchScore,
		entry.Summary,
		entry.MissingCount,
		entry.PresentCount,
		entry.Model,
		createdAt,
	)
	return err
}

// ListRecent lists entries ordered newest-first.
func (r *PGRepo) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	if r == nil || r.DB == nil {
		return nil, errors.New("history db not configured")
	}
	const query = `
SELECT session_id, match_score, summary, missing_count, present_count, model, created_at
FROM analysis_history
ORDER BY created_at DESC
LIMIT $1`

	rows, err := r.DB.QueryContext(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.SessionID, &e.MatchScore, &e.Summary, &e.MissingCount, &e.PresentCount, &e.Model, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ Repo = (*PGRepo)(nil)

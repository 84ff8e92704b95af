package audit

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore writes the audit trail to Postgres.
type PGStore struct {
	Pool *pgxpool.Pool
}

func (s PGStore) InsertEntry(ctx context.Context, e Entry) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO audit_log (id, action, entity, entity_id, details, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.Action, e.Entity, e.EntityID, e.Details, e.CreatedAt)
	return err
}

func (s PGStore) ListEntries(ctx context.Context, entity string, limit int) ([]Entry, error) {
	query := `SELECT id, action, entity, entity_id, details, created_at
		 FROM audit_log WHERE ($1 = '' OR entity = $1)
		 ORDER BY created_at DESC LIMIT $2`
	rows, err := s.Pool.Query(ctx, query, entity, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Action, &e.Entity, &e.EntityID, &e.Details, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

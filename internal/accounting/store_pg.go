package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists expenses in Postgres.
type PGStore struct {
	Pool *pgxpool.Pool
}

func (s PGStore) InsertExpense(ctx context.Context, e Expense) (Expense, error) {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO expenses (id, category, description, amount, incurred_on, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.Category, e.Description, e.Amount, e.IncurredOn, e.CreatedAt)
	if err != nil {
		return Expense{}, err
	}
	return e, nil
}

func (s PGStore) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s PGStore) ListExpenses(ctx context.Context, from, to time.Time) ([]Expense, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT id, category, description, amount, incurred_on, created_at
		 FROM expenses WHERE incurred_on >= $1 AND incurred_on < $2
		 ORDER BY incurred_on DESC, created_at DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.Category, &e.Description, &e.Amount, &e.IncurredOn, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

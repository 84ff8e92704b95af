package hr

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGTimeStore persists time entries in Postgres. The partial unique index
// on (employee_id) WHERE clock_out IS NULL backs the one-open-entry rule.
type PGTimeStore struct {
	Pool *pgxpool.Pool
}

func (s PGTimeStore) OpenEntry(ctx context.Context, e TimeEntry) (TimeEntry, error) {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO time_entries (id, employee_id, clock_in) VALUES ($1, $2, $3)`,
		e.ID, e.EmployeeID, e.ClockIn)
	if err != nil {
		return TimeEntry{}, err
	}
	return e, nil
}

func (s PGTimeStore) OpenFor(ctx context.Context, employeeID uuid.UUID) (TimeEntry, bool, error) {
	var e TimeEntry
	err := s.Pool.QueryRow(ctx,
		`SELECT id, employee_id, clock_in FROM time_entries
		 WHERE employee_id = $1 AND clock_out IS NULL`, employeeID,
	).Scan(&e.ID, &e.EmployeeID, &e.ClockIn)
	if errors.Is(err, pgx.ErrNoRows) {
		return TimeEntry{}, false, nil
	}
	if err != nil {
		return TimeEntry{}, false, err
	}
	return e, true, nil
}

func (s PGTimeStore) CloseEntry(ctx context.Context, id uuid.UUID, at time.Time) (TimeEntry, error) {
	var e TimeEntry
	err := s.Pool.QueryRow(ctx,
		`UPDATE time_entries SET clock_out = $2
		 WHERE id = $1 AND clock_out IS NULL
		 RETURNING id, employee_id, clock_in, clock_out`, id, at,
	).Scan(&e.ID, &e.EmployeeID, &e.ClockIn, &e.ClockOut)
	if errors.Is(err, pgx.ErrNoRows) {
		return TimeEntry{}, ErrNotClockedIn
	}
	if err != nil {
		return TimeEntry{}, err
	}
	return e, nil
}

func (s PGTimeStore) ListEntries(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]TimeEntry, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT id, employee_id, clock_in, clock_out FROM time_entries
		 WHERE employee_id = $1 AND clock_in >= $2 AND clock_in < $3
		 ORDER BY clock_in DESC`, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []TimeEntry
	for rows.Next() {
		var e TimeEntry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.ClockIn, &e.ClockOut); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

package hr

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists the roster in Postgres.
type PGStore struct {
	Pool *pgxpool.Pool
}

const employeeColumns = "id, name, role, active, created_at, updated_at"

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.Name, &e.Role, &e.Active, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (s PGStore) ListEmployees(ctx context.Context, activeOnly bool) ([]Employee, error) {
	rows, err := s.Pool.Query(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE (NOT $1 OR active) ORDER BY name", activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s PGStore) GetEmployee(ctx context.Context, id uuid.UUID) (Employee, error) {
	row := s.Pool.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = $1", id)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, ErrNotFound
		}
		return Employee{}, err
	}
	return e, nil
}

func (s PGStore) CreateEmployee(ctx context.Context, in Input) (Employee, error) {
	now := time.Now().UTC()
	row := s.Pool.QueryRow(ctx,
		`INSERT INTO employees (id, name, role, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)
		 RETURNING `+employeeColumns,
		uuid.New(), in.Name, in.Role, in.Active, now)
	return scanEmployee(row)
}

func (s PGStore) UpdateEmployee(ctx context.Context, id uuid.UUID, in Input) (Employee, error) {
	row := s.Pool.QueryRow(ctx,
		`UPDATE employees SET name = $2, role = $3, active = $4, updated_at = $5
		 WHERE id = $1 RETURNING `+employeeColumns,
		id, in.Name, in.Role, in.Active, time.Now().UTC())
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, ErrNotFound
		}
		return Employee{}, err
	}
	return e, nil
}

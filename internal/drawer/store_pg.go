package drawer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ruenthai/backend-pos/internal/payment"
	"github.com/ruenthai/backend-pos/internal/pricing"
)

// PGStore persists shifts and movements in Postgres. A partial unique index
// on (terminal) WHERE NOT closed enforces the single-open-shift invariant at
// the database level as well.
type PGStore struct {
	Pool *pgxpool.Pool
}

const shiftColumns = "id, terminal, cashier, opening_balance, opened_at, closed, closed_at, counted_cash, cash_difference"

func scanShift(row pgx.Row) (Shift, error) {
	var sh Shift
	err := row.Scan(&sh.ID, &sh.Terminal, &sh.Cashier, &sh.OpeningBalance, &sh.OpenedAt,
		&sh.Closed, &sh.ClosedAt, &sh.CountedCash, &sh.CashDifference)
	return sh, err
}

func (s PGStore) OpenShift(ctx context.Context, shift Shift) (Shift, error) {
	row := s.Pool.QueryRow(ctx,
		`INSERT INTO drawer_shifts (id, terminal, cashier, opening_balance, opened_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+shiftColumns,
		shift.ID, shift.Terminal, shift.Cashier, shift.OpeningBalance, shift.OpenedAt)
	created, err := scanShift(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Shift{}, ErrShiftOpen
		}
		return Shift{}, err
	}
	return created, nil
}

func (s PGStore) GetOpenShift(ctx context.Context, terminal string) (Shift, error) {
	row := s.Pool.QueryRow(ctx,
		"SELECT "+shiftColumns+" FROM drawer_shifts WHERE terminal = $1 AND NOT closed", terminal)
	shift, err := scanShift(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Shift{}, ErrNoOpenShift
		}
		return Shift{}, err
	}
	return shift, nil
}

func (s PGStore) AppendMovement(ctx context.Context, m Movement) (Movement, error) {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO drawer_movements (id, shift_id, direction, method, amount, note, at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.ShiftID, string(m.Direction), string(m.Method), m.Amount, m.Note, m.At)
	if err != nil {
		return Movement{}, err
	}
	return m, nil
}

func (s PGStore) ListMovements(ctx context.Context, shiftID uuid.UUID) ([]Movement, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT id, shift_id, direction, method, amount, note, at
		 FROM drawer_movements WHERE shift_id = $1 ORDER BY at, id`, shiftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Movement
	for rows.Next() {
		var m Movement
		var direction, method string
		if err := rows.Scan(&m.ID, &m.ShiftID, &direction, &method, &m.Amount, &m.Note, &m.At); err != nil {
			return nil, err
		}
		m.Direction = Direction(direction)
		m.Method = payment.Kind(method)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s PGStore) CloseShift(ctx context.Context, shiftID uuid.UUID, countedCash, difference pricing.Money, at time.Time) (Shift, error) {
	row := s.Pool.QueryRow(ctx,
		`UPDATE drawer_shifts
		 SET closed = TRUE, closed_at = $2, counted_cash = $3, cash_difference = $4
		 WHERE id = $1 AND NOT closed
		 RETURNING `+shiftColumns,
		shiftID, at, countedCash, difference)
	shift, err := scanShift(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Shift{}, ErrNoOpenShift
		}
		return Shift{}, err
	}
	return shift, nil
}

func (s PGStore) ListShifts(ctx context.Context, terminal string, limit int) ([]Shift, error) {
	rows, err := s.Pool.Query(ctx,
		"SELECT "+shiftColumns+" FROM drawer_shifts WHERE terminal = $1 ORDER BY opened_at DESC LIMIT $2",
		terminal, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, shift)
	}
	return out, rows.Err()
}

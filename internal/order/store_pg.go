package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ruenthai/backend-pos/internal/payment"
)

// PGStore persists orders in Postgres. The order row and its lines are
// written in one transaction so a crash cannot leave a headless order.
type PGStore struct {
	Pool *pgxpool.Pool
}

func (s PGStore) InsertOrder(ctx context.Context, o Order) error {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO orders (id, number, terminal, shift_id, subtotal, tax, total,
		                     payment_method, tendered, change, placed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		o.ID, o.Number, o.Terminal, o.ShiftID, o.Subtotal, o.Tax, o.Total,
		string(o.Payment.Kind), o.Payment.Tendered, o.Payment.Change, o.PlacedAt); err != nil {
		return err
	}
	for i, line := range o.Lines {
		if _, err := tx.Exec(ctx,
			`INSERT INTO order_items (order_id, position, item_id, name_en, name_th, unit_price, qty, line_total)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			o.ID, i, line.ItemID, line.NameEN, line.NameTH, line.UnitPrice, line.Qty, line.LineTotal); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s PGStore) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s PGStore) GetOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	row := s.Pool.QueryRow(ctx,
		`SELECT id, number, terminal, shift_id, subtotal, tax, total,
		        payment_method, tendered, change, placed_at
		 FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	lines, err := s.loadLines(ctx, []uuid.UUID{o.ID})
	if err != nil {
		return Order{}, err
	}
	o.Lines = lines[o.ID]
	return o, nil
}

func (s PGStore) ListOrders(ctx context.Context, terminal string, limit int) ([]Order, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT id, number, terminal, shift_id, subtotal, tax, total,
		        payment_method, tendered, change, placed_at
		 FROM orders WHERE ($1 = '' OR terminal = $1)
		 ORDER BY placed_at DESC LIMIT $2`, terminal, limit)
	if err != nil {
		return nil, err
	}
	return s.collect(ctx, rows)
}

func (s PGStore) ListOrdersBetween(ctx context.Context, from, to time.Time) ([]Order, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT id, number, terminal, shift_id, subtotal, tax, total,
		        payment_method, tendered, change, placed_at
		 FROM orders WHERE placed_at >= $1 AND placed_at < $2
		 ORDER BY placed_at`, from, to)
	if err != nil {
		return nil, err
	}
	return s.collect(ctx, rows)
}

func (s PGStore) NextSequence(ctx context.Context, day string) (int, error) {
	var seq int
	err := s.Pool.QueryRow(ctx,
		`INSERT INTO order_counters (day, value) VALUES ($1, 1)
		 ON CONFLICT (day) DO UPDATE SET value = order_counters.value + 1
		 RETURNING value`, day).Scan(&seq)
	return seq, err
}

func (s PGStore) collect(ctx context.Context, rows pgx.Rows) ([]Order, error) {
	defer rows.Close()
	var out []Order
	var ids []uuid.UUID
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}
	lines, err := s.loadLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Lines = lines[out[i].ID]
	}
	return out, nil
}

func (s PGStore) loadLines(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]Line, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT order_id, item_id, name_en, name_th, unit_price, qty, line_total
		 FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, position`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[uuid.UUID][]Line, len(orderIDs))
	for rows.Next() {
		var orderID uuid.UUID
		var line Line
		if err := rows.Scan(&orderID, &line.ItemID, &line.NameEN, &line.NameTH,
			&line.UnitPrice, &line.Qty, &line.LineTotal); err != nil {
			return nil, err
		}
		out[orderID] = append(out[orderID], line)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	var method string
	err := row.Scan(&o.ID, &o.Number, &o.Terminal, &o.ShiftID, &o.Subtotal, &o.Tax, &o.Total,
		&method, &o.Payment.Tendered, &o.Payment.Change, &o.PlacedAt)
	o.Payment.Kind = payment.Kind(method)
	return o, err
}

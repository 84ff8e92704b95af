package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists stock in Postgres. The inventory_applied_orders table is
// the idempotency guard: inserting the order number first, inside the same
// transaction as the deductions, makes a replayed order a no-op.
type PGStore struct {
	Pool *pgxpool.Pool
}

func (s PGStore) UpsertStock(ctx context.Context, item StockItem) (StockItem, error) {
	row := s.Pool.QueryRow(ctx,
		`INSERT INTO inventory_stock (item_id, name_en, on_hand, reorder_level, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (item_id) DO UPDATE
		 SET name_en = EXCLUDED.name_en, on_hand = EXCLUDED.on_hand,
		     reorder_level = EXCLUDED.reorder_level, updated_at = EXCLUDED.updated_at
		 RETURNING item_id, name_en, on_hand, reorder_level, updated_at`,
		item.ItemID, item.NameEN, item.OnHand, item.ReorderLevel, item.UpdatedAt)
	return scanStock(row)
}

func (s PGStore) GetStock(ctx context.Context, itemID uuid.UUID) (StockItem, error) {
	row := s.Pool.QueryRow(ctx,
		`SELECT item_id, name_en, on_hand, reorder_level, updated_at
		 FROM inventory_stock WHERE item_id = $1`, itemID)
	item, err := scanStock(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StockItem{}, ErrNotFound
		}
		return StockItem{}, err
	}
	return item, nil
}

func (s PGStore) ListStock(ctx context.Context) ([]StockItem, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT item_id, name_en, on_hand, reorder_level, updated_at
		 FROM inventory_stock ORDER BY name_en`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []StockItem
	for rows.Next() {
		item, err := scanStock(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s PGStore) ApplyOrder(ctx context.Context, orderNumber string, lines []Deduction, at time.Time) (bool, error) {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`INSERT INTO inventory_applied_orders (order_number, applied_at)
		 VALUES ($1, $2) ON CONFLICT (order_number) DO NOTHING`,
		orderNumber, at)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	for _, line := range lines {
		if _, err := tx.Exec(ctx,
			`UPDATE inventory_stock
			 SET on_hand = GREATEST(on_hand - $2, 0), updated_at = $3
			 WHERE item_id = $1`,
			line.ItemID, line.Qty, at); err != nil {
			return false, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func scanStock(row pgx.Row) (StockItem, error) {
	var item StockItem
	err := row.Scan(&item.ItemID, &item.NameEN, &item.OnHand, &item.ReorderLevel, &item.UpdatedAt)
	return item, err
}

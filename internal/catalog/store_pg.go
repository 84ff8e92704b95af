package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists the menu in Postgres.
type PGStore struct {
	Pool *pgxpool.Pool
}

const categoryColumns = "id, name_en, name_th, sort_order, active, created_at, updated_at"

func (s PGStore) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.Pool.Query(ctx,
		"SELECT "+categoryColumns+" FROM menu_categories ORDER BY sort_order, name_en")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.NameEN, &c.NameTH, &c.SortOrder, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s PGStore) CreateCategory(ctx context.Context, in CategoryInput) (Category, error) {
	var c Category
	err := s.Pool.QueryRow(ctx,
		`INSERT INTO menu_categories (name_en, name_th, sort_order, active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+categoryColumns,
		in.NameEN, in.NameTH, in.SortOrder, in.Active,
	).Scan(&c.ID, &c.NameEN, &c.NameTH, &c.SortOrder, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return Category{}, mapPGError(err)
	}
	return c, nil
}

func (s PGStore) UpdateCategory(ctx context.Context, id uuid.UUID, in CategoryInput) (Category, error) {
	var c Category
	err := s.Pool.QueryRow(ctx,
		`UPDATE menu_categories
		 SET name_en = $2, name_th = $3, sort_order = $4, active = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING `+categoryColumns,
		id, in.NameEN, in.NameTH, in.SortOrder, in.Active,
	).Scan(&c.ID, &c.NameEN, &c.NameTH, &c.SortOrder, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, ErrNotFound
		}
		return Category{}, mapPGError(err)
	}
	return c, nil
}

const itemColumns = "id, category_id, name_en, name_th, price, available, sort_order, created_at, updated_at"

func (s PGStore) ListItems(ctx context.Context, categoryID *uuid.UUID) ([]Item, error) {
	query := "SELECT " + itemColumns + " FROM menu_items"
	args := []any{}
	if categoryID != nil {
		query += " WHERE category_id = $1"
		args = append(args, *categoryID)
	}
	query += " ORDER BY sort_order, name_en"
	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.CategoryID, &it.NameEN, &it.NameTH, &it.Price, &it.Available, &it.SortOrder, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s PGStore) GetItem(ctx context.Context, id uuid.UUID) (Item, error) {
	var it Item
	err := s.Pool.QueryRow(ctx,
		"SELECT "+itemColumns+" FROM menu_items WHERE id = $1", id,
	).Scan(&it.ID, &it.CategoryID, &it.NameEN, &it.NameTH, &it.Price, &it.Available, &it.SortOrder, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return it, nil
}

func (s PGStore) CreateItem(ctx context.Context, in ItemInput) (Item, error) {
	var it Item
	err := s.Pool.QueryRow(ctx,
		`INSERT INTO menu_items (category_id, name_en, name_th, price, available, sort_order)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+itemColumns,
		in.CategoryID, in.NameEN, in.NameTH, in.Price, in.Available, in.SortOrder,
	).Scan(&it.ID, &it.CategoryID, &it.NameEN, &it.NameTH, &it.Price, &it.Available, &it.SortOrder, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return Item{}, mapPGError(err)
	}
	return it, nil
}

func (s PGStore) UpdateItem(ctx context.Context, id uuid.UUID, in ItemInput) (Item, error) {
	var it Item
	err := s.Pool.QueryRow(ctx,
		`UPDATE menu_items
		 SET category_id = $2, name_en = $3, name_th = $4, price = $5, available = $6, sort_order = $7, updated_at = now()
		 WHERE id = $1
		 RETURNING `+itemColumns,
		id, in.CategoryID, in.NameEN, in.NameTH, in.Price, in.Available, in.SortOrder,
	).Scan(&it.ID, &it.CategoryID, &it.NameEN, &it.NameTH, &it.Price, &it.Available, &it.SortOrder, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, mapPGError(err)
	}
	return it, nil
}

func (s PGStore) DeleteItem(ctx context.Context, id uuid.UUID) error {
	tag, err := s.Pool.Exec(ctx, "DELETE FROM menu_items WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func mapPGError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("duplicate entry: %w", ErrInvalidInput)
		case "23503":
			return fmt.Errorf("unknown category: %w", ErrInvalidInput)
		}
	}
	return err
}

package settings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore keeps the profile in the restaurant_settings table. The table
// holds at most one row, enforced by the fixed primary key.
type PGStore struct {
	Pool *pgxpool.Pool
}

func (s PGStore) GetProfile(ctx context.Context) (Profile, bool, error) {
	var p Profile
	err := s.Pool.QueryRow(ctx,
		`SELECT name, address, phone, receipt_footer, updated_at
		 FROM restaurant_settings WHERE id = 1`,
	).Scan(&p.Name, &p.Address, &p.Phone, &p.ReceiptFooter, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, err
	}
	return p, true, nil
}

func (s PGStore) SaveProfile(ctx context.Context, p Profile) (Profile, error) {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO restaurant_settings (id, name, address, phone, receipt_footer, updated_at)
		 VALUES (1, $1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET
		   name = EXCLUDED.name,
		   address = EXCLUDED.address,
		   phone = EXCLUDED.phone,
		   receipt_footer = EXCLUDED.receipt_footer,
		   updated_at = EXCLUDED.updated_at`,
		p.Name, p.Address, p.Phone, p.ReceiptFooter, p.UpdatedAt)
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

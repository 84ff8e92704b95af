package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetReturnsDefaultsBeforeFirstSave(t *testing.T) {
	svc := &Service{Store: NewMemoryStore()}
	p, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, Defaults(), p)
}

func TestUpdateRequiresName(t *testing.T) {
	svc := &Service{Store: NewMemoryStore()}
	_, err := svc.Update(context.Background(), Profile{Name: "  "})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateThenGetRoundTrips(t *testing.T) {
	fixed := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	svc := &Service{Store: NewMemoryStore(), Now: func() time.Time { return fixed }}
	ctx := context.Background()

	saved, err := svc.Update(ctx, Profile{
		Name:          "Ruen Thai Sukhumvit",
		Address:       "88 Sukhumvit Soi 20, Bangkok",
		Phone:         "+66 2 000 0000",
		ReceiptFooter: "Khop khun kha",
	})
	require.NoError(t, err)
	require.Equal(t, fixed, saved.UpdatedAt)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, saved, got)
}

package hr

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateAndList(t *testing.T) {
	svc := &Service{Store: NewMemoryStore()}
	ctx := context.Background()

	malee, err := svc.Create(ctx, Input{Name: "Malee", Role: RoleCashier, Active: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, Input{Name: "Chai", Role: RoleManager, Active: false})
	require.NoError(t, err)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, malee.ID, active[0].ID)
}

func TestCreateRejectsBadInput(t *testing.T) {
	svc := &Service{Store: NewMemoryStore()}
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{Name: "  ", Role: RoleCashier})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, Input{Name: "Malee", Role: "owner"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateMissingEmployee(t *testing.T) {
	svc := &Service{Store: NewMemoryStore()}
	_, err := svc.Update(context.Background(), uuid.New(), Input{Name: "Malee", Role: RoleCashier})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

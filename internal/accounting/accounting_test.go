package accounting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newService() *Service {
	return &Service{
		Store: NewMemoryStore(),
		Now: func() time.Time {
			return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
		},
	}
}

func TestRecordValidatesInput(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Record(ctx, Input{Category: CategoryRent, Description: "January rent", Amount: 0})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Record(ctx, Input{Category: "gadgets", Description: "blender", Amount: 500})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Record(ctx, Input{Category: CategoryOther, Description: "   ", Amount: 500})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecordDefaultsIncurredOn(t *testing.T) {
	svc := newService()
	e, err := svc.Record(context.Background(), Input{
		Category: CategoryIngredients, Description: "market run", Amount: 125000,
	})
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), e.IncurredOn)
}

func TestMonthlySummary(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	book := func(cat, desc string, amount int64, day int) {
		t.Helper()
		_, err := svc.Record(ctx, Input{
			Category: cat, Description: desc, Amount: amount,
			IncurredOn: time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}
	book(CategoryIngredients, "produce", 320000, 3)
	book(CategoryIngredients, "seafood", 180000, 10)
	book(CategoryRent, "January rent", 2500000, 1)
	// lands in February, must not leak into the January summary
	_, err := svc.Record(ctx, Input{
		Category: CategoryUtilities, Description: "electricity", Amount: 90000,
		IncurredOn: time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	summary, err := svc.Monthly(ctx, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, "2024-01", summary.Month)
	require.Equal(t, 3, summary.Count)
	require.EqualValues(t, 3000000, summary.Total)
	require.EqualValues(t, 500000, summary.ByCategory[CategoryIngredients])
	require.EqualValues(t, 2500000, summary.ByCategory[CategoryRent])
}

func TestDeleteExpense(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	e, err := svc.Record(ctx, Input{Category: CategoryOther, Description: "glassware", Amount: 45000})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, e.ID))
	require.ErrorIs(t, svc.Delete(ctx, e.ID), ErrNotFound)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	expenses, err := svc.List(ctx, from, from.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Empty(t, expenses)
}

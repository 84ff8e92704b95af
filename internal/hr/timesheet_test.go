package hr

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTimesheet(t *testing.T) (*Timesheet, Employee) {
	t.Helper()
	roster := &Service{Store: NewMemoryStore()}
	emp, err := roster.Create(context.Background(), Input{Name: "Nok", Role: RoleCashier, Active: true})
	require.NoError(t, err)

	clock := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	sheet := &Timesheet{
		Roster: roster,
		Store:  NewMemoryTimeStore(),
		Now:    func() time.Time { return clock },
	}
	return sheet, emp
}

func TestClockInOpensSingleEntry(t *testing.T) {
	sheet, emp := newTimesheet(t)
	ctx := context.Background()

	entry, err := sheet.ClockIn(ctx, emp.ID)
	require.NoError(t, err)
	require.Nil(t, entry.ClockOut)

	_, err = sheet.ClockIn(ctx, emp.ID)
	require.ErrorIs(t, err, ErrAlreadyClockedIn)
}

func TestClockOutClosesTheOpenEntry(t *testing.T) {
	sheet, emp := newTimesheet(t)
	ctx := context.Background()

	_, err := sheet.ClockIn(ctx, emp.ID)
	require.NoError(t, err)

	sheet.Now = func() time.Time { return time.Date(2024, 1, 15, 17, 30, 0, 0, time.UTC) }
	closed, err := sheet.ClockOut(ctx, emp.ID)
	require.NoError(t, err)
	require.NotNil(t, closed.ClockOut)
	require.EqualValues(t, 510, closed.Minutes())

	_, err = sheet.ClockOut(ctx, emp.ID)
	require.ErrorIs(t, err, ErrNotClockedIn)
}

func TestClockInRejectsDeactivatedStaff(t *testing.T) {
	sheet, emp := newTimesheet(t)
	ctx := context.Background()

	_, err := sheet.Roster.Update(ctx, emp.ID, Input{Name: emp.Name, Role: emp.Role, Active: false})
	require.NoError(t, err)

	_, err = sheet.ClockIn(ctx, emp.ID)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestEntriesScopedToMonth(t *testing.T) {
	sheet, emp := newTimesheet(t)
	ctx := context.Background()

	_, err := sheet.ClockIn(ctx, emp.ID)
	require.NoError(t, err)
	sheet.Now = func() time.Time { return time.Date(2024, 1, 15, 17, 0, 0, 0, time.UTC) }
	_, err = sheet.ClockOut(ctx, emp.ID)
	require.NoError(t, err)

	sheet.Now = func() time.Time { return time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC) }
	_, err = sheet.ClockIn(ctx, emp.ID)
	require.NoError(t, err)

	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries, err := sheet.Entries(ctx, emp.ID, jan, jan.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].ClockOut)
}

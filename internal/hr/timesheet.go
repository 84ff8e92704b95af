package hr

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyClockedIn = errors.New("employee already clocked in")
	ErrNotClockedIn     = errors.New("employee is not clocked in")
)

// TimeEntry is one worked stretch. ClockOut is nil while the shift is
// still running.
type TimeEntry struct {
	ID         uuid.UUID  `json:"id"`
	EmployeeID uuid.UUID  `json:"employeeId"`
	ClockIn    time.Time  `json:"clockIn"`
	ClockOut   *time.Time `json:"clockOut,omitempty"`
}

// Minutes reports the worked duration, zero while the entry is open.
func (e TimeEntry) Minutes() int64 {
	if e.ClockOut == nil {
		return 0
	}
	return int64(e.ClockOut.Sub(e.ClockIn) / time.Minute)
}

// TimeStore persists time entries. At most one open entry per employee.
type TimeStore interface {
	OpenEntry(ctx context.Context, e TimeEntry) (TimeEntry, error)
	OpenFor(ctx context.Context, employeeID uuid.UUID) (TimeEntry, bool, error)
	CloseEntry(ctx context.Context, id uuid.UUID, at time.Time) (TimeEntry, error)
	ListEntries(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]TimeEntry, error)
}

// Timesheet tracks who is on the clock. It leans on the roster to refuse
// punches from unknown or deactivated staff.
type Timesheet struct {
	Roster *Service
	Store  TimeStore
	Now    func() time.Time
}

func (t *Timesheet) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now().UTC()
}

// ClockIn opens a time entry for the employee.
func (t *Timesheet) ClockIn(ctx context.Context, employeeID uuid.UUID) (TimeEntry, error) {
	if t == nil || t.Store == nil || t.Roster == nil {
		return TimeEntry{}, errors.New("timesheet not configured")
	}
	emp, err := t.Roster.Get(ctx, employeeID)
	if err != nil {
		return TimeEntry{}, err
	}
	if !emp.Active {
		return TimeEntry{}, fmt.Errorf("employee %s is deactivated: %w", emp.Name, ErrInvalidInput)
	}
	if _, open, err := t.Store.OpenFor(ctx, employeeID); err != nil {
		return TimeEntry{}, err
	} else if open {
		return TimeEntry{}, ErrAlreadyClockedIn
	}
	return t.Store.OpenEntry(ctx, TimeEntry{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		ClockIn:    t.now(),
	})
}

// ClockOut closes the employee's open entry.
func (t *Timesheet) ClockOut(ctx context.Context, employeeID uuid.UUID) (TimeEntry, error) {
	if t == nil || t.Store == nil {
		return TimeEntry{}, errors.New("timesheet not configured")
	}
	entry, open, err := t.Store.OpenFor(ctx, employeeID)
	if err != nil {
		return TimeEntry{}, err
	}
	if !open {
		return TimeEntry{}, ErrNotClockedIn
	}
	return t.Store.CloseEntry(ctx, entry.ID, t.now())
}

// Entries lists an employee's entries in [from, to), newest first.
func (t *Timesheet) Entries(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]TimeEntry, error) {
	if t == nil || t.Store == nil {
		return nil, errors.New("timesheet not configured")
	}
	return t.Store.ListEntries(ctx, employeeID, from, to)
}

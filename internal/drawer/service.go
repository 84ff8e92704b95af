package drawer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ruenthai/backend-pos/internal/payment"
	"github.com/ruenthai/backend-pos/internal/pricing"
)

// Store defines the persistence operations the ledger relies on. Movements
// are append-only; stores never expose update or delete for them.
type Store interface {
	// OpenShift fails with ErrShiftOpen when the terminal already has one.
	OpenShift(ctx context.Context, shift Shift) (Shift, error)
	// GetOpenShift fails with ErrNoOpenShift when none is open.
	GetOpenShift(ctx context.Context, terminal string) (Shift, error)
	AppendMovement(ctx context.Context, m Movement) (Movement, error)
	ListMovements(ctx context.Context, shiftID uuid.UUID) ([]Movement, error)
	CloseShift(ctx context.Context, shiftID uuid.UUID, countedCash, difference pricing.Money, at time.Time) (Shift, error)
	ListShifts(ctx context.Context, terminal string, limit int) ([]Shift, error)
}

// Auditor receives back-office audit events. Delivery is fire-and-forget:
// a failing audit sink never blocks or rolls back the drawer operation.
type Auditor interface {
	Record(ctx context.Context, action, entity, entityID string, details map[string]any)
}

// Service serialises ledger access per process. The balance check before a
// withdrawal and the subsequent append must not interleave, so all mutating
// operations run under one mutex; the recompute-from-log contract makes this
// safe to extend to a per-shift transaction boundary in a multi-terminal
// deployment.
type Service struct {
	Store Store
	Audit Auditor
	Now   func() time.Time

	mu sync.Mutex
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// OpenShift starts a new drawer shift with the given opening balance.
func (s *Service) OpenShift(ctx context.Context, terminal, cashier string, opening pricing.Money) (Shift, error) {
	if s == nil || s.Store == nil {
		return Shift{}, errors.New("drawer service not configured")
	}
	if opening < 0 {
		return Shift{}, fmt.Errorf("opening balance: %w", ErrInvalidAmount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	shift, err := s.Store.OpenShift(ctx, Shift{
		ID:             uuid.New(),
		Terminal:       terminal,
		Cashier:        cashier,
		OpeningBalance: opening,
		OpenedAt:       s.now(),
	})
	if err != nil {
		return Shift{}, err
	}
	s.audit(ctx, "shift.open", shift.ID, map[string]any{
		"terminal":       terminal,
		"openingBalance": opening,
	})
	return shift, nil
}

// RecordSale appends an "in" movement for a completed order.
func (s *Service) RecordSale(ctx context.Context, terminal string, method payment.Kind, amount pricing.Money) (Movement, error) {
	if s == nil || s.Store == nil {
		return Movement{}, errors.New("drawer service not configured")
	}
	if amount <= 0 {
		return Movement{}, fmt.Errorf("sale amount: %w", ErrInvalidAmount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	shift, err := s.Store.GetOpenShift(ctx, terminal)
	if err != nil {
		return Movement{}, err
	}
	return s.Store.AppendMovement(ctx, Movement{
		ID:        uuid.New(),
		ShiftID:   shift.ID,
		Direction: DirIn,
		Method:    method,
		Amount:    amount,
		At:        s.now(),
	})
}

// RecordWithdrawal appends an "out" movement after recomputing the cash
// balance from the movement log. A rejected withdrawal leaves the log
// untouched.
func (s *Service) RecordWithdrawal(ctx context.Context, terminal string, amount pricing.Money, note string) (Movement, error) {
	if s == nil || s.Store == nil {
		return Movement{}, errors.New("drawer service not configured")
	}
	if amount <= 0 {
		return Movement{}, fmt.Errorf("withdrawal amount: %w", ErrInvalidAmount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	shift, err := s.Store.GetOpenShift(ctx, terminal)
	if err != nil {
		return Movement{}, err
	}
	movements, err := s.Store.ListMovements(ctx, shift.ID)
	if err != nil {
		return Movement{}, err
	}
	balance := Balance(shift.OpeningBalance, movements)
	if amount > balance {
		return Movement{}, fmt.Errorf("%w: balance %d, requested %d", ErrInsufficientFunds, balance, amount)
	}
	movement, err := s.Store.AppendMovement(ctx, Movement{
		ID:        uuid.New(),
		ShiftID:   shift.ID,
		Direction: DirOut,
		Method:    payment.KindCash,
		Amount:    amount,
		Note:      note,
		At:        s.now(),
	})
	if err != nil {
		return Movement{}, err
	}
	s.audit(ctx, "drawer.withdraw", shift.ID, map[string]any{
		"terminal": terminal,
		"amount":   amount,
		"note":     note,
	})
	return movement, nil
}

// Summary is the live view of an open shift.
type Summary struct {
	Shift       Shift                          `json:"shift"`
	Movements   []Movement                     `json:"movements"`
	CashBalance pricing.Money                  `json:"cashBalance"`
	Totals      map[payment.Kind]pricing.Money `json:"totalsByMethod"`
}

// Summarize recomputes the balance and per-method totals for the open shift.
func (s *Service) Summarize(ctx context.Context, terminal string) (Summary, error) {
	if s == nil || s.Store == nil {
		return Summary{}, errors.New("drawer service not configured")
	}
	shift, err := s.Store.GetOpenShift(ctx, terminal)
	if err != nil {
		return Summary{}, err
	}
	movements, err := s.Store.ListMovements(ctx, shift.ID)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Shift:       shift,
		Movements:   movements,
		CashBalance: Balance(shift.OpeningBalance, movements),
		Totals:      TotalsByMethod(movements),
	}, nil
}

// CurrentBalance recomputes the open shift's cash balance from its log.
func (s *Service) CurrentBalance(ctx context.Context, terminal string) (pricing.Money, error) {
	summary, err := s.Summarize(ctx, terminal)
	if err != nil {
		return 0, err
	}
	return summary.CashBalance, nil
}

// CloseShift records the counted cash and the difference against the
// recomputed balance, then marks the shift closed and immutable.
func (s *Service) CloseShift(ctx context.Context, terminal string, countedCash pricing.Money) (Shift, error) {
	if s == nil || s.Store == nil {
		return Shift{}, errors.New("drawer service not configured")
	}
	if countedCash < 0 {
		return Shift{}, fmt.Errorf("counted cash: %w", ErrInvalidAmount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	shift, err := s.Store.GetOpenShift(ctx, terminal)
	if err != nil {
		return Shift{}, err
	}
	movements, err := s.Store.ListMovements(ctx, shift.ID)
	if err != nil {
		return Shift{}, err
	}
	expected := Balance(shift.OpeningBalance, movements)
	closed, err := s.Store.CloseShift(ctx, shift.ID, countedCash, countedCash-expected, s.now())
	if err != nil {
		return Shift{}, err
	}
	s.audit(ctx, "shift.close", shift.ID, map[string]any{
		"terminal":       terminal,
		"countedCash":    countedCash,
		"expectedCash":   expected,
		"cashDifference": countedCash - expected,
	})
	return closed, nil
}

// History lists recent shifts for a terminal, newest first.
func (s *Service) History(ctx context.Context, terminal string, limit int) ([]Shift, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("drawer service not configured")
	}
	if limit <= 0 {
		limit = 20
	}
	return s.Store.ListShifts(ctx, terminal, limit)
}

func (s *Service) audit(ctx context.Context, action string, shiftID uuid.UUID, details map[string]any) {
	if s.Audit == nil {
		return
	}
	s.Audit.Record(ctx, action, "shift", shiftID.String(), details)
}

package drawer

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ruenthai/backend-pos/internal/payment"
	"github.com/ruenthai/backend-pos/internal/pricing"
)

// ErrShiftOpen indicates a shift is already open for the terminal.
var ErrShiftOpen = errors.New("shift already open")

// ErrNoOpenShift indicates no shift is open for the terminal.
var ErrNoOpenShift = errors.New("no open shift")

// ErrInvalidAmount indicates a non-positive monetary input.
var ErrInvalidAmount = errors.New("amount must be positive")

// ErrInsufficientFunds indicates a withdrawal exceeding the drawer balance.
var ErrInsufficientFunds = errors.New("withdrawal exceeds drawer balance")

// Direction marks which way cash (or its electronic equivalent) moved.
type Direction string

const (
	// DirIn records revenue entering the drawer.
	DirIn Direction = "in"
	// DirOut records cash leaving the drawer; out movements are always cash.
	DirOut Direction = "out"
)

// Movement is one signed cash event against an open shift. Movements are
// append-only: corrections are modelled as new compensating movements.
type Movement struct {
	ID        uuid.UUID     `json:"id"`
	ShiftID   uuid.UUID     `json:"shiftId"`
	Direction Direction     `json:"direction"`
	Method    payment.Kind  `json:"method"`
	Amount    pricing.Money `json:"amount"`
	Note      string        `json:"note,omitempty"`
	At        time.Time     `json:"at"`
}

// Shift is the time-bounded unit of cashier accountability for physical
// cash, anchored to an opening balance. Closed shifts are immutable and are
// retained for audit; reopening is not supported.
type Shift struct {
	ID             uuid.UUID     `json:"id"`
	Terminal       string        `json:"terminal"`
	Cashier        string        `json:"cashier,omitempty"`
	OpeningBalance pricing.Money `json:"openingBalance"`
	OpenedAt       time.Time     `json:"openedAt"`
	Closed         bool          `json:"closed"`
	ClosedAt       *time.Time    `json:"closedAt,omitempty"`
	CountedCash    pricing.Money `json:"countedCash"`
	CashDifference pricing.Money `json:"cashDifference"`
}

// Balance recomputes the drawer cash balance from the full movement log:
// opening + cash-in − out. Derived totals are never cached incrementally, so
// this is the single source of truth and cannot drift from the log.
func Balance(opening pricing.Money, movements []Movement) pricing.Money {
	balance := opening
	for _, m := range movements {
		switch m.Direction {
		case DirIn:
			if m.Method == payment.KindCash {
				balance += m.Amount
			}
		case DirOut:
			balance -= m.Amount
		}
	}
	return balance
}

// TotalsByMethod sums the "in" movements per payment method for end-of-shift
// reconciliation.
func TotalsByMethod(movements []Movement) map[payment.Kind]pricing.Money {
	totals := map[payment.Kind]pricing.Money{}
	for _, m := range movements {
		if m.Direction != DirIn {
			continue
		}
		totals[m.Method] += m.Amount
	}
	return totals
}

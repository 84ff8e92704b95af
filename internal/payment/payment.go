package payment

import (
	"errors"
	"fmt"

	"github.com/ruenthai/backend-pos/internal/pricing"
)

// ErrInsufficientPayment indicates tendered cash below the amount due.
var ErrInsufficientPayment = errors.New("tendered amount below total")

// ErrUnknownMethod indicates an unrecognised payment method tag.
var ErrUnknownMethod = errors.New("unknown payment method")

// Kind tags the payment method on persisted orders and drawer movements.
type Kind string

const (
	KindCash Kind = "cash"
	KindCard Kind = "card"
	KindQR   Kind = "qr"
)

// ParseKind maps a wire tag to a Kind. "credit" is accepted as a legacy
// alias for card.
func ParseKind(value string) (Kind, error) {
	switch value {
	case "cash":
		return KindCash, nil
	case "card", "credit":
		return KindCard, nil
	case "qr":
		return KindQR, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, value)
	}
}

// Result captures a confirmed payment.
type Result struct {
	Kind     Kind          `json:"method"`
	Tendered pricing.Money `json:"tendered"`
	Change   pricing.Money `json:"change"`
}

// Method is the closed set of payment variants. Adding a method means adding
// a type that implements Confirm, checked at compile time where it is wired.
type Method interface {
	Kind() Kind
	// Confirm validates the payment against the amount due and returns the
	// settled result. It never mutates external state.
	Confirm(total pricing.Money) (Result, error)
}

// Cash is payment with physical cash; Tendered is the amount handed over.
type Cash struct {
	Tendered pricing.Money
}

func (c Cash) Kind() Kind { return KindCash }

// Confirm requires tendered >= total and computes change.
func (c Cash) Confirm(total pricing.Money) (Result, error) {
	if c.Tendered < total {
		return Result{}, fmt.Errorf("%w: tendered %d, total %d", ErrInsufficientPayment, c.Tendered, total)
	}
	return Result{Kind: KindCash, Tendered: c.Tendered, Change: c.Tendered - total}, nil
}

// Card assumes the external authorisation already succeeded.
type Card struct{}

func (Card) Kind() Kind { return KindCard }

func (Card) Confirm(total pricing.Money) (Result, error) {
	return Result{Kind: KindCard}, nil
}

// QR assumes the external QR payment rail already settled.
type QR struct{}

func (QR) Kind() Kind { return KindQR }

func (QR) Confirm(total pricing.Money) (Result, error) {
	return Result{Kind: KindQR}, nil
}

// FromRequest builds the payment variant for an incoming checkout request.
func FromRequest(method string, tendered pricing.Money) (Method, error) {
	kind, err := ParseKind(method)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindCash:
		return Cash{Tendered: tendered}, nil
	case KindCard:
		return Card{}, nil
	default:
		return QR{}, nil
	}
}

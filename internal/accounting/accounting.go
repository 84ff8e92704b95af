package accounting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ruenthai/backend-pos/internal/pricing"
)

var (
	ErrNotFound     = errors.New("expense not found")
	ErrInvalidInput = errors.New("invalid expense input")
)

// Expense categories recognised by the back office.
const (
	CategoryIngredients = "ingredients"
	CategoryUtilities   = "utilities"
	CategoryRent        = "rent"
	CategorySalaries    = "salaries"
	CategoryOther       = "other"
)

// Expense is one outgoing cost booked against the restaurant.
type Expense struct {
	ID          uuid.UUID     `json:"id"`
	Category    string        `json:"category"`
	Description string        `json:"description"`
	Amount      pricing.Money `json:"amount"`
	IncurredOn  time.Time     `json:"incurredOn"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Input captures payload for booking an expense.
type Input struct {
	Category    string
	Description string
	Amount      pricing.Money
	IncurredOn  time.Time
}

// Store persists expenses.
type Store interface {
	InsertExpense(ctx context.Context, e Expense) (Expense, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error
	ListExpenses(ctx context.Context, from, to time.Time) ([]Expense, error)
}

// Service books and reports expenses. Amounts are positive minor units; the
// direction is implied, an expense is always money going out.
type Service struct {
	Store Store
	Now   func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Record books a new expense.
func (s *Service) Record(ctx context.Context, in Input) (Expense, error) {
	if s == nil || s.Store == nil {
		return Expense{}, errors.New("accounting service not configured")
	}
	if err := validate(&in); err != nil {
		return Expense{}, err
	}
	now := s.now()
	incurred := in.IncurredOn
	if incurred.IsZero() {
		incurred = now
	}
	return s.Store.InsertExpense(ctx, Expense{
		ID:          uuid.New(),
		Category:    in.Category,
		Description: in.Description,
		Amount:      in.Amount,
		IncurredOn:  incurred,
		CreatedAt:   now,
	})
}

// Delete removes a mistakenly booked expense.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if s == nil || s.Store == nil {
		return errors.New("accounting service not configured")
	}
	return s.Store.DeleteExpense(ctx, id)
}

// List returns expenses in [from, to), newest first.
func (s *Service) List(ctx context.Context, from, to time.Time) ([]Expense, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("accounting service not configured")
	}
	return s.Store.ListExpenses(ctx, from, to)
}

// MonthlySummary aggregates one calendar month of expenses.
type MonthlySummary struct {
	Month      string                   `json:"month"`
	Total      pricing.Money            `json:"total"`
	ByCategory map[string]pricing.Money `json:"byCategory"`
	Count      int                      `json:"count"`
}

// Monthly returns totals for the month containing the given day (UTC).
func (s *Service) Monthly(ctx context.Context, day time.Time) (MonthlySummary, error) {
	start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	expenses, err := s.List(ctx, start, end)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("accounting: load expenses: %w", err)
	}
	summary := MonthlySummary{
		Month:      start.Format("2006-01"),
		ByCategory: make(map[string]pricing.Money),
	}
	for _, e := range expenses {
		summary.Count++
		summary.Total += e.Amount
		summary.ByCategory[e.Category] += e.Amount
	}
	return summary, nil
}

func validate(in *Input) error {
	in.Description = strings.TrimSpace(in.Description)
	if in.Amount <= 0 {
		return fmt.Errorf("amount must be positive: %w", ErrInvalidInput)
	}
	switch in.Category {
	case CategoryIngredients, CategoryUtilities, CategoryRent, CategorySalaries, CategoryOther:
	default:
		return fmt.Errorf("unknown category %q: %w", in.Category, ErrInvalidInput)
	}
	if in.Description == "" {
		return fmt.Errorf("description is required: %w", ErrInvalidInput)
	}
	return nil
}

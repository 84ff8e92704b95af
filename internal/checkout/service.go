package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ruenthai/backend-pos/internal/cart"
	"github.com/ruenthai/backend-pos/internal/drawer"
	"github.com/ruenthai/backend-pos/internal/events"
	"github.com/ruenthai/backend-pos/internal/inventory"
	"github.com/ruenthai/backend-pos/internal/order"
	"github.com/ruenthai/backend-pos/internal/payment"
	"github.com/ruenthai/backend-pos/internal/pricing"
)

// Auditor receives back-office audit events, fire-and-forget.
type Auditor interface {
	Record(ctx context.Context, action, entity, entityID string, details map[string]any)
}

// Service turns an open cart into an immutable completed order. It is the
// only constructor of order.Order values: settlement, payment confirmation,
// persistence, drawer entry, cart clearing and the order.completed event all
// happen here, in that sequence.
type Service struct {
	Carts  *cart.Service
	Drawer *drawer.Service
	Orders order.Store
	Bus    *events.Bus
	Audit  Auditor
	Log    zerolog.Logger
	TaxBps int
	Now    func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Preview prices the terminal's current cart without side effects.
func (s *Service) Preview(ctx context.Context, terminal string) (Settlement, error) {
	if s == nil || s.Carts == nil {
		return Settlement{}, errors.New("checkout service not configured")
	}
	lines, err := s.Carts.Snapshot(terminal)
	if err != nil {
		return Settlement{}, err
	}
	return ComputeSettlement(lines, s.TaxBps)
}

// FinalizeOrder settles the cart, confirms payment, persists the order,
// records the drawer sale and clears the cart. A failure before persistence
// leaves the cart untouched so the cashier can retry or cancel.
func (s *Service) FinalizeOrder(ctx context.Context, terminal, method string, tendered pricing.Money) (order.Order, error) {
	if s == nil || s.Carts == nil || s.Drawer == nil || s.Orders == nil {
		return order.Order{}, errors.New("checkout service not configured")
	}
	lines, err := s.Carts.Snapshot(terminal)
	if err != nil {
		return order.Order{}, err
	}
	settlement, err := ComputeSettlement(lines, s.TaxBps)
	if err != nil {
		return order.Order{}, err
	}
	payMethod, err := payment.FromRequest(method, tendered)
	if err != nil {
		return order.Order{}, err
	}
	result, err := payMethod.Confirm(settlement.Summary.Total)
	if err != nil {
		return order.Order{}, err
	}

	// settlement needs an open shift before anything is written
	shiftSummary, err := s.Drawer.Summarize(ctx, terminal)
	if err != nil {
		return order.Order{}, err
	}

	placedAt := s.now()
	number, err := s.nextNumber(ctx, placedAt)
	if err != nil {
		return order.Order{}, fmt.Errorf("checkout: order number: %w", err)
	}
	o := order.Order{
		ID:       uuid.New(),
		Number:   number,
		Terminal: terminal,
		ShiftID:  shiftSummary.Shift.ID,
		Lines:    orderLines(settlement.Lines),
		Subtotal: settlement.Summary.Subtotal,
		Tax:      settlement.Summary.Tax,
		Total:    settlement.Summary.Total,
		Payment:  result,
		PlacedAt: placedAt,
	}
	if err := s.Orders.InsertOrder(ctx, o); err != nil {
		return order.Order{}, fmt.Errorf("checkout: persist order %s: %w", number, err)
	}
	if _, err := s.Drawer.RecordSale(ctx, terminal, result.Kind, o.Total); err != nil {
		// void the order so a failed settlement is all-or-nothing; the
		// cart is untouched and the cashier retries with a fresh number
		if delErr := s.Orders.DeleteOrder(ctx, o.ID); delErr != nil {
			s.Log.Error().Err(delErr).Str("order", number).Msg("orphaned order could not be voided")
		}
		return order.Order{}, fmt.Errorf("checkout: drawer entry for order %s: %w", number, err)
	}
	if err := s.Carts.Clear(terminal); err != nil {
		s.Log.Warn().Err(err).Str("terminal", terminal).Msg("cart not cleared after checkout")
	}
	s.emitCompleted(ctx, o)
	if s.Audit != nil {
		s.Audit.Record(ctx, "order.finalize", "order", o.ID.String(), map[string]any{
			"number": o.Number, "terminal": terminal, "total": o.Total, "method": string(result.Kind),
		})
	}
	return o, nil
}

func (s *Service) nextNumber(ctx context.Context, at time.Time) (string, error) {
	day := at.Format("20060102")
	seq, err := s.Orders.NextSequence(ctx, day)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("POS-%s-%04d", day, seq), nil
}

func (s *Service) emitCompleted(ctx context.Context, o order.Order) {
	if s.Bus == nil {
		return
	}
	deductions := make([]inventory.Deduction, 0, len(o.Lines))
	for _, line := range o.Lines {
		deductions = append(deductions, inventory.Deduction{ItemID: line.ItemID, Qty: line.Qty})
	}
	payload := map[string]any{
		"orderNumber": o.Number,
		"terminal":    o.Terminal,
		"total":       o.Total,
		"lines":       deductions,
	}
	if _, err := s.Bus.Emit(ctx, events.TopicOrderCompleted, o.ID, payload); err != nil {
		// the order is already committed; subscribers must catch up on replay
		s.Log.Error().Err(err).Str("order", o.Number).Msg("order.completed fan-out incomplete")
	}
}

func orderLines(lines []cart.Line) []order.Line {
	out := make([]order.Line, 0, len(lines))
	for _, line := range lines {
		out = append(out, order.Line{
			ItemID:    line.ItemID,
			NameEN:    line.NameEN,
			NameTH:    line.NameTH,
			UnitPrice: line.UnitPrice,
			Qty:       line.Qty,
			LineTotal: line.Total(),
		})
	}
	return out
}

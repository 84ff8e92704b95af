package inventory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ruenthai/backend-pos/internal/events"
)

// Notifier subscribes the inventory service to order.completed events.
type Notifier struct {
	Svc *Service
}

type orderCompletedPayload struct {
	OrderNumber string      `json:"orderNumber"`
	Lines       []Deduction `json:"lines"`
}

func (n Notifier) Notify(ctx context.Context, event events.Event) error {
	if event.Topic != events.TopicOrderCompleted || n.Svc == nil {
		return nil
	}
	var payload orderCompletedPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("inventory: decode %s payload: %w", event.Topic, err)
	}
	return n.Svc.ApplyOrder(ctx, payload.OrderNumber, payload.Lines)
}

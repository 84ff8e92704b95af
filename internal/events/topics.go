package events

// Topics emitted by the POS core.
const (
	// TopicOrderCompleted fires once per finalised order; inventory
	// deduction subscribes to it and must stay idempotent per order.
	TopicOrderCompleted = "order.completed"
)

package event

import "time"

type BaseEvent struct {
	EventID     string    `json:"event_id"`
	AggregateID string    `json:"aggregate_id"`
	CreatedAt   time.Time `json:"created_at"`
	EventType   EventType `json:"event_type"`
}

func (e *BaseEvent) GetID() string {
	return e.EventID
}

type EventType string

const (
	OrderCreatedEventName    EventType = "OrderCreated"
	PaymentCapturedEventName EventType = "PaymentCaptured"
	PaymentFailedEventName   EventType = "PaymentFailed"
	OrderPaidEventName       EventType = "OrderPaid"
	OrderCancelledEventName  EventType = "OrderCancelled"
)

type Event interface {
	Type() EventType
	GetID() string
}

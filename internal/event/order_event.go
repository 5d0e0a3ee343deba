package event

import (
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/shopspring/decimal"
)

type OrderCreatedEvent struct {
	BaseEvent
	OrderID       string              `json:"order_id"`
	Amount        decimal.Decimal     `json:"amount"`
	Currency      string              `json:"currency"`
	PaymentMethod model.PaymentMethod `json:"payment_method"`
	Status        model.OrderStatus   `json:"status"`
	Items         []model.OrderItem   `json:"items"`
}

func (e *OrderCreatedEvent) Type() EventType {
	return OrderCreatedEventName
}

type PaymentCapturedEvent struct {
	BaseEvent
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
}

func (e *PaymentCapturedEvent) Type() EventType {
	return PaymentCapturedEventName
}

type PaymentFailedEvent struct {
	BaseEvent
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Reason    string `json:"reason"`
}

func (e *PaymentFailedEvent) Type() EventType {
	return PaymentFailedEventName
}

type OrderPaidEvent struct {
	BaseEvent
	OrderID string `json:"order_id"`
}

func (e *OrderPaidEvent) Type() EventType {
	return OrderPaidEventName
}

type OrderCancelledEvent struct {
	BaseEvent
	OrderID string `json:"order_id"`
	Message string `json:"message"`
}

func (e *OrderCancelledEvent) Type() EventType {
	return OrderCancelledEventName
}

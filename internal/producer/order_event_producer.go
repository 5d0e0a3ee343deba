package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/RoyceAzure/lab/rj_kafka/kafka/message"
	"github.com/RoyceAzure/lab/rj_kafka/kafka/producer"
	"github.com/RoyceAzure/lab/storefront/internal/event"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/google/uuid"
)

// 訂單生命週期事件producer
// 用orderID當message key，同一張訂單的事件會落在同一分區保持順序
type OrderEventProducer struct {
	producer producer.Producer
}

type IOrderEventProducer interface {
	ProduceOrderCreatedEvent(ctx context.Context, order *model.Order) error
	ProducePaymentCapturedEvent(ctx context.Context, orderID, paymentID string) error
	ProducePaymentFailedEvent(ctx context.Context, orderID, paymentID, reason string) error
	ProduceOrderPaidEvent(ctx context.Context, orderID string) error
}

func NewOrderEventProducer(producer producer.Producer) *OrderEventProducer {
	return &OrderEventProducer{producer: producer}
}

var _ IOrderEventProducer = (*OrderEventProducer)(nil)

func newBaseEvent(orderID string, eventType event.EventType) event.BaseEvent {
	return event.BaseEvent{
		EventID:     uuid.New().String(),
		AggregateID: orderID,
		CreatedAt:   time.Now(),
		EventType:   eventType,
	}
}

func (p *OrderEventProducer) ProduceOrderCreatedEvent(ctx context.Context, order *model.Order) error {
	evt := event.OrderCreatedEvent{
		BaseEvent:     newBaseEvent(order.OrderID, event.OrderCreatedEventName),
		OrderID:       order.OrderID,
		Amount:        order.Amount,
		Currency:      order.Currency,
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status,
		Items:         order.OrderItems,
	}

	msg, err := p.convertToMessage(order.OrderID, &evt)
	if err != nil {
		return err
	}

	return p.producer.Produce(ctx, []message.Message{msg})
}

func (p *OrderEventProducer) ProducePaymentCapturedEvent(ctx context.Context, orderID, paymentID string) error {
	evt := event.PaymentCapturedEvent{
		BaseEvent: newBaseEvent(orderID, event.PaymentCapturedEventName),
		OrderID:   orderID,
		PaymentID: paymentID,
	}

	msg, err := p.convertToMessage(orderID, &evt)
	if err != nil {
		return err
	}

	return p.producer.Produce(ctx, []message.Message{msg})
}

func (p *OrderEventProducer) ProducePaymentFailedEvent(ctx context.Context, orderID, paymentID, reason string) error {
	evt := event.PaymentFailedEvent{
		BaseEvent: newBaseEvent(orderID, event.PaymentFailedEventName),
		OrderID:   orderID,
		PaymentID: paymentID,
		Reason:    reason,
	}

	msg, err := p.convertToMessage(orderID, &evt)
	if err != nil {
		return err
	}

	return p.producer.Produce(ctx, []message.Message{msg})
}

func (p *OrderEventProducer) ProduceOrderPaidEvent(ctx context.Context, orderID string) error {
	evt := event.OrderPaidEvent{
		BaseEvent: newBaseEvent(orderID, event.OrderPaidEventName),
		OrderID:   orderID,
	}

	msg, err := p.convertToMessage(orderID, &evt)
	if err != nil {
		return err
	}

	return p.producer.Produce(ctx, []message.Message{msg})
}

func (p *OrderEventProducer) convertToMessage(orderID string, evt event.Event) (message.Message, error) {
	evtValue, err := json.Marshal(evt)
	if err != nil {
		return message.Message{}, err
	}

	msg := message.Message{
		Key:   []byte(orderID),
		Value: evtValue,
		Headers: []message.Header{
			{
				Key:   "event_type",
				Value: []byte(evt.Type()),
			},
		},
	}

	return msg, nil
}

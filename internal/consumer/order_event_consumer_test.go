package consumer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/RoyceAzure/lab/rj_kafka/kafka/message"
	"github.com/RoyceAzure/lab/storefront/internal/event"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/stretchr/testify/require"
)

type statusRecorder struct {
	updates map[string]model.OrderStatus
}

func (r *statusRecorder) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	r.updates[orderID] = status
	return nil
}

func eventMessage(t *testing.T, eventType event.EventType, evt any) message.Message {
	t.Helper()
	value, err := json.Marshal(evt)
	require.NoError(t, err)
	return message.Message{
		Key:   []byte("MRG_1_a"),
		Value: value,
		Headers: []message.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}
}

func newTestConsumer(orders IOrderStatusUpdater) *OrderEventConsumer {
	return &OrderEventConsumer{
		orders:    orders,
		closeChan: make(chan struct{}),
	}
}

func TestHandlePaymentCapturedEvent(t *testing.T) {
	recorder := &statusRecorder{updates: map[string]model.OrderStatus{}}
	c := newTestConsumer(recorder)

	msg := eventMessage(t, event.PaymentCapturedEventName, event.PaymentCapturedEvent{
		OrderID:   "MRG_1_a",
		PaymentID: "pay_001",
	})

	require.NoError(t, c.handleMessage(context.Background(), msg))
	require.Equal(t, model.OrderStatusCompleted, recorder.updates["MRG_1_a"])
}

func TestHandlePaymentFailedEvent(t *testing.T) {
	recorder := &statusRecorder{updates: map[string]model.OrderStatus{}}
	c := newTestConsumer(recorder)

	msg := eventMessage(t, event.PaymentFailedEventName, event.PaymentFailedEvent{
		OrderID: "MRG_1_a",
		Reason:  "insufficient funds",
	})

	require.NoError(t, c.handleMessage(context.Background(), msg))
	require.Equal(t, model.OrderStatusFailed, recorder.updates["MRG_1_a"])
}

func TestHandleOrderPaidEvent(t *testing.T) {
	recorder := &statusRecorder{updates: map[string]model.OrderStatus{}}
	c := newTestConsumer(recorder)

	msg := eventMessage(t, event.OrderPaidEventName, event.OrderPaidEvent{OrderID: "MRG_1_a"})

	require.NoError(t, c.handleMessage(context.Background(), msg))
	require.Equal(t, model.OrderStatusCompleted, recorder.updates["MRG_1_a"])
}

// 自己發出的OrderCreated讀回來不套用任何狀態
func TestHandleOrderCreatedEventIsNoop(t *testing.T) {
	recorder := &statusRecorder{updates: map[string]model.OrderStatus{}}
	c := newTestConsumer(recorder)

	msg := eventMessage(t, event.OrderCreatedEventName, event.OrderCreatedEvent{OrderID: "MRG_1_a"})

	require.NoError(t, c.handleMessage(context.Background(), msg))
	require.Empty(t, recorder.updates)
}

func TestHandleUnknownEventType(t *testing.T) {
	recorder := &statusRecorder{updates: map[string]model.OrderStatus{}}
	c := newTestConsumer(recorder)

	msg := eventMessage(t, event.EventType("SomethingElse"), map[string]string{})

	require.ErrorIs(t, c.handleMessage(context.Background(), msg), ErrEventTypeNotFound)
}

package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/RoyceAzure/lab/rj_kafka/kafka/consumer"
	"github.com/RoyceAzure/lab/rj_kafka/kafka/message"
	"github.com/RoyceAzure/lab/storefront/internal/event"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/rs/zerolog/log"
)

type ConsumerError error

var (
	ErrConsumerClosed    = errors.New("consumer closed")
	ErrEventTypeNotFound = errors.New("event type not found")
)

// IOrderStatusUpdater 套用事件到訂單狀態
type IOrderStatusUpdater interface {
	UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error
}

type IOrderEventConsumer interface {
	Start(ctx context.Context) error
	Stop()
}

// 訂單事件consumer
// 消化webhook產生的付款事件，把狀態變更套用到訂單儲存
type OrderEventConsumer struct {
	consumer  consumer.Consumer
	orders    IOrderStatusUpdater
	closeChan chan struct{}
}

func NewOrderEventConsumer(consumer consumer.Consumer, orders IOrderStatusUpdater) *OrderEventConsumer {
	return &OrderEventConsumer{
		consumer:  consumer,
		orders:    orders,
		closeChan: make(chan struct{}),
	}
}

func (c *OrderEventConsumer) checkIsClosed() bool {
	select {
	case <-c.closeChan:
		return true
	default:
		return false
	}
}

func (c *OrderEventConsumer) Start(ctx context.Context) error {
	if c.checkIsClosed() {
		return ErrConsumerClosed
	}

	msgChan, errChan, err := c.consumer.Consume()
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-c.closeChan:
				return
			case msg := <-msgChan:
				if err := c.handleMessage(ctx, msg); err != nil {
					log.Error().Err(err).Msg("handle order event failed")
					continue
				}
			case err := <-errChan:
				log.Error().Err(err).Msg("order event consumer error")
			}
		}
	}()

	return nil
}

func (c *OrderEventConsumer) Stop() {
	if c.checkIsClosed() {
		return
	}

	close(c.closeChan)
	c.consumer.Close()
}

func eventType(msg message.Message) event.EventType {
	for _, header := range msg.Headers {
		if header.Key == "event_type" {
			return event.EventType(header.Value)
		}
	}
	return ""
}

// 根據事件類型套用訂單狀態
// 付款成功與order paid都視為completed，付款失敗視為failed
func (c *OrderEventConsumer) handleMessage(ctx context.Context, msg message.Message) error {
	switch eventType(msg) {
	case event.PaymentCapturedEventName:
		var evt event.PaymentCapturedEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			return err
		}
		return c.orders.UpdateOrderStatus(ctx, evt.OrderID, model.OrderStatusCompleted)
	case event.PaymentFailedEventName:
		var evt event.PaymentFailedEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			return err
		}
		return c.orders.UpdateOrderStatus(ctx, evt.OrderID, model.OrderStatusFailed)
	case event.OrderPaidEventName:
		var evt event.OrderPaidEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			return err
		}
		return c.orders.UpdateOrderStatus(ctx, evt.OrderID, model.OrderStatusCompleted)
	case event.OrderCreatedEventName:
		// 訂單建立事件由本服務發出，讀回不需要任何處理
		return nil
	default:
		return ErrEventTypeNotFound
	}
}

package eventdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/EventStore/EventStore-Client-Go/v4/esdb"
)

type EventFormatError error

var ErrEventFormat EventFormatError = errors.New("event format error")

// 訂單生命週期事件流，一張訂單一條stream
type OrderEventDao struct {
	client *esdb.Client
}

func NewOrderEventDao(db *esdb.Client) *OrderEventDao {
	return &OrderEventDao{client: db}
}

func orderStreamID(orderID string) string {
	return fmt.Sprintf("order-%s", orderID)
}

// 寫入事件（Create）
func (dao *OrderEventDao) AppendOrderEvent(ctx context.Context, orderID, eventType string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	eventData := esdb.EventData{
		ContentType: esdb.ContentTypeJson,
		EventType:   eventType,
		Data:        payload,
	}
	_, err = dao.client.AppendToStream(ctx, orderStreamID(orderID), esdb.AppendToStreamOptions{}, eventData)
	return err
}

// 讀取事件（Read）
func (dao *OrderEventDao) ReadOrderEvents(ctx context.Context, orderID string) ([]*esdb.ResolvedEvent, error) {
	opts := esdb.ReadStreamOptions{}
	stream, err := dao.client.ReadStream(ctx, orderStreamID(orderID), opts, 100)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	var events []*esdb.ResolvedEvent
	for {
		event, err := stream.Recv()
		if err != nil {
			break
		}
		events = append(events, event)
	}
	return events, nil
}

// 刪除事件流（Delete Stream）
func (dao *OrderEventDao) DeleteStream(ctx context.Context, orderID string) error {
	_, err := dao.client.DeleteStream(ctx, orderStreamID(orderID), esdb.DeleteStreamOptions{})
	return err
}

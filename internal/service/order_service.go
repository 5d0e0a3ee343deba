package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/event"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/util"
	"github.com/RoyceAzure/lab/storefront/internal/producer"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotExist    = errors.New("order is not exist")
	ErrOrderIDRequired  = errors.New("order id is required")
	ErrOrderAlreadyEnds = errors.New("order already reached terminal status")
)

// 貨到付款固定手續費
var CODHandlingFee = decimal.NewFromInt(50)

// 貨到付款預計送達天數
const CODDeliveryLeadDays = 7

type IOrderService interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	GetOrdersByEmail(ctx context.Context, email string) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	ProcessCODOrder(ctx context.Context, amount decimal.Decimal, customer model.CustomerInfo, lines []model.CartLine) (*model.CODOrder, error)
}

// IOrderMirror 訂單的key-value鏡像，查詢不用過db
type IOrderMirror interface {
	SaveOrder(ctx context.Context, order *model.Order) error
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
}

// IOrderJournal 訂單生命週期事件日誌
type IOrderJournal interface {
	AppendOrderEvent(ctx context.Context, orderID, eventType string, data interface{}) error
}

// 訂單儲存
// db為準，鏡像/事件日誌/事件發佈都是best effort，失敗只記log
type OrderService struct {
	orderRepo db.IOrderRepository
	mirror    IOrderMirror
	journal   IOrderJournal
	events    producer.IOrderEventProducer
}

func NewOrderService(orderRepo db.IOrderRepository, mirror IOrderMirror, journal IOrderJournal, events producer.IOrderEventProducer) *OrderService {
	if util.IsNil(orderRepo) {
		panic("order service dependency orderRepo is nil")
	}
	// 選配依賴帶typed nil時一律歸一成nil，後面才能用==nil判斷
	if util.IsNil(mirror) {
		mirror = nil
	}
	if util.IsNil(journal) {
		journal = nil
	}
	if util.IsNil(events) {
		events = nil
	}
	return &OrderService{
		orderRepo: orderRepo,
		mirror:    mirror,
		journal:   journal,
		events:    events,
	}
}

var _ IOrderService = (*OrderService)(nil)

// CreateOrder 創建訂單
// 訂單編號由呼叫端產生，不會重複使用
func (o *OrderService) CreateOrder(ctx context.Context, order *model.Order) error {
	if order.OrderID == "" {
		return ErrOrderIDRequired
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}

	if err := o.orderRepo.CreateOrder(ctx, order); err != nil {
		return fmt.Errorf("create order failed: %w", err)
	}

	o.syncMirror(ctx, order)
	o.appendJournal(ctx, order.OrderID, string(event.OrderCreatedEventName), order)

	if o.events != nil {
		if err := o.events.ProduceOrderCreatedEvent(ctx, order); err != nil {
			log.Error().Err(err).Str("order_id", order.OrderID).Msg("produce order created event failed")
		}
	}
	return nil
}

// GetOrder 查詢訂單，先查鏡像，miss再回db
func (o *OrderService) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	if o.mirror != nil {
		if order, err := o.mirror.GetOrder(ctx, orderID); err == nil {
			return order, nil
		}
	}

	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if errors.Is(err, db.ErrOrderNotFound) {
		return nil, ErrOrderNotExist
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (o *OrderService) GetOrdersByEmail(ctx context.Context, email string) ([]model.Order, error) {
	return o.orderRepo.GetOrdersByEmail(ctx, email)
}

// UpdateOrderStatus 更新訂單狀態
// 終態不可再轉移，重複套用同一狀態視為冪等no-op
func (o *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	current, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if errors.Is(err, db.ErrOrderNotFound) {
		return ErrOrderNotExist
	}
	if err != nil {
		return err
	}

	if current.Status == status {
		return nil
	}
	if current.Status.IsTerminal() {
		return ErrOrderAlreadyEnds
	}

	if err := o.orderRepo.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return err
	}

	current.Status = status
	o.syncMirror(ctx, current)
	o.appendJournal(ctx, orderID, "OrderStatusChanged", map[string]any{
		"order_id": orderID,
		"status":   status,
	})
	return nil
}

// ProcessCODOrder 處理貨到付款訂單
// 手續費與預計送達日都在這裡計算，不經過金流
func (o *OrderService) ProcessCODOrder(ctx context.Context, amount decimal.Decimal, customer model.CustomerInfo, lines []model.CartLine) (*model.CODOrder, error) {
	orderID := util.GenerateOrderID()
	totalAmount := amount.Add(CODHandlingFee)
	now := time.Now()
	estimatedDelivery := now.AddDate(0, 0, CODDeliveryLeadDays)

	items := cartLinesToOrderItems(orderID, lines)

	order := &model.Order{
		OrderID:         orderID,
		Amount:          totalAmount,
		Currency:        "INR",
		CustomerName:    customer.Name,
		CustomerEmail:   customer.Email,
		CustomerPhone:   customer.Phone,
		CustomerAddress: customer.Address,
		OrderItems:      items,
		PaymentMethod:   model.PaymentMethodCOD,
		Status:          model.OrderStatusProcessing,
		OrderDate:       now,
	}

	if err := o.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	return &model.CODOrder{
		OrderID:           orderID,
		Amount:            amount,
		HandlingFee:       CODHandlingFee,
		TotalAmount:       totalAmount,
		CustomerInfo:      customer,
		Items:             items,
		Status:            "confirmed",
		EstimatedDelivery: estimatedDelivery.Format("2/1/2006"),
	}, nil
}

func cartLinesToOrderItems(orderID string, lines []model.CartLine) []model.OrderItem {
	items := make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, model.OrderItem{
			OrderID:   orderID,
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Image:     line.Image,
		})
	}
	return items
}

func (o *OrderService) syncMirror(ctx context.Context, order *model.Order) {
	if o.mirror == nil {
		return
	}
	if err := o.mirror.SaveOrder(ctx, order); err != nil {
		log.Error().Err(err).Str("order_id", order.OrderID).Msg("sync order mirror failed")
	}
}

func (o *OrderService) appendJournal(ctx context.Context, orderID, eventType string, data interface{}) {
	if o.journal == nil {
		return
	}
	if err := o.journal.AppendOrderEvent(ctx, orderID, eventType, data); err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("append order journal failed")
	}
}

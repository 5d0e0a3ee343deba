package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

type IOrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrderByID(ctx context.Context, id string) (*model.Order, error)
	GetOrdersByEmail(ctx context.Context, email string) ([]model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error
	GetOrdersPaginated(ctx context.Context, page, pageSize int) ([]model.Order, int64, error)
	HardDeleteOrder(ctx context.Context, id string) error
}

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

var _ IOrderRepository = (*OrderRepo)(nil)

// Create - 創建訂單 db
func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

// Read - 根據ID查詢訂單
func (s *OrderRepo) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").First(&order, "order_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Read - 根據客戶email查詢訂單
func (s *OrderRepo) GetOrdersByEmail(ctx context.Context, email string) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").Where("customer_email = ?", email).Find(&orders).Error
	return orders, err
}

// Read - 查詢所有訂單
func (s *OrderRepo) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").Find(&orders).Error
	return orders, err
}

// Update - 更新訂單狀態
// 訂單其餘欄位落地後不再變動
func (s *OrderRepo) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	result := s.db.WithContext(ctx).Model(&model.Order{}).Where("order_id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// 分頁查詢訂單
func (s *OrderRepo) GetOrdersPaginated(ctx context.Context, page, pageSize int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	offset := (page - 1) * pageSize

	// 計算總數
	s.db.WithContext(ctx).Model(&model.Order{}).Count(&total)

	// 分頁查詢
	err := s.db.WithContext(ctx).Preload("OrderItems").Offset(offset).Limit(pageSize).Find(&orders).Error

	return orders, total, err
}

// Delete - 硬刪除訂單
func (s *OrderRepo) HardDeleteOrder(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Unscoped().Where("order_id = ?", id).Delete(&model.OrderItem{}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Unscoped().Delete(&model.Order{}, "order_id = ?", id).Error
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // 待付款
	OrderStatusProcessing OrderStatus = "processing" // 處理中
	OrderStatusCompleted  OrderStatus = "completed"  // 已完成
	OrderStatusFailed     OrderStatus = "failed"     // 付款失敗
	OrderStatusCancelled  OrderStatus = "cancelled"  // 已取消
)

// IsTerminal 回傳該狀態是否為終態
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusFailed, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodRazorpay PaymentMethod = "razorpay"
	PaymentMethodCOD      PaymentMethod = "cod"
)

type Order struct {
	OrderID         string          `gorm:"primaryKey;type:varchar(255)" json:"order_id"`
	Amount          decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"amount"`
	Currency        string          `gorm:"not null;type:varchar(10)" json:"currency"`
	CustomerName    string          `gorm:"not null;type:varchar(100)" json:"customer_name"`
	CustomerEmail   string          `gorm:"not null;type:varchar(100)" json:"customer_email"`
	CustomerPhone   string          `gorm:"not null;type:varchar(20)" json:"customer_phone"`
	CustomerAddress string          `gorm:"not null;type:varchar(255)" json:"customer_address"`
	OrderItems      []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"` // 一對多，級聯刪除
	PaymentMethod   PaymentMethod   `gorm:"not null;type:varchar(20)" json:"payment_method"`
	Status          OrderStatus     `gorm:"not null;type:varchar(20);default:'pending'" json:"status"`
	OrderDate       time.Time       `gorm:"not null" json:"order_date"`
	BaseModel
}

type OrderItem struct {
	OrderID   string          `gorm:"primaryKey;type:varchar(255)" json:"order_id"` // 外鍵，關聯到 Order
	ProductID int             `gorm:"primaryKey" json:"product_id"`
	Name      string          `gorm:"not null;type:varchar(100)" json:"name"`
	Price     decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Image     string          `gorm:"type:varchar(255)" json:"image"`
	BaseModel
}

func (o *Order) Customer() CustomerInfo {
	return CustomerInfo{
		Name:    o.CustomerName,
		Email:   o.CustomerEmail,
		Phone:   o.CustomerPhone,
		Address: o.CustomerAddress,
	}
}

// 貨到付款訂單
// 比一般訂單多了手續費與預計送達日，不另外落地，由一般訂單換算而來
type CODOrder struct {
	OrderID           string          `json:"order_id"`
	Amount            decimal.Decimal `json:"amount"`
	HandlingFee       decimal.Decimal `json:"handling_fee"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	CustomerInfo      CustomerInfo    `json:"customer_info"`
	Items             []OrderItem     `json:"items"`
	Status            string          `json:"status"`
	EstimatedDelivery string          `json:"estimated_delivery"`
}

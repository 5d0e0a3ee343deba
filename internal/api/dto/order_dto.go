package dto

import (
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/shopspring/decimal"
)

type OrderItemDTO struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
}

type OrderDTO struct {
	OrderID       string          `json:"order_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	OrderDate     time.Time       `json:"order_date"`
	Items         []OrderItemDTO  `json:"items"`
}

type CODOrderDTO struct {
	Amount       decimal.Decimal    `json:"amount"`
	CustomerInfo model.CustomerInfo `json:"customer_info"`
	Items        []OrderItemDTO     `json:"items"`
}

// 貨到付款建單回應
// 金額除了數值也帶展示用字串，前端直接顯示
type CODOrderResponse struct {
	OrderID            string             `json:"order_id"`
	Amount             decimal.Decimal    `json:"amount"`
	AmountDisplay      string             `json:"amount_display"`
	HandlingFee        decimal.Decimal    `json:"handling_fee"`
	HandlingFeeDisplay string             `json:"handling_fee_display"`
	TotalAmount        decimal.Decimal    `json:"total_amount"`
	TotalAmountDisplay string             `json:"total_amount_display"`
	CustomerInfo       model.CustomerInfo `json:"customer_info"`
	Items              []OrderItemDTO     `json:"items"`
	Status             string             `json:"status"`
	EstimatedDelivery  string             `json:"estimated_delivery"`
}

package dto

import (
	"github.com/RoyceAzure/lab/storefront/internal/infra/gateway/razorpay"
	"github.com/shopspring/decimal"
)

type CreateOrderDTO struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Receipt  string          `json:"receipt"`
}

type CreateOrderResponse struct {
	Order *razorpay.GatewayOrder `json:"order"`
	KeyID string                 `json:"key_id"`
}

type VerifyPaymentDTO struct {
	OrderID           string `json:"order_id"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

type VerifyPaymentResponse struct {
	OrderID  string `json:"order_id"`
	Verified bool   `json:"verified"`
}

// WebhookEventDTO 金流webhook推送的事件
// 只解出需要的欄位，其餘內容原樣忽略
type WebhookEventDTO struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity WebhookPaymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

type WebhookPaymentEntity struct {
	ID               string            `json:"id"`
	OrderID          string            `json:"order_id"`
	Status           string            `json:"status"`
	ErrorDescription string            `json:"error_description"`
	Notes            map[string]string `json:"notes"`
}

// MerchantOrderID 從notes取回商家訂單編號
func (e WebhookPaymentEntity) MerchantOrderID() string {
	return e.Notes["merchant_order_id"]
}

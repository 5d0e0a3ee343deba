package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/constants"
	"github.com/RoyceAzure/lab/storefront/internal/infra/gateway/razorpay"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/internal/producer"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/RoyceAzure/rj/api"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/rs/zerolog/log"
)

// PaymentHandler 金流相關端點
// webhook secret只存在後端，簽章驗證不經過前端
type PaymentHandler struct {
	gateway       *razorpay.Client
	orderService  service.IOrderService
	eventProducer producer.IOrderEventProducer
	keyID         string
	webhookSecret string
}

func NewPaymentHandler(gateway *razorpay.Client, orderService service.IOrderService, eventProducer producer.IOrderEventProducer, keyID, webhookSecret string) *PaymentHandler {
	if gateway == nil {
		panic("gateway cannot be nil")
	}
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &PaymentHandler{
		gateway:       gateway,
		orderService:  orderService,
		eventProducer: eventProducer,
		keyID:         keyID,
		webhookSecret: webhookSecret,
	}
}

// CreateOrder 在金流端建立訂單
// 回傳金流訂單與公開的key id，secret不會出現在回應內
func (p *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var createOrderDTO dto.CreateOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&createOrderDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	if createOrderDTO.Amount.IsZero() || createOrderDTO.Amount.IsNegative() {
		api.ErrorJSON(w, int(er.InvalidArgumentCode), errors.New("amount must be positive"), er.ErrStrMap[er.InvalidArgumentCode])
		return
	}
	if createOrderDTO.Currency == "" {
		createOrderDTO.Currency = "INR"
	}

	ctx := r.Context()

	order, err := p.gateway.CreateOrder(ctx, createOrderDTO.Amount, createOrderDTO.Currency, createOrderDTO.Receipt)
	if err != nil {
		api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		return
	}

	api.SuccessJSON(w, dto.CreateOrderResponse{
		Order: order,
		KeyID: p.keyID,
	}, nil)
}

// VerifyPayment 驗證支付結果簽章
// 有等待中的checkout就交給它處理，否則直接更新訂單狀態
func (p *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var verifyDTO dto.VerifyPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&verifyDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	if verifyDTO.RazorpayOrderID == "" || verifyDTO.RazorpayPaymentID == "" {
		api.ErrorJSON(w, int(er.InvalidArgumentCode), errors.New("payment identifiers are required"), er.ErrStrMap[er.InvalidArgumentCode])
		return
	}

	ctx := r.Context()

	// 先驗簽章，再把結果交給等待中的checkout收尾
	// 訂單狀態由checkout session處理，沒有session才由這裡直接更新
	verified := p.gateway.VerifySignature(verifyDTO.RazorpayOrderID, verifyDTO.RazorpayPaymentID, verifyDTO.RazorpaySignature)

	cb := razorpay.CheckoutCallback{
		PaymentID: verifyDTO.RazorpayPaymentID,
		OrderID:   verifyDTO.RazorpayOrderID,
		Signature: verifyDTO.RazorpaySignature,
	}
	resolveErr := p.gateway.Resolve(verifyDTO.RazorpayOrderID, cb)

	if !verified {
		if resolveErr != nil && verifyDTO.OrderID != "" {
			if err := p.orderService.UpdateOrderStatus(ctx, verifyDTO.OrderID, model.OrderStatusFailed); err != nil {
				log.Error().Err(err).Str("order_id", verifyDTO.OrderID).Msg("mark order failed error")
			}
		}
		api.ErrorJSON(w, int(er.BadRequestCode), errors.New("payment signature verification failed"), er.ErrStrMap[er.BadRequestCode])
		return
	}

	if resolveErr != nil && verifyDTO.OrderID != "" {
		if err := p.orderService.UpdateOrderStatus(ctx, verifyDTO.OrderID, model.OrderStatusCompleted); err != nil {
			log.Error().Err(err).Str("order_id", verifyDTO.OrderID).Msg("mark order completed error")
		}
	}

	api.SuccessJSON(w, dto.VerifyPaymentResponse{
		OrderID:  verifyDTO.OrderID,
		Verified: true,
	}, nil)
}

// Webhook 接收金流推送事件
// 簽章驗證要用原始body，先讀完再反序列化
func (p *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	signature := r.Header.Get(constants.WebhookSignatureHeader)
	if !razorpay.VerifyWebhookSignature(p.webhookSecret, body, signature) {
		api.ErrorJSON(w, int(er.UnauthenticatedCode), errors.New("webhook signature verification failed"), er.ErrStrMap[er.UnauthenticatedCode])
		return
	}

	var eventDTO dto.WebhookEventDTO
	if err := json.Unmarshal(body, &eventDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()
	entity := eventDTO.Payload.Payment.Entity
	orderID := entity.MerchantOrderID()
	if orderID == "" {
		log.Warn().Str("event", eventDTO.Event).Msg("webhook event has no merchant order id")
		api.SuccessJSON(w, nil, nil)
		return
	}

	switch eventDTO.Event {
	case constants.WebhookEventPaymentCaptured:
		err = p.applyPaymentCaptured(ctx, orderID, entity.ID)
	case constants.WebhookEventPaymentFailed:
		err = p.applyPaymentFailed(ctx, orderID, entity.ID, entity.ErrorDescription)
	case constants.WebhookEventOrderPaid:
		err = p.applyPaymentCaptured(ctx, orderID, entity.ID)
	default:
		log.Info().Str("event", eventDTO.Event).Msg("ignore webhook event")
	}

	if err != nil {
		api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		return
	}

	api.SuccessJSON(w, nil, nil)
}

// 沒接kafka時直接更新訂單狀態
func (p *PaymentHandler) applyPaymentCaptured(ctx context.Context, orderID, paymentID string) error {
	if p.eventProducer != nil {
		return p.eventProducer.ProducePaymentCapturedEvent(ctx, orderID, paymentID)
	}
	return p.orderService.UpdateOrderStatus(ctx, orderID, model.OrderStatusCompleted)
}

func (p *PaymentHandler) applyPaymentFailed(ctx context.Context, orderID, paymentID, reason string) error {
	if p.eventProducer != nil {
		return p.eventProducer.ProducePaymentFailedEvent(ctx, orderID, paymentID, reason)
	}
	return p.orderService.UpdateOrderStatus(ctx, orderID, model.OrderStatusFailed)
}

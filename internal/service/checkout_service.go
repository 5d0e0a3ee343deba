package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/infra/gateway/razorpay"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidTransition    = errors.New("invalid checkout transition")
	ErrUnknownPaymentOption = errors.New("unknown payment option")
)

// 成功畫面顯示多久後清空購物車
const defaultCartClearDelay = 3 * time.Second

type CheckoutState string

const (
	StateCollectingDetails CheckoutState = "collecting_details"
	StateSelectingMethod   CheckoutState = "selecting_method"
	StateProcessing        CheckoutState = "processing"
	StateSucceeded         CheckoutState = "succeeded"
	StateAwaitingQRScan    CheckoutState = "awaiting_qr_scan"
	StateCODConfirmed      CheckoutState = "cod_confirmed"
	StateFailed            CheckoutState = "failed"
)

type PaymentOption string

const (
	PaymentOptionPhonePe   PaymentOption = "phonepe"
	PaymentOptionGooglePay PaymentOption = "googlepay"
	PaymentOptionUPIQR     PaymentOption = "upi_qr"
	PaymentOptionCOD       PaymentOption = "cod"
)

// PaymentGateway 結帳流程需要的金流能力
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (*razorpay.GatewayOrder, error)
	OpenHostedCheckout(ctx context.Context, opts razorpay.CheckoutOptions) (<-chan razorpay.CheckoutCallback, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}

// QRCode UPI掃碼付款資訊
type QRCode struct {
	OrderID  string `json:"order_id"`
	UPIURI   string `json:"upi_uri"`
	ImageURL string `json:"image_url"`
}

// CheckoutSession 單次結帳流程的狀態
// 購物車內容在Begin時快照，結帳途中購物車變動不影響本次流程
type CheckoutSession struct {
	mu sync.Mutex

	state      CheckoutState
	customer   model.CustomerInfo
	lines      []model.CartLine
	amount     decimal.Decimal
	orderID    string
	failReason string
	qr         *QRCode
	codOrder   *model.CODOrder

	clearTimer *time.Timer
	cleared    bool
}

func (s *CheckoutSession) State() CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *CheckoutSession) OrderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderID
}

func (s *CheckoutSession) Amount() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.amount
}

func (s *CheckoutSession) FailReason() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failReason
}

func (s *CheckoutSession) QR() *QRCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qr
}

func (s *CheckoutSession) CODOrder() *model.CODOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codOrder
}

// CheckoutConfig 結帳流程的商家設定
type CheckoutConfig struct {
	KeyID          string
	MerchantName   string
	MerchantVPA    string
	Currency       string
	ThemeColor     string
	CartClearDelay time.Duration
}

// CheckoutService 結帳流程
// 狀態轉移:
//
//	collecting_details -> selecting_method -> processing
//	processing -> succeeded | awaiting_qr_scan | cod_confirmed | failed
//	failed / awaiting_qr_scan -> selecting_method (重試或返回)
type CheckoutService struct {
	gateway PaymentGateway
	orders  IOrderService
	cart    *CartService
	cfg     CheckoutConfig
}

func NewCheckoutService(gateway PaymentGateway, orders IOrderService, cart *CartService, cfg CheckoutConfig) *CheckoutService {
	// 介面帶typed nil也要擋下來
	if util.IsNil(gateway) || util.IsNil(orders) || cart == nil {
		panic("checkout service dependency is nil")
	}
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	if cfg.CartClearDelay <= 0 {
		cfg.CartClearDelay = defaultCartClearDelay
	}
	return &CheckoutService{
		gateway: gateway,
		orders:  orders,
		cart:    cart,
		cfg:     cfg,
	}
}

// Begin 開始結帳
// 購物車為空時拒絕進入流程
func (c *CheckoutService) Begin(ctx context.Context) (*CheckoutSession, error) {
	snapshot := c.cart.Snapshot()
	if len(snapshot.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	return &CheckoutSession{
		state:  StateCollectingDetails,
		lines:  snapshot.Lines,
		amount: snapshot.Total,
	}, nil
}

// SubmitDetails 提交收件人資料
// 驗證失敗回傳逐欄位錯誤訊息並停留在原狀態
func (c *CheckoutService) SubmitDetails(sess *CheckoutSession, customer model.CustomerInfo) (map[string]string, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state != StateCollectingDetails {
		return nil, ErrInvalidTransition
	}

	if fieldErrs := customer.Validate(); len(fieldErrs) > 0 {
		return fieldErrs, nil
	}

	customer.Phone = customer.NormalizedPhone()
	sess.customer = customer
	sess.state = StateSelectingMethod
	return nil, nil
}

// SelectMethod 選擇支付方式並執行
// 每次進入processing都會產生新的訂單編號，重試不重用舊編號
func (c *CheckoutService) SelectMethod(ctx context.Context, sess *CheckoutSession, option PaymentOption) error {
	sess.mu.Lock()
	if sess.state != StateSelectingMethod {
		sess.mu.Unlock()
		return ErrInvalidTransition
	}
	sess.state = StateProcessing
	sess.failReason = ""
	sess.qr = nil
	customer := sess.customer
	lines := append([]model.CartLine(nil), sess.lines...)
	amount := sess.amount
	sess.mu.Unlock()

	switch option {
	case PaymentOptionCOD:
		return c.processCOD(ctx, sess, amount, customer, lines)
	case PaymentOptionUPIQR:
		return c.processUPIQR(ctx, sess, amount, customer, lines)
	case PaymentOptionPhonePe, PaymentOptionGooglePay:
		return c.processWallet(ctx, sess, option, amount, customer, lines)
	default:
		sess.mu.Lock()
		sess.state = StateSelectingMethod
		sess.mu.Unlock()
		return ErrUnknownPaymentOption
	}
}

func (c *CheckoutService) processCOD(ctx context.Context, sess *CheckoutSession, amount decimal.Decimal, customer model.CustomerInfo, lines []model.CartLine) error {
	codOrder, err := c.orders.ProcessCODOrder(ctx, amount, customer, lines)
	if err != nil {
		c.fail(sess, "", "Failed to place order. Please try again.")
		return err
	}

	sess.mu.Lock()
	sess.orderID = codOrder.OrderID
	sess.codOrder = codOrder
	sess.state = StateCODConfirmed
	sess.mu.Unlock()

	c.scheduleCartClear(sess)
	return nil
}

func (c *CheckoutService) processUPIQR(ctx context.Context, sess *CheckoutSession, amount decimal.Decimal, customer model.CustomerInfo, lines []model.CartLine) error {
	orderID := util.GenerateOrderID()
	if err := c.createPendingOrder(ctx, orderID, amount, customer, lines); err != nil {
		c.fail(sess, orderID, "Failed to place order. Please try again.")
		return err
	}

	upiURI := util.BuildUPIURI(c.cfg.MerchantVPA, c.cfg.MerchantName, amount, c.cfg.Currency, orderID)

	sess.mu.Lock()
	sess.orderID = orderID
	sess.qr = &QRCode{
		OrderID:  orderID,
		UPIURI:   upiURI,
		ImageURL: util.BuildQRCodeURL(upiURI),
	}
	sess.state = StateAwaitingQRScan
	sess.mu.Unlock()
	return nil
}

func (c *CheckoutService) processWallet(ctx context.Context, sess *CheckoutSession, option PaymentOption, amount decimal.Decimal, customer model.CustomerInfo, lines []model.CartLine) error {
	orderID := util.GenerateOrderID()

	gwOrder, err := c.gateway.CreateOrder(ctx, amount, c.cfg.Currency, orderID)
	if err != nil {
		c.fail(sess, orderID, "Payment gateway is unavailable. Please try again.")
		return err
	}

	if err := c.createPendingOrder(ctx, orderID, amount, customer, lines); err != nil {
		c.fail(sess, orderID, "Failed to place order. Please try again.")
		return err
	}

	opts := razorpay.CheckoutOptions{
		Key:         c.cfg.KeyID,
		Amount:      gwOrder.Amount,
		Currency:    gwOrder.Currency,
		Name:        c.cfg.MerchantName,
		Description: fmt.Sprintf("Order %s", orderID),
		OrderID:     gwOrder.ID,
		Prefill: razorpay.Prefill{
			Name:    customer.Name,
			Email:   customer.Email,
			Contact: customer.Phone,
		},
		Notes: map[string]string{"merchant_order_id": orderID},
		Theme: razorpay.Theme{Color: c.cfg.ThemeColor},
		Method: razorpay.MethodConfig{
			Wallets: []string{string(option)},
		},
	}

	cbChan, err := c.gateway.OpenHostedCheckout(ctx, opts)
	if err != nil {
		c.fail(sess, orderID, "Payment gateway is unavailable. Please try again.")
		return err
	}

	sess.mu.Lock()
	sess.orderID = orderID
	sess.mu.Unlock()

	select {
	case <-ctx.Done():
		c.fail(sess, orderID, "Payment was interrupted.")
		return ctx.Err()
	case cb := <-cbChan:
		return c.settleCallback(ctx, sess, orderID, gwOrder.ID, cb)
	}
}

// settleCallback 處理hosted checkout回調
// 用戶關閉介面時pending訂單保持原狀，等webhook或人工對帳
func (c *CheckoutService) settleCallback(ctx context.Context, sess *CheckoutSession, orderID, gatewayOrderID string, cb razorpay.CheckoutCallback) error {
	if cb.Dismissed {
		c.fail(sess, orderID, "Payment cancelled by user.")
		return nil
	}

	if !c.gateway.VerifySignature(gatewayOrderID, cb.PaymentID, cb.Signature) {
		if err := c.orders.UpdateOrderStatus(ctx, orderID, model.OrderStatusFailed); err != nil {
			log.Error().Err(err).Str("order_id", orderID).Msg("mark order failed error")
		}
		c.fail(sess, orderID, "Payment verification failed.")
		return nil
	}

	if err := c.orders.UpdateOrderStatus(ctx, orderID, model.OrderStatusCompleted); err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("mark order completed error")
	}

	sess.mu.Lock()
	sess.state = StateSucceeded
	sess.mu.Unlock()

	c.scheduleCartClear(sess)
	return nil
}

// BackToMethods 回到支付方式選擇
// 失敗後重試與掃碼頁返回都走這裡
func (c *CheckoutService) BackToMethods(sess *CheckoutSession) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state != StateFailed && sess.state != StateAwaitingQRScan {
		return ErrInvalidTransition
	}
	sess.state = StateSelectingMethod
	sess.failReason = ""
	sess.qr = nil
	return nil
}

// Close 結束結帳流程
// 成功畫面提早關閉時立即清空購物車，不等計時器
func (c *CheckoutService) Close(sess *CheckoutSession) {
	sess.mu.Lock()
	if sess.clearTimer != nil {
		sess.clearTimer.Stop()
		sess.clearTimer = nil
	}
	shouldClear := !sess.cleared &&
		(sess.state == StateSucceeded || sess.state == StateCODConfirmed)
	if shouldClear {
		sess.cleared = true
	}
	sess.mu.Unlock()

	if shouldClear {
		c.cart.ClearCart()
		c.cart.CloseCart()
	}
}

func (c *CheckoutService) createPendingOrder(ctx context.Context, orderID string, amount decimal.Decimal, customer model.CustomerInfo, lines []model.CartLine) error {
	order := &model.Order{
		OrderID:         orderID,
		Amount:          amount,
		Currency:        c.cfg.Currency,
		CustomerName:    customer.Name,
		CustomerEmail:   customer.Email,
		CustomerPhone:   customer.Phone,
		CustomerAddress: customer.Address,
		OrderItems:      cartLinesToOrderItems(orderID, lines),
		PaymentMethod:   model.PaymentMethodRazorpay,
		Status:          model.OrderStatusPending,
		OrderDate:       time.Now(),
	}
	return c.orders.CreateOrder(ctx, order)
}

func (c *CheckoutService) fail(sess *CheckoutSession, orderID, reason string) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if orderID != "" {
		sess.orderID = orderID
	}
	sess.state = StateFailed
	sess.failReason = reason
}

// scheduleCartClear 成功後延遲清空購物車
// 計時器只會觸發一次，Close可提前取消
func (c *CheckoutService) scheduleCartClear(sess *CheckoutSession) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.cleared || sess.clearTimer != nil {
		return
	}
	sess.clearTimer = time.AfterFunc(c.cfg.CartClearDelay, func() {
		sess.mu.Lock()
		if sess.cleared {
			sess.mu.Unlock()
			return
		}
		sess.cleared = true
		sess.clearTimer = nil
		sess.mu.Unlock()

		c.cart.ClearCart()
		c.cart.CloseCart()
	})
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/constants"
	"github.com/RoyceAzure/lab/storefront/internal/infra/gateway/razorpay"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	testKeyID         = "rzp_test_key"
	testKeySecret     = "test_key_secret"
	testWebhookSecret = "test_webhook_secret"
)

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*model.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*model.Order)}
}

var _ db.IOrderRepository = (*memOrderRepo)(nil)

func (f *memOrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *order
	f.orders[order.OrderID] = &cp
	return nil
}

func (f *memOrderRepo) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return nil, db.ErrOrderNotFound
	}
	cp := *order
	return &cp, nil
}

func (f *memOrderRepo) GetOrdersByEmail(ctx context.Context, email string) ([]model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Order
	for _, order := range f.orders {
		if order.CustomerEmail == email {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (f *memOrderRepo) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Order
	for _, order := range f.orders {
		result = append(result, *order)
	}
	return result, nil
}

func (f *memOrderRepo) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return db.ErrOrderNotFound
	}
	order.Status = status
	return nil
}

func (f *memOrderRepo) GetOrdersPaginated(ctx context.Context, page, pageSize int) ([]model.Order, int64, error) {
	orders, _ := f.GetAllOrders(ctx)
	return orders, int64(len(orders)), nil
}

func (f *memOrderRepo) HardDeleteOrder(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.orders, id)
	return nil
}

type handlerFixture struct {
	repo    *memOrderRepo
	gateway *razorpay.Client
	orders  service.IOrderService
	router  *chi.Mux
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	repo := newMemOrderRepo()
	orders := service.NewOrderService(repo, nil, nil, nil)
	gateway := razorpay.NewClient(testKeyID, testKeySecret)

	paymentHandler := NewPaymentHandler(gateway, orders, nil, testKeyID, testWebhookSecret)
	orderHandler := NewOrderHandler(orders)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/payments", func(r chi.Router) {
			r.Post("/verify", paymentHandler.VerifyPayment)
			r.Post("/webhook", paymentHandler.Webhook)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/{orderId}", orderHandler.GetOrder)
			r.Post("/cod", orderHandler.CreateCODOrder)
		})
	})

	return &handlerFixture{
		repo:    repo,
		gateway: gateway,
		orders:  orders,
		router:  r,
	}
}

func (fx *handlerFixture) seedPendingOrder(t *testing.T, orderID string) {
	t.Helper()
	err := fx.orders.CreateOrder(context.Background(), &model.Order{
		OrderID:         orderID,
		Amount:          decimal.NewFromInt(45999),
		Currency:        "INR",
		CustomerName:    "Aarti Deshmukh",
		CustomerEmail:   "aarti@example.com",
		CustomerPhone:   "9876543210",
		CustomerAddress: "12 FC Road, Pune",
		PaymentMethod:   model.PaymentMethodRazorpay,
		Status:          model.OrderStatusPending,
		OrderDate:       time.Now(),
	})
	require.NoError(t, err)
}

func webhookBody(t *testing.T, event, merchantOrderID, paymentID string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"event": event,
		"payload": map[string]any{
			"payment": map[string]any{
				"entity": map[string]any{
					"id":       paymentID,
					"order_id": "gw_" + merchantOrderID,
					"status":   "captured",
					"notes":    map[string]string{"merchant_order_id": merchantOrderID},
				},
			},
		},
	})
	require.NoError(t, err)
	return body
}

func TestWebhookPaymentCaptured(t *testing.T) {
	fx := newHandlerFixture(t)
	fx.seedPendingOrder(t, "MRG_1_a")

	body := webhookBody(t, constants.WebhookEventPaymentCaptured, "MRG_1_a", "pay_001")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(body))
	req.Header.Set(constants.WebhookSignatureHeader, razorpay.SignWebhookBody(testWebhookSecret, body))
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	order, err := fx.repo.GetOrderByID(context.Background(), "MRG_1_a")
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusCompleted, order.Status)
}

func TestWebhookPaymentFailed(t *testing.T) {
	fx := newHandlerFixture(t)
	fx.seedPendingOrder(t, "MRG_2_b")

	body := webhookBody(t, constants.WebhookEventPaymentFailed, "MRG_2_b", "pay_002")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(body))
	req.Header.Set(constants.WebhookSignatureHeader, razorpay.SignWebhookBody(testWebhookSecret, body))
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	order, err := fx.repo.GetOrderByID(context.Background(), "MRG_2_b")
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusFailed, order.Status)
}

// 簽章不符時不得更動任何訂單
func TestWebhookRejectsBadSignature(t *testing.T) {
	fx := newHandlerFixture(t)
	fx.seedPendingOrder(t, "MRG_3_c")

	body := webhookBody(t, constants.WebhookEventPaymentCaptured, "MRG_3_c", "pay_003")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(body))
	req.Header.Set(constants.WebhookSignatureHeader, "forged")
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)

	require.NotEqual(t, http.StatusOK, w.Code)

	order, err := fx.repo.GetOrderByID(context.Background(), "MRG_3_c")
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusPending, order.Status)
}

func TestWebhookIgnoresUnknownEvent(t *testing.T) {
	fx := newHandlerFixture(t)
	fx.seedPendingOrder(t, "MRG_4_d")

	body := webhookBody(t, "refund.created", "MRG_4_d", "pay_004")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(body))
	req.Header.Set(constants.WebhookSignatureHeader, razorpay.SignWebhookBody(testWebhookSecret, body))
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	order, err := fx.repo.GetOrderByID(context.Background(), "MRG_4_d")
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusPending, order.Status)
}

func TestVerifyPaymentValidSignature(t *testing.T) {
	fx := newHandlerFixture(t)
	fx.seedPendingOrder(t, "MRG_5_e")

	gatewayOrderID := "gw_MRG_5_e"
	payload, _ := json.Marshal(map[string]string{
		"order_id":            "MRG_5_e",
		"razorpay_order_id":   gatewayOrderID,
		"razorpay_payment_id": "pay_005",
		"razorpay_signature":  razorpay.SignPayment(testKeySecret, gatewayOrderID, "pay_005"),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/verify", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	order, err := fx.repo.GetOrderByID(context.Background(), "MRG_5_e")
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusCompleted, order.Status)
}

func TestVerifyPaymentTamperedSignature(t *testing.T) {
	fx := newHandlerFixture(t)
	fx.seedPendingOrder(t, "MRG_6_f")

	payload, _ := json.Marshal(map[string]string{
		"order_id":            "MRG_6_f",
		"razorpay_order_id":   "gw_MRG_6_f",
		"razorpay_payment_id": "pay_006",
		"razorpay_signature":  "deadbeef",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/verify", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)

	require.NotEqual(t, http.StatusOK, w.Code)

	order, err := fx.repo.GetOrderByID(context.Background(), "MRG_6_f")
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusFailed, order.Status)
}

func TestVerifyPaymentTamperedSignatureWithWaitingCheckout(t *testing.T) {
	fx := newHandlerFixture(t)
	fx.seedPendingOrder(t, "MRG_7_a")

	gatewayOrderID := "gw_MRG_7_a"
	cbChan, err := fx.gateway.OpenHostedCheckout(context.Background(), razorpay.CheckoutOptions{
		OrderID: gatewayOrderID,
	})
	require.NoError(t, err)

	payload, _ := json.Marshal(map[string]string{
		"order_id":            "MRG_7_a",
		"razorpay_order_id":   gatewayOrderID,
		"razorpay_payment_id": "pay_007",
		"razorpay_signature":  "forged",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/verify", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)

	// 偽造簽章即使有等待中的checkout也不能回報驗證成功
	require.NotEqual(t, http.StatusOK, w.Code)

	// 等待中的checkout仍要拿到回調結果收尾
	select {
	case cb := <-cbChan:
		require.Equal(t, "forged", cb.Signature)
		require.Equal(t, "pay_007", cb.PaymentID)
	case <-time.After(time.Second):
		t.Fatal("waiting checkout did not receive callback")
	}

	// 訂單狀態交由checkout session決定，這裡不直接改
	order, err := fx.repo.GetOrderByID(context.Background(), "MRG_7_a")
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusPending, order.Status)
}

func TestGetOrder(t *testing.T) {
	fx := newHandlerFixture(t)
	fx.seedPendingOrder(t, "MRG_7_g")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/MRG_7_g", nil)
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/orders/MRG_none", nil)
	w = httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)
	require.NotEqual(t, http.StatusOK, w.Code)
}

func TestCreateCODOrder(t *testing.T) {
	fx := newHandlerFixture(t)

	payload, _ := json.Marshal(map[string]any{
		"amount": 45999,
		"customer_info": map[string]string{
			"name":    "Aarti Deshmukh",
			"email":   "aarti@example.com",
			"phone":   "9876543210",
			"address": "12 FC Road, Pune",
		},
		"items": []map[string]any{
			{"product_id": 1, "name": "Royal Thushi Set", "price": 45999, "quantity": 1},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/cod", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	orders, err := fx.repo.GetAllOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, model.PaymentMethodCOD, orders[0].PaymentMethod)
	require.Equal(t, model.OrderStatusProcessing, orders[0].Status)
	require.True(t, decimal.NewFromInt(46049).Equal(orders[0].Amount))

	// 回應帶展示用金額字串
	body := w.Body.String()
	require.Contains(t, body, "₹45,999")
	require.Contains(t, body, "₹50")
	require.Contains(t, body, "₹46,049")
}

func TestCreateCODOrderInvalidCustomer(t *testing.T) {
	fx := newHandlerFixture(t)

	payload, _ := json.Marshal(map[string]any{
		"amount": 45999,
		"customer_info": map[string]string{
			"name":    "Aarti Deshmukh",
			"email":   "not-an-email",
			"phone":   "9876543210",
			"address": "12 FC Road, Pune",
		},
		"items": []map[string]any{
			{"product_id": 1, "name": "Royal Thushi Set", "price": 45999, "quantity": 1},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/cod", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)

	require.NotEqual(t, http.StatusOK, w.Code)

	orders, err := fx.repo.GetAllOrders(context.Background())
	require.NoError(t, err)
	require.Empty(t, orders)
}

package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const defaultAPIURL = "https://api.razorpay.com/v1"

var (
	ErrGatewayUnavailable = errors.New("payment gateway is unavailable")
	ErrCheckoutNotFound   = errors.New("checkout attempt not found")
)

// Client 金流客戶端
// CreateOrder 走REST API，hosted checkout由外部UI回調，
// 這裡用channel把非同步回調接回workflow
type Client struct {
	keyID      string
	keySecret  string
	apiURL     string
	httpClient *http.Client

	mu      sync.Mutex
	pending map[string]chan CheckoutCallback // key: gateway order id
}

func NewClient(keyID, keySecret string) *Client {
	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		apiURL:    defaultAPIURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		pending: make(map[string]chan CheckoutCallback),
	}
}

// WithAPIURL 替換API端點，測試用
func (c *Client) WithAPIURL(url string) *Client {
	c.apiURL = url
	return c
}

type createOrderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

// CreateOrder 在金流端建立訂單
// 金額由主要貨幣單位轉成paise
func (c *Client) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (*GatewayOrder, error) {
	reqBody := createOrderRequest{
		Amount:         amount.Mul(decimal.NewFromInt(100)).IntPart(),
		Currency:       currency,
		Receipt:        receipt,
		PaymentCapture: 1,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化訂單請求失敗: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrGatewayUnavailable, resp.StatusCode)
	}

	var order GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("反序列化訂單回應失敗: %v", err)
	}
	return &order, nil
}

// OpenHostedCheckout 開啟hosted checkout
// 回傳的channel會收到外部UI的單一回調結果
// 超時策略由金流端掌控，這裡不另外設caller timeout
func (c *Client) OpenHostedCheckout(ctx context.Context, opts CheckoutOptions) (<-chan CheckoutCallback, error) {
	if opts.OrderID == "" {
		return nil, fmt.Errorf("checkout options missing order id")
	}

	ch := make(chan CheckoutCallback, 1)

	c.mu.Lock()
	c.pending[opts.OrderID] = ch
	c.mu.Unlock()

	return ch, nil
}

// Resolve 把外部UI的回調結果送回等待中的checkout
// 一個gateway order只會解析一次
func (c *Client) Resolve(gatewayOrderID string, cb CheckoutCallback) error {
	c.mu.Lock()
	ch, ok := c.pending[gatewayOrderID]
	if ok {
		delete(c.pending, gatewayOrderID)
	}
	c.mu.Unlock()

	if !ok {
		return ErrCheckoutNotFound
	}

	ch <- cb
	close(ch)
	return nil
}

// VerifySignature 驗證支付簽章
func (c *Client) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	return VerifyPaymentSignature(c.keySecret, gatewayOrderID, paymentID, signature)
}

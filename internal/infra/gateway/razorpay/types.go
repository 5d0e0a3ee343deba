package razorpay

// GatewayOrder 金流端建立的訂單
// 金額單位為paise
type GatewayOrder struct {
	ID         string `json:"id"`
	Entity     string `json:"entity"`
	Amount     int64  `json:"amount"`
	AmountPaid int64  `json:"amount_paid"`
	AmountDue  int64  `json:"amount_due"`
	Currency   string `json:"currency"`
	Receipt    string `json:"receipt"`
	Status     string `json:"status"`
	Attempts   int    `json:"attempts"`
	CreatedAt  int64  `json:"created_at"`
}

type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type Theme struct {
	Color string `json:"color"`
}

// MethodConfig 限制hosted checkout顯示的支付方式
type MethodConfig struct {
	UPI     bool     `json:"upi,omitempty"`
	Card    bool     `json:"card,omitempty"`
	Wallets []string `json:"wallet,omitempty"`
}

// CheckoutOptions hosted checkout開啟參數，除金額與訂單號外皆為顯示用途
type CheckoutOptions struct {
	Key         string            `json:"key"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	OrderID     string            `json:"order_id"`
	Prefill     Prefill           `json:"prefill"`
	Notes       map[string]string `json:"notes,omitempty"`
	Theme       Theme             `json:"theme"`
	Method      MethodConfig      `json:"method"`
}

// CheckoutCallback hosted checkout的非同步結果
// Dismissed為true表示用戶關閉了支付介面，其餘欄位無效
type CheckoutCallback struct {
	PaymentID string `json:"razorpay_payment_id"`
	OrderID   string `json:"razorpay_order_id"`
	Signature string `json:"razorpay_signature"`
	Dismissed bool   `json:"-"`
}

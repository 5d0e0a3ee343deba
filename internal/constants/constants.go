package constants

const (
	//分頁
	DefaultPagingSize int = 10
	DefaultPaging     int = 1
)

// 金流webhook簽章header
const WebhookSignatureHeader = "X-Razorpay-Signature"

// webhook事件名稱
const (
	WebhookEventPaymentCaptured = "payment.captured"
	WebhookEventPaymentFailed   = "payment.failed"
	WebhookEventOrderPaid       = "order.paid"
)

type RequestID string

const (
	RequestIDKey RequestID = "request_id"
)

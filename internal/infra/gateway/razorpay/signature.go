package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// SignPayment 對 gatewayOrderID|paymentID 計算HMAC-SHA256簽章
func SignPayment(keySecret, gatewayOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(fmt.Sprintf("%s|%s", gatewayOrderID, paymentID)))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaymentSignature 驗證支付回調的簽章
// 密鑰只存在於伺服器端
func VerifyPaymentSignature(keySecret, gatewayOrderID, paymentID, signature string) bool {
	expected := SignPayment(keySecret, gatewayOrderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignWebhookBody 對webhook raw body計算HMAC-SHA256簽章
func SignWebhookBody(webhookSecret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyWebhookSignature 驗證webhook header攜帶的簽章
func VerifyWebhookSignature(webhookSecret string, body []byte, signature string) bool {
	expected := SignWebhookBody(webhookSecret, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}

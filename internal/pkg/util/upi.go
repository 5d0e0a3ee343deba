package util

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

// BuildUPIURI 組出UPI付款請求連結
// 交易備註帶上訂單編號供對帳
func BuildUPIURI(vpa, merchantName string, amount decimal.Decimal, currency, orderID string) string {
	params := url.Values{}
	params.Set("pa", vpa)
	params.Set("pn", merchantName)
	params.Set("am", amount.String())
	params.Set("cu", currency)
	params.Set("tn", fmt.Sprintf("Payment for Order %s", orderID))
	return "upi://pay?" + params.Encode()
}

// BuildQRCodeURL 把資料轉成可掃描的QR code圖片連結
func BuildQRCodeURL(data string) string {
	return fmt.Sprintf("https://api.qrserver.com/v1/create-qr-code/?size=300x300&data=%s", url.QueryEscape(data))
}

package model

import (
	"regexp"
	"strings"
)

// 結帳時填寫的客戶資料
// 只存在於單次結帳流程，隨訂單一起落地
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

var (
	emailPattern    = regexp.MustCompile(`\S+@\S+\.\S+`)
	nonDigitPattern = regexp.MustCompile(`\D`)
)

// Validate 驗證客戶資料，回傳欄位對應的錯誤訊息
// 全部欄位通過驗證時回傳空map
func (c CustomerInfo) Validate() map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(c.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(c.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(c.Email) {
		errs["email"] = "Email is invalid"
	}
	if strings.TrimSpace(c.Phone) == "" {
		errs["phone"] = "Phone is required"
	} else if len(c.NormalizedPhone()) != 10 {
		errs["phone"] = "Phone must be 10 digits"
	}
	if strings.TrimSpace(c.Address) == "" {
		errs["address"] = "Address is required"
	}

	return errs
}

// NormalizedPhone 去除所有非數字字元
func (c CustomerInfo) NormalizedPhone() string {
	return nonDigitPattern.ReplaceAllString(c.Phone, "")
}

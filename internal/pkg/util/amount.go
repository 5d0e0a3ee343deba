package util

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount 以固定語系(en-IN)格式化金額
// 無小數位，千分位採印度分組(最後三位一組，其餘兩位一組)
func FormatAmount(amount decimal.Decimal) string {
	digits := amount.Round(0).BigInt().String()

	negative := false
	if strings.HasPrefix(digits, "-") {
		negative = true
		digits = digits[1:]
	}

	grouped := groupIndianDigits(digits)
	if negative {
		return "-₹" + grouped
	}
	return "₹" + grouped
}

func groupIndianDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(groups, ",") + "," + tail
}

package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderID 產生唯一訂單編號
// 格式: MRG_<毫秒時間戳>_<亂數後綴>，不會重複使用
func GenerateOrderID() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("MRG_%d_%s", time.Now().UnixMilli(), suffix)
}

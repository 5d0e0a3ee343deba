package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 收藏清單項目
// 用商品ID當唯一鍵，重複收藏同一個商品不會產生多筆記錄
type FavoriteEntry struct {
	ProductID     int             `json:"product_id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	Image         string          `json:"image"`
	Category      string          `json:"category"`
	Rating        float64         `json:"rating"`
	Reviews       int             `json:"reviews"`
	DateAdded     time.Time       `json:"date_added"`
}

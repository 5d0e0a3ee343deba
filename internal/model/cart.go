package model

import (
	"github.com/shopspring/decimal"
)

// 購物車內的單一商品項目
// 同一個商品ID在購物車內只會有一條記錄，數量用 Quantity 表示
type CartLine struct {
	ProductID     int             `json:"product_id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	Image         string          `json:"image"`
	Category      string          `json:"category"`
	Quantity      int             `json:"quantity"`
	Rating        float64         `json:"rating"`
	Reviews       int             `json:"reviews"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// 購物車快照
// Total 與 LineCount 由內容重新計算，不單獨儲存
type CartSnapshot struct {
	Lines      []CartLine      `json:"lines"`
	Total      decimal.Decimal `json:"total"`
	LineCount  int             `json:"line_count"`
	DrawerOpen bool            `json:"drawer_open"`
}

package model

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ProductID     int             `json:"product_id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	Image         string          `json:"image"`
	Category      string          `json:"category"`
	Subcategory   string          `json:"subcategory"`
	Rating        float64         `json:"rating"`
	Reviews       int             `json:"reviews"`
	Description   string          `json:"description"`
	InStock       bool            `json:"in_stock"`
	Featured      bool            `json:"featured"`
}

type Subcategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Category struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Subcategories []Subcategory `json:"subcategories"`
}

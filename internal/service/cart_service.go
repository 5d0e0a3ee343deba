package service

import (
	"sync"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/shopspring/decimal"
)

// 購物車
// 同一個商品只會有一條line，重複加入遞增數量
// 金額與數量統計每次異動都重新計算，不會累積飄移
type CartService struct {
	mu         sync.Mutex
	lines      []model.CartLine
	drawerOpen bool
}

func NewCartService() *CartService {
	return &CartService{
		lines: make([]model.CartLine, 0),
	}
}

// AddItem 加入商品
// 商品已存在時數量加1，否則以數量1附加到清單尾端
func (s *CartService) AddItem(p model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == p.ProductID {
			s.lines[i].Quantity++
			return
		}
	}

	s.lines = append(s.lines, model.CartLine{
		ProductID:     p.ProductID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		Category:      p.Category,
		Quantity:      1,
		Rating:        p.Rating,
		Reviews:       p.Reviews,
	})
}

// RemoveItem 移除商品，商品不存在時不動作
func (s *CartService) RemoveItem(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLine(productID)
}

// UpdateQuantity 調整數量
// 數量小於等於0時視同移除，不會留下數量為0的line
func (s *CartService) UpdateQuantity(productID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLine(productID)
		return
	}

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = quantity
			return
		}
	}
}

func (s *CartService) removeLine(productID int) {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// ToggleCartDrawer 切換購物車抽屜顯示，純UI狀態
func (s *CartService) ToggleCartDrawer() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drawerOpen = !s.drawerOpen
}

func (s *CartService) CloseCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drawerOpen = false
}

// ClearCart 清空購物車，結帳成功後呼叫
func (s *CartService) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = make([]model.CartLine, 0)
}

// Snapshot 取得目前購物車快照
// Total與LineCount由lines即時計算
func (s *CartService) Snapshot() model.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]model.CartLine, len(s.lines))
	copy(lines, s.lines)

	total := decimal.Zero
	lineCount := 0
	for _, line := range lines {
		total = total.Add(line.Subtotal())
		lineCount += line.Quantity
	}

	return model.CartSnapshot{
		Lines:      lines,
		Total:      total,
		LineCount:  lineCount,
		DrawerOpen: s.drawerOpen,
	}
}

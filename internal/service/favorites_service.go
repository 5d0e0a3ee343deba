package service

import (
	"context"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/rs/zerolog/log"
)

// 收藏清單
// 用商品ID當唯一鍵，重複收藏是冪等操作不會產生重複記錄
// 每次異動整包寫回持久層，啟動時載入，資料毀損就記log從空清單開始
type FavoritesService struct {
	mu         sync.Mutex
	entries    []model.FavoriteEntry
	index      map[int]struct{}
	drawerOpen bool
	repo       *redis_repo.FavoriteRepo
}

func NewFavoritesService(ctx context.Context, repo *redis_repo.FavoriteRepo) *FavoritesService {
	s := &FavoritesService{
		entries: make([]model.FavoriteEntry, 0),
		index:   make(map[int]struct{}),
		repo:    repo,
	}

	if repo == nil {
		return s
	}

	loaded, err := repo.LoadFavorites(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("load favorites failed, fallback to empty list")
		return s
	}

	for _, entry := range loaded {
		if _, ok := s.index[entry.ProductID]; ok {
			continue
		}
		s.entries = append(s.entries, entry)
		s.index[entry.ProductID] = struct{}{}
	}
	return s
}

// AddFavorite 收藏商品並蓋上當下時間
// 已收藏過時不動作
func (s *FavoritesService) AddFavorite(ctx context.Context, p model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[p.ProductID]; ok {
		return
	}

	s.entries = append(s.entries, model.FavoriteEntry{
		ProductID:     p.ProductID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		Category:      p.Category,
		Rating:        p.Rating,
		Reviews:       p.Reviews,
		DateAdded:     time.Now(),
	})
	s.index[p.ProductID] = struct{}{}

	s.persist(ctx)
}

// RemoveFavorite 移除收藏
func (s *FavoritesService) RemoveFavorite(ctx context.Context, productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[productID]; !ok {
		return
	}

	for i := range s.entries {
		if s.entries[i].ProductID == productID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	delete(s.index, productID)

	s.persist(ctx)
}

func (s *FavoritesService) IsFavorite(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.index[productID]
	return ok
}

// Favorites 回傳加入順序的收藏清單
func (s *FavoritesService) Favorites() []model.FavoriteEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]model.FavoriteEntry, len(s.entries))
	copy(result, s.entries)
	return result
}

func (s *FavoritesService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// ToggleFavoritesDrawer 切換收藏抽屜顯示，純UI狀態
func (s *FavoritesService) ToggleFavoritesDrawer() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drawerOpen = !s.drawerOpen
}

func (s *FavoritesService) CloseFavorites() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drawerOpen = false
}

func (s *FavoritesService) DrawerOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.drawerOpen
}

// 持久化失敗只記log，不阻斷清單操作
func (s *FavoritesService) persist(ctx context.Context) {
	if s.repo == nil {
		return
	}
	if err := s.repo.SaveFavorites(ctx, s.entries); err != nil {
		log.Error().Err(err).Msg("persist favorites failed")
	}
}

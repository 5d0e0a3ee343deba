package redis_repo

import (
	"context"
	"encoding/json"
	"fmt"

	redis_cache "github.com/RoyceAzure/lab/rj_redis/pkg/cache"
	"github.com/RoyceAzure/lab/storefront/internal/model"
)

const favoritesKey = "mrugaya_favorites"

// 收藏清單整包序列化成單一JSON slot
// 每次異動都整包覆寫，行程啟動時整包載入
type FavoriteRepo struct {
	cache redis_cache.Cache
}

func NewFavoriteRepo(cache redis_cache.Cache) *FavoriteRepo {
	return &FavoriteRepo{cache: cache}
}

// 保存收藏清單
func (r *FavoriteRepo) SaveFavorites(ctx context.Context, favorites []model.FavoriteEntry) error {
	favJSON, err := json.Marshal(favorites)
	if err != nil {
		return fmt.Errorf("序列化收藏清單失敗: %v", err)
	}

	err = r.cache.Set(ctx, favoritesKey, favJSON, 0)
	if err != nil {
		return fmt.Errorf("保存收藏清單失敗: %v", err)
	}
	return nil
}

// 載入收藏清單
// slot不存在時回傳空清單，資料毀損時回傳錯誤由呼叫端決定fallback
func (r *FavoriteRepo) LoadFavorites(ctx context.Context) ([]model.FavoriteEntry, error) {
	exists, err := r.cache.Exists(ctx, favoritesKey)
	if err != nil {
		return nil, fmt.Errorf("檢查收藏清單失敗: %v", err)
	}
	if !exists {
		return []model.FavoriteEntry{}, nil
	}

	favJSON, err := r.cache.Get(ctx, favoritesKey)
	if err != nil {
		return nil, fmt.Errorf("獲取收藏清單失敗: %v", err)
	}

	favJSONStr, ok := favJSON.(string)
	if !ok {
		return nil, fmt.Errorf("收藏清單資料格式錯誤")
	}

	var favorites []model.FavoriteEntry
	err = json.Unmarshal([]byte(favJSONStr), &favorites)
	if err != nil {
		return nil, fmt.Errorf("反序列化收藏清單失敗: %v", err)
	}
	return favorites, nil
}

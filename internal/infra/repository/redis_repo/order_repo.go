package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	redis_cache "github.com/RoyceAzure/lab/rj_redis/pkg/cache"
	"github.com/RoyceAzure/lab/storefront/internal/model"
)

var ErrOrderNotExist = errors.New("order is not exist")

// 訂單鏡像，一張訂單一個key
// 提供不經過db的快速查詢，寫入db成功後同步更新
type OrderRepo struct {
	cache redis_cache.Cache
}

func NewOrderRepo(cache redis_cache.Cache) *OrderRepo {
	return &OrderRepo{cache: cache}
}

func orderKey(orderID string) string {
	return fmt.Sprintf("order_%s", orderID)
}

// 保存訂單鏡像
func (r *OrderRepo) SaveOrder(ctx context.Context, order *model.Order) error {
	orderJSON, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("序列化訂單失敗: %v", err)
	}

	err = r.cache.Set(ctx, orderKey(order.OrderID), orderJSON, 0)
	if err != nil {
		return fmt.Errorf("保存訂單失敗: %v", err)
	}
	return nil
}

// 取得訂單鏡像
func (r *OrderRepo) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	exists, err := r.cache.Exists(ctx, orderKey(orderID))
	if err != nil {
		return nil, fmt.Errorf("檢查訂單失敗: %v", err)
	}
	if !exists {
		return nil, ErrOrderNotExist
	}

	orderJSON, err := r.cache.Get(ctx, orderKey(orderID))
	if err != nil {
		return nil, fmt.Errorf("獲取訂單失敗: %v", err)
	}

	orderJSONStr, ok := orderJSON.(string)
	if !ok {
		return nil, fmt.Errorf("訂單資料格式錯誤")
	}

	var order model.Order
	err = json.Unmarshal([]byte(orderJSONStr), &order)
	if err != nil {
		return nil, fmt.Errorf("反序列化訂單失敗: %v", err)
	}
	return &order, nil
}

// 刪除訂單鏡像
func (r *OrderRepo) DeleteOrder(ctx context.Context, orderID string) error {
	return r.cache.Delete(ctx, orderKey(orderID))
}

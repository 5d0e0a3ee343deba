package memory

import (
	"context"
	"errors"
	"path"
	"sync"
	"time"

	rj_cache "github.com/RoyceAzure/lab/rj_redis/pkg/cache"
	"github.com/redis/go-redis/v9"
)

var ErrKeyNotExists = errors.New("key not exists")
var ErrPipelineNotSupported = errors.New("pipeline is not supported by memory cache")

// MemoryCache 行程內的key-value儲存
// 介面與redis cache一致，值一律轉成string保存，行為對齊redis取值結果
// 單機模式與測試用，不處理TTL過期以外的淘汰
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryItem
}

type memoryItem struct {
	value    string
	expireAt time.Time // 零值表示永不過期
}

func NewMemoryCache() rj_cache.Cache {
	return &MemoryCache{items: make(map[string]memoryItem)}
}

var _ rj_cache.Cache = (*MemoryCache)(nil)

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func (m *MemoryCache) Ping(ctx context.Context) (string, error) {
	return "PONG", nil
}

func (m *MemoryCache) Get(ctx context.Context, key string) (any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[key]
	if !ok {
		return nil, ErrKeyNotExists
	}
	if !item.expireAt.IsZero() && time.Now().After(item.expireAt) {
		return nil, ErrKeyNotExists
	}
	return item.value, nil
}

func (m *MemoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item := memoryItem{value: toString(value)}
	if ttl > 0 {
		item.expireAt = time.Now().Add(ttl)
	}
	m.items[key] = item
	return nil
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

func (m *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.Get(ctx, key)
	if errors.Is(err, ErrKeyNotExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (m *MemoryCache) MGet(ctx context.Context, keys ...string) ([]any, error) {
	result := make([]any, 0, len(keys))
	for _, key := range keys {
		value, err := m.Get(ctx, key)
		if errors.Is(err, ErrKeyNotExists) {
			result = append(result, nil)
			continue
		}
		if err != nil {
			return nil, err
		}
		result = append(result, value)
	}
	return result, nil
}

func (m *MemoryCache) MSet(ctx context.Context, items map[string]any) error {
	for key, value := range items {
		if err := m.Set(ctx, key, value, 0); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryCache) MDelete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.items, key)
	}
	return nil
}

func (m *MemoryCache) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]memoryItem)
	return nil
}

func (m *MemoryCache) Keys(ctx context.Context, pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	for key := range m.items {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return nil, err
		}
		if matched {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (m *MemoryCache) Pipeline(ctx context.Context, command func(pipe redis.Pipeliner) error) ([]redis.Cmder, error) {
	return nil, ErrPipelineNotSupported
}

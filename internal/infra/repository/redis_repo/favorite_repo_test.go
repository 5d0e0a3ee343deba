package redis_repo

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/pkg/cache/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFavoriteRepoSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewFavoriteRepo(memory.NewMemoryCache())

	entries := []model.FavoriteEntry{
		{ProductID: 1, Name: "Royal Thushi Set", Price: decimal.NewFromInt(45999), DateAdded: time.Now()},
		{ProductID: 4, Name: "Traditional Nath", Price: decimal.NewFromInt(15999), DateAdded: time.Now()},
	}
	require.NoError(t, repo.SaveFavorites(ctx, entries))

	loaded, err := repo.LoadFavorites(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	require.Equal(t, 1, loaded[0].ProductID)
	require.Equal(t, "Traditional Nath", loaded[1].Name)
}

// key不存在時回傳空清單而非錯誤
func TestFavoriteRepoLoadEmpty(t *testing.T) {
	repo := NewFavoriteRepo(memory.NewMemoryCache())

	loaded, err := repo.LoadFavorites(context.Background())
	require.NoError(t, err)
	require.Empty(t, loaded)
}

func TestFavoriteRepoOverwrite(t *testing.T) {
	ctx := context.Background()
	repo := NewFavoriteRepo(memory.NewMemoryCache())

	require.NoError(t, repo.SaveFavorites(ctx, []model.FavoriteEntry{{ProductID: 1}}))
	require.NoError(t, repo.SaveFavorites(ctx, []model.FavoriteEntry{{ProductID: 2}}))

	loaded, err := repo.LoadFavorites(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, 2, loaded[0].ProductID)
}

func TestOrderMirrorSaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepo(memory.NewMemoryCache())

	order := &model.Order{
		OrderID:       "MRG_1_a",
		Amount:        decimal.NewFromInt(46049),
		Currency:      "INR",
		PaymentMethod: model.PaymentMethodCOD,
		Status:        model.OrderStatusProcessing,
	}
	require.NoError(t, repo.SaveOrder(ctx, order))

	loaded, err := repo.GetOrder(ctx, "MRG_1_a")
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusProcessing, loaded.Status)
	require.True(t, decimal.NewFromInt(46049).Equal(loaded.Amount))

	_, err = repo.GetOrder(ctx, "MRG_none")
	require.ErrorIs(t, err, ErrOrderNotExist)

	require.NoError(t, repo.DeleteOrder(ctx, "MRG_1_a"))
	_, err = repo.GetOrder(ctx, "MRG_1_a")
	require.ErrorIs(t, err, ErrOrderNotExist)
}

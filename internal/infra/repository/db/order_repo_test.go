package db

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type OrderRepoTestSuite struct {
	suite.Suite
	db        *gorm.DB
	orderRepo *OrderRepo
}

// SetupSuite 在測試套件開始前執行
func (suite *OrderRepoTestSuite) SetupSuite() {
	db, err := GetDbConn(ConnOptions{
		Host:     "localhost",
		Port:     "5432",
		User:     "royce",
		Password: "password",
		DbName:   "lab_storefront",
	})
	require.NoError(suite.T(), err)
	dbDao := NewDbDao(db)
	require.NoError(suite.T(), dbDao.InitMigrate())

	suite.db = db
	suite.orderRepo = NewOrderRepo(dbDao)
}

// SetupTest 在每個測試前執行
func (suite *OrderRepoTestSuite) SetupTest() {
	// 清空資料表
	suite.db.Exec("DELETE FROM order_items")
	suite.db.Exec("DELETE FROM orders")
}

// TearDownSuite 在測試套件結束後執行
func (suite *OrderRepoTestSuite) TearDownSuite() {
	sqlDB, _ := suite.db.DB()
	sqlDB.Close()
}

func (suite *OrderRepoTestSuite) createTestOrder(orderID string) *model.Order {
	order := &model.Order{
		OrderID:         orderID,
		Amount:          decimal.NewFromInt(45999),
		Currency:        "INR",
		CustomerName:    "Aarti Deshmukh",
		CustomerEmail:   "aarti@example.com",
		CustomerPhone:   "9876543210",
		CustomerAddress: "12 FC Road, Pune",
		OrderItems: []model.OrderItem{
			{OrderID: orderID, ProductID: 1, Name: "Royal Thushi Set", Price: decimal.NewFromInt(45999), Quantity: 1},
		},
		PaymentMethod: model.PaymentMethodRazorpay,
		Status:        model.OrderStatusPending,
		OrderDate:     time.Now(),
	}
	require.NoError(suite.T(), suite.orderRepo.CreateOrder(context.Background(), order))
	return order
}

func (suite *OrderRepoTestSuite) TestCreateOrder() {
	order := suite.createTestOrder("MRG_1_createtest")

	found, err := suite.orderRepo.GetOrderByID(context.Background(), order.OrderID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), order.OrderID, found.OrderID)
	require.Len(suite.T(), found.OrderItems, 1)
	require.True(suite.T(), decimal.NewFromInt(45999).Equal(found.Amount))
}

func (suite *OrderRepoTestSuite) TestGetOrderByIDNotFound() {
	_, err := suite.orderRepo.GetOrderByID(context.Background(), "MRG_none")
	require.ErrorIs(suite.T(), err, ErrOrderNotFound)
}

func (suite *OrderRepoTestSuite) TestGetOrdersByEmail() {
	suite.createTestOrder("MRG_1_email")
	suite.createTestOrder("MRG_2_email")

	orders, err := suite.orderRepo.GetOrdersByEmail(context.Background(), "aarti@example.com")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), orders, 2)

	orders, err = suite.orderRepo.GetOrdersByEmail(context.Background(), "nobody@example.com")
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), orders)
}

func (suite *OrderRepoTestSuite) TestUpdateOrderStatus() {
	order := suite.createTestOrder("MRG_1_status")

	err := suite.orderRepo.UpdateOrderStatus(context.Background(), order.OrderID, model.OrderStatusCompleted)
	require.NoError(suite.T(), err)

	found, err := suite.orderRepo.GetOrderByID(context.Background(), order.OrderID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), model.OrderStatusCompleted, found.Status)

	err = suite.orderRepo.UpdateOrderStatus(context.Background(), "MRG_none", model.OrderStatusCompleted)
	require.ErrorIs(suite.T(), err, ErrOrderNotFound)
}

func (suite *OrderRepoTestSuite) TestGetOrdersPaginated() {
	suite.createTestOrder("MRG_1_page")
	suite.createTestOrder("MRG_2_page")
	suite.createTestOrder("MRG_3_page")

	orders, total, err := suite.orderRepo.GetOrdersPaginated(context.Background(), 1, 2)
	require.NoError(suite.T(), err)
	require.EqualValues(suite.T(), 3, total)
	require.Len(suite.T(), orders, 2)

	orders, total, err = suite.orderRepo.GetOrdersPaginated(context.Background(), 2, 2)
	require.NoError(suite.T(), err)
	require.EqualValues(suite.T(), 3, total)
	require.Len(suite.T(), orders, 1)
}

func (suite *OrderRepoTestSuite) TestHardDeleteOrder() {
	order := suite.createTestOrder("MRG_1_delete")

	err := suite.orderRepo.HardDeleteOrder(context.Background(), order.OrderID)
	require.NoError(suite.T(), err)

	_, err = suite.orderRepo.GetOrderByID(context.Background(), order.OrderID)
	require.ErrorIs(suite.T(), err, ErrOrderNotFound)

	var count int64
	suite.db.Model(&model.OrderItem{}).Where("order_id = ?", order.OrderID).Count(&count)
	require.Zero(suite.T(), count)
}

func TestOrderRepoTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skip postgres integration test in short mode")
	}
	suite.Run(t, new(OrderRepoTestSuite))
}

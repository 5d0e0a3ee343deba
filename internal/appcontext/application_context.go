package appcontext

import (
	"context"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/config"
	"github.com/RoyceAzure/lab/storefront/internal/consumer"
	"github.com/RoyceAzure/lab/storefront/internal/infra/gateway/razorpay"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/catalog"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/eventdb"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/storefront/internal/producer"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	kafka_config "github.com/RoyceAzure/lab/rj_kafka/kafka/config"
	kafka_consumer "github.com/RoyceAzure/lab/rj_kafka/kafka/consumer"
	kafka_producer "github.com/RoyceAzure/lab/rj_kafka/kafka/producer"
	redis_cache "github.com/RoyceAzure/lab/rj_redis/pkg/cache"
	redis_cache_impl "github.com/RoyceAzure/lab/rj_redis/pkg/cache/redis"
	"github.com/RoyceAzure/lab/rj_redis/pkg/redis_client"
	"github.com/EventStore/EventStore-Client-Go/v4/esdb"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const consumerGroup = "storefront-order"

// ApplicationContext 應用程式依賴的組裝
type ApplicationContext struct {
	Cf *config.Config

	DbConn     *gorm.DB
	Cache      redis_cache.Cache
	EsClient   *esdb.Client
	Producer   kafka_producer.Producer
	Consumer   kafka_consumer.Consumer
	Gateway    *razorpay.Client
	OrderRepo  db.IOrderRepository
	OrderEvent *consumer.OrderEventConsumer

	CartService      *service.CartService
	FavoritesService *service.FavoritesService
	CatalogService   *service.CatalogService
	OrderService     service.IOrderService
	CheckoutService  *service.CheckoutService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	if err := app.Init(); err != nil {
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init() error {
	if err := app.setUpDbConn(); err != nil {
		return err
	}
	if err := app.setUpCache(); err != nil {
		return err
	}
	if err := app.setUpEventDb(); err != nil {
		return err
	}
	if err := app.setUpKafka(); err != nil {
		return err
	}

	app.Gateway = razorpay.NewClient(app.Cf.RazorpayKeyID, app.Cf.RazorpayKeySecret)

	app.setUpServices()

	if app.Consumer != nil {
		app.OrderEvent = consumer.NewOrderEventConsumer(app.Consumer, app.OrderService)
		if err := app.OrderEvent.Start(context.Background()); err != nil {
			return fmt.Errorf("start order event consumer failed: %w", err)
		}
	}
	return nil
}

func (app *ApplicationContext) setUpDbConn() error {
	log.Info().Msg("start setup db connection")
	conn, err := db.GetDbConn(db.ConnOptions{
		Host:     app.Cf.DbHost,
		Port:     app.Cf.DbPort,
		User:     app.Cf.DbUser,
		Password: app.Cf.DbPas,
		DbName:   app.Cf.DbName,
		SSLMode:  app.Cf.DbSSLMode,
	})
	if err != nil {
		return fmt.Errorf("connect postgres failed: %w", err)
	}

	dao := db.NewDbDao(conn)
	if err := dao.InitMigrate(); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}

	app.DbConn = conn
	app.OrderRepo = db.NewOrderRepo(dao)
	log.Info().Msg("finish setup db connection")
	return nil
}

// redis為選配，沒設定位址就不接鏡像與收藏持久化
func (app *ApplicationContext) setUpCache() error {
	if app.Cf.RedisAddr == "" {
		log.Info().Msg("redis addr not set, skip cache setup")
		return nil
	}
	log.Info().Msg("start setup redis cache")
	client, err := redis_client.GetRedisClient(app.Cf.RedisAddr, redis_client.WithPassword(app.Cf.RedisPas))
	if err != nil {
		return fmt.Errorf("connect redis failed: %w", err)
	}
	app.Cache = redis_cache_impl.NewRedisCache(client, "storefront")
	log.Info().Msg("finish setup redis cache")
	return nil
}

// EventStoreDB為選配，沒設定URL就不接事件日誌
func (app *ApplicationContext) setUpEventDb() error {
	if app.Cf.EventDBUrl == "" {
		log.Info().Msg("eventdb url is empty, skip order journal")
		return nil
	}

	settings, err := esdb.ParseConnectionString(app.Cf.EventDBUrl)
	if err != nil {
		return fmt.Errorf("parse eventdb url failed: %w", err)
	}
	client, err := esdb.NewClient(settings)
	if err != nil {
		return fmt.Errorf("connect eventdb failed: %w", err)
	}
	app.EsClient = client
	return nil
}

// kafka為選配，沒設定broker就退回同步更新
func (app *ApplicationContext) setUpKafka() error {
	brokers := app.Cf.Brokers()
	if len(brokers) == 0 {
		log.Info().Msg("kafka brokers is empty, skip event pipeline")
		return nil
	}

	producerCfg := &kafka_config.Config{
		Brokers:       brokers,
		Topic:         app.Cf.OrderEventTopic,
		RetryAttempts: 3,
		BatchTimeout:  time.Second,
		BatchSize:     100,
		RequiredAcks:  -1,
	}
	p, err := kafka_producer.New(producerCfg)
	if err != nil {
		return fmt.Errorf("create kafka producer failed: %w", err)
	}

	consumerCfg := &kafka_config.Config{
		Brokers:        brokers,
		Topic:          app.Cf.OrderEventTopic,
		ConsumerGroup:  consumerGroup,
		CommitInterval: time.Second,
	}
	c, err := kafka_consumer.New(consumerCfg)
	if err != nil {
		return fmt.Errorf("create kafka consumer failed: %w", err)
	}

	app.Producer = p
	app.Consumer = c
	return nil
}

func (app *ApplicationContext) setUpServices() {
	var mirror service.IOrderMirror
	var favoriteRepo *redis_repo.FavoriteRepo
	if app.Cache != nil {
		mirror = redis_repo.NewOrderRepo(app.Cache)
		favoriteRepo = redis_repo.NewFavoriteRepo(app.Cache)
	}

	var journal service.IOrderJournal
	if app.EsClient != nil {
		journal = eventdb.NewOrderEventDao(app.EsClient)
	}

	var events producer.IOrderEventProducer
	if app.Producer != nil {
		events = producer.NewOrderEventProducer(app.Producer)
	}

	app.CartService = service.NewCartService()
	app.FavoritesService = service.NewFavoritesService(context.Background(), favoriteRepo)
	app.CatalogService = service.NewCatalogService(catalog.NewCatalogRepo())
	app.OrderService = service.NewOrderService(app.OrderRepo, mirror, journal, events)
	app.CheckoutService = service.NewCheckoutService(app.Gateway, app.OrderService, app.CartService, service.CheckoutConfig{
		KeyID:        app.Cf.RazorpayKeyID,
		MerchantName: app.Cf.MerchantName,
		MerchantVPA:  app.Cf.MerchantVPA,
		Currency:     app.Cf.Currency,
		ThemeColor:   app.Cf.ThemeColor,
	})
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	if app.OrderEvent != nil {
		app.OrderEvent.Stop()
	}
	if app.Producer != nil {
		if err := app.Producer.Close(); err != nil {
			log.Error().Err(err).Msg("close kafka producer failed")
		}
	}
	if app.EsClient != nil {
		if err := app.EsClient.Close(); err != nil {
			log.Error().Err(err).Msg("close eventdb client failed")
		}
	}
	if app.DbConn != nil {
		if sqlDB, err := app.DbConn.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Error().Err(err).Msg("close postgres connection failed")
			}
		}
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Govind-619/storefront/cart"
	"github.com/Govind-619/storefront/config"
	"github.com/Govind-619/storefront/controllers"
	"github.com/Govind-619/storefront/models"
	"github.com/Govind-619/storefront/notify"
	"github.com/Govind-619/storefront/routes"
	"github.com/Govind-619/storefront/storage"
	"github.com/Govind-619/storefront/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type orderStore interface {
	cart.OrderStore
	controllers.OrderLookup
}

type couponStore interface {
	cart.CouponStore
	controllers.CouponAdmin
}

type customerStats interface {
	cart.UserOrderCounter
	controllers.CustomerStatsLookup
}

type productStore interface {
	cart.CatalogProvider
	controllers.ProductAdmin
}

// app is the wired service: engine, HTTP controller and the resources that
// need closing on shutdown.
type app struct {
	engine     *cart.Engine
	controller *controllers.Controller
	checks     map[string]routes.HealthCheck
	closers    []func(context.Context) error
}

func (a *app) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// demoProducts seed the catalog when running without a database.
func demoProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Cuaderno argollado", Price: 12000, Stock: 25, Category: "Papeleria"},
		{ID: 2, Name: "Boligrafo negro", Price: 2500, Stock: 100, Category: "Papeleria"},
		{ID: 3, Name: "Morral escolar", Price: 85000, Stock: 4, Category: "Accesorios"},
		{ID: 4, Name: "Termo 500ml", Price: 38000, Stock: 0, Category: "Accesorios"},
	}
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	a := &app{checks: map[string]routes.HealthCheck{}}

	var (
		carts   cart.Storage
		orders  orderStore
		coupons couponStore
		source  productStore
		stats   customerStats
	)
	switch cfg.Storage {
	case "memory":
		logger.Warn("Using in-memory storage, carts and orders are lost on restart")
		carts = storage.NewMemoryCartStore()
		orders = storage.NewMemoryOrderStore()
		coupons = storage.NewMemoryCouponStore()
		source = storage.NewStaticCatalog(demoProducts()...)
		stats = storage.NewMemoryCustomerStats()
	default:
		db, err := openDatabase(cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, closeDB(db))
		a.checks["database"] = pingDB(db)

		redisStore := storage.NewRedisCartStore(storage.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CartTTL,
		})
		a.closers = append(a.closers, func(context.Context) error { return redisStore.Close() })
		a.checks["redis"] = redisStore.Ping

		carts = redisStore
		orders = storage.NewGormOrderStore(db)
		coupons = storage.NewGormCouponStore(db)
		source = storage.NewGormCatalog(db)
		stats = storage.NewGormCustomerStats(db)
	}

	opts := []cart.Option{cart.WithCheckoutHook(cart.CountUserOrders(stats, logger))}
	if cfg.MongoURI != "" {
		audit, err := storage.NewMongoAuditLog(ctx, storage.MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		}, logger)
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		a.closers = append(a.closers, audit.Close)
		a.checks["mongo"] = audit.Ping
		opts = append(opts, cart.WithCheckoutHook(audit.Hook()))
	}

	formatPrice, err := utils.PriceFormatter(cfg.CurrencyLocale)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	catalog := cart.NewCatalog(source, cfg.CatalogTimeout, logger)
	a.engine = cart.NewEngine(cart.Config{
		StoreName:   cfg.StoreName,
		Destination: cfg.OrderDestination(),
		OrderPrefix: cfg.OrderPrefix,
		Shipping: cart.ShippingPolicy{
			FlatFee:       cfg.ShippingFee,
			FreeThreshold: cfg.FreeShippingThreshold,
		},
		FormatPrice: formatPrice,
	}, cart.Deps{
		Sessions: cart.NewSessionManager(carts, cfg.CartKeyPrefix, logger),
		Catalog:  catalog,
		Orders:   orders,
		Coupons:  coupons,
		Tiers:    cart.TierDiscount{Percent: cfg.UserDiscountPercent},
		Sink:     newSink(cfg),
		Logger:   logger,
	}, opts...)

	a.controller = &controllers.Controller{
		Engine:      a.engine,
		Coupons:     coupons,
		Orders:      orders,
		Products:    source,
		Customers:   stats,
		StoreName:   cfg.StoreName,
		FormatPrice: formatPrice,
	}
	return a, nil
}

func newSink(cfg *config.Config) cart.MessagingSink {
	if cfg.MessagingSink == "email" {
		return notify.NewEmailSink(notify.EmailConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			Subject:  cfg.StoreName + " - New order",
		})
	}
	return notify.NewWhatsAppSink()
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := config.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func pingDB(db *gorm.DB) routes.HealthCheck {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

func closeDB(db *gorm.DB) func(context.Context) error {
	return func(context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
}

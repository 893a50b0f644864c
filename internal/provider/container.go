package provider

import (
	"fmt"
	"strings"
	"time"

	"github.com/elitebuy/internal/authz"
	"github.com/elitebuy/internal/cache"
	"github.com/elitebuy/internal/config"
	"github.com/elitebuy/internal/constants"
	"github.com/elitebuy/internal/logger"
	"github.com/elitebuy/internal/models"
	"github.com/elitebuy/internal/queue"
	"github.com/elitebuy/internal/repository"
	"github.com/elitebuy/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	Store       *repository.Store
	QueueClient *queue.Client

	// Services
	AuthzService        *authz.Service
	UserAuthService     *service.UserAuthService
	LoginHistoryService *service.LoginHistoryService
	CaptchaService      *service.CaptchaService
	UserService         *service.UserService
	CatalogService      *service.CatalogService
	WishlistService     *service.WishlistService
	AddressService      *service.AddressService
	CartService         *service.CartService
	OrderService        *service.OrderService
	PaymentService      *service.PaymentService
	CheckoutService     *service.CheckoutService
	AnalyticsService    *service.AnalyticsService
}

// OpenDatabase 按存储驱动打开数据库并迁移，memory 驱动返回 nil
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if driver == "" || driver == constants.StoreDriverMemory {
		return nil, nil
	}
	db, err := models.OpenDB(driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, cfg.Server.Mode == "debug")
	if err != nil {
		return nil, fmt.Errorf("open database failed: %w", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate database failed: %w", err)
	}
	return db, nil
}

// NewContainer 初始化容器，db 为空时使用进程内存储
func NewContainer(cfg *config.Config, db *gorm.DB) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		DB:          db,
		QueueClient: queueClient,
	}

	// 1. 初始化存储
	if db != nil {
		c.Store = repository.NewGormStore(db)
	} else {
		c.Store = repository.NewMemoryStore()
	}

	// 2. 初始化 Services
	if err := c.initServices(); err != nil {
		return nil, err
	}

	if cfg.Database.Seed {
		if err := repository.ApplySeed(c.Store, models.DefaultSeed()); err != nil {
			return nil, fmt.Errorf("seed store failed: %w", err)
		}
	}

	return c, nil
}

func (c *Container) initServices() error {
	authzService, err := authz.NewService(c.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		return err
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		return err
	}

	pricing, err := service.NewPricing(c.Config.Checkout)
	if err != nil {
		logger.Errorw("provider_init_pricing_failed", "error", err)
		return err
	}

	store := c.Store
	catalogTTL := time.Duration(c.Config.Cache.CatalogTTLSeconds) * time.Second
	analyticsTTL := time.Duration(c.Config.Cache.AnalyticsTTLSeconds) * time.Second

	c.LoginHistoryService = service.NewLoginHistoryService(store.LoginHistory)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UserAuthService = service.NewUserAuthService(c.Config, store.Users, c.LoginHistoryService, c.CaptchaService)
	c.UserService = service.NewUserService(store.Users, store.Orders, store.Wishlist)
	c.CatalogService = service.NewCatalogService(store.Products, store.Categories, catalogTTL)
	c.WishlistService = service.NewWishlistService(store.Wishlist, store.Products, store.Categories)
	c.AddressService = service.NewAddressService(store.Addresses)
	c.AnalyticsService = service.NewAnalyticsService(store.Dashboard, analyticsTTL)

	c.CartService = service.NewCartService(store.Carts, store.Products)
	c.OrderService = service.NewOrderService(store.Orders, pricing)
	simulator := service.NewPaymentSimulator(c.Config.Payment.Simulation)
	c.PaymentService = service.NewPaymentService(store.Payments, store.Orders, c.OrderService, simulator)

	var enqueuer service.SettlementEnqueuer
	async := false
	if c.Config.Payment.Simulation.Async && c.QueueClient.Enabled() {
		enqueuer = c.QueueClient
		async = true
	}
	c.CheckoutService = service.NewCheckoutService(c.CartService, c.OrderService, c.PaymentService, enqueuer, async)
	return nil
}

// Close 释放容器持有的外部连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

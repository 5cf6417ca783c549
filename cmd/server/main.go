package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	catalogapp "github.com/vietcart/backend/internal/application/catalog"
	identityapp "github.com/vietcart/backend/internal/application/identity"
	orderapp "github.com/vietcart/backend/internal/application/order"
	paymentapp "github.com/vietcart/backend/internal/application/payment"
	shoppingapp "github.com/vietcart/backend/internal/application/shopping"
	"github.com/vietcart/backend/internal/domain/order"
	"github.com/vietcart/backend/internal/domain/shared"
	"github.com/vietcart/backend/internal/domain/shared/valueobject"
	"github.com/vietcart/backend/internal/infrastructure/auth"
	"github.com/vietcart/backend/internal/infrastructure/cache"
	"github.com/vietcart/backend/internal/infrastructure/config"
	"github.com/vietcart/backend/internal/infrastructure/event"
	"github.com/vietcart/backend/internal/infrastructure/logger"
	infrapayment "github.com/vietcart/backend/internal/infrastructure/payment"
	"github.com/vietcart/backend/internal/infrastructure/persistence"
	"github.com/vietcart/backend/internal/infrastructure/storage"
	"github.com/vietcart/backend/internal/infrastructure/telemetry"
	"github.com/vietcart/backend/internal/interfaces/http/handler"
	"github.com/vietcart/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting VietCart backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer shutdownWithTimeout(tracerProvider.Shutdown, log, "tracer provider")

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer shutdownWithTimeout(meterProvider.Shutdown, log, "meter provider")

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.EnableTracing(cfg.Database.DBName); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected")

	accountRepo := persistence.NewGormAccountRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	checkoutStore := persistence.NewGormCheckoutStore(db.DB)
	txRepo := persistence.NewGormTransactionRepository(db.DB)

	eventBus := event.NewInMemoryEventBus(log)
	orderCreatedHandler, err := orderapp.NewCreatedHandler(meterProvider.Meter("vietcart/order"), log)
	if err != nil {
		log.Fatal("Failed to create order event handler", zap.Error(err))
	}
	eventBus.Subscribe(order.EventTypeOrderCreated, orderCreatedHandler)

	var idempotency shared.IdempotencyStore
	if cfg.Redis.Host != "" {
		redisStore, err := cache.NewRedisIdempotencyStore(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			if err := redisStore.Close(); err != nil {
				log.Error("Error closing redis", zap.Error(err))
			}
		}()
		idempotency = redisStore
		log.Info("Using redis idempotency store", zap.String("host", cfg.Redis.Host))
	} else {
		memStore := cache.NewInMemoryIdempotencyStore()
		defer func() {
			_ = memStore.Close()
		}()
		idempotency = memStore
		log.Warn("Redis not configured, using in-memory idempotency store")
	}

	gateway, err := infrapayment.NewMoMoAdapter(&infrapayment.MoMoConfig{
		PartnerCode: cfg.MoMo.PartnerCode,
		AccessKey:   cfg.MoMo.AccessKey,
		SecretKey:   cfg.MoMo.SecretKey,
		RedirectURL: cfg.MoMo.RedirectURL,
		IPNURL:      cfg.MoMo.IPNURL,
		IsSandbox:   cfg.MoMo.Sandbox,
	})
	if err != nil {
		log.Fatal("Failed to configure MoMo gateway", zap.Error(err))
	}

	var objectStorage catalogapp.ObjectStorage
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to configure object storage", zap.Error(err))
		}
		objectStorage = s3Storage
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Object storage not configured, product image uploads are stubbed")
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	google := auth.NewGoogleOAuth(cfg.Google)

	authService := identityapp.NewAuthService(accountRepo, jwtService, google, log)
	accountService := identityapp.NewAccountService(accountRepo, log)
	addressService := identityapp.NewAddressService(addressRepo, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, brandRepo, objectStorage, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, log)
	brandService := catalogapp.NewBrandService(brandRepo, log)
	cartService := shoppingapp.NewCartService(cartRepo, productRepo, log)
	checkoutService := orderapp.NewCheckoutService(
		orderRepo, checkoutStore, productRepo, addressRepo, cartRepo,
		eventBus, valueobject.NewMoneyVNDFromInt(cfg.Shipping.FlatFee), log)
	orderService := orderapp.NewOrderService(orderRepo, checkoutStore, eventBus, log)
	momoService := paymentapp.NewMoMoService(gateway, orderRepo, txRepo, log)
	callbackService := paymentapp.NewCallbackService(gateway, orderRepo, txRepo, idempotency, eventBus, log)

	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authService, cfg.App.FrontendURL),
		Account:  handler.NewAccountHandler(accountService),
		Address:  handler.NewAddressHandler(addressService),
		Product:  handler.NewProductHandler(productService),
		Category: handler.NewCategoryHandler(categoryService),
		Brand:    handler.NewBrandHandler(brandService),
		Cart:     handler.NewCartHandler(cartService),
		Order:    handler.NewOrderHandler(checkoutService, orderService),
		Payment:  handler.NewPaymentHandler(momoService, callbackService),
		System:   handler.NewSystemHandler(db),
	}

	engine, err := router.New(cfg, log, jwtService, handlers)
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}

func shutdownWithTimeout(fn func(context.Context) error, log *zap.Logger, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Error("Shutdown error", zap.String("component", name), zap.Error(err))
	}
}

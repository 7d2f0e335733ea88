package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/atlas-pos/atlas-pos/internal/app"
	"github.com/atlas-pos/atlas-pos/internal/catalog/categories"
	"github.com/atlas-pos/atlas-pos/internal/catalog/products"
	"github.com/atlas-pos/atlas-pos/internal/catalog/seed"
	"github.com/atlas-pos/atlas-pos/internal/catalog/suppliers"
	"github.com/atlas-pos/atlas-pos/internal/ledger"
	"github.com/atlas-pos/atlas-pos/internal/notify"
	"github.com/atlas-pos/atlas-pos/internal/platform/cache"
	"github.com/atlas-pos/atlas-pos/internal/platform/db"
	"github.com/atlas-pos/atlas-pos/internal/pos"
)

const storeName = "Atlas POS"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	var (
		productRepo  products.Repository
		categoryRepo categories.Repository
		supplierRepo suppliers.Repository
	)
	if cfg.PGDSN != "" {
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		productRepo = products.NewPostgresRepository(pool)
		categoryRepo = categories.NewPostgresRepository(pool)
		supplierRepo = suppliers.NewPostgresRepository(pool)
		logger.Info("catalog backed by postgres")
	} else {
		productRepo = products.NewMemoryRepository(seed.Products())
		categoryRepo = categories.NewMemoryRepository(seed.Categories())
		supplierRepo = suppliers.NewMemoryRepository(seed.Suppliers())
		logger.Info("catalog backed by in-memory seed data")
	}

	var notifier ledger.Notifier = &notify.SlogNotifier{Logger: logger}
	if cfg.RedisAddr != "" {
		redisClient, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Error("connect redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()

		productRepo = products.NewCachedRepository(productRepo, redisClient, cfg.ProductCacheTTL, logger)

		asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer func() {
			if err := asynqClient.Close(); err != nil {
				logger.Warn("asynq close", slog.Any("error", err))
			}
		}()
		notifier = notify.NewAsynqNotifier(asynqClient, logger)
	}

	ledgerStore := ledger.NewStore()
	ledgerService := ledger.NewService(ledgerStore, productRepo, notifier, logger)
	ledgerViews := ledger.NewViews(ledgerStore, productRepo)

	productService := products.NewService(productRepo, ledgerService, logger)
	categoryService := categories.NewService(categoryRepo, productRepo, logger)
	supplierService := suppliers.NewService(supplierRepo, productRepo, logger)

	paymentMethods := pos.NewPaymentMethods(pos.DefaultPaymentMethods())
	posService := pos.NewService(ledgerService, paymentMethods, cfg.TaxRate, cfg.PaymentDelay, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		ProductHandler:  products.NewHandler(productService),
		CategoryHandler: categories.NewHandler(categoryService),
		SupplierHandler: suppliers.NewHandler(supplierService),
		LedgerHandler:   ledger.NewHandler(ledgerService, ledgerViews),
		POSHandler:      pos.NewHandler(posService, storeName),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

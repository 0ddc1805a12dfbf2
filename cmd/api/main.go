package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangkips/pos-register/internal/application/service"
	"github.com/sangkips/pos-register/internal/config"
	"github.com/sangkips/pos-register/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-register/internal/domain/repository"
	"github.com/sangkips/pos-register/internal/infrastructure/client"
	"github.com/sangkips/pos-register/internal/infrastructure/database"
	"github.com/sangkips/pos-register/internal/infrastructure/metrics"
	"github.com/sangkips/pos-register/internal/infrastructure/repository"
	"github.com/sangkips/pos-register/internal/presentation/http/handler"
	"github.com/sangkips/pos-register/internal/presentation/http/routes"
	"github.com/sangkips/pos-register/pkg/logger"
	"github.com/sangkips/pos-register/pkg/money"
	"github.com/sangkips/pos-register/pkg/printer"
	"github.com/sangkips/pos-register/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zl := logger.NewZapLogger(logger.ConfigForEnv(cfg.App.Env, cfg.Log.Level))
	defer func() { _ = zl.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Local sales journal and idempotency keys
	sales, idempotencyRepo := openStores(cfg, zl)

	// Metrics
	var rec *metrics.Recorder
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		rec = metrics.NewRecorder(registry)
		metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}

	// Retail backend
	backend := client.New(client.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
		Token:   cfg.Backend.Token,
	}, zl, rec)

	formatter, err := money.NewFormatter(cfg.Currency.Code, cfg.Currency.Locale, cfg.Currency.Decimals)
	if err != nil {
		zl.Fatal("invalid currency settings", zap.Error(err))
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:         cfg.Printer.Type,
		USBPath:      cfg.Printer.USBPath,
		Address:      cfg.Printer.Address,
		DialTimeout:  cfg.Printer.DialTimeout,
		WriteTimeout: cfg.Printer.WriteTimeout,
	})
	if err != nil {
		zl.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	catalogService := service.NewCatalogService(backend, cfg.POS.CatalogTTL, zl)
	customerService := service.NewCustomerService(backend)
	totals := service.NewTotalsEngine(cfg.POS.VATRate)
	journal := service.NewSaleJournalService(sales)
	printerService := service.NewPrinterService(thermalPrinter, journal, entity.ReceiptHeader{
		StoreName: cfg.Receipt.StoreName,
		Address:   cfg.Receipt.Address,
		Phone:     cfg.Receipt.Phone,
		TaxID:     cfg.Receipt.TaxID,
		Footer:    cfg.Receipt.Footer,
	}, formatter, cfg.Receipt.Width)
	registerService := service.NewRegisterService(backend, catalogService, customerService, totals, rec, zl)
	checkoutService := service.NewCheckoutService(registerService, backend, journal, printerService, service.PayloadOptions{
		WalkInName:  cfg.POS.WalkInName,
		WarehouseID: cfg.POS.DefaultWarehouseID,
	}, cfg.POS.AutoPrint, rec, zl)
	invoiceService := service.NewInvoiceHistoryService(backend, zl)

	// Initialize handlers
	handlers := &routes.Handlers{
		Register: handler.NewRegisterHandler(registerService, checkoutService),
		Catalog:  handler.NewCatalogHandler(catalogService, customerService),
		Sales:    handler.NewSalesHandler(journal, printerService),
		Invoice:  handler.NewInvoiceHandler(invoiceService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	rateLimiter := routes.NewRateLimiter(cfg.RateLimit)
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours),
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          zl,
		RateLimiter:     rateLimiter,
		Metrics:         metricsHandler,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go purgeIdempotencyKeys(ctx, idempotencyRepo, zl)

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("server shutdown failed", zap.Error(err))
	}
}

// openStores connects to Postgres, or falls back to in-memory stores when the database is
// disabled or unreachable.
func openStores(cfg *config.Config, zl *zap.Logger) (domainRepo.SaleJournalRepository, domainRepo.IdempotencyRepository) {
	if !cfg.Database.Enabled {
		zl.Warn("database disabled, sales journal kept in memory")
		return repository.NewMemorySaleJournal(), repository.NewMemoryIdempotencyRepository()
	}

	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, zl)
	if err != nil {
		zl.Warn("database unavailable, sales journal kept in memory", zap.Error(err))
		return repository.NewMemorySaleJournal(), repository.NewMemoryIdempotencyRepository()
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db, zl); err != nil {
		zl.Fatal("failed to run migrations", zap.Error(err))
	}

	return repository.NewSaleJournalRepository(db), repository.NewIdempotencyRepository(db)
}

func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, zl *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := repo.DeleteExpired(ctx, now)
			if err != nil {
				zl.Warn("failed to purge idempotency keys", zap.Error(err))
				continue
			}
			if removed > 0 {
				zl.Debug("purged idempotency keys", zap.Int64("removed", removed))
			}
		}
	}
}

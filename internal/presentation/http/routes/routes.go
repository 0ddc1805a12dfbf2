package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-register/internal/config"
	domainRepo "github.com/sangkips/pos-register/internal/domain/repository"
	"github.com/sangkips/pos-register/internal/presentation/http/handler"
	"github.com/sangkips/pos-register/internal/presentation/http/middleware"
	"github.com/sangkips/pos-register/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Register *handler.RegisterHandler
	Catalog  *handler.CatalogHandler
	Sales    *handler.SalesHandler
	Invoice  *handler.InvoiceHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *zap.Logger
	RateLimiter     *middleware.CompanyRateLimiter
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

// NewRateLimiter builds the per-company limiter from the configured request window.
func NewRateLimiter(cfg config.RateLimitConfig) *middleware.CompanyRateLimiter {
	rps := 0.0
	if cfg.Duration > 0 {
		rps = float64(cfg.Requests) / float64(cfg.Duration)
	}
	return middleware.NewCompanyRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: rps,
		BurstSize:         cfg.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.RateLimiter == nil {
		deps.RateLimiter = NewRateLimiter(deps.Cfg.RateLimit)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "ok",
			"service":    deps.Cfg.App.Name,
			"rate_limit": deps.RateLimiter.Stats(),
		})
	})

	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(deps.RateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	pos := protected.Group("/pos")
	pos.Use(middleware.RequirePermission("pos-sell"))

	// Catalog and customers
	registerCatalogRoutes(pos, h)

	// Invoice sessions
	registerSessionRoutes(pos, h, deps)

	// Local sales journal
	registerSalesRoutes(protected, h)

	// Backend invoice history
	registerInvoiceRoutes(protected, h)

	// Printer
	registerPrinterRoutes(protected, h)
}

func registerCatalogRoutes(pos *gin.RouterGroup, h *Handlers) {
	catalog := pos.Group("/catalog")
	{
		catalog.GET("", h.Catalog.GetCatalog)
		catalog.POST("/refresh", h.Catalog.RefreshCatalog)
		catalog.GET("/search", h.Catalog.Search)
		catalog.GET("/barcode/:barcode", h.Catalog.GetByBarcode)
	}
	pos.GET("/customers", h.Catalog.ListCustomers)
}

func registerSessionRoutes(pos *gin.RouterGroup, h *Handlers, deps *Deps) {
	sessions := pos.Group("/sessions")
	{
		sessions.GET("", h.Register.ListSessions)
		sessions.POST("", h.Register.OpenSession)
		sessions.GET("/:id", h.Register.GetSession)
		sessions.PUT("/:id/activate", h.Register.ActivateSession)
		sessions.POST("/:id/clear", h.Register.ClearSession)
		sessions.DELETE("/:id", h.Register.DiscardSession)

		sessions.POST("/:id/items", h.Register.AddItem)
		sessions.POST("/:id/scan", h.Register.Scan)
		sessions.POST("/:id/lookup", h.Register.Lookup)
		sessions.PUT("/:id/items/:productId/quantity", h.Register.SetQuantity)
		sessions.PUT("/:id/items/:productId/discount", h.Register.SetLineDiscount)
		sessions.DELETE("/:id/items/:productId", h.Register.RemoveItem)

		sessions.PUT("/:id/customer", h.Register.SetCustomer)
		sessions.PUT("/:id/discount", h.Register.SetGeneralDiscount)
		sessions.PUT("/:id/delivery", h.Register.SetDelivery)
		sessions.DELETE("/:id/delivery", h.Register.RemoveDelivery)

		sessions.POST("/:id/tenders", h.Register.AddTender)
		sessions.POST("/:id/tenders/fill", h.Register.FillExactAmount)
		sessions.PUT("/:id/tenders/:index", h.Register.UpdateTender)
		sessions.DELETE("/:id/tenders/:index", h.Register.RemoveTender)

		// Checkout replays the stored answer when the cashier retries with the same key
		sessions.POST("/:id/checkout", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo:   deps.IdempotencyRepo,
			Logger: deps.Logger,
		}), h.Register.Checkout)
	}
}

func registerSalesRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	sales.Use(middleware.RequirePermission("view-sales"))
	{
		sales.GET("", h.Sales.List)
		sales.GET("/:id", h.Sales.Get)
		sales.POST("/:id/print", h.Sales.PrintReceipt)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers) {
	invoices := protected.Group("/invoices")
	invoices.Use(middleware.RequirePermission("view-sales"))
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("/:id/cancel", middleware.RequireRole("admin", "supervisor"), h.Invoice.Cancel)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
	}
}

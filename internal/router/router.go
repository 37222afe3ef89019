package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "khata/docs"
	"khata/internal/domain"
	"khata/internal/handler"
	"khata/internal/logger"
	"khata/internal/middleware"
	"khata/internal/port"
	"khata/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Health     *handler.HealthHandler
	Tenant     *handler.TenantHandler
	User       *handler.UserHandler
	Party      *handler.PartyHandler
	Item       *handler.ItemHandler
	Document   *handler.DocumentHandler
	Payment    *handler.PaymentHandler
	Bank       *handler.BankHandler
	Report     *handler.ReportHandler
	Dashboard  *handler.DashboardHandler
	Attachment *handler.AttachmentHandler
}

// Options carries the cross-cutting collaborators of the engine.
type Options struct {
	Logger         *zap.Logger
	AllowedOrigins []string
	AuthLimiter    port.RateLimiter
	APILimiter     port.RateLimiter
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, opts Options) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(logger.GinMiddleware(opts.Logger))
	r.Use(logger.Recovery(opts.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(opts.AllowedOrigins))

	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	if opts.AuthLimiter != nil {
		auth.Use(middleware.RateLimit(opts.AuthLimiter, "auth", middleware.ByIP, opts.Logger))
	}
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)
	auth.POST("/register", h.Auth.Register)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))
	protected.Use(middleware.TenantGuard())
	if opts.APILimiter != nil {
		protected.Use(middleware.RateLimit(opts.APILimiter, "api", middleware.ByUser, opts.Logger))
	}
	protected.Use(middleware.RequireWrite())

	protected.GET("/tenant", h.Tenant.Get)
	protected.PATCH("/tenant", middleware.RequireRole(domain.RoleAdmin), h.Tenant.Update)

	users := protected.Group("/users")
	users.Use(middleware.RequireRole(domain.RoleAdmin))
	users.POST("", h.User.Create)
	users.GET("", h.User.List)
	users.GET("/:id", h.User.GetByID)
	users.PUT("/:id", h.User.Update)
	users.DELETE("/:id", h.User.Delete)

	parties := protected.Group("/parties")
	parties.POST("", h.Party.Create)
	parties.GET("", h.Party.List)
	parties.GET("/:id", h.Party.GetByID)
	parties.PUT("/:id", h.Party.Update)
	parties.DELETE("/:id", h.Party.Delete)
	parties.POST("/:id/restore", h.Party.Restore)
	parties.GET("/:id/ledger", h.Party.Ledger)

	items := protected.Group("/items")
	items.POST("", h.Item.Create)
	items.GET("", h.Item.List)
	items.GET("/:id", h.Item.GetByID)
	items.PUT("/:id", h.Item.Update)
	items.DELETE("/:id", h.Item.Delete)

	protected.POST("/invoices", h.Document.CreateInvoice)
	protected.POST("/bills", h.Document.CreateBill)

	docs := protected.Group("/documents")
	docs.GET("", h.Document.List)
	docs.GET("/:id", h.Document.GetByID)
	docs.PUT("/:id", h.Document.Update)
	docs.DELETE("/:id", h.Document.Delete)
	docs.POST("/:id/status", h.Document.Transition)
	docs.POST("/:id/restore", h.Document.Restore)
	docs.PATCH("/:id/compliance", h.Document.UpdateCompliance)
	docs.GET("/:id/attachment", h.Document.AttachmentURL)

	payments := protected.Group("/payments")
	payments.POST("", h.Payment.Record)
	payments.GET("", h.Payment.List)
	payments.GET("/:id", h.Payment.GetByID)
	payments.DELETE("/:id", h.Payment.Delete)

	bank := protected.Group("/bank")
	bank.POST("/import", h.Bank.Import)
	bank.GET("/transactions", h.Bank.List)
	bank.GET("/suggestions", h.Bank.Suggestions)
	bank.POST("/transactions/:id/match", h.Bank.Match)
	bank.POST("/transactions/:id/ignore", h.Bank.Ignore)
	bank.POST("/transactions/:id/unignore", h.Bank.Unignore)

	reports := protected.Group("/reports")
	reports.GET("/aging", h.Report.Aging)
	reports.GET("/tds", h.Report.TDS)
	reports.GET("/sales-summary", h.Report.SalesSummary)
	reports.GET("/gst-register", h.Report.GSTRegister)
	reports.GET("/backup", h.Report.Backup)

	protected.GET("/dashboard", h.Dashboard.Get)
	protected.GET("/dashboard/reminders", h.Dashboard.Reminders)

	attachments := protected.Group("/attachments")
	attachments.POST("", h.Attachment.Upload)
	attachments.GET("/:id/download", h.Attachment.Download)
	attachments.DELETE("/:id", h.Attachment.Delete)

	return r
}

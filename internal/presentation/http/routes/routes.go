package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/billcraft/billcraft-api/internal/config"
	domainRepo "github.com/billcraft/billcraft-api/internal/domain/repository"
	"github.com/billcraft/billcraft-api/internal/presentation/http/handler"
	"github.com/billcraft/billcraft-api/internal/presentation/http/middleware"
	"github.com/billcraft/billcraft-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Business *handler.BusinessHandler
	Client   *handler.ClientHandler
	Template *handler.TemplateHandler
	Invoice  *handler.InvoiceHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Business profile
	registerBusinessRoutes(protected, h)

	// Clients
	registerClientRoutes(protected, h)

	// Templates
	registerTemplateRoutes(protected, h)

	// Invoices
	registerInvoiceRoutes(protected, h, deps)
}

func registerBusinessRoutes(protected *gin.RouterGroup, h *Handlers) {
	business := protected.Group("/business")
	{
		business.GET("", h.Business.Get)
		business.POST("", h.Business.Create)
		business.PUT("", h.Business.Update)
	}
}

func registerClientRoutes(protected *gin.RouterGroup, h *Handlers) {
	clients := protected.Group("/clients")
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/:id", h.Client.Get)
		clients.DELETE("/:id", h.Client.Delete)
	}
}

func registerTemplateRoutes(protected *gin.RouterGroup, h *Handlers) {
	templates := protected.Group("/templates")
	{
		templates.GET("", h.Template.List)
		templates.POST("", h.Template.Create)
		templates.PUT("/:id", h.Template.Update)
		templates.DELETE("/:id", h.Template.Delete)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		// Invoice creation requires an idempotency key to prevent duplicates
		invoices.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PUT("/:id", h.Invoice.Update)
		invoices.DELETE("/:id", h.Invoice.Delete)
		invoices.GET("/:id/pdf", h.Invoice.DownloadPDF)
	}
}

package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/billcraft/billcraft-api/internal/application/service"
	"github.com/billcraft/billcraft-api/internal/config"
	"github.com/billcraft/billcraft-api/internal/infrastructure/database"
	"github.com/billcraft/billcraft-api/internal/infrastructure/gst"
	"github.com/billcraft/billcraft-api/internal/infrastructure/pdf"
	"github.com/billcraft/billcraft-api/internal/infrastructure/render"
	"github.com/billcraft/billcraft-api/internal/infrastructure/repository"
	"github.com/billcraft/billcraft-api/internal/presentation/http/handler"
	"github.com/billcraft/billcraft-api/internal/presentation/http/routes"
	"github.com/billcraft/billcraft-api/pkg/email"
	"github.com/billcraft/billcraft-api/pkg/oauth"
	"github.com/billcraft/billcraft-api/pkg/utils"
	"github.com/billcraft/billcraft-api/web"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	clientRepo := repository.NewClientRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize the GST registry client and PDF pipeline
	gstValidator := gst.NewClient(&cfg.GST)
	pdfEngine := pdf.NewChromeEngine(&cfg.PDF)
	renderer := render.NewRenderer(web.Templates)

	// Initialize services
	authService := service.NewAuthService(userRepo, passwordResetRepo, jwtManager, emailService)
	businessService := service.NewBusinessService(businessRepo)
	clientService := service.NewClientService(clientRepo, businessRepo, gstValidator)
	templateService := service.NewTemplateService(templateRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, clientRepo, templateRepo, businessRepo, renderer, pdfEngine)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService, googleOAuthService),
		Business: handler.NewBusinessHandler(businessService),
		Client:   handler.NewClientHandler(clientService),
		Template: handler.NewTemplateHandler(templateService),
		Invoice:  handler.NewInvoiceHandler(invoiceService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

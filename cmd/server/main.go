package main

import (
	"log"
	"time"

	"justice_bot_go/config"
	"justice_bot_go/db"
	"justice_bot_go/handlers"
	"justice_bot_go/middleware"
	"justice_bot_go/models"
	"justice_bot_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.PasswordResetToken{},
		&models.Case{},
		&models.Evidence{},
		&models.LegalPathway{},
		&models.Form{},
		&models.FormPrefillData{},
		&models.FormUsage{},
		&models.Payment{},
		&models.PaymentAudit{},
		&models.Entitlement{},
		&models.UserFeedback{},
		&models.LowIncomeApplication{},
		&models.Tribunal{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed reference data
	if err := services.SeedForms(db.DB); err != nil {
		log.Fatalf("Failed to seed form catalog: %v", err)
	}
	if err := services.SeedTribunals(db.DB); err != nil {
		log.Fatalf("Failed to seed tribunal locations: %v", err)
	}

	// Storage provider for evidence files (R2 or local fallback)
	services.InitializeStorage(cfg)

	// Wire external collaborators into the handler layer
	handlers.Payments = services.NewPaymentService(
		services.NewPayPalClient(cfg.PayPalBaseURL, cfg.PayPalClientID, cfg.PayPalClientSecret))
	handlers.Geo = services.NewNominatimGeocoder(cfg.GeocoderBaseURL)

	primarySearch := services.NewCourtListenerClient(cfg.CaseLawSearchURL)
	var licensedSearch services.CaseLawSearcher
	if cfg.CanLIIAPIKey != "" {
		licensedSearch = services.NewCanLIIClient(cfg.CanLIIBaseURL, cfg.CanLIIAPIKey)
	}
	handlers.CaseLaw = primarySearch
	handlers.CaseLawLicensed = licensedSearch

	if cfg.AnthropicAPIKey != "" {
		handlers.AI = services.NewAIAnalyzer(
			services.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel),
			primarySearch,
			licensedSearch,
		)
	} else {
		log.Println("ANTHROPIC_API_KEY not set; AI analysis endpoint disabled")
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public routes
	e.POST("/api/auth/register", handlers.RegisterHandler)
	e.POST("/api/auth/login", handlers.LoginHandler, middleware.LoginRateLimiter.Middleware())
	e.POST("/api/auth/forgot-password", handlers.ForgotPasswordHandler, middleware.PasswordResetRateLimiter.Middleware())
	e.POST("/api/auth/reset-password", handlers.ResetPasswordHandler)
	e.POST("/api/feedback", handlers.SubmitFeedbackHandler, middleware.FeedbackRateLimiter.Middleware())
	e.GET("/api/tribunals", handlers.ListTribunalsHandler)
	e.GET("/api/tribunals/nearest", handlers.NearestTribunalsHandler)
	e.GET("/api/forms", handlers.ListFormsHandler)

	// Protected routes
	api := e.Group("/api")
	api.Use(middleware.RequireAuth())
	{
		api.POST("/auth/logout", handlers.LogoutHandler)
		api.GET("/me", handlers.MeHandler)

		// Cases
		api.POST("/cases", handlers.CreateCaseHandler)
		api.GET("/cases", handlers.ListCasesHandler)
		api.GET("/cases/:id", handlers.GetCaseHandler)
		api.PUT("/cases/:id/status", handlers.UpdateCaseStatusHandler)
		api.POST("/cases/:id/analyze", handlers.AnalyzeCaseHandler, middleware.AnalysisRateLimiter.Middleware())
		api.POST("/cases/:id/analyze-ai", handlers.AnalyzeCaseAIHandler, middleware.AnalysisRateLimiter.Middleware())
		api.GET("/cases/:id/pathways", handlers.GetCasePathwaysHandler)
		api.GET("/case-law/search", handlers.SearchCaseLawHandler)

		// Evidence
		api.POST("/cases/:id/evidence", handlers.UploadEvidenceHandler)
		api.GET("/cases/:id/evidence", handlers.ListEvidenceHandler)
		api.GET("/cases/:id/evidence/:evidenceId", handlers.DownloadEvidenceHandler)

		// Forms
		api.GET("/cases/:id/forms/:formCode/prefill", handlers.GetCasePrefillHandler)
		api.POST("/cases/:id/forms/:formCode/pdf", handlers.GenerateFormPDFHandler)

		// Payments and entitlements
		api.POST("/payments/orders", handlers.CreateOrderHandler)
		api.POST("/payments/capture", handlers.CaptureOrderHandler)
		api.GET("/payments", handlers.ListPaymentsHandler)
		api.POST("/subscriptions", handlers.CreateSubscriptionHandler)
		api.POST("/subscriptions/verify", handlers.VerifySubscriptionHandler)
		api.GET("/entitlements", handlers.ListEntitlementsHandler)

		// Low-income access
		api.POST("/low-income", handlers.ApplyLowIncomeHandler)
		api.GET("/low-income", handlers.GetLowIncomeStatusHandler)

		// Notifications
		api.GET("/notifications", handlers.ListNotificationsHandler)
		api.PUT("/notifications/:id/read", handlers.MarkNotificationReadHandler)
		api.PUT("/notifications/read-all", handlers.MarkAllNotificationsReadHandler)

		// Admin-only routes
		admin := api.Group("/admin")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/reports/cases", handlers.AdminCasesReportHandler)
			admin.GET("/reports/payments", handlers.AdminPaymentsReportHandler)
			admin.GET("/feedback", handlers.AdminListFeedbackHandler)
			admin.PUT("/feedback/:id/reviewed", handlers.AdminReviewFeedbackHandler)
			admin.GET("/low-income", handlers.AdminListLowIncomeHandler)
			admin.PUT("/low-income/:id/review", handlers.AdminReviewLowIncomeHandler)
		}
	}

	// Start background cleanup jobs (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

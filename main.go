package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/SevaSetu/sevasetu-backend/database"
	"github.com/SevaSetu/sevasetu-backend/internal/config"
	"github.com/SevaSetu/sevasetu-backend/internal/jobs"
	"github.com/SevaSetu/sevasetu-backend/internal/models"
	"github.com/SevaSetu/sevasetu-backend/internal/routes"
	"github.com/SevaSetu/sevasetu-backend/internal/services"
	"github.com/SevaSetu/sevasetu-backend/internal/storage"
)

func main() {
	// Load .env file for local development
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		err := godotenv.Load(".env")
		if err != nil {
			err = godotenv.Load("environments/.env.development")
			if err != nil {
				log.Println("⚠️  No .env file found - checking environment variables")
			}
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	// Initialize storage
	var store storage.Store

	// Check if we should use memory store (for testing)
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		// Connect to database
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect()

		// Run migrations
		log.Println("🔄 Running database migrations...")
		err := database.DB.AutoMigrate(
			&models.Donation{},
			&models.TeamMember{},
			&models.Work{},
			&models.Asset{},
			&models.LedgerEntry{},
			&models.Subscriber{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}
	storage.SetStore(store)

	// Initialize Twilio service (optional - donations work without it)
	twilioService, err := services.NewTwilioService(cfg.AdminPhone)
	if err != nil {
		log.Printf("⚠️  Twilio not configured - donation notifications disabled: %v", err)
		twilioService = nil
	} else {
		log.Println("✅ Twilio service initialized")
	}

	// Initialize core services
	visionClient := services.NewVisionClient(cfg.VisionEndpoint, cfg.VisionAPIKey)
	extractor := services.NewVisionExtractor(visionClient)
	uploader := services.NewUploadClient(cfg.UploadEndpoint, cfg.UploadPreset)

	verifier := services.NewVerificationService(store, services.VerificationConfig{
		ExpectedUPIID:       cfg.ExpectedUPIID,
		ConfidenceThreshold: cfg.ConfidenceThreshold,
	})

	var notifier services.Notifier
	if twilioService != nil {
		notifier = twilioService
	}
	donationService := services.NewDonationService(store, verifier, notifier)

	// Initialize and start notification jobs
	notificationJob := jobs.NewNotificationJob(store, twilioService, cfg.AdminPhone)
	notificationJob.Start()

	log.Println("✅ All services initialized and scheduled jobs started")

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "SevaSetu Backend v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Health check endpoint with database status
	app.Get("/health", func(c *fiber.Ctx) error {
		status := "healthy"
		statusCode := 200

		// Check database if using it
		if os.Getenv("USE_MEMORY_STORE") != "true" && database.DB != nil {
			sqlDB, err := database.DB.DB()
			if err != nil || sqlDB.Ping() != nil {
				status = "unhealthy"
				statusCode = 503
			}
		}

		return c.Status(statusCode).JSON(fiber.Map{
			"status": status,
			"services": fiber.Map{
				"database": status == "healthy",
				"whatsapp": twilioService != nil,
				"vision":   cfg.VisionAPIKey != "",
			},
		})
	})

	// Setup routes
	routes.SetupRoutes(app, store, cfg, donationService, extractor, uploader)

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		log.Println("⏹️  Stopping notification jobs...")
		notificationJob.Stop()
		log.Println("⏹️  Shutting down server...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Println("========================================")
	log.Printf("🚀 SevaSetu Backend starting on port %s", cfg.Port)
	log.Printf("📊 Storage: %s", getStorageType())
	log.Printf("🌍 Environment: %s", getEnvironment())
	log.Printf("🙏 Expected UPI: %s", cfg.ExpectedUPIID)
	log.Printf("📱 WhatsApp: %s", getWhatsAppStatus(twilioService))
	log.Println("========================================")
	log.Println("🔧 Active Services:")
	log.Println("  ✓ Donation intake & verification")
	log.Println("  ✓ Receipt extraction")
	log.Println("  ✓ Admin CMS (team, works, assets, ledger)")
	log.Println("  ✓ Transparency ledger")
	log.Println("  ✓ Scheduled notifications")
	log.Println("========================================")

	log.Fatal(app.Listen(":" + cfg.Port))
}

func getEnvironment() string {
	if os.Getenv("INSTANCE_CONNECTION_NAME") != "" {
		return "Production (Cloud Run)"
	}
	return "Development (Local)"
}

func getStorageType() string {
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}

func getWhatsAppStatus(t *services.TwilioService) string {
	if t == nil {
		return "Not configured"
	}
	return "Configured"
}

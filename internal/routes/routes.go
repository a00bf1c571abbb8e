package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SevaSetu/sevasetu-backend/internal/config"
	"github.com/SevaSetu/sevasetu-backend/internal/handlers"
	"github.com/SevaSetu/sevasetu-backend/internal/middleware"
	"github.com/SevaSetu/sevasetu-backend/internal/services"
	"github.com/SevaSetu/sevasetu-backend/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(
	app *fiber.App,
	store storage.Store,
	cfg *config.Config,
	donationService *services.DonationService,
	extractor services.ReceiptExtractor,
	uploader *services.UploadClient,
) {
	donationHandler := handlers.NewDonationHandler(donationService, extractor, uploader)
	adminHandler := handlers.NewAdminHandler(store, donationService, cfg)
	teamHandler := handlers.NewTeamHandler(store)
	workHandler := handlers.NewWorkHandler(store)
	assetHandler := handlers.NewAssetHandler(store, uploader)
	ledgerHandler := handlers.NewLedgerHandler(store)
	newsletterHandler := handlers.NewNewsletterHandler(store)
	infoHandler := handlers.NewInfoHandler("1.0.0")

	// Root endpoint
	app.Get("/", infoHandler.Root)

	// ========== PUBLIC API ==========
	api := app.Group("/api")

	donations := api.Group("/donations")
	donations.Post("/", donationHandler.Submit)
	donations.Get("/verified", donationHandler.GetVerifiedDonors)
	donations.Get("/stats", donationHandler.GetStats)

	api.Get("/team", teamHandler.List)
	api.Get("/works", workHandler.ListPublished)
	api.Get("/assets", assetHandler.List)
	api.Get("/ledger", ledgerHandler.List)
	api.Post("/newsletter/subscribe", newsletterHandler.Subscribe)

	// ========== ADMIN ROUTES ==========
	app.Post("/admin/login", adminHandler.Login)

	admin := app.Group("/admin", middleware.RequireAdmin(cfg.JWTSecret))

	admin.Get("/donations", adminHandler.GetDonations)
	admin.Get("/donations/pending", adminHandler.GetPendingDonations)
	admin.Put("/donations/:donationID/status", adminHandler.UpdateDonationStatus)

	admin.Post("/team", teamHandler.Create)
	admin.Put("/team/:memberID", teamHandler.Update)
	admin.Delete("/team/:memberID", teamHandler.Delete)

	admin.Get("/works", workHandler.ListAll)
	admin.Post("/works", workHandler.Create)
	admin.Put("/works/:workID", workHandler.Update)
	admin.Delete("/works/:workID", workHandler.Delete)

	admin.Post("/assets", assetHandler.Upload)
	admin.Delete("/assets/:assetID", assetHandler.Delete)

	admin.Post("/ledger", ledgerHandler.Create)

	admin.Get("/subscribers", adminHandler.GetSubscribers)
}

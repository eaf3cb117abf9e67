package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"rewear/internal/auth"
	"rewear/internal/config"
	"rewear/internal/http/handlers"
	"rewear/internal/images"
	applog "rewear/internal/log"
	"rewear/internal/repos"
	"rewear/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	profileRepo := repos.NewProfileRepo(db)
	tokens := auth.NewJWTService(cfg.JWTSecret)
	authSvc := services.NewAuthService(profileRepo, tokens, cfg.AdminEmail, cfg.StarterPoints)

	// Image uploads are optional; the rest of the API works without them.
	var uploader images.Uploader
	if cfg.Cloudinary.CloudName != "" {
		uploader, err = images.NewCloudinary(cfg.Cloudinary)
		if err != nil {
			log.Printf("[warn] cloudinary disabled: %v", err)
			uploader = nil
		}
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": "something went wrong, please try again"})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))
	app.Use(handlers.AttachProfile(authSvc))

	deps := handlers.NewDeps(db, authSvc, uploader)

	api := app.Group("/api/v1")

	// Auth (login throttled)
	api.Post("/auth/signup", deps.AuthHandler.Signup)
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, please try again later"})
		},
	}), deps.AuthHandler.Login)
	api.Get("/me", handlers.RequireUser(), deps.AuthHandler.Me)
	api.Put("/me", handlers.RequireUser(), deps.AuthHandler.UpdateMe)

	// Public catalog
	api.Get("/categories", deps.CatalogHandler.Categories)
	api.Get("/items", limiter.New(limiter.Config{Max: 30, Expiration: time.Minute}), deps.CatalogHandler.Browse)
	api.Get("/items/:id", deps.CatalogHandler.Detail)

	// Listings
	api.Post("/items", handlers.RequireUser(), deps.ItemHandler.Create)
	api.Put("/items/:id", handlers.RequireUser(), deps.ItemHandler.Update)
	api.Delete("/items/:id", handlers.RequireUser(), deps.ItemHandler.Delete)

	// Swaps & redemption
	api.Post("/swaps", handlers.RequireUser(), deps.SwapHandler.Create)
	api.Post("/swaps/:id/respond", handlers.RequireUser(), deps.SwapHandler.Respond)
	api.Post("/items/:id/redeem", handlers.RequireUser(), deps.EconomyHandler.Redeem)

	// Dashboard reads
	api.Get("/my/items", handlers.RequireUser(), deps.ItemHandler.Mine)
	api.Get("/my/swaps", handlers.RequireUser(), deps.SwapHandler.Mine)
	api.Get("/my/transactions", handlers.RequireUser(), deps.EconomyHandler.Mine)

	// Uploads
	api.Post("/uploads", handlers.RequireUser(), deps.UploadHandler.Upload)

	// Admin
	admin := api.Group("/admin", handlers.RequireAdmin())
	admin.Get("/users", deps.AdminHandler.Users)
	admin.Get("/items", deps.AdminHandler.Items)
	admin.Get("/swaps", deps.AdminHandler.Swaps)
	admin.Get("/transactions", deps.AdminHandler.Transactions)
	admin.Post("/items/:id/approve", deps.AdminHandler.ApproveItem)
	admin.Post("/items/:id/reject", deps.AdminHandler.RejectItem)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}

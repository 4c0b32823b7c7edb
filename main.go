package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bluestock/ipo-platform/config"
	"github.com/bluestock/ipo-platform/database"
	"github.com/bluestock/ipo-platform/handlers"
	"github.com/bluestock/ipo-platform/jobs"
	"github.com/bluestock/ipo-platform/middleware"
	"github.com/bluestock/ipo-platform/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.LoadConfig()
	cfg.ApplyLogLevel()

	if cfg.DatabaseURL == "" {
		logrus.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET is required")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db, "database/schema.sql"); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.ValidateSchema(db); err != nil {
		logrus.Fatalf("Schema validation failed: %v", err)
	}

	ipoService := services.NewIPOService(db)
	userService := services.NewUserService(db)
	portfolioService := services.NewPortfolioService(db)

	ipoHandler := handlers.NewIPOHandler(ipoService)
	userHandler := handlers.NewUserHandler(userService, cfg.JWTSecret)
	dashboardHandler := handlers.NewDashboardHandler(ipoService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	demoHandler := handlers.NewDemoHandler()

	app := fiber.New(fiber.Config{
		AppName: "ipo-platform",
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowCredentials: true,
		AllowOrigins:     "http://localhost:3000",
	}))
	app.Use(middleware.RequestID())

	auth := middleware.Authenticate(cfg.JWTSecret)

	api := app.Group("/api")

	api.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("API is working")
	})

	// Session
	api.Post("/register", userHandler.Register)
	api.Post("/login", userHandler.Login)
	api.Post("/logout", userHandler.Logout)

	// Users
	api.Get("/users", auth, userHandler.ListUsers)
	api.Get("/users/:id", userHandler.GetUser)
	api.Put("/users/:id", userHandler.UpdateUser)

	// IPOs. The search route registers ahead of :id so "search" is not
	// captured as an id.
	api.Post("/ipo", ipoHandler.CreateIPO)
	api.Get("/ipos", ipoHandler.ListIPOs)
	api.Get("/ipos/search", auth, ipoHandler.SearchIPOs)
	api.Get("/ipos/:id", ipoHandler.GetIPO)
	api.Get("/ipo-details/:id", ipoHandler.GetIPODetail)
	api.Get("/upcomingipos", ipoHandler.ListUpcomingIPOs)
	api.Put("/ipo/:id", auth, ipoHandler.UpdateIPO)
	api.Delete("/ipo/:id", auth, ipoHandler.DeleteIPO)

	// Legacy admin-form routes, kept unauthenticated for compatibility with
	// the existing admin UI.
	api.Put("/iposupdate/:id", ipoHandler.UpdateIPOTerms)
	api.Delete("/iposdlt/:id", ipoHandler.DeleteIPOLegacy)

	// Dashboard
	api.Get("/ipo-dashboard", dashboardHandler.GetDashboard)

	// Portfolio
	api.Get("/watchlists/:userId", portfolioHandler.GetWatchlist)
	api.Get("/transactions/:userId", portfolioHandler.GetTransactions)
	api.Get("/notifications", portfolioHandler.GetNotifications)

	// Demo datasets
	api.Get("/subscriptions", demoHandler.GetSubscriptions)
	api.Get("/ipo-allotments", demoHandler.GetAllotments)
	api.Get("/dashboard", demoHandler.GetDashboardSummary)

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := database.HealthCheck(db); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unhealthy"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IPOSyncURL != "" {
		syncJob := jobs.NewIPOSyncJob(ipoService, cfg.IPOSyncURL)
		go syncJob.Start(ctx, cfg.GetSyncInterval())
	} else {
		logrus.Info("IPO_SYNC_URL not set, external sync disabled")
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logrus.Info("shutting down")
		cancel()
		app.Shutdown()
	}()

	logrus.WithField("port", cfg.ServerPort).Info("starting server")
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logrus.Fatalf("Server stopped: %v", err)
	}
}

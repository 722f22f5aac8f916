package main

import (
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/patirananta462-byte/papersharehub/internal/config"
	"github.com/patirananta462-byte/papersharehub/internal/handlers"
	"github.com/patirananta462-byte/papersharehub/internal/logger"
	"github.com/patirananta462-byte/papersharehub/internal/metrics"
	"github.com/patirananta462-byte/papersharehub/internal/repositories"
	"github.com/patirananta462-byte/papersharehub/internal/services"
)

// multipartOverhead leaves room for the text fields and boundaries around the file.
const multipartOverhead = 1 << 20

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log := logger.Get()
	log.Info().Str("env", cfg.Server.Env).Msg("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize database")
	}

	paperRepo := repositories.NewPaperRepository(db)
	log.Info().Msg("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to create upload directory")
	}

	stats := services.NewStatsCache(cfg.Cache.Size, cfg.Cache.TTL)
	queryService := services.NewQueryService(paperRepo, stats)
	uploadService := services.NewUploadService(
		paperRepo,
		storageService,
		services.NewPDFInspector(),
		stats,
		cfg.Storage.MaxFileSize,
	)
	log.Info().Msg("✅ Services initialized successfully")

	// Initialize handlers
	flash := handlers.NewFlash(session.New(session.Config{
		Expiration:     time.Hour,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}))
	paperHandler := handlers.NewPaperHandler(queryService, flash, cfg.Site.URL)
	uploadHandler := handlers.NewUploadHandler(uploadService, flash)
	fileHandler := handlers.NewFileHandler(storageService, flash)
	log.Info().Msg("✅ Handlers initialized")

	// MAX_FILE_SIZE=0 keeps uploads unbounded
	bodyLimit := math.MaxInt
	if cfg.Storage.MaxFileSize > 0 && cfg.Storage.MaxFileSize < math.MaxInt-multipartOverhead {
		bodyLimit = int(cfg.Storage.MaxFileSize + multipartOverhead)
	}

	app := fiber.New(fiber.Config{
		AppName:      "PaperShareHub",
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
		BodyLimit:    bodyLimit,
		ErrorHandler: handlers.ErrorHandler(flash),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(metrics.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.SetupRoutes(app, paperHandler, uploadHandler, fileHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info().Msg("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("❌ Server forced to shutdown")
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("🚀 Server starting")

	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to start server")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

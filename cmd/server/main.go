package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/pskpp/festival/brackets"
	"github.com/pskpp/festival/config"
	"github.com/pskpp/festival/db"
	_ "github.com/pskpp/festival/docs"
	"github.com/pskpp/festival/handlers"
	"github.com/pskpp/festival/middleware"
	"github.com/pskpp/festival/repositories"
	api "github.com/pskpp/festival/routes"
	"github.com/pskpp/festival/services"
	"github.com/pskpp/festival/storage"
	"github.com/pskpp/festival/utils"
)

// @title           PSKPP Festival API
// @version         1.0
// @description     Festival site content and tournament brackets.
// @host            localhost:8080
// @BasePath        /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

const shutdownTimeout = 15 * time.Second

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(logger *slog.Logger) error {
	ctx := context.Background()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("store", cfg.StoreDriver))

	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.SeedFile != "" {
		seed, err := repositories.LoadSeed(cfg.SeedFile)
		if err != nil {
			return err
		}
		written, err := repositories.ApplySeed(ctx, store, seed, cfg.SeedOverwrite)
		if err != nil {
			return err
		}
		logger.Info("seed applied", slog.String("file", cfg.SeedFile), slog.Any("written", written))
	}

	uploader, uploadDir, err := openUploader(ctx, cfg)
	if err != nil {
		return err
	}
	if uploadDir != "" {
		logger.Info("storing uploads locally", slog.String("dir", uploadDir))
	} else {
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2.BucketName))
	}

	passwordHash := cfg.AdminPasswordHash
	if passwordHash == "" {
		if passwordHash, err = utils.HashPassword(cfg.AdminPassword); err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
	}

	// Инициализация WebSocket Hub
	wsHub := brackets.NewHub(logger)
	go wsHub.Run()
	defer wsHub.Stop()

	// Репозитории
	eventRepo := repositories.NewEventRepository(store)
	sponsorRepo := repositories.NewSponsorRepository(store)
	galleryRepo := repositories.NewGalleryRepository(store)
	linkRepo := repositories.NewLinkRepository(store)

	// Сервисы
	eventService := services.NewEventService(eventRepo, wsHub, logger)
	contentService := services.NewContentService(store, linkRepo)
	sponsorService := services.NewSponsorService(sponsorRepo, uploader, logger)
	galleryService := services.NewGalleryService(galleryRepo, uploader, logger)
	linkService := services.NewLinkService(linkRepo)
	adminService, err := services.NewAdminService(passwordHash)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:      handlers.NewAuthHandler(adminService, cfg.JWTSecretKey, cfg.TokenTTL),
		Event:     handlers.NewEventHandler(eventService),
		Bracket:   handlers.NewBracketHandler(eventService, contentService, handlers.NewBracketMetrics(registry)),
		Content:   handlers.NewContentHandler(contentService),
		Media:     handlers.NewMediaHandler(sponsorService, galleryService, linkService),
		WebSocket: handlers.NewWebSocketHandler(wsHub, eventService, cfg.CORSAllowedOrigins, logger),
		Dashboard: handlers.NewDashboardHandler(services.NewDashboardService(eventRepo, sponsorRepo, galleryRepo, linkRepo)),
		Profile:   handlers.NewProfileHandler(services.NewProfileService(store, uploader, logger)),
	}, api.Options{
		JWTSecret:      []byte(cfg.JWTSecretKey),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Metrics:        middleware.NewHTTPMetrics(registry),
		Gatherer:       registry,
		UploadDir:      uploadDir,
	})
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:     router,
		ReadTimeout: 30 * time.Second,
		// Без WriteTimeout: websocket-соединения живут долго.
		IdleTimeout: 120 * time.Second,
		ErrorLog:    slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
	}
	return nil
}

func openStore(cfg *config.Config, logger *slog.Logger) (repositories.DocumentStore, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("using in-memory store, content is lost on restart")
		return repositories.NewMemoryDocumentStore(), func() {}, nil
	}

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Migrate(dbConn); err != nil {
		dbConn.Close()
		return nil, nil, err
	}
	logger.Info("database connection established")

	closeFn := func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}
	return repositories.NewPostgresDocumentStore(dbConn), closeFn, nil
}

// openUploader prefers Cloudflare R2. Without it files go to the local upload
// directory, which is then returned for serving.
func openUploader(ctx context.Context, cfg *config.Config) (storage.FileUploader, string, error) {
	if cfg.R2.Enabled() {
		uploader, err := storage.NewCloudflareR2Uploader(ctx, cfg.R2)
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		return uploader, "", nil
	}

	local, err := storage.NewLocalUploader(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to initialize local uploader: %w", err)
	}
	return local, local.Dir(), nil
}

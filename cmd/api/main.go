package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/meeting-notes/docs"
	"github.com/johnquangdev/meeting-notes/internal/adapter/handler"
	"github.com/johnquangdev/meeting-notes/internal/adapter/repository"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/external/driver"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/media"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-notes/internal/usecase/caption"
	"github.com/johnquangdev/meeting-notes/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-notes/internal/usecase/summary"
	pkgai "github.com/johnquangdev/meeting-notes/pkg/ai"
	"github.com/johnquangdev/meeting-notes/pkg/config"
	"github.com/johnquangdev/meeting-notes/pkg/executor"
	pkgmw "github.com/johnquangdev/meeting-notes/pkg/middleware"
	pkgvalidator "github.com/johnquangdev/meeting-notes/pkg/validator"
)

// @title           Meeting Notes API
// @version         1.0
// @description     Turns meeting transcripts, uploads and live captions into structured summaries

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Shared API key. "Authorization: Bearer <key>" is accepted as well.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	// Metrics registry shared by HTTP, summary and database collectors
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := pkgmw.NewHTTPMetrics(reg)

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.Server.AllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-API-Key"},
		ExposeHeaders: []string{echo.HeaderContentDisposition, echo.HeaderXRequestID},
	}))
	e.Use(httpMetrics.Middleware())

	logger.Info("🔧 Initializing dependencies...")

	// Database
	logger.Info("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db, logger)

	if cfg.Database.AutoMigrate {
		logger.Info("🔄 Applying embedded migrations...")
		if _, err := database.Migrate(db, migrate.Up, logger); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
	} else {
		logger.Info("🔄 Skipping migrations; run `notesctl migrate up` to manage the schema")
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := database.RegisterPoolStats(reg, sqlDB, "meeting_notes"); err != nil {
			logger.Warn("Failed to register database pool metrics", zap.Error(err))
		}
	}

	// Caption snapshots live in Redis so any replica can accept a driver push
	var snapshots caption.SnapshotStore
	if cfg.Redis.Enabled {
		logger.Info("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		snapshots = cache.NewRedisSnapshotStore(redisClient, snapshotTTL(cfg.Capture))
	} else {
		logger.Warn("⚠️  Redis disabled, caption snapshots kept in process memory")
		mem := cache.NewMemoryStore(time.Minute)
		defer mem.Close()
		snapshots = cache.NewMemorySnapshotStore(mem, snapshotTTL(cfg.Capture))
	}

	// Object storage
	logger.Info("🗄️  Connecting to object storage...")
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 10*time.Second)
	objectStore, err := storage.NewMinIOClient(storageCtx, &cfg.Storage)
	storageCancel()
	if err != nil {
		logger.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Summary extraction
	logger.Info("🤖 Initializing summary extractor...")
	extractor, err := summary.New(context.Background(), cfg.AI, logger, summary.NewMetrics(reg))
	if err != nil {
		logger.Fatal("Failed to initialize summary extractor", zap.Error(err))
	}

	deps := meeting.Deps{
		Meetings:  repository.NewMeetingRepository(db),
		Captures:  repository.NewCaptureJobRepository(db),
		Extractor: extractor,
		Snapshots: snapshots,
		Storage:   objectStore,
		Audio:     media.NewTranscoder(executor.New(), cfg.Assembly.FFmpegPath, logger),
		Driver:    driver.NewClient(&cfg.Driver, logger),
	}

	if cfg.Assembly.APIKey != "" {
		transcriber, err := pkgai.NewAssemblyAITranscriber(cfg.Assembly.APIKey, cfg.Assembly.Language, logger)
		if err != nil {
			logger.Fatal("Failed to initialize transcriber", zap.Error(err))
		}
		deps.Transcriber = transcriber
	} else {
		logger.Warn("⚠️  ASSEMBLYAI_API_KEY not set, audio and video uploads are rejected")
	}

	meetingService, err := meeting.NewService(deps, cfg.Capture, logger)
	if err != nil {
		logger.Fatal("Failed to initialize meeting service", zap.Error(err))
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if err := meetingService.StartWorkerPool(workerCtx); err != nil {
		logger.Fatal("Failed to start capture workers", zap.Error(err))
	}

	// Routes
	logger.Info("🛣️  Setting up routes...")
	router := handler.NewRouter(
		cfg,
		handler.NewMeetingHandler(meetingService, logger),
		handler.NewCaptureHandler(meetingService, cfg.Capture.WebhookSecret, logger),
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		logger,
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("❌ Server forced to shutdown", zap.Error(err))
	}

	if err := meetingService.StopWorkerPool(); err != nil {
		logger.Warn("Failed to stop capture workers", zap.Error(err))
	}

	logger.Info("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// snapshotTTL keeps a snapshot alive past a full capture window
func snapshotTTL(cfg config.CaptureConfig) time.Duration {
	return 2*cfg.Duration + time.Minute
}

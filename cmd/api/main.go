package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/geocrop/internal/adapter/handler"
	adaptermessaging "github.com/marcos-nsantos/geocrop/internal/adapter/messaging"
	"github.com/marcos-nsantos/geocrop/internal/adapter/repository"
	"github.com/marcos-nsantos/geocrop/internal/adapter/repository/memory"
	"github.com/marcos-nsantos/geocrop/internal/adapter/repository/postgres"
	adapterstorage "github.com/marcos-nsantos/geocrop/internal/adapter/storage"
	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/auth"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/config"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/database"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/messaging"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/observability"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/preview"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/projection"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/server"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/storage"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/vectorstore"
	authUC "github.com/marcos-nsantos/geocrop/internal/usecase/auth"
	"github.com/marcos-nsantos/geocrop/internal/usecase/crop"
	"github.com/marcos-nsantos/geocrop/internal/usecase/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Dataset formats
	registry := vectorstore.NewRegistry(vectorstore.NewShapefileStore(), vectorstore.NewGeoJSONStore())

	var exportRepo repository.ExportRepository
	if cfg.Database.Enabled {
		pool := connectDatabase(ctx, cfg.Database, logger)
		defer pool.Close()

		registry.Register(vectorstore.NewPostGISStore(pool))
		exportRepo = postgres.NewExportRepo(pool)
	}

	// Infrastructure services
	reprojector := projection.NewReprojector()
	jwtSvc := auth.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)
	passwordHasher := auth.NewPasswordHasher(12)

	var notifier adaptermessaging.Notifier = messaging.Noop{}
	if cfg.NATS.URL != "" {
		nc, err := messaging.Connect(cfg.NATS.URL)
		if err != nil {
			logger.Fatal("failed to connect to nats", zap.Error(err))
		}
		defer nc.Drain()
		notifier = messaging.NewNATSNotifier(nc, logger)
	}

	var objectStorage adapterstorage.ObjectStorage
	if cfg.S3.Enabled {
		s3Storage, err := storage.NewS3Storage(cfg.S3)
		if err != nil {
			logger.Fatal("failed to create s3 storage", zap.Error(err))
		}
		objectStorage = s3Storage
	}

	// Use cases
	exporter := crop.NewExporter(registry, reprojector, logger, crop.Options{
		OutputDir: cfg.Crop.OutputDir,
		Overwrite: cfg.Crop.Overwrite,
		Workers:   cfg.Crop.ExportWorkers,
	})
	sessionSvc := session.NewService(session.Deps{
		Sessions: memory.NewSessionRepo(),
		Exports:  exportRepo,
		Resolver: registry,
		Boxes:    reprojector,
		Exporter: exporter,
		Notifier: notifier,
		Storage:  objectStorage,
		Preview:  preview.NewRenderer(),
		Logger:   logger,
	}, session.Options{
		SessionTTL:   cfg.Crop.SessionTTL,
		SignedURLTTL: cfg.S3.SignedURLTTL,
	})
	operator := entity.NewOperator(cfg.Operator.Name, cfg.Operator.PasswordHash)
	authSvc := authUC.NewService(operator, jwtSvc, passwordHasher)

	go sessionSvc.RunSweeper(ctx, cfg.Crop.SweepInterval)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit)
		go runRateLimitCleanup(ctx, rateLimiter, cfg.RateLimit.CleanupInterval)
	}

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:    authHandler,
		SessionHandler: sessionHandler,
		AuthMiddleware: authMiddleware,
		RateLimiter:    rateLimiter,
		Logger:         logger,
		Environment:    cfg.Server.Environment,
	})

	// Server
	srv := server.NewServer(server.ServerConfig{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Handler:         router.Engine(),
		Logger:          logger,
	})

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("geocrop ready",
		zap.Strings("formats", registry.Formats()),
		zap.Bool("postgis", cfg.Database.Enabled),
		zap.Bool("s3", cfg.S3.Enabled),
		zap.Bool("nats", cfg.NATS.URL != ""),
	)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
}

func connectDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) *pgxpool.Pool {
	pool, err := database.NewPostgresPool(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(ctx, pool, cfg.MigrationsPath); err != nil {
		pool.Close()
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	return pool
}

func runRateLimitCleanup(ctx context.Context, rl *middleware.RateLimiter, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Cleanup()
		}
	}
}

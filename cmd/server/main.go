package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flowfit/coach-app/internal/api"
	"flowfit/coach-app/internal/config"
	"flowfit/coach-app/internal/export"
	"flowfit/coach-app/internal/notification"
	"flowfit/coach-app/internal/repository/mongo"
	"flowfit/coach-app/internal/service"
	"flowfit/coach-app/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// @title Coach App Plan API
// @version 1.0
// @description API for authoring, versioning and delivering client workout plans.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	// --- Logging ---
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("FATAL: Could not initialize logger: %v", err)
	}
	defer logger.Sync()
	logger.Info("starting coach app server")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info("database connection established", zap.String("database", cfg.Database.Name))

	// --- Ensure Indexes ---
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsurePlanIndexes(ctx, appDB.Collection("schede_allenamento"))
		mongo.EnsureHistoryIndexes(ctx, appDB.Collection("schede_allenamento_storico"))
		mongo.EnsureClientIndexes(ctx, appDB.Collection("clients"))
		mongo.EnsureCatalogIndexes(ctx, appDB.Collection("esercizi"))
		logger.Info("index creation process completed")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3, logger)
	if err != nil {
		logger.Fatal("failed to initialize S3 storage", zap.Error(err))
	}

	// --- Initialize Notification Queue ---
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()
	notifier := notification.NewAsynqNotifier(asynqClient)

	// --- Initialize Repositories ---
	planRepo := mongo.NewMongoPlanRepository(appDB)
	historyRepo := mongo.NewMongoHistoryRepository(appDB)
	presetRepo := mongo.NewMongoPresetRepository(appDB)
	clientRepo := mongo.NewMongoClientRepository(appDB)
	catalogRepo := mongo.NewMongoCatalogRepository(appDB)

	// --- Initialize Services ---
	sessions := service.NewSessionManager(planRepo)
	deliveryService := service.NewDeliveryService(planRepo, historyRepo, clientRepo, notifier, logger)
	versioningService := service.NewVersioningService(historyRepo, presetRepo)
	catalogService := service.NewCatalogService(catalogRepo)
	exportService := service.NewExportService(export.JSONExporter{}, fileStorage, clientRepo)

	// --- Expiry Sweep ---
	sweeper := service.NewExpirySweeper(clientRepo, notifier, logger)
	if err := sweeper.Start(); err != nil {
		logger.Fatal("failed to schedule expiry sweep", zap.Error(err))
	}
	defer sweeper.Stop()

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	api.SetupRoutes(router, cfg.JWT.Secret, sessions, deliveryService, versioningService, catalogService, exportService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Info("server starting", zap.String("address", cfg.Server.Address))

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("ListenAndServe error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/campus-connect/campus-service/internal/cache"
	"github.com/campus-connect/campus-service/internal/config"
	"github.com/campus-connect/campus-service/internal/events"
	"github.com/campus-connect/campus-service/internal/handlers"
	"github.com/campus-connect/campus-service/internal/repositories/casdoor"
	"github.com/campus-connect/campus-service/internal/repositories/postgres"
	"github.com/campus-connect/campus-service/internal/services"
	"github.com/campus-connect/campus-service/internal/storage"
	"github.com/campus-connect/campus-service/internal/utils"
	"github.com/campus-connect/campus-service/internal/validator"
	"github.com/campus-connect/campus-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Redis: %v", err)
		}
	}

	// Initialize the identity provider SDK
	handlers.InitCasdoor(cfg.Casdoor)

	// Initialize repositories
	repoConfig := postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
		CasdoorConfig: casdoor.CasdoorConfig{
			Endpoint:         cfg.Casdoor.Endpoint,
			ClientID:         cfg.Casdoor.ClientID,
			ClientSecret:     cfg.Casdoor.ClientSecret,
			Certificate:      cfg.Casdoor.Cert,
			OrganizationName: cfg.Casdoor.Organization,
			ApplicationName:  cfg.Casdoor.Application,
		},
	}
	repoManager := postgres.NewRepositoryManager(repoConfig)
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	// Initialize blob storage (if configured)
	var fileStore *storage.FileStore
	if cfg.Storage.Endpoint != "" {
		fileStore, err = storage.NewFileStore(storage.FileStoreConfig{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
			PublicURL: cfg.Storage.PublicURL,
		}, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize file storage: %v", err)
		}
		if err := fileStore.EnsureBucket(context.Background()); err != nil {
			log.Fatalf("Failed to ensure storage bucket: %v", err)
		}
	}

	// Initialize the event publisher (if configured)
	var publisher events.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err = events.NewKafkaEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.DomainEventTopic, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize event publisher: %v", err)
		}
	}

	// Initialize services
	serviceManager := services.NewServiceManager(services.ServiceConfig{
		Repository:  repoManager.GetRepository(),
		DB:          db,
		Logger:      slogLogger,
		Validator:   validator.New(),
		Cache:       cache.NewCacheManager(redisClient),
		InterestSet: cache.NewInterestSet(redisClient),
		Publisher:   publisher,
		FileStore:   fileStore,
	})
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Start the account cleanup worker (if the broker is configured)
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	if len(cfg.Kafka.Brokers) > 0 {
		subscriber, err := events.NewKafkaSubscriber(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize event subscriber: %v", err)
		}
		worker := services.NewCleanupWorker(subscriber, cfg.Kafka.AccountDeletedTopic, serviceManager.Cleanup(), slogLogger)
		go func() {
			if err := worker.Run(workerCtx); err != nil && workerCtx.Err() == nil {
				logger.Error("cleanup worker exited", "error", err)
			}
		}()
	}

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, logger)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Setup middleware
	handlers.SetupMiddleware(router, logger)

	// Setup routes
	handlerManager.SetupRoutes(router)

	// Create HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	stopWorker()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Shutdown services
	if err := serviceManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}

	// Shutdown repositories
	if err := repoManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown repositories: %v", err)
	}

	// Close Redis connection
	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited")
}

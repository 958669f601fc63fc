// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/client"
	"github.com/yourorg/smart-bookmarks/internal/config"
	"github.com/yourorg/smart-bookmarks/internal/handler"
	"github.com/yourorg/smart-bookmarks/internal/kafka"
	"github.com/yourorg/smart-bookmarks/internal/middleware"
	"github.com/yourorg/smart-bookmarks/internal/repository"
	"github.com/yourorg/smart-bookmarks/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger, err := createLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := connectToDB(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, logger)
	listRepo := repository.NewListRepository(db, logger)
	tagRepo := repository.NewTagRepository(db, logger)
	videoRepo := repository.NewVideoRepository(db, logger)
	fieldRepo := repository.NewFieldRepository(db, logger)
	schemaRepo := repository.NewSchemaRepository(db, logger)
	settingsRepo := repository.NewSettingsRepository(db, logger)

	// Initialize the YouTube metadata client
	youtubeClient := client.NewYouTubeClient(
		cfg.YouTube.OEmbedURL,
		cfg.YouTube.Timeout,
		cfg.YouTube.MaxElapsedTime,
		logger,
	)

	// Initialize the event producer when brokers are configured
	var publisher service.EventPublisher
	if cfg.Kafka.Brokers != "" {
		topics := make([]string, 0, len(cfg.Kafka.Topics))
		for _, topic := range cfg.Kafka.Topics {
			topics = append(topics, topic)
		}

		producer := kafka.NewProducer(
			strings.Split(cfg.Kafka.Brokers, ","),
			cfg.Kafka.ClientID,
			topics,
			logger,
		)
		defer producer.Close()
		publisher = producer
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, &cfg.Auth, logger)
	listService := service.NewListService(listRepo, logger)
	tagService := service.NewTagService(tagRepo, logger)
	videoService := service.NewVideoService(
		videoRepo,
		listRepo,
		tagRepo,
		fieldRepo,
		youtubeClient,
		publisher,
		cfg.Kafka.Topics["bookmarkEvents"],
		logger,
	)
	fieldService := service.NewFieldService(
		fieldRepo,
		listRepo,
		publisher,
		cfg.Kafka.Topics["fieldEvents"],
		logger,
	)
	schemaService := service.NewSchemaService(schemaRepo, fieldRepo, listRepo, logger)
	settingsService := service.NewSettingsService(settingsRepo, logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	listHandler := handler.NewListHandler(listService, logger)
	tagHandler := handler.NewTagHandler(tagService, logger)
	videoHandler := handler.NewVideoHandler(videoService, logger)
	fieldHandler := handler.NewFieldHandler(fieldService, logger)
	schemaHandler := handler.NewSchemaHandler(schemaService, logger)
	settingsHandler := handler.NewSettingsHandler(settingsService, logger)

	// Set up HTTP server with Gin
	router := setupRouter(
		authHandler,
		listHandler,
		tagHandler,
		videoHandler,
		fieldHandler,
		schemaHandler,
		settingsHandler,
		cfg.Auth.JWTSecret,
		logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create a deadline for server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

func createLogger(level string) (*zap.Logger, error) {
	// Parse log level
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	// Create logger config
	config := zap.Config{
		Level:            zapLevel,
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

func connectToDB(dbConfig config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.DBName,
		dbConfig.SSLMode,
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(dbConfig.MaxOpenConns)
	db.SetMaxIdleConns(dbConfig.MaxIdleConns)
	db.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	return db, nil
}

func setupRouter(
	authHandler *handler.AuthHandler,
	listHandler *handler.ListHandler,
	tagHandler *handler.TagHandler,
	videoHandler *handler.VideoHandler,
	fieldHandler *handler.FieldHandler,
	schemaHandler *handler.SchemaHandler,
	settingsHandler *handler.SettingsHandler,
	jwtSecret string,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()

	// Use middlewares
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Public auth endpoints
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// Everything below requires a valid access token
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(jwtSecret, logger))

		// List routes
		lists := protected.Group("/lists")
		{
			lists.GET("", listHandler.GetAllLists)
			lists.POST("", listHandler.CreateList)
			lists.GET("/:id", listHandler.GetList)
			lists.PUT("/:id", listHandler.UpdateList)
			lists.DELETE("/:id", listHandler.DeleteList)

			// Videos within a list
			lists.GET("/:id/videos", videoHandler.GetListVideos)
			lists.POST("/:id/videos", videoHandler.CreateVideo)

			// Custom fields within a list
			lists.GET("/:id/custom-fields", fieldHandler.GetListFields)
			lists.POST("/:id/custom-fields", fieldHandler.CreateField)
			lists.POST("/:id/custom-fields/check-duplicate", fieldHandler.CheckDuplicate)

			// Field schemas within a list
			lists.GET("/:id/schemas", schemaHandler.GetListSchemas)
			lists.POST("/:id/schemas", schemaHandler.CreateSchema)
		}

		// Video routes
		videos := protected.Group("/videos")
		{
			videos.GET("/:id", videoHandler.GetVideo)
			videos.PUT("/:id", videoHandler.UpdateVideo)
			videos.DELETE("/:id", videoHandler.DeleteVideo)
			videos.PUT("/:id/tags", videoHandler.ReplaceTags)
			videos.PUT("/:id/fields/:fieldID", videoHandler.SetFieldValue)
			videos.DELETE("/:id/fields/:fieldID", videoHandler.DeleteFieldValue)
		}

		// Tag routes
		tags := protected.Group("/tags")
		{
			tags.GET("", tagHandler.GetAllTags)
			tags.POST("", tagHandler.CreateTag)
			tags.GET("/:id", tagHandler.GetTagByID)
			tags.PUT("/:id", tagHandler.UpdateTag)
			tags.DELETE("/:id", tagHandler.DeleteTag)
		}

		// Custom field routes addressed by field ID
		fields := protected.Group("/custom-fields")
		{
			fields.PUT("/:id", fieldHandler.UpdateField)
			fields.DELETE("/:id", fieldHandler.DeleteField)
		}

		// Field schema routes addressed by schema ID
		schemas := protected.Group("/schemas")
		{
			schemas.PUT("/:id", schemaHandler.UpdateSchema)
			schemas.DELETE("/:id", schemaHandler.DeleteSchema)
		}

		// Settings routes
		settings := protected.Group("/settings")
		{
			settings.GET("", settingsHandler.GetSettings)
			settings.PUT("/:section", settingsHandler.UpdateSection)
		}
	}

	return router
}

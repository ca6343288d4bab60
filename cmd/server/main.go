package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/viewtube/backend/internal/auth"
	"github.com/viewtube/backend/internal/cache"
	"github.com/viewtube/backend/internal/database"
	"github.com/viewtube/backend/internal/handlers"
	"github.com/viewtube/backend/internal/logger"
	"github.com/viewtube/backend/internal/media"
	"github.com/viewtube/backend/internal/middleware"
	"github.com/viewtube/backend/internal/storage"
	"github.com/viewtube/backend/internal/util"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	if err := logger.Initialize(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FILE")); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.Info("=== ViewTube server starting ===")

	// Initialize database
	if err := database.Initialize(); err != nil {
		logger.ErrorWithError("Failed to initialize database", err)
		os.Exit(1)
	}
	defer database.Close()

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.ErrorWithError("Failed to run migrations", err)
		os.Exit(1)
	}

	// Redis backs rate limiting only; the server runs without it
	if err := cache.Initialize(); err != nil {
		logger.WarnWithError("Redis unavailable, rate limiting disabled", err)
	}
	defer cache.Close()

	// Initialize auth service
	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		logger.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	authService := auth.NewService(jwtSecret)

	// Initialize S3 uploader
	s3Uploader, err := storage.NewS3Uploader(
		os.Getenv("AWS_REGION"),
		os.Getenv("AWS_BUCKET"),
		os.Getenv("CDN_BASE_URL"),
	)
	if err != nil {
		logger.ErrorWithError("Failed to initialize S3 uploader", err)
		os.Exit(1)
	}

	// Check S3 access (skip for development)
	if err := s3Uploader.CheckBucketAccess(context.Background()); err != nil {
		logger.WarnWithError("S3 bucket access failed, media uploads will fail", err)
	}

	// Check ffprobe availability
	if err := media.CheckFFprobeAvailable(); err != nil {
		logger.WarnWithError("ffprobe not available, video durations will be zero", err)
	}

	h := handlers.NewHandlers(authService, s3Uploader)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"} // Configure properly for production
	config.AllowMethods = []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.GinLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(gin.CustomRecovery(util.RecoveryHandler))
	r.Use(middleware.RedisRateLimitMiddleware(300, time.Minute))

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Info("ViewTube backend listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.ErrorWithError("Failed to start server", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorWithError("Server forced to shutdown", err)
		os.Exit(1)
	}

	logger.Info("Server exited")
}

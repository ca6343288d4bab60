package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/viewtube/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the database connection
var DB *gorm.DB

// Initialize creates and configures the database connection
func Initialize() error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		// Fallback to individual components
		host := getEnvOrDefault("DB_HOST", "localhost")
		port := getEnvOrDefault("DB_PORT", "5432")
		user := getEnvOrDefault("DB_USER", "postgres")
		password := getEnvOrDefault("DB_PASSWORD", "")
		dbname := getEnvOrDefault("DB_NAME", "viewtube")
		sslmode := getEnvOrDefault("DB_SSLMODE", "disable")

		databaseURL = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	gormLogger := logger.Default
	if os.Getenv("ENVIRONMENT") == "development" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	DB = db
	log.Println("Database connected")

	return nil
}

// Migrate runs auto-migration for all models
func Migrate() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	err := DB.AutoMigrate(
		&models.User{},
		&models.Video{},
		&models.Tweet{},
		&models.Comment{},
		&models.Reply{},
		&models.Like{},
		&models.Playlist{},
		&models.PlaylistVideo{},
		&models.Subscription{},
		&models.WatchHistoryEntry{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// createIndexes creates performance indexes beyond what the model tags declare
func createIndexes() error {
	// Case-insensitive account lookups
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(email))")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_username_lower ON users (LOWER(username))")

	// Feed-style listings
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_videos_owner_created ON videos (owner_id, created_at DESC)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_videos_published_created ON videos (is_published, created_at DESC)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_tweets_owner_created ON tweets (owner_id, created_at DESC)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_comments_target_created ON comments (target_type, target_id, created_at DESC)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_replies_comment_created ON replies (comment_id, created_at DESC)")

	// Reverse lookups on join entities
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_likes_target ON likes (target_type, target_id)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_subscriptions_channel ON subscriptions (channel_id)")

	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// Health checks database connectivity
func Health() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

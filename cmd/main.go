package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"lapor/backend/internal/api/handler"
	"lapor/backend/internal/auth"
	"lapor/backend/internal/complaint"
	"lapor/backend/internal/config"
	"lapor/backend/internal/models"
	"lapor/backend/internal/session"
	"lapor/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func postgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		config.Getenv("DB_HOST", "localhost"),
		config.Getenv("DB_USER", "user"),
		config.Getenv("DB_PASSWORD", "password"),
		config.Getenv("DB_NAME", "lapordb"),
		config.Getenv("DB_PORT", "5432"),
	)
}

func setupDependencies(logger *zap.SugaredLogger) (*gorm.DB, *redis.Client) {
	// TranslateError maps postgres unique violations onto
	// gorm.ErrDuplicatedKey so the auth layer can answer 409.
	db, err := gorm.Open(postgres.Open(postgresDSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Getenv("REDIS_ADDR", "localhost:6379"),
		Password: config.Getenv("REDIS_PASSWORD", ""),
		DB:       0,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		logger.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Complaint{},
		&models.StatusHistory{},
	)
	if err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	logger.Info("Database and Redis connections established, migrations complete")
	return db, rdb
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	logger.Info("Starting Lapor Backend...")

	db, rdb := setupDependencies(logger)

	store := storage.NewStorageService(db, logger)
	sessions := session.NewRedisStore(rdb, config.JWTSecret(), logger)
	authSvc := auth.NewService(store, sessions, logger)
	complaintSvc := complaint.NewService(store, logger)

	r := gin.Default()
	h := handler.NewHandler(authSvc, complaintSvc, sessions, logger)
	h.RegisterRoutes(r)

	server := &http.Server{
		Addr:           ":" + config.Getenv("PORT", "8080"),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	logger.Fatal(server.ListenAndServe())
}

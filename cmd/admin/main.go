package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"lapor/backend/internal/config"
	"lapor/backend/internal/models"
	"lapor/backend/internal/storage"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	storageSvc := storage.NewStorageService(db, logger.Sugar())

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "create-user":
		if len(os.Args) != 6 {
			fmt.Println("Usage: admin create-user <username> <email> <password> <role>")
			os.Exit(1)
		}
		username, email, password, role := os.Args[2], os.Args[3], os.Args[4], os.Args[5]
		if !validRole(role) {
			fmt.Printf("Invalid role %q. Use customer, teknisi, or admin.\n", role)
			os.Exit(1)
		}
		user, err := createUser(storageSvc, username, email, password, role)
		if err != nil {
			log.Fatalf("Error creating user: %v", err)
		}
		fmt.Printf("User %s created with id %s and role %s.\n", username, user.ID, role)
	case "set-role":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin set-role <user_id> <role>")
			os.Exit(1)
		}
		userID, role := os.Args[2], os.Args[3]
		if !validRole(role) {
			fmt.Printf("Invalid role %q. Use customer, teknisi, or admin.\n", role)
			os.Exit(1)
		}
		if _, err := storageSvc.UpdateUser(userID, map[string]interface{}{"role": role}); err != nil {
			log.Fatalf("Error updating role: %v", err)
		}
		fmt.Printf("User %s now has role %s.\n", userID, role)
	case "flush-sessions":
		if err := flushSessions(); err != nil {
			log.Fatalf("Error flushing sessions: %v", err)
		}
		fmt.Println("All sessions revoked.")
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func validRole(role string) bool {
	switch role {
	case models.RoleCustomer, models.RoleTeknisi, models.RoleAdmin:
		return true
	}
	return false
}

func createUser(s storage.Storage, username, email, password, role string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), config.BcryptCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// flushSessions deletes every session record, forcing all users to log in
// again. Useful after rotating the JWT secret.
func flushSessions() error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Getenv("REDIS_ADDR", "localhost:6379"),
		Password: config.Getenv("REDIS_PASSWORD", ""),
		DB:       0,
	})
	ctx := context.Background()

	iter := rdb.Scan(ctx, 0, "session:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

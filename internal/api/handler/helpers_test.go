package handler_test

import (
	"lapor/backend/internal/config"
	"lapor/backend/internal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func zapNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func gormNotFound() error {
	return gorm.ErrRecordNotFound
}

func bcryptUser(id, username, password string) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), config.BcryptCost)
	return &models.User{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
	}
}

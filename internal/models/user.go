package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles a user can hold. Role decides which parts of the complaint
// lifecycle an actor may touch.
const (
	RoleCustomer = "customer"
	RoleTeknisi  = "teknisi"
	RoleAdmin    = "admin"
)

// User represents an account in the system. The password hash is never
// serialized into API responses.
type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	Role         string `gorm:"not null;default:customer" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate is a GORM hook that assigns a new ID when one is not set.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = "user_" + uuid.New().String()
	}
	return
}

// PublicUser is the denormalized identity embedded into complaint detail
// responses. It never carries credentials.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// Public trims a user down to the fields safe to embed elsewhere.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, FullName: u.FullName}
}

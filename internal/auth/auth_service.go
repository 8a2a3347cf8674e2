// Package auth handles account registration, login, logout, and profile
// management. Passwords are stored as bcrypt hashes; successful
// authentication issues a bearer session through the session store.
package auth

import (
	"errors"

	"lapor/backend/internal/config"
	"lapor/backend/internal/models"
	"lapor/backend/internal/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials is returned for both unknown identifiers and
	// wrong passwords, so responses do not reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateUser      = errors.New("username or email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// UserStore is the slice of the storage layer this service needs.
type UserStore interface {
	SaveUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	FindUserByUsernameOrEmail(identifier string) (*models.User, error)
	UpdateUser(id string, updates map[string]interface{}) (*models.User, error)
}

type Service struct {
	Users    UserStore
	Sessions session.Store
	Log      *zap.SugaredLogger
}

func NewService(users UserStore, sessions session.Store, log *zap.SugaredLogger) *Service {
	return &Service{Users: users, Sessions: sessions, Log: log}
}

// RegisterInput carries a new account's fields. Presence of the required
// fields is enforced at the HTTP boundary.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Phone    string
}

// Register creates a customer account and logs it in. New accounts are
// always customers; technician and admin accounts come from the admin CLI.
func (s *Service) Register(input RegisterInput) (*models.User, string, error) {
	for _, identifier := range []string{input.Username, input.Email} {
		_, err := s.Users.FindUserByUsernameOrEmail(identifier)
		if err == nil {
			return nil, "", ErrDuplicateUser
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), config.BcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Phone:        input.Phone,
		Role:         models.RoleCustomer,
	}
	if err := s.Users.SaveUser(user); err != nil {
		// The unique constraint still guards the race between the lookup
		// above and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrDuplicateUser
		}
		return nil, "", err
	}

	token, err := s.Sessions.Issue(user)
	if err != nil {
		return nil, "", err
	}

	s.Log.Infow("user registered", "user_id", user.ID, "username", user.Username)
	return user, token, nil
}

// Login authenticates by username or email and issues a session.
func (s *Service) Login(identifier, password string) (*models.User, string, error) {
	user, err := s.Users.FindUserByUsernameOrEmail(identifier)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.Sessions.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout revokes the session. Revoking an unknown token is not an error.
func (s *Service) Logout(token string) error {
	return s.Sessions.Revoke(token)
}

// GetProfile loads the acting user's own account.
func (s *Service) GetProfile(actor *session.Session) (*models.User, error) {
	user, err := s.Users.GetUserByID(actor.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// UpdateProfile applies the provided profile fields; the HTTP boundary
// guarantees at least one is present.
func (s *Service) UpdateProfile(actor *session.Session, fullName, phone string) (*models.User, error) {
	updates := map[string]interface{}{}
	if fullName != "" {
		updates["full_name"] = fullName
	}
	if phone != "" {
		updates["phone"] = phone
	}

	user, err := s.Users.UpdateUser(actor.UserID, updates)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

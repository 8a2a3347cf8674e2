// Package session implements the bearer-credential store. A session token
// is a signed JWT whose jti keys a Redis record holding the resolved
// identity; expiry is Redis-native TTL and logout deletes the record, so a
// token is only valid while its server-side half exists.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"lapor/backend/internal/config"
	"lapor/backend/internal/models"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrInvalidSession covers missing, malformed, revoked, and expired tokens.
var ErrInvalidSession = errors.New("session invalid or expired")

// Session is the identity a valid token resolves to.
type Session struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}

type Store interface {
	Issue(user *models.User) (string, error)
	Resolve(token string) (*Session, error)
	Revoke(token string) error
}

type RedisStore struct {
	Redis  *redis.Client
	Ctx    context.Context
	Secret []byte
	TTL    time.Duration
	Log    *zap.SugaredLogger
}

// NewRedisStore builds a session store with the configured 7-day TTL.
func NewRedisStore(rdb *redis.Client, secret []byte, log *zap.SugaredLogger) *RedisStore {
	return &RedisStore{
		Redis:  rdb,
		Ctx:    context.Background(),
		Secret: secret,
		TTL:    config.SessionTTL,
		Log:    log,
	}
}

func sessionKey(jti string) string {
	return "session:" + jti
}

// newSessionToken signs a JWT carrying the user identity. The jti claim
// keys the server-side record.
func newSessionToken(user *models.User, secret []byte, ttl time.Duration) (token, jti string, err error) {
	jti = uuid.New().String()
	claims := jwt.MapClaims{
		"jti":      jti,
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"email":    user.Email,
		"exp":      time.Now().Add(ttl).Unix(),
		"iss":      config.SessionIssuer,
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	return token, jti, err
}

// parseSessionToken verifies the signature and expiry and returns the jti.
func parseSessionToken(tokenString string, secret []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithIssuer(config.SessionIssuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", ErrInvalidSession
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSession
	}
	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return "", ErrInvalidSession
	}
	return jti, nil
}

// Issue creates a session for the user and returns the bearer token.
func (s *RedisStore) Issue(user *models.User) (string, error) {
	token, jti, err := newSessionToken(user, s.Secret, s.TTL)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(Session{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		Email:    user.Email,
	})
	if err != nil {
		return "", err
	}

	if err := s.Redis.Set(s.Ctx, sessionKey(jti), payload, s.TTL).Err(); err != nil {
		s.Log.Errorw("failed to store session", "user_id", user.ID, "err", err)
		return "", err
	}
	return token, nil
}

// Resolve validates the token and loads the identity it maps to. A revoked
// or expired session resolves to ErrInvalidSession, not a server error.
func (s *RedisStore) Resolve(tokenString string) (*Session, error) {
	jti, err := parseSessionToken(tokenString, s.Secret)
	if err != nil {
		return nil, err
	}

	payload, err := s.Redis.Get(s.Ctx, sessionKey(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		s.Log.Errorw("failed to load session", "err", err)
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal([]byte(payload), &sess); err != nil {
		return nil, ErrInvalidSession
	}
	return &sess, nil
}

// Revoke deletes the server-side record. Unknown or already-expired tokens
// revoke without error.
func (s *RedisStore) Revoke(tokenString string) error {
	jti, err := parseSessionToken(tokenString, s.Secret)
	if err != nil {
		return nil
	}
	return s.Redis.Del(s.Ctx, sessionKey(jti)).Err()
}

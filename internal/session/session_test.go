package session

import (
	"testing"
	"time"

	"lapor/backend/internal/models"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

var testSecret = []byte("test-secret")

// TestSessionToken_RoundTrip verifies a freshly issued token parses back to
// the same jti.
func TestSessionToken_RoundTrip(t *testing.T) {
	// Arrange
	user := &models.User{
		ID:       "user_1",
		Username: "budi",
		Role:     models.RoleCustomer,
		Email:    "budi@example.com",
	}

	// Act
	token, jti, err := newSessionToken(user, testSecret, time.Hour)

	// Assert
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, jti)

	parsedJTI, err := parseSessionToken(token, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, jti, parsedJTI)
}

// TestSessionToken_Claims verifies the identity claims embedded in the token.
func TestSessionToken_Claims(t *testing.T) {
	user := &models.User{
		ID:       "user_42",
		Username: "teknisi1",
		Role:     models.RoleTeknisi,
		Email:    "t@example.com",
	}

	tokenString, _, err := newSessionToken(user, testSecret, time.Hour)
	assert.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return testSecret, nil
	})
	assert.NoError(t, err)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "user_42", claims["sub"])
	assert.Equal(t, "teknisi1", claims["username"])
	assert.Equal(t, models.RoleTeknisi, claims["role"])
}

// TestParseSessionToken_WrongSecret verifies tokens signed with a different
// key are rejected.
func TestParseSessionToken_WrongSecret(t *testing.T) {
	user := &models.User{ID: "user_1", Username: "budi", Role: models.RoleCustomer}
	token, _, err := newSessionToken(user, []byte("other-secret"), time.Hour)
	assert.NoError(t, err)

	_, err = parseSessionToken(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

// TestParseSessionToken_Expired verifies an expired token is invalid even
// with the right signature.
func TestParseSessionToken_Expired(t *testing.T) {
	user := &models.User{ID: "user_1", Username: "budi", Role: models.RoleCustomer}
	token, _, err := newSessionToken(user, testSecret, -time.Minute)
	assert.NoError(t, err)

	_, err = parseSessionToken(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

// TestParseSessionToken_Garbage verifies arbitrary strings are rejected.
func TestParseSessionToken_Garbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := parseSessionToken(raw, testSecret)
		assert.ErrorIs(t, err, ErrInvalidSession, "raw=%q", raw)
	}
}

package handler

import (
	"errors"
	"net/http"
	"strings"

	"lapor/backend/internal/session"

	"github.com/gin-gonic/gin"
)

const sessionContextKey = "session"

// bearerToken extracts the credential from the Authorization header.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// AuthRequired resolves the bearer token into a session and aborts with 401
// when it is missing, invalid, or expired.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortError(c, http.StatusUnauthorized, "Token tidak ditemukan")
			return
		}

		sess, err := h.Sessions.Resolve(token)
		if errors.Is(err, session.ErrInvalidSession) {
			abortError(c, http.StatusUnauthorized, "Token tidak valid atau sudah expired")
			return
		}
		if err != nil {
			h.Log.Errorw("session resolution failed", "err", err)
			abortError(c, http.StatusInternalServerError, "Terjadi kesalahan server")
			return
		}

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the resolved session holds one of the
// allowed roles. Must run after AuthRequired.
func (h *Handler) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)
		for _, role := range roles {
			if sess.Role == role {
				c.Next()
				return
			}
		}
		abortError(c, http.StatusForbidden, "Anda tidak memiliki akses untuk tindakan ini")
	}
}

func sessionFrom(c *gin.Context) *session.Session {
	return c.MustGet(sessionContextKey).(*session.Session)
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"lapor/backend/internal/auth"
	"lapor/backend/internal/complaint"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Errors    interface{} `json:"errors,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func respondSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func respondError(c *gin.Context, status int, message string, errs interface{}) {
	c.JSON(status, Response{
		Success:   false,
		Message:   message,
		Errors:    errs,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// abortError ends middleware chains with the same envelope shape.
func abortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// respondServiceError maps engine and auth errors onto the HTTP taxonomy.
// Anything unrecognized is a persistence or internal failure.
func respondServiceError(c *gin.Context, err error) {
	var vErr *complaint.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondError(c, http.StatusBadRequest, "Data tidak valid", vErr.Fields)
	case errors.Is(err, complaint.ErrInvalidStatus):
		respondError(c, http.StatusBadRequest, "Status tidak valid", nil)
	case errors.Is(err, complaint.ErrForbidden):
		respondError(c, http.StatusForbidden, "Anda tidak memiliki akses ke komplain ini", nil)
	case errors.Is(err, complaint.ErrNotFound):
		respondError(c, http.StatusNotFound, "Komplain tidak ditemukan", nil)
	case errors.Is(err, complaint.ErrConflict):
		respondError(c, http.StatusConflict, "Komplain sudah ditangani teknisi lain", nil)
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Username atau password salah", nil)
	case errors.Is(err, auth.ErrDuplicateUser):
		respondError(c, http.StatusConflict, "Username atau email sudah terdaftar", nil)
	case errors.Is(err, auth.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "User tidak ditemukan", nil)
	default:
		respondError(c, http.StatusInternalServerError, "Terjadi kesalahan server", nil)
	}
}

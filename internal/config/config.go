// Package config holds the tunable constants of the complaint service and
// small helpers for reading the process environment.
package config

import (
	"os"
	"time"
)

const (
	// Session
	SessionTTL    = 7 * 24 * time.Hour
	SessionIssuer = "lapor-backend"

	// Pagination
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// Passwords
	BcryptCost = 10

	// Ledger reasons written by the engine itself.
	ReasonComplaintCreated = "complaint created"
	ReasonStatusUpdated    = "status updated"
	ReasonTakenByTeknisi   = "taken by technician"
)

// Getenv returns the value of key, or fallback when the variable is unset
// or empty.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// JWTSecret returns the HMAC secret used to sign session tokens.
func JWTSecret() []byte {
	return []byte(Getenv("JWT_SECRET", "lapor-secret-key-change-in-production"))
}

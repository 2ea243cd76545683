package domain

import (
	"strings"
	"time"
)

type Account struct {
	ID           string
	Email        string // trimmed, lower-cased
	PasswordHash string // bcrypt or argon2id encoded, never logged
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail is the canonical form used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package domain

import (
	"strings"
	"time"
)

// User is an identified quiz taker. Users are created on first email
// submission and never updated or deleted.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail canonicalizes an email for use as the user key:
// surrounding whitespace is trimmed and the address is lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

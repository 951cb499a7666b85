package id

import (
	"strings"

	"github.com/google/uuid"
)

// NewID32 returns a time-ordered UUIDv7 as exactly 32 lowercase hex characters.
func NewID32() string {
	u, err := uuid.NewV7()
	if err != nil {
		u = uuid.New()
	}
	return strings.ReplaceAll(u.String(), "-", "")
}

// Valid reports whether s is a 32-char lowercase hex id.
func Valid(s string) bool {
	if len(s) != 32 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

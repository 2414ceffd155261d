package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Proposal tokens are 32 random bytes hex-encoded: 64 lowercase hex chars.
const Length = 64

var formatPattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// New mints a proposal token from a cryptographically secure random source.
func New() (string, error) {
	buf := make([]byte, Length/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ValidFormat reports whether the value looks like a token we issued.
// Callers reject malformed tokens here before any database lookup.
func ValidFormat(value string) bool {
	return formatPattern.MatchString(value)
}

// Expiry computes the token deadline a given number of days from now.
func Expiry(now time.Time, days int) time.Time {
	if days <= 0 {
		days = 7
	}
	return now.Add(time.Duration(days) * 24 * time.Hour)
}

// BookingURL builds the customer-facing scheduling link. The token is the
// final path component and must round-trip exactly.
func BookingURL(baseURL, value string) string {
	return strings.TrimRight(baseURL, "/") + "/meetings/schedule/" + value
}

// Package validation contains input validation rules for user-supplied fields.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	minPasswordLen = 12
	maxPasswordLen = 128
	minUsernameLen = 3
	maxUsernameLen = 30
	maxEmailLen    = 254
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[a-zA-Z]{2,}$`)
)

// ValidatePassword enforces length and character class requirements.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("password must be at most %d characters", maxPasswordLen)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return fmt.Errorf("password must contain an uppercase letter, a lowercase letter, a digit, and a special character")
	}
	return nil
}

// ValidateUsername enforces username format: alphanumerics, underscores, and
// hyphens, not at the edges.
func ValidateUsername(username string) error {
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return fmt.Errorf("username must be %d-%d characters", minUsernameLen, maxUsernameLen)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username may only contain letters, numbers, underscores, and hyphens")
	}
	if strings.HasPrefix(username, "-") || strings.HasPrefix(username, "_") ||
		strings.HasSuffix(username, "-") || strings.HasSuffix(username, "_") {
		return fmt.Errorf("username cannot start or end with a hyphen or underscore")
	}
	return nil
}

// ValidateEmail performs a conservative format and length check.
func ValidateEmail(email string) error {
	if len(email) > maxEmailLen {
		return fmt.Errorf("email must be at most %d characters", maxEmailLen)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	valid := map[string]string{
		"Mixed":          "GoldenHour12!@",
		"Minimum Length": "Abcdefghij1!",
		"Maximum Length": "A" + strings.Repeat("b", 125) + "1!",
		"Unicode Upper":  "ÅngstromPass12!",
	}
	for name, password := range valid {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, ValidatePassword(password))
		})
	}

	invalid := map[string]string{
		"Too Short":         "Small1!",
		"Too Long":          "A" + strings.Repeat("b", 126) + "1!",
		"Missing Uppercase": "goldenhour12!",
		"Missing Lowercase": "GOLDENHOUR12!",
		"Missing Digit":     "GoldenHour!!",
		"Missing Special":   "GoldenHour123",
		"No Letters":        "1234567890!@",
	}
	for name, password := range invalid {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, ValidatePassword(password))
		})
	}
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	for _, username := range []string{"photo_fan123", "abc", strings.Repeat("x", 30)} {
		assert.NoError(t, ValidateUsername(username), "expected %q to be valid", username)
	}

	invalid := map[string]string{
		"Too Short":           "ab",
		"Too Long":            strings.Repeat("x", 31),
		"Illegal Character":   "user@123",
		"Leading Dash":        "-user",
		"Trailing Underscore": "user_",
		"Whitespace":          "user name",
	}
	for name, username := range invalid {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, ValidateUsername(username))
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	// Longest accepted address: 64-char local part + 185-char domain label
	// + ".com" lands exactly on the 254 cap.
	longest := strings.Repeat("a", 64) + "@" + strings.Repeat("b", 185) + ".com"
	assert.NoError(t, ValidateEmail("viewer@example.com"))
	assert.NoError(t, ValidateEmail(longest))

	invalid := map[string]string{
		"Over Length Cap":  "a" + longest,
		"No At Sign":       "not-an-email",
		"Missing Domain":   "user@",
		"Double At":        "user@@example.com",
		"Space In Local":   "user @example.com",
		"Trailing Dot":     "user@example.com.",
		"Single Level TLD": "user@example.c",
	}
	for name, email := range invalid {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, ValidateEmail(email))
		})
	}
}

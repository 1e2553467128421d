package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"photostream/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func signToken(t *testing.T, userID uint, exp time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"exp": time.Now().Add(exp).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestAuthRequired(t *testing.T) {
	app := fiber.New()
	InitMiddleware(&config.Config{JWTSecret: testSecret})

	app.Get("/test", AuthRequired, func(c *fiber.Ctx) error {
		userID := c.Locals("userID")
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"userID": userID})
	})

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedUserID uint
	}{
		{
			name:           "Happy Path",
			authHeader:     "Bearer " + signToken(t, 123, time.Hour),
			expectedStatus: http.StatusOK,
			expectedUserID: 123,
		},
		{
			name:           "Missing Header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid Format",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Malformed Token",
			authHeader:     "Bearer malformed.token.here",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Expired Token",
			authHeader:     "Bearer " + signToken(t, 123, -time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var body map[string]interface{}
				if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
					assert.Equal(t, float64(tt.expectedUserID), body["userID"])
				}
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	app := fiber.New()
	InitMiddleware(&config.Config{JWTSecret: testSecret})

	app.Get("/test", OptionalAuth, func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"userID": c.Locals("userID")})
	})

	tests := []struct {
		name           string
		authHeader     string
		expectUserID   bool
		expectedUserID uint
	}{
		{
			name:           "Valid Token Sets User",
			authHeader:     "Bearer " + signToken(t, 7, time.Hour),
			expectUserID:   true,
			expectedUserID: 7,
		},
		{
			name:       "Missing Header Passes Through",
			authHeader: "",
		},
		{
			name:       "Invalid Token Passes Through",
			authHeader: "Bearer garbage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode, "optional auth never rejects")

			var body map[string]interface{}
			if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
				if tt.expectUserID {
					assert.Equal(t, float64(tt.expectedUserID), body["userID"])
				} else {
					assert.Nil(t, body["userID"])
				}
			}
		})
	}
}

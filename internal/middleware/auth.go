// Package middleware provides authentication, logging, and rate limiting
// middleware for the application.
package middleware

import (
	"context"
	"strconv"
	"strings"

	"photostream/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// AuthRequired is a middleware that enforces authentication for protected routes.
func AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization header required",
		})
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid authorization header format",
		})
	}

	userID, ok := parseSubject(parts[1])
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	setUserID(c, userID)
	return c.Next()
}

// OptionalAuth parses the Authorization header if present and stores the user
// ID in locals, but never rejects the request. Public read endpoints use it so
// responses can be personalized for logged-in viewers.
func OptionalAuth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Next()
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Next()
	}
	if userID, ok := parseSubject(parts[1]); ok {
		setUserID(c, userID)
	}
	return c.Next()
}

// setUserID records the authenticated user on the request. The locals entry
// is what handlers read; the context value is what the structured logger
// picks up, since ContextMiddleware runs before route-level auth.
func setUserID(c *fiber.Ctx, userID uint) {
	c.Locals("userID", userID)
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))
}

// parseSubject validates the JWT and extracts the user ID from the "sub"
// claim (RFC 7519 subject).
func parseSubject(tokenString string) (uint, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}

	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userIDVal), true
}

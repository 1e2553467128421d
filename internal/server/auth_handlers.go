// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"fmt"
	"strconv"
	"time"

	"photostream/internal/models"
	"photostream/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 7 * 24 * time.Hour

type signupRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *signupRequest) validate() error {
	if r.Username == "" || r.Email == "" || r.Password == "" {
		return fmt.Errorf("username, email, and password are required")
	}
	if err := validation.ValidateUsername(r.Username); err != nil {
		return err
	}
	if err := validation.ValidateEmail(r.Email); err != nil {
		return err
	}
	return validation.ValidatePassword(r.Password)
}

// Signup handles POST /api/auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := req.validate(); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("User already exists"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return respondServiceError(c, err)
	}

	return s.respondWithToken(c, fiber.StatusCreated, user)
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	// Same response whether the account is missing or the password is wrong.
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("Invalid credentials"))
	}

	return s.respondWithToken(c, fiber.StatusOK, user)
}

func (s *Server) respondWithToken(c *fiber.Ctx, status int, user *models.User) error {
	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// generateToken mints an HS256 JWT whose subject is the user ID.
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"exp":      now.Add(tokenLifetime).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      fmt.Sprintf("%d-%s", now.Unix(), uuid.NewString()[:8]),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWTSecret))
}

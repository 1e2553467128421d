// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"photostream/internal/models"
	"photostream/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUser(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	url, err := s.profileService.GetImageURL(c.Context(), user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":              user,
		"profile_image_url": url,
	})
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Name     string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   currentUserID(c),
		Username: req.Username,
		Name:     req.Name,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"photostream/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SetProfileImage handles POST /api/profile/image
func (s *Server) SetProfileImage(c *fiber.Ctx) error {
	var req struct {
		StorageKey string `json:"storage_key"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	url, err := s.profileService.SetProfileImage(c.Context(), currentUserID(c), req.StorageKey)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"profile_image_url": url})
}

// GetMyProfileImage handles GET /api/profile/image
func (s *Server) GetMyProfileImage(c *fiber.Ctx) error {
	url, err := s.profileService.GetImageURL(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"profile_image_url": url})
}

// GetProfileImage handles GET /api/users/:id/profile-image
func (s *Server) GetProfileImage(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	url, err := s.profileService.GetImageURL(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"profile_image_url": url})
}

// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"photostream/internal/models"
	"photostream/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/images/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	imageID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.commentService.AddComment(c.Context(), service.AddCommentInput{
		UserID:  currentUserID(c),
		ImageID: imageID,
		Text:    req.Text,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// GetComments handles GET /api/images/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	imageID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	views, err := s.commentService.ListComments(c.Context(), imageID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(views)
}

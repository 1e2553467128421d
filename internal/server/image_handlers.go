// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"photostream/internal/models"
	"photostream/internal/service"

	"github.com/gofiber/fiber/v2"
)

// IssueUpload handles POST /api/uploads
func (s *Server) IssueUpload(c *fiber.Ctx) error {
	target, err := s.imageService.IssueUploadTarget(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(target)
}

// GetImages handles GET /api/images
func (s *Server) GetImages(c *fiber.Ctx) error {
	p := parsePagination(c, defaultPageSize)

	views, err := s.viewService.ListGlobal(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(views)
}

// GetMyImages handles GET /api/images/mine
func (s *Server) GetMyImages(c *fiber.Ctx) error {
	p := parsePagination(c, defaultPageSize)

	views, err := s.viewService.ListByOwner(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(views)
}

// SearchImages handles GET /api/images/search
func (s *Server) SearchImages(c *fiber.Ctx) error {
	views, err := s.viewService.Search(c.Context(), c.Query("q"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(views)
}

// GetImage handles GET /api/images/:id
func (s *Server) GetImage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	view, err := s.viewService.GetImage(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	if view == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Image", id))
	}
	return c.JSON(view)
}

// CreateImage handles POST /api/images
func (s *Server) CreateImage(c *fiber.Ctx) error {
	var req struct {
		StorageKey  string `json:"storage_key"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Contact     string `json:"contact"`
		Location    string `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.imageService.CreateImage(c.Context(), service.CreateImageInput{
		UserID:      currentUserID(c),
		StorageKey:  req.StorageKey,
		Title:       req.Title,
		Description: req.Description,
		Contact:     req.Contact,
		Location:    req.Location,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// PatchImage handles PATCH /api/images/:id
func (s *Server) PatchImage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Contact     *string `json:"contact"`
		Location    *string `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.imageService.PatchImage(c.Context(), currentUserID(c), id, service.PatchImageInput{
		Title:       req.Title,
		Description: req.Description,
		Contact:     req.Contact,
		Location:    req.Location,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}

// DeleteImage handles DELETE /api/images/:id
func (s *Server) DeleteImage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.imageService.DeleteImage(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RepostImage handles POST /api/images/:id/repost
func (s *Server) RepostImage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Note string `json:"note"`
	}
	// An empty body means a repost without a note.
	_ = c.BodyParser(&req)

	view, err := s.imageService.Repost(c.Context(), currentUserID(c), id, req.Note)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// LikeImage handles POST /api/images/:id/like
func (s *Server) LikeImage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	view, err := s.imageService.Like(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}

// UnlikeImage handles DELETE /api/images/:id/like
func (s *Server) UnlikeImage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	view, err := s.imageService.Unlike(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"photostream/internal/cache"
	"photostream/internal/middleware"
	"photostream/internal/models"
	"photostream/internal/repository"
	"photostream/internal/storage"

	"gorm.io/gorm"
)

// ImageService owns the mutation side of image posts: uploads, edits,
// deletion, reposts, and the like toggle.
type ImageService struct {
	imageRepo repository.ImageRepository
	views     *ViewService
	store     storage.ObjectStorage
}

// CreateImageInput carries the fields for a new image post. StorageKey is
// the reference echoed back from a completed presigned upload.
type CreateImageInput struct {
	UserID      uint
	StorageKey  string
	Title       string
	Description string
	Contact     string
	Location    string
}

// PatchImageInput carries the editable fields; nil means "leave unchanged".
type PatchImageInput struct {
	Title       *string
	Description *string
	Contact     *string
	Location    *string
}

// NewImageService creates a new ImageService.
func NewImageService(
	imageRepo repository.ImageRepository,
	views *ViewService,
	store storage.ObjectStorage,
) *ImageService {
	return &ImageService{
		imageRepo: imageRepo,
		views:     views,
		store:     store,
	}
}

// IssueUploadTarget hands the client a presigned destination to PUT the
// image bytes to before creating the post record.
func (s *ImageService) IssueUploadTarget(ctx context.Context) (*storage.UploadTarget, error) {
	target, err := s.store.IssueUploadTarget(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return target, nil
}

// CreateImage records a freshly uploaded image and returns its hydrated view.
func (s *ImageService) CreateImage(ctx context.Context, in CreateImageInput) (*models.ImageView, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.StorageKey) == "" {
		return nil, models.NewValidationError("Storage key is required")
	}

	image := &models.Image{
		UserID:      in.UserID,
		StorageKey:  in.StorageKey,
		Title:       in.Title,
		Description: in.Description,
		Contact:     in.Contact,
		Location:    in.Location,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateImage(ctx, image.ID)
	cache.InvalidateUserImages(ctx, in.UserID)
	return s.views.AssembleOne(ctx, image)
}

// PatchImage applies a partial edit to the caller's own image.
func (s *ImageService) PatchImage(ctx context.Context, callerID, imageID uint, in PatchImageInput) (*models.ImageView, error) {
	image, err := s.getForMutation(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if image.UserID != callerID {
		return nil, models.NewForbiddenError("You can only edit your own images")
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, models.NewValidationError("Title is required")
		}
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Contact != nil {
		updates["contact"] = *in.Contact
	}
	if in.Location != nil {
		updates["location"] = *in.Location
	}
	if len(updates) > 0 {
		if err := s.imageRepo.Patch(ctx, imageID, updates); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("Image", imageID)
			}
			return nil, models.NewInternalError(err)
		}
		cache.InvalidateImage(ctx, imageID)
		cache.InvalidateUserImages(ctx, image.UserID)
	}
	return s.views.GetImage(ctx, imageID)
}

// DeleteImage removes the caller's image, its comments and likes, and the
// stored object. The row goes first: a storage hiccup then leaves at worst
// an orphaned object, never a live post pointing at nothing. Reposts share
// their origin's object, so deleting a repost never touches storage.
func (s *ImageService) DeleteImage(ctx context.Context, callerID, imageID uint) error {
	image, err := s.getForMutation(ctx, imageID)
	if err != nil {
		return err
	}
	if image.UserID != callerID {
		return models.NewForbiddenError("You can only delete your own images")
	}

	if err := s.imageRepo.Delete(ctx, imageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Image", imageID)
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateImage(ctx, imageID)
	cache.InvalidateUserImages(ctx, image.UserID)

	if !image.IsRepost {
		if err := s.store.Delete(ctx, image.StorageKey); err != nil {
			middleware.Logger.WarnContext(ctx, "stored object cleanup failed",
				slog.Uint64("image_id", uint64(imageID)),
				slog.String("storage_key", image.StorageKey),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}

// Repost creates a derived post referencing the target's root origin.
// Reposting a repost is allowed and flattens to the ultimate origin, so
// share counts always accrue to the root content.
func (s *ImageService) Repost(ctx context.Context, callerID, targetID uint, note string) (*models.ImageView, error) {
	if len(note) > maxCommentLen {
		return nil, models.NewValidationError("Repost note too long (max 10000 characters)")
	}

	origin, err := s.getForMutation(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if origin.IsRepost && origin.OriginalImageID != nil {
		origin, err = s.getForMutation(ctx, *origin.OriginalImageID)
		if err != nil {
			return nil, err
		}
	}

	if origin.UserID == callerID {
		return nil, models.NewForbiddenError("Cannot repost your own content")
	}

	existing, err := s.imageRepo.FindRepost(ctx, origin.ID, callerID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if existing != nil {
		return nil, models.NewConflictError("Already reposted")
	}

	repost := &models.Image{
		UserID:          callerID,
		StorageKey:      origin.StorageKey,
		Title:           origin.Title,
		Description:     origin.Description,
		Contact:         origin.Contact,
		Location:        origin.Location,
		IsRepost:        true,
		OriginalImageID: &origin.ID,
		RepostNote:      note,
	}
	if err := s.imageRepo.Create(ctx, repost); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := s.imageRepo.IncrementShareCount(ctx, origin.ID); err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateImage(ctx, origin.ID)
	cache.InvalidateImage(ctx, repost.ID)
	cache.InvalidateUserImages(ctx, callerID)

	return s.views.AssembleOne(ctx, repost)
}

// Like adds the caller to the image's like set and returns the updated view.
// Liking twice is a no-op.
func (s *ImageService) Like(ctx context.Context, callerID, imageID uint) (*models.ImageView, error) {
	image, err := s.getForMutation(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if err := s.imageRepo.Like(ctx, callerID, imageID); err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateImage(ctx, imageID)
	cache.InvalidateUserImages(ctx, image.UserID)
	return s.views.GetImage(ctx, imageID)
}

// Unlike removes the caller from the image's like set. Unliking an image
// the caller never liked is a no-op.
func (s *ImageService) Unlike(ctx context.Context, callerID, imageID uint) (*models.ImageView, error) {
	image, err := s.getForMutation(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if err := s.imageRepo.Unlike(ctx, callerID, imageID); err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateImage(ctx, imageID)
	cache.InvalidateUserImages(ctx, image.UserID)
	return s.views.GetImage(ctx, imageID)
}

// getForMutation fetches an image for a mutation path, where a missing row
// is a NotFound failure rather than an absent value.
func (s *ImageService) getForMutation(ctx context.Context, imageID uint) (*models.Image, error) {
	image, err := s.imageRepo.GetByID(ctx, imageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Image", imageID)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return image, nil
}

package service

import (
	"context"
	"log/slog"
	"strings"

	"photostream/internal/middleware"
	"photostream/internal/models"
	"photostream/internal/repository"
	"photostream/internal/storage"
)

// ProfileService manages the one-per-user profile image association.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	store       storage.ObjectStorage
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, store storage.ObjectStorage) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		store:       store,
	}
}

// SetProfileImage replaces the user's profile image reference. The previous
// stored object is deleted best-effort: a cleanup failure is logged and
// swallowed, never blocking the replacement itself. Returns the resolved URL
// of the new image, nil when the object is not resolvable yet.
func (s *ProfileService) SetProfileImage(ctx context.Context, userID uint, storageKey string) (*string, error) {
	if strings.TrimSpace(storageKey) == "" {
		return nil, models.NewValidationError("Storage key is required")
	}

	existing, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if existing != nil && existing.StorageKey != "" && existing.StorageKey != storageKey {
		if err := s.store.Delete(ctx, existing.StorageKey); err != nil {
			middleware.Logger.WarnContext(ctx, "stale profile image cleanup failed",
				slog.Uint64("user_id", uint64(userID)),
				slog.String("storage_key", existing.StorageKey),
				slog.String("error", err.Error()),
			)
		}
	}

	if _, err := s.profileRepo.Upsert(ctx, userID, storageKey); err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.GetImageURL(ctx, userID)
}

// GetImageURL resolves the user's current profile image URL. Nil when the
// user has no profile image or the underlying object is gone.
func (s *ProfileService) GetImageURL(ctx context.Context, userID uint) (*string, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if profile == nil || profile.StorageKey == "" {
		return nil, nil
	}

	url, err := s.store.ResolveURL(ctx, profile.StorageKey)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if url == "" {
		return nil, nil
	}
	return &url, nil
}

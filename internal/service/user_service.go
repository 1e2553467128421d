package service

import (
	"context"
	"errors"

	"photostream/internal/models"
	"photostream/internal/repository"
	"photostream/internal/validation"

	"gorm.io/gorm"
)

// UserService manages account profile fields (not the profile image, which
// ProfileService owns).
type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID   uint
	Username string
	Name     string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetUser returns the user record for the given ID.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("User", id)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

// UpdateProfile applies partial updates to the caller's account. Empty fields
// are left unchanged.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxNameLen = 100

	if in.Username != "" && in.Username != user.Username {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if existing != nil && existing.ID != in.UserID {
			return nil, models.NewConflictError("Username already taken")
		}
		user.Username = in.Username
	}
	if in.Name != "" {
		if len(in.Name) > maxNameLen {
			return nil, models.NewValidationError("Name too long (max 100 characters)")
		}
		user.Name = in.Name
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

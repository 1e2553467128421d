package service

import (
	"context"
	"errors"
	"strings"

	"photostream/internal/cache"
	"photostream/internal/models"
	"photostream/internal/repository"

	"gorm.io/gorm"
)

const maxCommentLen = 10000

// CommentService appends comments to images and hydrates them with author
// identities for display.
type CommentService struct {
	commentRepo repository.CommentRepository
	imageRepo   repository.ImageRepository
	identity    *IdentityResolver
}

type AddCommentInput struct {
	UserID  uint
	ImageID uint
	Text    string
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	imageRepo repository.ImageRepository,
	identity *IdentityResolver,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		imageRepo:   imageRepo,
		identity:    identity,
	}
}

// AddComment appends a comment and bumps the image's denormalized comment
// counter. Blank text (after trimming) is rejected.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.CommentView, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if len(in.Text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	if _, err := s.imageRepo.GetByID(ctx, in.ImageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Image", in.ImageID)
		}
		return nil, models.NewInternalError(err)
	}

	comment := &models.Comment{
		ImageID: in.ImageID,
		UserID:  in.UserID,
		Text:    in.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := s.imageRepo.IncrementCommentCount(ctx, in.ImageID); err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateImage(ctx, in.ImageID)

	identity, err := s.identity.Resolve(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	return &models.CommentView{
		Comment:                  *comment,
		CommenterName:            identity.DisplayName,
		CommenterProfileImageURL: identity.ProfileImageURL,
	}, nil
}

// ListComments returns an image's comments oldest-first, each hydrated with
// its author's identity via one batched lookup. A missing image yields an
// empty list, not an error. Lists are served cache-aside and invalidated
// when a comment lands.
func (s *CommentService) ListComments(ctx context.Context, imageID uint) ([]*models.CommentView, error) {
	var views []*models.CommentView
	err := cache.Aside(ctx, cache.CommentsKey(imageID), "comments", &views, cache.CommentsTTL, func() error {
		fetched, err := s.listComments(ctx, imageID)
		if err != nil {
			return err
		}
		views = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []*models.CommentView{}
	}
	return views, nil
}

func (s *CommentService) listComments(ctx context.Context, imageID uint) ([]*models.CommentView, error) {
	comments, err := s.commentRepo.ListByImage(ctx, imageID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	userIDs := make([]uint, 0, len(comments))
	for _, c := range comments {
		userIDs = append(userIDs, c.UserID)
	}
	identities, err := s.identity.ResolveBatch(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*models.CommentView, 0, len(comments))
	for _, c := range comments {
		identity := identities[c.UserID]
		views = append(views, &models.CommentView{
			Comment:                  *c,
			CommenterName:            identity.DisplayName,
			CommenterProfileImageURL: identity.ProfileImageURL,
		})
	}
	return views, nil
}

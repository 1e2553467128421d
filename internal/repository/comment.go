package repository

import (
	"context"

	"photostream/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByImage(ctx context.Context, imageID uint) ([]*models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// ListByImage returns comments oldest-first, the order threads read in.
func (r *commentRepository) ListByImage(ctx context.Context, imageID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Where("image_id = ?", imageID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

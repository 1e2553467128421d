// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"photostream/internal/cache"
	"photostream/internal/models"
	"photostream/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SearchFieldLimit caps how many rows a single-field search scan returns
// before merging.
const SearchFieldLimit = 20

// ImageRepository defines the interface for image data operations
type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByID(ctx context.Context, id uint) (*models.Image, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*models.Image, error)
	List(ctx context.Context, limit, offset int) ([]*models.Image, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Image, error)
	ListByOrigin(ctx context.Context, originalID uint) ([]*models.Image, error)
	FindRepost(ctx context.Context, originalID, ownerID uint) (*models.Image, error)
	SearchTitle(ctx context.Context, query string, limit int) ([]*models.Image, error)
	SearchDescription(ctx context.Context, query string, limit int) ([]*models.Image, error)
	Patch(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	IncrementCommentCount(ctx context.Context, id uint) error
	IncrementShareCount(ctx context.Context, id uint) error
	Like(ctx context.Context, userID, imageID uint) error
	Unlike(ctx context.Context, userID, imageID uint) error
	LikeUserIDs(ctx context.Context, imageID uint) ([]uint, error)
	LikesForImages(ctx context.Context, imageIDs []uint) (map[uint][]uint, error)
}

// imageRepository implements ImageRepository
type imageRepository struct {
	db *gorm.DB
}

// NewImageRepository creates a new image repository
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.Image) error {
	defer observability.TrackQuery("create", "images")()
	err := r.db.WithContext(ctx).Create(image).Error
	if err == nil {
		cache.InvalidateFeed(ctx)
	}
	return err
}

func (r *imageRepository) GetByID(ctx context.Context, id uint) (*models.Image, error) {
	var image models.Image
	if err := r.db.WithContext(ctx).First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*models.Image, error) {
	result := make(map[uint]*models.Image, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var images []*models.Image
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&images).Error; err != nil {
		return nil, err
	}
	for _, img := range images {
		result[img.ID] = img
	}
	return result, nil
}

func (r *imageRepository) List(ctx context.Context, limit, offset int) ([]*models.Image, error) {
	defer observability.TrackQuery("list", "images")()
	var images []*models.Image
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&images).Error
	return images, err
}

func (r *imageRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Image, error) {
	var images []*models.Image
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&images).Error
	return images, err
}

func (r *imageRepository) ListByOrigin(ctx context.Context, originalID uint) ([]*models.Image, error) {
	var images []*models.Image
	err := r.db.WithContext(ctx).
		Where("original_image_id = ?", originalID).
		Find(&images).Error
	return images, err
}

// FindRepost returns the owner's existing repost of the original, or nil when
// none exists.
func (r *imageRepository) FindRepost(ctx context.Context, originalID, ownerID uint) (*models.Image, error) {
	var image models.Image
	err := r.db.WithContext(ctx).
		Where("original_image_id = ? AND user_id = ? AND is_repost = ?", originalID, ownerID, true).
		First(&image).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) SearchTitle(ctx context.Context, query string, limit int) ([]*models.Image, error) {
	return r.searchField(ctx, "title", query, limit)
}

func (r *imageRepository) SearchDescription(ctx context.Context, query string, limit int) ([]*models.Image, error) {
	return r.searchField(ctx, "description", query, limit)
}

// searchField scans one column case-insensitively. LOWER(...) LIKE instead of
// ILIKE so the in-memory SQLite test database behaves like PostgreSQL.
func (r *imageRepository) searchField(ctx context.Context, field, query string, limit int) ([]*models.Image, error) {
	defer observability.TrackQuery("search", "images")()
	if limit <= 0 || limit > SearchFieldLimit {
		limit = SearchFieldLimit
	}
	like := "%" + strings.ToLower(query) + "%"
	var images []*models.Image
	err := r.db.WithContext(ctx).
		Where("LOWER("+field+") LIKE ?", like).
		Order("created_at DESC").
		Limit(limit).
		Find(&images).Error
	return images, err
}

func (r *imageRepository) Patch(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Image{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateImage(ctx, id)
	return nil
}

// Delete removes the image row together with its comments and likes in a
// single transaction.
func (r *imageRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "images")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("image_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("image_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Image{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err == nil {
		cache.InvalidateImage(ctx, id)
	}
	return err
}

func (r *imageRepository) IncrementCommentCount(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Image{}).
		Where("id = ?", id).
		UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error
	if err == nil {
		cache.InvalidateImage(ctx, id)
	}
	return err
}

func (r *imageRepository) IncrementShareCount(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Image{}).
		Where("id = ?", id).
		UpdateColumn("share_count", gorm.Expr("share_count + 1")).Error
	if err == nil {
		cache.InvalidateImage(ctx, id)
	}
	return err
}

func (r *imageRepository) Like(ctx context.Context, userID, imageID uint) error {
	// ON CONFLICT DO NOTHING keeps the likes set idempotent under races
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Like{UserID: userID, ImageID: imageID}).Error
	if err == nil {
		cache.InvalidateImage(ctx, imageID)
	}
	return err
}

func (r *imageRepository) Unlike(ctx context.Context, userID, imageID uint) error {
	err := r.db.WithContext(ctx).
		Unscoped().
		Where("user_id = ? AND image_id = ?", userID, imageID).
		Delete(&models.Like{}).Error
	if err == nil {
		cache.InvalidateImage(ctx, imageID)
	}
	return err
}

func (r *imageRepository) LikeUserIDs(ctx context.Context, imageID uint) ([]uint, error) {
	var userIDs []uint
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("image_id = ?", imageID).
		Order("created_at ASC").
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}

func (r *imageRepository) LikesForImages(ctx context.Context, imageIDs []uint) (map[uint][]uint, error) {
	result := make(map[uint][]uint, len(imageIDs))
	if len(imageIDs) == 0 {
		return result, nil
	}
	var likes []models.Like
	err := r.db.WithContext(ctx).
		Where("image_id IN ?", imageIDs).
		Order("created_at ASC").
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	for _, l := range likes {
		result[l.ImageID] = append(result[l.ImageID], l.UserID)
	}
	return result, nil
}

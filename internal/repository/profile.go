package repository

import (
	"context"
	"errors"

	"photostream/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository defines persistence operations for profile image records.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	GetByUserIDs(ctx context.Context, userIDs []uint) (map[uint]*models.Profile, error)
	Upsert(ctx context.Context, userID uint, storageKey string) (*models.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// GetByUserID returns nil when the user has never set a profile image.
func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByUserIDs(ctx context.Context, userIDs []uint) (map[uint]*models.Profile, error) {
	result := make(map[uint]*models.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}
	var profiles []*models.Profile
	if err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for _, p := range profiles {
		result[p.UserID] = p
	}
	return result, nil
}

// Upsert creates the profile row on first set and replaces the storage key
// afterwards. One row per user, enforced by the unique index on user_id.
func (r *profileRepository) Upsert(ctx context.Context, userID uint, storageKey string) (*models.Profile, error) {
	profile := models.Profile{UserID: userID, StorageKey: storageKey}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"storage_key", "updated_at"}),
		}).
		Create(&profile).Error
	if err != nil {
		return nil, err
	}
	return r.GetByUserID(ctx, userID)
}

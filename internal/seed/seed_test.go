package seed

import (
	"context"
	"testing"

	"photostream/internal/models"
	"photostream/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Profile{}, &models.Image{},
		&models.Comment{}, &models.Like{},
	))
	return db
}

func TestSeedUsers(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db, testutil.NewStorageStub())

	users, err := s.SeedUsers(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, users, 5)

	seen := make(map[string]bool)
	for _, u := range users {
		assert.NotEmpty(t, u.Username)
		assert.NotEmpty(t, u.Email)
		assert.False(t, seen[u.Username], "duplicate username %s", u.Username)
		seen[u.Username] = true
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(DefaultPassword)))
	}
}

func TestSeedImagesWritesObjects(t *testing.T) {
	db := setupSeedDB(t)
	store := testutil.NewStorageStub()
	s := NewSeeder(db, store)

	users, err := s.SeedUsers(context.Background(), 3)
	require.NoError(t, err)

	images, err := s.SeedImages(context.Background(), users, 10)
	require.NoError(t, err)
	require.Len(t, images, 10)

	for _, img := range images {
		assert.True(t, store.Has(img.StorageKey), "object missing for %s", img.StorageKey)
		assert.NotEmpty(t, img.Title)
	}
}

func TestSeedEngagementKeepsCountersConsistent(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db, testutil.NewStorageStub())
	ctx := context.Background()

	users, err := s.SeedUsers(ctx, 4)
	require.NoError(t, err)
	images, err := s.SeedImages(ctx, users, 8)
	require.NoError(t, err)
	require.NoError(t, s.SeedEngagement(ctx, users, images))

	for _, img := range images {
		var stored models.Image
		require.NoError(t, db.First(&stored, img.ID).Error)

		var commentRows int64
		require.NoError(t, db.Model(&models.Comment{}).Where("image_id = ?", img.ID).Count(&commentRows).Error)
		assert.EqualValues(t, commentRows, stored.CommentCount)

		var repostRows int64
		require.NoError(t, db.Model(&models.Image{}).Where("original_image_id = ?", img.ID).Count(&repostRows).Error)
		assert.EqualValues(t, repostRows, stored.ShareCount)
	}
}

func TestClearAll(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db, testutil.NewStorageStub())
	ctx := context.Background()

	users, err := s.SeedUsers(ctx, 2)
	require.NoError(t, err)
	_, err = s.SeedImages(ctx, users, 3)
	require.NoError(t, err)
	require.NoError(t, s.SeedProfiles(ctx, users))

	require.NoError(t, s.ClearAll())

	for _, model := range []any{&models.User{}, &models.Image{}, &models.Profile{}} {
		var count int64
		require.NoError(t, db.Unscoped().Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
}

package repository

import (
	"os"
	"testing"

	"photostream/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

// setupTestDB opens a fresh in-memory SQLite database with the full schema.
// Each test gets its own database, so no truncation between tests is needed.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Image{},
		&models.Comment{},
		&models.Like{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestImage(t *testing.T, db *gorm.DB, userID uint, title string) *models.Image {
	t.Helper()
	image := &models.Image{
		UserID:     userID,
		StorageKey: "images/" + title,
		Title:      title,
	}
	require.NoError(t, db.Create(image).Error)
	return image
}

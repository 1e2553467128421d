package database

import "photostream/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Profile{},
		&models.Image{},
		&models.Comment{},
		&models.Like{},
	}
}

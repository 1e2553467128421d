package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"photostream/internal/middleware"

	"gorm.io/gorm"
)

// MigrationLog is one row in the migration ledger table.
type MigrationLog struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:255"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

func (MigrationLog) TableName() string {
	return "migration_logs"
}

// MigrationStore tracks which migrations have run and applies new ones.
type MigrationStore interface {
	GetAppliedMigrations(ctx context.Context) ([]int, error)
	ApplyMigration(ctx context.Context, version int, name, sql string) error
	RemoveMigration(ctx context.Context, version int) error
}

// NewMigrationStore creates a MigrationStore backed by the given database.
func NewMigrationStore(db *gorm.DB) MigrationStore {
	return &migrationStore{db: db}
}

type migrationStore struct {
	db *gorm.DB
}

func (s *migrationStore) GetAppliedMigrations(ctx context.Context) ([]int, error) {
	var versions []int
	err := s.db.WithContext(ctx).
		Model(&MigrationLog{}).
		Order("version ASC").
		Pluck("version", &versions).Error
	if err != nil {
		// A fresh database has no ledger table yet; treat that as empty.
		if errors.Is(err, gorm.ErrRecordNotFound) ||
			(strings.Contains(err.Error(), "relation") && strings.Contains(err.Error(), "does not exist")) {
			return []int{}, nil
		}
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}
	return versions, nil
}

func (s *migrationStore) ApplyMigration(ctx context.Context, version int, name, sql string) error {
	if err := s.db.WithContext(ctx).Exec(sql).Error; err != nil {
		return fmt.Errorf("failed to apply migration %d (%s): %w", version, name, err)
	}
	entry := MigrationLog{Version: version, Name: name}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to record migration %d: %w", version, err)
	}
	middleware.Logger.Info("Migration applied", slog.Int("version", version), slog.String("name", name))
	return nil
}

func (s *migrationStore) RemoveMigration(ctx context.Context, version int) error {
	if err := s.db.WithContext(ctx).Where("version = ?", version).Delete(&MigrationLog{}).Error; err != nil {
		return fmt.Errorf("failed to remove migration record %d: %w", version, err)
	}
	middleware.Logger.Info("Migration rolled back", slog.Int("version", version))
	return nil
}

const ledgerTableSQL = `
CREATE TABLE IF NOT EXISTS migration_logs (
	version BIGINT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_migration_logs_applied_at ON migration_logs (applied_at);`

// RunMigrations ensures the ledger table exists and applies every registered
// migration that has not run yet, in version order.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).Exec(ledgerTableSQL).Error; err != nil {
		return fmt.Errorf("failed to ensure migration logs table: %w", err)
	}

	store := NewMigrationStore(db)
	applied, err := store.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}

	// Refuse to run against a ledger recorded by a different build: an
	// unknown version means the code and database histories diverged.
	known := make(map[int]bool, len(migrations))
	for _, m := range migrations {
		known[m.Version] = true
	}
	var unknown []int
	appliedSet := make(map[int]bool, len(applied))
	for _, v := range applied {
		appliedSet[v] = true
		if !known[v] {
			unknown = append(unknown, v)
		}
	}
	if len(unknown) > 0 {
		sort.Ints(unknown)
		parts := make([]string, 0, len(unknown))
		for _, v := range unknown {
			parts = append(parts, fmt.Sprintf("%06d", v))
		}
		return fmt.Errorf(
			"migration_logs contains unknown versions not present in code: %s (run make db-reset-dev in development to rebuild)",
			strings.Join(parts, ", "))
	}

	for _, m := range migrations {
		if appliedSet[m.Version] {
			middleware.Logger.Debug("Migration already applied", slog.Int("version", m.Version), slog.String("name", m.Name))
			continue
		}
		middleware.Logger.Info("Applying migration", slog.Int("version", m.Version), slog.String("name", m.Name))
		if err := store.ApplyMigration(ctx, m.Version, m.Name, m.UpScript); err != nil {
			return err
		}
	}
	return nil
}

// RollbackMigration reverts one applied migration by running its down script
// and dropping its ledger entry.
func RollbackMigration(ctx context.Context, db *gorm.DB, version int) error {
	m := GetMigrationByVersion(version)
	if m == nil {
		return fmt.Errorf("migration version %d not found", version)
	}

	store := NewMigrationStore(db)
	applied, err := store.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}
	isApplied := false
	for _, v := range applied {
		if v == version {
			isApplied = true
			break
		}
	}
	if !isApplied {
		return fmt.Errorf("migration %d has not been applied", version)
	}

	middleware.Logger.Info("Rolling back migration", slog.Int("version", version), slog.String("name", m.Name))
	if err := db.WithContext(ctx).Exec(m.DownScript).Error; err != nil {
		return fmt.Errorf("failed to run rollback SQL for migration %d (%s): %w", version, m.Name, err)
	}
	return store.RemoveMigration(ctx, version)
}

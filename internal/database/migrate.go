package database

import (
	"embed"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"photostream/internal/middleware"
)

// Migration is one versioned schema change, loaded from a pair of
// NNNNNN_name.up.sql / NNNNNN_name.down.sql files.
type Migration struct {
	Version    int
	Name       string
	UpScript   string
	DownScript string
}

func (m *Migration) String() string {
	return fmt.Sprintf("%06d_%s", m.Version, m.Name)
}

//go:embed migrations/*.sql
var migrationFS embed.FS

var migrations []Migration

func init() {
	if err := RegisterMigrations(migrationFS); err != nil {
		fmt.Printf("failed to register internal migrations: %v\n", err)
	}
}

// RegisterMigrations loads every up/down pair from the embedded filesystem
// into the global registry, sorted by version. A missing down script is an
// error: every migration must be reversible.
func RegisterMigrations(efs embed.FS) error {
	entries, err := efs.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		m, err := loadMigrationPair(efs, entry.Name())
		if err != nil {
			return err
		}
		if m == nil {
			continue
		}
		migrations = append(migrations, *m)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return nil
}

func loadMigrationPair(efs embed.FS, upName string) (*Migration, error) {
	base := strings.TrimSuffix(upName, ".up.sql")
	versionStr, name, ok := strings.Cut(base, "_")
	if !ok {
		middleware.Logger.Warn("Skipping migration with invalid naming", slog.String("file", upName))
		return nil, nil
	}
	version, err := strconv.Atoi(versionStr)
	if err != nil {
		middleware.Logger.Warn("Skipping migration with non-numeric version", slog.String("file", upName))
		return nil, nil
	}

	up, err := efs.ReadFile(filepath.Join("migrations", upName))
	if err != nil {
		return nil, fmt.Errorf("failed to read up migration %s: %w", upName, err)
	}
	downName := base + ".down.sql"
	down, err := efs.ReadFile(filepath.Join("migrations", downName))
	if err != nil {
		return nil, fmt.Errorf("failed to read down migration %s: %w", downName, err)
	}

	return &Migration{
		Version:    version,
		Name:       name,
		UpScript:   string(up),
		DownScript: string(down),
	}, nil
}

// GetMigrations returns the registered migrations in version order.
func GetMigrations() []Migration {
	return migrations
}

// GetMigrationByVersion returns the migration with the given version, or nil.
func GetMigrationByVersion(version int) *Migration {
	for _, m := range migrations {
		if m.Version == version {
			return &m
		}
	}
	return nil
}

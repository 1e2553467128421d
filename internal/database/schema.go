package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"photostream/internal/config"
	"photostream/internal/middleware"

	"gorm.io/gorm"
)

// Schema modes. Hybrid runs the SQL migrations and, outside prod-like
// environments, follows up with GORM AutoMigrate so local model changes show
// up without writing a migration first.
const (
	SchemaModeHybrid = "hybrid"
	SchemaModeSQL    = "sql"
	SchemaModeAuto   = "auto"
)

// schemaPlan is the resolved decision for one ApplySchema call.
type schemaPlan struct {
	mode    string
	runSQL  bool
	runAuto bool
}

// SchemaStatus reports what ApplySchema would do plus the migration ledger,
// for the migrate CLI's status subcommand.
type SchemaStatus struct {
	Mode               string
	Environment        string
	WillRunSQL         bool
	WillRunAutoMigrate bool
	AppliedVersions    []int
	PendingMigrations  []Migration
}

func planSchema(cfg *config.Config) (schemaPlan, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.DBSchemaMode))
	if mode == "" {
		mode = SchemaModeHybrid
	}

	env := strings.ToLower(strings.TrimSpace(cfg.Env))
	prodLike := env == "production" || env == "prod" || env == "staging" || env == "stage"

	plan := schemaPlan{mode: mode}
	switch mode {
	case SchemaModeSQL:
		plan.runSQL = true
	case SchemaModeAuto:
		if prodLike && !cfg.DBAutoMigrateAllowDestructive {
			return plan, fmt.Errorf("refusing DB_SCHEMA_MODE=auto in %q without DB_AUTOMIGRATE_ALLOW_DESTRUCTIVE=true", cfg.Env)
		}
		plan.runAuto = true
	case SchemaModeHybrid:
		plan.runSQL = true
		plan.runAuto = !prodLike
	default:
		return plan, fmt.Errorf("unsupported DB_SCHEMA_MODE %q", mode)
	}
	return plan, nil
}

// ApplySchema brings the database schema up to date according to the
// configured schema mode.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	plan, err := planSchema(cfg)
	if err != nil {
		return err
	}

	if plan.runSQL {
		if err := RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("run sql migrations: %w", err)
		}
	}

	if plan.runAuto {
		if plan.mode == SchemaModeAuto && cfg.DBAutoMigrateAllowDestructive {
			middleware.Logger.Warn("DB_AUTOMIGRATE_ALLOW_DESTRUCTIVE=true set for DB_SCHEMA_MODE=auto; review schema diffs before production deployment")
		}
		middleware.Logger.Info("Running GORM AutoMigrate",
			slog.String("mode", plan.mode), slog.String("env", cfg.Env))
		if err := db.AutoMigrate(PersistentModels()...); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}

	return nil
}

// GetSchemaStatus resolves the schema plan and, when SQL migrations apply,
// lists the applied and pending versions.
func GetSchemaStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) (*SchemaStatus, error) {
	plan, err := planSchema(cfg)
	if err != nil {
		return nil, err
	}

	status := &SchemaStatus{
		Mode:               plan.mode,
		Environment:        cfg.Env,
		WillRunSQL:         plan.runSQL,
		WillRunAutoMigrate: plan.runAuto,
	}
	if !plan.runSQL {
		return status, nil
	}

	applied, err := NewMigrationStore(db).GetAppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}
	status.AppliedVersions = applied

	appliedSet := make(map[int]bool, len(applied))
	for _, version := range applied {
		appliedSet[version] = true
	}
	for _, m := range GetMigrations() {
		if !appliedSet[m.Version] {
			status.PendingMigrations = append(status.PendingMigrations, m)
		}
	}

	return status, nil
}

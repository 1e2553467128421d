// Command migrate manages the database schema: applying SQL migrations,
// running AutoMigrate, reporting status, and rolling back versions.
package main

import (
	"context"
	"flag"
	"log"
	"strconv"
	"strings"

	"photostream/internal/config"
	"photostream/internal/database"
)

const usageText = "usage: go run ./cmd/migrate/main.go <up|auto|status|down> [version]"

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		log.Fatal(usageText)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Open without touching the schema; each subcommand decides what runs.
	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: false})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	ctx := context.Background()
	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "up":
		if err := database.RunMigrations(ctx, db); err != nil {
			log.Fatalf("sql migrations failed: %v", err)
		}
		log.Println("sql migrations applied")

	case "auto":
		cfg.DBSchemaMode = database.SchemaModeAuto
		if err := database.ApplySchema(ctx, db, cfg); err != nil {
			log.Fatalf("auto schema apply failed: %v", err)
		}
		log.Println("automigrations applied")

	case "status":
		status, err := database.GetSchemaStatus(ctx, db, cfg)
		if err != nil {
			log.Fatalf("schema status failed: %v", err)
		}
		log.Printf("mode=%s env=%s run_sql=%t run_auto=%t applied=%d pending=%d",
			status.Mode, status.Environment, status.WillRunSQL, status.WillRunAutoMigrate,
			len(status.AppliedVersions), len(status.PendingMigrations))
		for _, m := range status.PendingMigrations {
			log.Printf("pending: %s", m.String())
		}

	case "down":
		if flag.NArg() < 2 {
			log.Fatal("usage: go run ./cmd/migrate/main.go down <version>")
		}
		version, err := strconv.Atoi(flag.Arg(1))
		if err != nil {
			log.Fatalf("invalid version %q: %v", flag.Arg(1), err)
		}
		if err := database.RollbackMigration(ctx, db, version); err != nil {
			log.Fatalf("rollback failed: %v", err)
		}
		log.Printf("rolled back migration %d", version)

	default:
		log.Fatal(usageText)
	}
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"airnav/groundcheck/internal/config"
	"airnav/groundcheck/internal/db"

	"github.com/golang-migrate/migrate/v4"
)

// Usage:
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down [-steps 1]
//	go run ./cmd/migrate version
func main() {
	configPath := flag.String("config", "", "path to a config file (optional)")
	steps := flag.Int("steps", 1, "number of migrations to roll back with down")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: migrate [-config path] [-steps n] up|down|version")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	if err := db.InitPostgres(cfg.Postgres.DSN()); err != nil {
		log.Fatalf("❌ Failed to connect to Postgres: %v", err)
	}
	defer db.DB.Close()

	m, err := db.NewMigrator(db.DB.DB)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	switch flag.Arg(0) {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-*steps)
	case "version":
		version, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			fmt.Println("no migrations applied")
			return
		}
		if verr != nil {
			log.Fatalf("❌ Failed to read version: %v", verr)
		}
		fmt.Printf("version %d (dirty: %v)\n", version, dirty)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", flag.Arg(0))
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	version, dirty, _ := m.Version()
	fmt.Printf("✅ done, version %d (dirty: %v)\n", version, dirty)
}

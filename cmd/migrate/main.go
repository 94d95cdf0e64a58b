// Command migrate applies the embedded schema migrations.
//
//	migrate up          apply all pending migrations
//	migrate down        roll back every migration
//	migrate steps N     apply N migrations (negative N rolls back)
//	migrate version     print the current version
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/cmlabs-hris/hr-backend-go/internal/config"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-backend-go/migrations"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: migrate up | down | steps N | version")
	}
	flag.Parse()

	if err := run(flag.Args()); err != nil {
		slog.Error("Migration failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return errors.New("missing command")
	}

	dbConfig, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	m, err := database.NewMigrator(migrations.FS, dbConfig.URL())
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			slog.Warn("Failed to close migrator", "error", err)
		}
	}()

	switch args[0] {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "steps":
		if len(args) < 2 {
			return errors.New("steps requires a count")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid step count %q: %w", args[1], err)
		}
		if err := m.Steps(n); err != nil {
			return err
		}
	case "version":
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", args[0])
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	slog.Info("Current migration version", "version", version, "dirty", dirty)
	return nil
}

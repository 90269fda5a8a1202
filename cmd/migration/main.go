package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/riskibarqy/racha-league/db/migrations"
	"github.com/riskibarqy/racha-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/racha-league/internal/platform/logging"
)

const seedTimeout = 2 * time.Minute

func main() {
	logger := logging.New(logging.Options{Level: logging.LevelInfo, Service: "racha-league-migration"})
	defer func() { _ = logger.Sync() }()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		fatal(logger, "DB_URL is required", nil)
	}

	cmd, err := parseCommand(os.Args[1:])
	if err != nil {
		printUsage()
		fatal(logger, "invalid command", err)
	}

	if cmd.name == commandSeed {
		runSeed(logger, dbURL)
		return
	}

	m, source, err := newMigrator(dbURL, os.Getenv("MIGRATIONS_DIR"))
	if err != nil {
		fatal(logger, "create migrator", err)
	}
	defer closeMigrator(logger, m)

	switch cmd.name {
	case commandUp:
		handleMigrationErr(logger, m.Up())
		logger.Info("migrations applied", "source", source)
	case commandDown:
		handleMigrationErr(logger, m.Steps(-cmd.steps))
		logger.Info("migrations rolled back", "steps", cmd.steps)
	case commandVersion:
		version, dirty, versionErr := m.Version()
		if errors.Is(versionErr, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			fmt.Println("dirty: false")
			return
		}
		if versionErr != nil {
			fatal(logger, "read version", versionErr)
		}
		fmt.Printf("version: %d\n", version)
		fmt.Printf("dirty: %t\n", dirty)
	case commandForce:
		if err := m.Force(cmd.version); err != nil {
			fatal(logger, "force version", err)
		}
		logger.Info("forced version", "version", cmd.version)
	case commandGoto:
		handleMigrationErr(logger, m.Migrate(cmd.target))
		logger.Info("migrated to version", "version", cmd.target)
	}
}

// newMigrator reads the embedded schema unless dir points at a checkout.
func newMigrator(dbURL, dir string) (*migrate.Migrate, string, error) {
	dir = strings.TrimSpace(dir)
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, "", fmt.Errorf("resolve migrations dir: %w", err)
		}
		sourceURL := "file://" + filepath.ToSlash(abs)
		m, err := migrate.New(sourceURL, dbURL)
		return m, sourceURL, err
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, "", fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	return m, "embedded", err
}

func runSeed(logger *logging.Logger, dbURL string) {
	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", dbURL)
	if err != nil {
		fatal(logger, "connect postgres", err)
	}
	defer db.Close()

	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		fatal(logger, "seed demo rachas", err)
	}
	logger.Info("demo rachas seeded")
}

func handleMigrationErr(logger *logging.Logger, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return
	}
	fatal(logger, "migration failed", err)
}

func closeMigrator(logger *logging.Logger, m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("close migration source", "error", srcErr)
	}
	if dbErr != nil {
		logger.Warn("close migration db", "error", dbErr)
	}
}

func fatal(logger *logging.Logger, msg string, err error) {
	if err != nil {
		logger.Error(msg, "error", err)
	} else {
		logger.Error(msg)
	}
	_ = logger.Sync()
	os.Exit(1)
}

func printUsage() {
	bin := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down|version|force|goto|seed> [args]\n", bin)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s up\n", bin)
	fmt.Fprintf(os.Stderr, "  %s down 1\n", bin)
	fmt.Fprintf(os.Stderr, "  %s version\n", bin)
	fmt.Fprintf(os.Stderr, "  %s force 1760000100\n", bin)
	fmt.Fprintf(os.Stderr, "  %s goto 1760000000\n", bin)
	fmt.Fprintf(os.Stderr, "  %s seed\n", bin)
}

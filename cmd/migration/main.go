package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/riskibarqy/matchedge/internal/app"
	"github.com/riskibarqy/matchedge/internal/config"
	"github.com/riskibarqy/matchedge/internal/platform/logging"
)

// defaultMigrationDirs are tried in order when -dir is not given.
var defaultMigrationDirs = []string{"./db/migrations", "/app/db/migrations"}

var logger = logging.NewJSON(logging.LevelInfo)

// migrateLogger routes golang-migrate's verbose output into the JSON log.
type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...any) {
	logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (migrateLogger) Verbose() bool {
	return false
}

func main() {
	os.Exit(run())
}

func run() int {
	defer func() { _ = logger.Sync() }()

	envFile := flag.String("env-file", ".env", "dotenv file to preload")
	dir := flag.String("dir", "", "archive mirror migrations directory")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		return 2
	}

	if err := config.LoadDotEnv(*envFile); err != nil {
		logger.Error("load env file", "error", err)
		return 1
	}
	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "error", err)
		return 1
	}
	dbURL, err := app.DatabaseURL(cfg)
	if err != nil {
		logger.Error("resolve archive database", "error", err)
		return 1
	}

	migrationsDir, err := resolveMigrationsDir(*dir)
	if err != nil {
		logger.Error("resolve migrations dir", "error", err)
		return 1
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsDir)
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		logger.Error("create migrator", "error", err)
		return 1
	}
	m.Log = migrateLogger{}
	defer closeMigrator(m)

	if err := execute(m, flag.Args()); err != nil {
		logger.Error("migration command failed", "command", flag.Arg(0), "error", err)
		return 1
	}
	return 0
}

// migrator is the subset of *migrate.Migrate the subcommands drive.
type migrator interface {
	Up() error
	Steps(n int) error
	Version() (uint, bool, error)
	Force(version int) error
}

func execute(m migrator, args []string) error {
	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "up":
		if err := ignoreNoChange(m.Up()); err != nil {
			return err
		}
		logger.Info("archive mirror schema is current")
	case "down":
		steps, err := parseSteps(args[1:])
		if err != nil {
			return err
		}
		if err := ignoreNoChange(m.Steps(-steps)); err != nil {
			return err
		}
		logger.Info("migrations rolled back", "steps", steps)
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("version: %d dirty: %t\n", version, dirty)
	case "force":
		if len(args) < 2 {
			return errors.New("force requires a version argument")
		}
		version, err := parseVersion(args[1])
		if err != nil {
			return err
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		logger.Info("forced version", "version", version)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, errors.New("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, errors.New("version must be >= 0")
	}
	return value, nil
}

func closeMigrator(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("close migration source", "error", srcErr)
	}
	if dbErr != nil {
		logger.Warn("close migration db", "error", dbErr)
	}
}

// resolveMigrationsDir returns the explicit dir when given, otherwise the
// first default that exists.
func resolveMigrationsDir(explicit string) (string, error) {
	candidates := defaultMigrationDirs
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		candidates = []string{explicit}
	}

	for _, candidate := range candidates {
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (checked %s)", strings.Join(candidates, ", "))
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s [-env-file path] [-dir path] <up|down [n]|version|force <v>>\n", name)
	flag.PrintDefaults()
}

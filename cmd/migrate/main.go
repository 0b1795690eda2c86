package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	appcatalog "github.com/erp/saleproject/internal/application/catalog"
	"github.com/erp/saleproject/internal/infrastructure/config"
	"github.com/erp/saleproject/internal/infrastructure/logger"
	"github.com/erp/saleproject/internal/infrastructure/migration"
	"github.com/erp/saleproject/internal/infrastructure/persistence"
	"github.com/erp/saleproject/internal/infrastructure/seed"
	"github.com/erp/saleproject/migrations"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", "", "Directory of *.sql migrations (default: the migrations built into the binary)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// Commands that only touch files
	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("Migration name required. Usage: migrate create <name> [description]")
		}
		dir := migrationsPath
		if dir == "" {
			dir = defaultMigrationsDir
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		mf, err := migration.CreateMigration(dir, args[1], description, time.Now())
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created",
			zap.String("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return

	case "list":
		var fsys fs.FS = migrations.FS
		if migrationsPath != "" {
			fsys = os.DirFS(migrationsPath)
		}
		stems, err := migration.ListMigrations(fsys)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		log.Info("Available migrations", zap.Int("count", len(stems)))
		for _, s := range stems {
			fmt.Println("  -", s)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	if command == "seed" {
		if err := seedUoMs(cfg, log); err != nil {
			log.Fatal("Seeding units of measure failed", zap.Error(err))
		}
		return
	}

	if cfg.Database.Driver == config.DriverSQLite {
		if command != "up" {
			log.Fatal("Only 'up' is supported on sqlite", zap.String("command", command))
		}
		if err := autoMigrate(cfg); err != nil {
			log.Fatal("Schema creation failed", zap.Error(err))
		}
		log.Info("SQLite schema created from the models")
		return
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}

	m, err := migration.New(db, migrationsPath, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	if err := run(m, command, args[1:], log); err != nil {
		log.Fatal("Migration command failed", zap.String("command", command), zap.Error(err))
	}
}

func run(m *migration.Migrator, command string, args []string, log *zap.Logger) error {
	switch command {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "step":
		if len(args) < 1 {
			return fmt.Errorf("step count required: migrate step <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		return m.Steps(n)
	case "goto":
		if len(args) < 1 {
			return fmt.Errorf("version required: migrate goto <version>")
		}
		version, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return m.GoTo(uint(version))
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	case "force":
		if len(args) < 1 {
			return fmt.Errorf("version required: migrate force <version>")
		}
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return m.Force(version)
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func autoMigrate(cfg *config.Config) error {
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.AutoMigrate()
}

// seedUoMs loads the unit catalog and upserts it
func seedUoMs(cfg *config.Config, log *zap.Logger) error {
	uoms, err := seed.LoadUoMCatalog(cfg.Sync.UoMSeedFile)
	if err != nil {
		return err
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := logger.WithContext(context.Background(), log)
	svc := appcatalog.NewUoMService(persistence.NewGormUoMRepository(db.DB))
	n, err := svc.Seed(ctx, uoms)
	if err != nil {
		return err
	}
	log.Info("Units of measure seeded", zap.Int("count", n), zap.String("file", cfg.Sync.UoMSeedFile))
	return nil
}

func printUsage() {
	fmt.Println(`Sale/project database tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations (sqlite: create the schema from the models)
  down                  Roll back all migrations
  step <n>              Apply n migrations (positive=up, negative=down)
  goto <version>        Migrate to a specific version
  version               Show current migration version
  force <version>       Force set migration version after a failed run
  create <name> [desc]  Create a new migration file pair
  list                  List available migrations
  seed                  Load the units of measure catalog (sync.uom_seed_file, or the built-in one)

Flags:
  -path string          Directory of migrations (default: built into the binary)
  -log-level string     Log level: debug, info, warn, error (default: info)

Configuration comes from config.toml and SP_* environment variables,
for example SP_DATABASE_HOST and SP_DATABASE_PASSWORD.`)
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"farm-dashboard/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Driver identifies a storage backend
type Driver string

const (
	DriverMemory   Driver = "memory"   // process memory, optional JSON snapshots
	DriverSQLite   Driver = "sqlite"   // embedded sqlite file
	DriverPostgres Driver = "postgres" // PostgreSQL server
)

// Config selects and configures the storage backend
type Config struct {
	Driver      Driver `mapstructure:"driver"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
	SnapshotDir string `mapstructure:"snapshot_dir"`
	Seed        bool   `mapstructure:"seed"`
}

// Repositories bundles one repository per entity type
type Repositories struct {
	Fields      Repository[model.Field]
	Crops       Repository[model.Crop]
	Tasks       Repository[model.Task]
	Resources   Repository[model.Resource]
	Equipment   Repository[model.Equipment]
	Maintenance Repository[model.MaintenanceRecord]
	Expenses    Repository[model.Expense]
	Budgets     Repository[model.Budget]
	Income      Repository[model.Income]

	close func() error
	ping  func(ctx context.Context) error
}

// Ping checks that the backing database is reachable. Memory stores are
// always reachable.
func (r *Repositories) Ping(ctx context.Context) error {
	if r.ping == nil {
		return ctx.Err()
	}
	return r.ping(ctx)
}

// Close releases the underlying database connection, if any
func (r *Repositories) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// Open builds the repositories for cfg.Driver and seeds them with the
// bundled fixtures when cfg.Seed is set and the store is empty.
func Open(ctx context.Context, cfg Config, logger *slog.Logger, opts ...Option) (*Repositories, error) {
	var (
		repos *Repositories
		err   error
	)

	switch cfg.Driver {
	case DriverMemory, "":
		if cfg.SnapshotDir != "" {
			opts = append(opts, WithSnapshotDir(cfg.SnapshotDir))
		}
		repos, err = NewMemoryRepositories(opts...)
	case DriverSQLite, DriverPostgres:
		var db *gorm.DB
		db, err = OpenDatabase(cfg)
		if err != nil {
			return nil, err
		}
		repos = NewGormRepositories(db, opts...)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("storage opened", "driver", cfg.Driver, "snapshot_dir", cfg.SnapshotDir)

	if cfg.Seed {
		seeder := NewSeeder(repos, logger)
		if err := seeder.SeedIfEmpty(ctx); err != nil {
			_ = repos.Close()
			return nil, err
		}
	}
	return repos, nil
}

// OpenDatabase connects to sqlite or postgres and migrates all tables
func OpenDatabase(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = "farm-dashboard.db"
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		dialector = sqlite.Open(path)
	case DriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, errors.New("postgres driver requires a DSN")
		}
		dialector = postgres.Open(cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("driver %q is not a SQL driver", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every entity table
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// NewMemoryRepositories creates in-memory repositories for every entity
func NewMemoryRepositories(opts ...Option) (*Repositories, error) {
	fields, err := NewMemory[model.Field](opts...)
	if err != nil {
		return nil, err
	}
	crops, err := NewMemory[model.Crop](opts...)
	if err != nil {
		return nil, err
	}
	tasks, err := NewMemory[model.Task](opts...)
	if err != nil {
		return nil, err
	}
	resources, err := NewMemory[model.Resource](opts...)
	if err != nil {
		return nil, err
	}
	equipment, err := NewMemory[model.Equipment](opts...)
	if err != nil {
		return nil, err
	}
	maintenance, err := NewMemory[model.MaintenanceRecord](opts...)
	if err != nil {
		return nil, err
	}
	expenses, err := NewMemory[model.Expense](opts...)
	if err != nil {
		return nil, err
	}
	budgets, err := NewMemory[model.Budget](opts...)
	if err != nil {
		return nil, err
	}
	income, err := NewMemory[model.Income](opts...)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Fields:      fields,
		Crops:       crops,
		Tasks:       tasks,
		Resources:   resources,
		Equipment:   equipment,
		Maintenance: maintenance,
		Expenses:    expenses,
		Budgets:     budgets,
		Income:      income,
	}, nil
}

// NewGormRepositories creates gorm repositories sharing db
func NewGormRepositories(db *gorm.DB, opts ...Option) *Repositories {
	return &Repositories{
		Fields:      NewGorm[model.Field](db, opts...),
		Crops:       NewGorm[model.Crop](db, opts...),
		Tasks:       NewGorm[model.Task](db, opts...),
		Resources:   NewGorm[model.Resource](db, opts...),
		Equipment:   NewGorm[model.Equipment](db, opts...),
		Maintenance: NewGorm[model.MaintenanceRecord](db, opts...),
		Expenses:    NewGorm[model.Expense](db, opts...),
		Budgets:     NewGorm[model.Budget](db, opts...),
		Income:      NewGorm[model.Income](db, opts...),
		close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
}

// Package database opens the relational store used by the store API and
// keeps its schema current.
package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"storeapi/internal/config"
	"storeapi/internal/models"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

//go:embed sql/*.sql
var postgresObjects embed.FS

// Options controls how Open connects.
type Options struct {
	Driver        string
	DSN           string
	MaxRetries    int
	MaxRetryDelay time.Duration
}

// OptionsFromConfig extracts the connection options from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Driver:        cfg.DatabaseDriver,
		DSN:           cfg.DatabaseDSN,
		MaxRetries:    cfg.DatabaseMaxRetries,
		MaxRetryDelay: cfg.DatabaseMaxRetryDelay,
	}
}

// Open connects to the configured database. Transient connection failures are
// retried with exponential backoff, at most opts.MaxRetries times with the
// delay capped at opts.MaxRetryDelay.
func Open(ctx context.Context, opts Options, log *logrus.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{
		Logger: gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}

	var db *gorm.DB
	err = Retry(ctx, opts, log, func() error {
		var openErr error
		db, openErr = gorm.Open(dialector, gormCfg)
		return openErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if opts.Driver == config.DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sqlite pool: %w", err)
		}
		// sqlite serialises writers; one connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Retry runs connect until it succeeds, backing off exponentially between
// attempts. It gives up after opts.MaxRetries retries or when ctx is done.
func Retry(ctx context.Context, opts Options, log *logrus.Logger, connect func() error) error {
	b := backoff.NewExponentialBackOff()
	if opts.MaxRetryDelay > 0 {
		b.MaxInterval = opts.MaxRetryDelay
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(opts.MaxRetries)), ctx)

	return backoff.RetryNotify(connect, policy, func(err error, wait time.Duration) {
		log.WithError(err).WithField("retry_in", wait.String()).Warn("Database connection failed, retrying")
	})
}

func dialectorFor(opts Options) (gorm.Dialector, error) {
	switch opts.Driver {
	case config.DriverPostgres:
		return postgres.Open(opts.DSN), nil
	case config.DriverSQLite:
		return sqlite.Open(withForeignKeys(opts.DSN)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

// withForeignKeys turns on sqlite foreign key enforcement so cascades work.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// Migrate creates or updates the companies, stores and products tables. On
// postgres it also (re)creates the SQL functions used by the products app.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Company{}, &models.Store{}, &models.Product{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	names, err := fs.Glob(postgresObjects, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("failed to list sql objects: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		body, err := postgresObjects.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		if err := db.Exec(string(body)).Error; err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}
	}
	return nil
}

// MemoryDSN returns a sqlite DSN for a private in-memory database called name.
func MemoryDSN(name string) string {
	return "file:" + name + "?mode=memory&cache=shared"
}

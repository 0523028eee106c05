// Package datastore opens the relational catalog and manages its schema.
package datastore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tphakala/video-enrichment-api/internal/conf"
	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
	"github.com/tphakala/video-enrichment-api/internal/errors"
	"github.com/tphakala/video-enrichment-api/internal/logger"
	"github.com/tphakala/video-enrichment-api/internal/observability/metrics"
)

// Manager defines the interface for database lifecycle operations.
type Manager interface {
	// Initialize creates or migrates the schema.
	Initialize(ctx context.Context) error
	// DB returns the underlying GORM database.
	DB() *gorm.DB
	// Path returns the database location (file path for SQLite, host:port/database for MySQL).
	Path() string
	// Ping verifies the connection is alive.
	Ping(ctx context.Context) error
	// Close closes the database connection.
	Close() error
	// IsMySQL returns true if this is a MySQL manager.
	IsMySQL() bool
}

// Options carries the collaborators shared by both backends
type Options struct {
	// Logger receives SQL traces and lifecycle messages.
	Logger logger.Logger
	// Metrics records statement counts and latency, optional.
	Metrics *metrics.DatastoreMetrics
	// Actor is written to created_by and updated_by.
	Actor string
	// SlowQuery is the threshold for slow query warnings, 0 disables them.
	SlowQuery time.Duration
}

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&entities.Taxonomy{},
		&entities.Video{},
		&entities.Entity{},
		&entities.EntityMediaGallery{},
		&entities.SegmentDetection{},
		&entities.Detection{},
	}
}

// Open selects the backend named in settings
func Open(settings *conf.Settings, opts Options) (Manager, error) {
	switch settings.Database.Type {
	case conf.DatabaseMySQL:
		return NewMySQLManager(&settings.Database.MySQL, opts)
	case conf.DatabaseSQLite, "":
		return NewSQLiteManager(settings.Database.SQLite.Path, opts)
	default:
		return nil, errors.Newf("unsupported database type %q", settings.Database.Type).
			Component("datastore").
			Category(errors.CategoryConfiguration).
			Build()
	}
}

func newGormConfig(opts Options) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.NewGormLoggerAdapter(opts.Logger, opts.SlowQuery),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// registerPlugins installs the audit and metrics callbacks
func registerPlugins(db *gorm.DB, opts Options) error {
	if err := db.Use(NewAuditPlugin(opts.Actor)); err != nil {
		return fmt.Errorf("failed to register audit plugin: %w", err)
	}
	if opts.Metrics != nil {
		if err := db.Use(NewMetricsPlugin(opts.Metrics)); err != nil {
			return fmt.Errorf("failed to register metrics plugin: %w", err)
		}
	}
	return nil
}

func migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "auto_migrate").
			Build()
	}
	return nil
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying database: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying database: %w", err)
	}
	return sqlDB.Close()
}

// SQLiteManager handles a SQLite database file.
type SQLiteManager struct {
	db     *gorm.DB
	dbPath string
	log    logger.Logger
}

// NewSQLiteManager opens the database at path. ":memory:" opens a private
// in-memory database limited to a single connection.
func NewSQLiteManager(path string, opts Options) (*SQLiteManager, error) {
	inMemory := path == ":memory:"

	if !inMemory && path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.New(err).
					Component("datastore").
					Category(errors.CategoryFileIO).
					Context("path", dir).
					Build()
			}
		}
	}

	// Build DSN with recommended SQLite pragmas
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON", path)
	if inMemory {
		dsn = ":memory:?_foreign_keys=ON"
	}

	db, err := gorm.Open(sqlite.Open(dsn), newGormConfig(opts))
	if err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "open_sqlite").
			Build()
	}

	if inMemory {
		// every pooled connection would get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying database: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := registerPlugins(db, opts); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewSlogLogger(nil, logger.LogLevelInfo, nil)
	}

	return &SQLiteManager{db: db, dbPath: path, log: log}, nil
}

// Initialize creates the schema.
func (m *SQLiteManager) Initialize(ctx context.Context) error {
	if err := migrate(ctx, m.db); err != nil {
		return err
	}
	m.log.Info("database schema ready", logger.String("backend", conf.DatabaseSQLite), logger.String("path", m.dbPath))
	return nil
}

// DB returns the underlying GORM database.
func (m *SQLiteManager) DB() *gorm.DB {
	return m.db
}

// Path returns the database file path.
func (m *SQLiteManager) Path() string {
	return m.dbPath
}

// Ping verifies the connection is alive.
func (m *SQLiteManager) Ping(ctx context.Context) error {
	return ping(ctx, m.db)
}

// Close closes the database connection.
func (m *SQLiteManager) Close() error {
	return closeDB(m.db)
}

// IsMySQL returns false for SQLite manager.
func (m *SQLiteManager) IsMySQL() bool {
	return false
}

package datastore

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/tphakala/video-enrichment-api/internal/conf"
	"github.com/tphakala/video-enrichment-api/internal/errors"
	"github.com/tphakala/video-enrichment-api/internal/logger"
)

// Connection pool limits for MySQL
const (
	mysqlMaxIdleConns    = 10
	mysqlMaxOpenConns    = 100
	mysqlConnMaxLifetime = time.Hour
)

// MySQLManager handles a MySQL database.
type MySQLManager struct {
	db       *gorm.DB
	location string // host:port/database for display
	log      logger.Logger
}

// MySQLDSN builds the go-sql-driver DSN for cfg
func MySQLDSN(cfg *conf.MySQLSettings) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)
}

// NewMySQLManager opens a MySQL connection pool.
func NewMySQLManager(cfg *conf.MySQLSettings, opts Options) (*MySQLManager, error) {
	db, err := gorm.Open(mysql.Open(MySQLDSN(cfg)), newGormConfig(opts))
	if err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "open_mysql").
			Context("host", cfg.Host).
			Context("database", cfg.Database).
			Build()
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying database: %w", err)
	}
	sqlDB.SetMaxIdleConns(mysqlMaxIdleConns)
	sqlDB.SetMaxOpenConns(mysqlMaxOpenConns)
	sqlDB.SetConnMaxLifetime(mysqlConnMaxLifetime)

	if err := registerPlugins(db, opts); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewSlogLogger(nil, logger.LogLevelInfo, nil)
	}

	return &MySQLManager{
		db:       db,
		location: fmt.Sprintf("%s:%s/%s", cfg.Host, cfg.Port, cfg.Database),
		log:      log,
	}, nil
}

// Initialize creates the schema.
func (m *MySQLManager) Initialize(ctx context.Context) error {
	if err := migrate(ctx, m.db); err != nil {
		return err
	}
	m.log.Info("database schema ready", logger.String("backend", conf.DatabaseMySQL), logger.String("location", m.location))
	return nil
}

// DB returns the underlying GORM database.
func (m *MySQLManager) DB() *gorm.DB {
	return m.db
}

// Path returns the database location (host:port/database).
func (m *MySQLManager) Path() string {
	return m.location
}

// Ping verifies the connection is alive.
func (m *MySQLManager) Ping(ctx context.Context) error {
	return ping(ctx, m.db)
}

// Close closes the database connection.
func (m *MySQLManager) Close() error {
	return closeDB(m.db)
}

// IsMySQL returns true for MySQL manager.
func (m *MySQLManager) IsMySQL() bool {
	return true
}

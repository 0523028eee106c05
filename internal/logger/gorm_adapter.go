package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

// GormLoggerAdapter routes GORM statements into the datastore module logger.
// Statements are logged at TRACE, so they only show up when the datastore
// module level is "trace".
type GormLoggerAdapter struct {
	logger        Logger
	slowThreshold time.Duration
}

// NewGormLoggerAdapter creates the adapter. Statements slower than
// slowThreshold are logged at WARN; 0 disables the check.
func NewGormLoggerAdapter(logger Logger, slowThreshold time.Duration) *GormLoggerAdapter {
	if logger == nil {
		logger = NewSlogLogger(nil, LogLevelInfo, nil)
	}
	return &GormLoggerAdapter{
		logger:        logger,
		slowThreshold: slowThreshold,
	}
}

// LogMode is a no-op, levels come from the central logger config
func (a *GormLoggerAdapter) LogMode(_ gorm_logger.LogLevel) gorm_logger.Interface {
	return a
}

// Info logs at DEBUG, GORM is chatty at info
func (a *GormLoggerAdapter) Info(_ context.Context, msg string, data ...any) {
	a.logger.Debug(fmt.Sprintf(msg, data...))
}

func (a *GormLoggerAdapter) Warn(_ context.Context, msg string, data ...any) {
	a.logger.Warn(fmt.Sprintf(msg, data...))
}

func (a *GormLoggerAdapter) Error(_ context.Context, msg string, data ...any) {
	a.logger.Error(fmt.Sprintf(msg, data...))
}

// expectedQueryError reports errors the repositories turn into not-found or
// conflict responses. They are client mistakes, not datastore faults.
func expectedQueryError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) ||
		errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated)
}

// Trace logs one executed statement
func (a *GormLoggerAdapter) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	fields := []Field{
		String("sql", RedactSensitiveData(sql)),
		Int64("rows_affected", rows),
		Int64("duration_ms", elapsed.Milliseconds()),
	}
	log := a.logger.WithContext(ctx)

	switch {
	case err != nil && expectedQueryError(err):
		log.Debug("query rejected", append(fields, Error(err))...)
	case err != nil:
		log.Warn("query error", append(fields, Error(err))...)
	case a.slowThreshold > 0 && elapsed > a.slowThreshold:
		log.Warn("slow query", append(fields, Duration("threshold", a.slowThreshold))...)
	default:
		log.Trace("sql query", fields...)
	}
}

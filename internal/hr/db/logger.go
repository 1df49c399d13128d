package db

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// zapLogger routes gorm's logging through zap. Lookups that miss and
// rejected duplicate inserts are expected outcomes, so they are traced at
// debug level rather than reported as errors.
type zapLogger struct {
	logger *zap.Logger
	level  gormlogger.LogLevel
}

func newGormLogger(logger *zap.Logger) gormlogger.Interface {
	return &zapLogger{
		logger: logger.Named("gorm").WithOptions(zap.AddCallerSkip(3)),
		level:  gormlogger.Warn,
	}
}

func (l *zapLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *zapLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.logger.Sugar().Infof(msg, args...)
	}
}

func (l *zapLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.logger.Sugar().Warnf(msg, args...)
	}
}

func (l *zapLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.logger.Sugar().Errorf(msg, args...)
	}
}

func (l *zapLogger) Trace(_ context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	fields := func() []zap.Field {
		query, rows := fc()
		return []zap.Field{
			zap.String("sql", query),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed),
		}
	}

	switch {
	case err != nil && !expected(err) && l.level >= gormlogger.Error:
		l.logger.Error("Query failed", append(fields(), zap.Error(err))...)
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		l.logger.Warn("Slow query", fields()...)
	case l.logger.Core().Enabled(zap.DebugLevel):
		if err != nil {
			l.logger.Debug("Query", append(fields(), zap.Error(err))...)
			return
		}
		l.logger.Debug("Query", fields()...)
	}
}

func expected(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, gorm.ErrDuplicatedKey)
}

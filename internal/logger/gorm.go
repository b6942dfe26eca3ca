package logger

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// GormLogger routes gorm's logging through zerolog
type GormLogger struct {
	log      zerolog.Logger
	LogLevel gormlogger.LogLevel
}

func NewGormLogger(log zerolog.Logger) *GormLogger {
	return &GormLogger{
		log:      log.With().Str("component", "gorm").Logger(),
		LogLevel: gormlogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.LogLevel = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Info {
		l.log.Info().Interface("data", data).Msg(msg)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Warn {
		l.log.Warn().Interface("data", data).Msg(msg)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Error {
		l.log.Error().Interface("data", data).Msg(msg)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound) && l.LogLevel >= gormlogger.Error:
		l.log.Error().Err(err).Str("sql", sql).Dur("latency", elapsed).Int64("rows", rows).Msg("query failed")
	case elapsed > slowQueryThreshold && l.LogLevel >= gormlogger.Warn:
		l.log.Warn().Str("sql", sql).Dur("latency", elapsed).Int64("rows", rows).Msg("slow query")
	case l.LogLevel >= gormlogger.Info:
		l.log.Debug().Str("sql", sql).Dur("latency", elapsed).Int64("rows", rows).Msg("query")
	}
}

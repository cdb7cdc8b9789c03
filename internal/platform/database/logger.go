package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// gormLogger routes gorm's statement log to slog. Statements are logged on debug,
// failing statements on warn.
type gormLogger struct {
	logger   *slog.Logger
	database string
}

func newGormLogger(logger *slog.Logger, database string) gormlogger.Interface {
	return &gormLogger{logger: logger, database: database}
}

func (l *gormLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return l
}

func (l *gormLogger) Info(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, fmt.Sprintf(msg, args...), slog.String("database", l.database))
}

func (l *gormLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, fmt.Sprintf(msg, args...), slog.String("database", l.database))
}

func (l *gormLogger) Error(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, fmt.Sprintf(msg, args...), slog.String("database", l.database))
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		sql, rows := fc()
		l.logger.WarnContext(ctx, "statement failed",
			slog.String("database", l.database),
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", time.Since(begin)),
			slog.String("error", err.Error()),
		)
		return
	}
	if !l.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	sql, rows := fc()
	l.logger.DebugContext(ctx, "statement executed",
		slog.String("database", l.database),
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", time.Since(begin)),
	)
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GiorgiUbiria/skill_swap/internal/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQuery = 200 * time.Millisecond

// gormLog sends gorm output to logger.Log. Missing rows are expected on
// lookups and are not logged.
type gormLog struct {
	level gormlogger.LogLevel
}

func newGormLog() gormlogger.Interface {
	return &gormLog{level: gormlogger.Warn}
}

func (l *gormLog) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &gormLog{level: level}
}

func (l *gormLog) Info(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		logger.Log.Info(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLog) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		logger.Log.Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLog) Error(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		logger.Log.Error(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLog) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		sql, rows := fc()
		logger.Log.Error("query failed",
			zap.Error(err),
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed))
	case elapsed > slowQuery && l.level >= gormlogger.Warn:
		sql, rows := fc()
		logger.Log.Warn("slow query",
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed))
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		logger.Log.Debug("query",
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed))
	}
}

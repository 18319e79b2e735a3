package logging

import (
	"strings"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

// gormWriter routes gorm's printf-style output into zerolog.
type gormWriter struct{}

func (gormWriter) Printf(format string, args ...interface{}) {
	l := Logger()
	l.Info().Str("component", "gorm").Msgf(strings.TrimSpace(format), args...)
}

// NewGormLogger builds a gorm logger at the given level (silent, error, warn, info).
func NewGormLogger(level string) gormlogger.Interface {
	return gormlogger.New(gormWriter{}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  parseGormLevel(level),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func parseGormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

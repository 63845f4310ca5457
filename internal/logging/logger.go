// Package logging provides the structured logger used across linkcheck.
//
// The TUI owns the terminal, so interactive runs log to a file. One-shot
// commands may log to stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logging interface the rest of the module depends on.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	// With returns a child logger carrying fields on every entry.
	With(fields ...Field) Logger
	// Sync flushes buffered entries.
	Sync() error
}

// Field is a key-value pair attached to a log entry.
type Field = zap.Field

// Config selects the level and destinations.
type Config struct {
	// Level is debug, info, warn or error. Unknown values mean info.
	Level string
	// OutputPaths are file paths or the special names "stdout" and "stderr".
	OutputPaths []string
}

const DefaultLevel = "info"

// SetDefaults fills blank fields.
func (c *Config) SetDefaults() {
	if strings.TrimSpace(c.Level) == "" {
		c.Level = DefaultLevel
	}
	if len(c.OutputPaths) == 0 {
		c.OutputPaths = []string{"stderr"}
	}
}

type zapLogger struct {
	logger *zap.Logger
}

// New builds a JSON zap logger. Parent directories of file outputs are
// created.
func New(cfg Config) (Logger, error) {
	cfg.SetDefaults()

	for _, path := range cfg.OutputPaths {
		if path == "stdout" || path == "stderr" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	zapCfg.Level = zap.NewAtomicLevelAt(ParseLevel(cfg.Level))
	zapCfg.OutputPaths = cfg.OutputPaths
	zapCfg.ErrorOutputPaths = cfg.OutputPaths
	zapCfg.Sampling = nil

	z, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &zapLogger{logger: z}, nil
}

// ParseLevel maps a level name to a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *zapLogger) Debug(msg string, fields ...Field) { l.logger.Debug(msg, fields...) }

func (l *zapLogger) Info(msg string, fields ...Field) { l.logger.Info(msg, fields...) }

func (l *zapLogger) Warn(msg string, fields ...Field) { l.logger.Warn(msg, fields...) }

func (l *zapLogger) Error(msg string, fields ...Field) { l.logger.Error(msg, fields...) }

func (l *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{logger: l.logger.With(fields...)}
}

func (l *zapLogger) Sync() error {
	return l.logger.Sync()
}

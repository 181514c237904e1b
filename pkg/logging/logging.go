package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output encodings accepted by New
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Logger is a sugared key/value logger shared by every component
type Logger struct {
	s *zap.SugaredLogger
}

// New builds a logger at level. Console output is colored and human
// readable, anything else is JSON.
func New(level, format string) *Logger {
	cfg := zap.NewProductionConfig()
	if strings.EqualFold(format, FormatConsole) {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	z, err := cfg.Build()
	if err != nil {
		z = zap.NewExample()
	}
	return NewWithZap(z)
}

// NewWithZap wraps an existing zap logger, e.g. one from zaptest
func NewWithZap(z *zap.Logger) *Logger {
	return &Logger{s: z.Sugar()}
}

// NewNop discards everything
func NewNop() *Logger {
	return NewWithZap(zap.NewNop())
}

func (l *Logger) With(keyvals ...any) *Logger {
	return &Logger{s: l.s.With(keyvals...)}
}

// Named adds a component name to the logger
func (l *Logger) Named(name string) *Logger {
	return &Logger{s: l.s.Named(name)}
}

// Enabled reports whether entries at level would be written
func (l *Logger) Enabled(level string) bool {
	return l.s.Desugar().Core().Enabled(parseLevel(level))
}

func (l *Logger) Debug(msg string, keyvals ...any) { l.s.Debugw(msg, keyvals...) }

func (l *Logger) Info(msg string, keyvals ...any) { l.s.Infow(msg, keyvals...) }

func (l *Logger) Warn(msg string, keyvals ...any) { l.s.Warnw(msg, keyvals...) }

func (l *Logger) Error(msg string, keyvals ...any) { l.s.Errorw(msg, keyvals...) }

func (l *Logger) Sync() error {
	return l.s.Sync()
}

func parseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		if strings.EqualFold(level, "warning") {
			return zapcore.WarnLevel
		}
		return zapcore.InfoLevel
	}
	return lvl
}

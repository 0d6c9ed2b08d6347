package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Interface -.
type Interface interface {
	Debug(message interface{}, args ...interface{})
	Info(message string, args ...interface{})
	Warn(message string, args ...interface{})
	Error(message interface{}, args ...interface{})
	Fatal(message interface{}, args ...interface{})
}

// Logger -.
type Logger struct {
	logger *zap.SugaredLogger
}

var _ Interface = (*Logger)(nil)

// New -.
func New(level string) *Logger {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder

	z, err := cfg.Build(zap.AddCallerSkip(2))
	if err != nil {
		z = zap.NewNop()
	}

	return &Logger{logger: z.Sugar()}
}

// NewNop returns a logger that discards everything, used in tests.
func NewNop() *Logger {
	return &Logger{logger: zap.NewNop().Sugar()}
}

// Debug -.
func (l *Logger) Debug(message interface{}, args ...interface{}) {
	l.msg(zapcore.DebugLevel, message, args...)
}

// Info -.
func (l *Logger) Info(message string, args ...interface{}) {
	l.msg(zapcore.InfoLevel, message, args...)
}

// Warn -.
func (l *Logger) Warn(message string, args ...interface{}) {
	l.msg(zapcore.WarnLevel, message, args...)
}

// Error -.
func (l *Logger) Error(message interface{}, args ...interface{}) {
	l.msg(zapcore.ErrorLevel, message, args...)
}

// Fatal -.
func (l *Logger) Fatal(message interface{}, args ...interface{}) {
	l.msg(zapcore.FatalLevel, message, args...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.logger.Sync()
}

// msg accepts either a format string or an error. For errors, the first
// argument (when a string) is the "Component - Method - call" location.
func (l *Logger) msg(level zapcore.Level, message interface{}, args ...interface{}) {
	switch m := message.(type) {
	case error:
		if len(args) > 0 {
			if where, ok := args[0].(string); ok {
				l.logger.Logw(level, fmt.Sprintf(where, args[1:]...), "error", m.Error())

				return
			}
		}
		l.logger.Logw(level, m.Error())
	case string:
		l.logger.Logf(level, m, args...)
	default:
		l.logger.Logf(level, fmt.Sprintf("%s message %v has unknown type %T", level, message, m), args...)
	}
}

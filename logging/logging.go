// Package logging provides the structured logger used across this module, a thin
// wrapper over zap in the style of go.viam.com/rdk/logging but trimmed to what a
// single-process numeric core needs: no net appenders, no remote log config.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logging interface used throughout this module.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	With(args ...interface{}) Logger
	Sublogger(subname string) Logger
}

type impl struct {
	name string
	zap  *zap.SugaredLogger
}

// NewLogger returns a new Logger that writes Info+ logs to stdout.
func NewLogger(name string) Logger {
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding:         "console",
		EncoderConfig:    consoleEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	l, err := cfg.Build()
	if err != nil {
		// zap.Config.Build only fails on a malformed encoder/sink config, which
		// consoleEncoderConfig never produces; fall back to a no-op logger rather
		// than panic in a library constructor.
		l = zap.NewNop()
	}
	return &impl{name: name, zap: l.Sugar().Named(name)}
}

// NewTestLogger returns a Logger suitable for use in tests; it logs at debug level.
func NewTestLogger() Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig = consoleEncoderConfig()
	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}
	return &impl{name: "test", zap: l.Sugar()}
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func (imp *impl) Debugw(msg string, keysAndValues ...interface{}) { imp.zap.Debugw(msg, keysAndValues...) }
func (imp *impl) Infow(msg string, keysAndValues ...interface{})  { imp.zap.Infow(msg, keysAndValues...) }
func (imp *impl) Warnw(msg string, keysAndValues ...interface{})  { imp.zap.Warnw(msg, keysAndValues...) }
func (imp *impl) Errorw(msg string, keysAndValues ...interface{}) { imp.zap.Errorw(msg, keysAndValues...) }

func (imp *impl) With(args ...interface{}) Logger {
	return &impl{name: imp.name, zap: imp.zap.With(args...)}
}

func (imp *impl) Sublogger(subname string) Logger {
	name := subname
	if imp.name != "" {
		name = imp.name + "." + subname
	}
	return &impl{name: name, zap: imp.zap.Named(subname)}
}

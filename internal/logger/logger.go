// Package logger builds the zap logger used across the changelog tool.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to stderr. Only warnings and errors are
// shown unless verbose is set.
func New(verbose bool) *zap.Logger {
	return NewWithWriter(os.Stderr, verbose)
}

// NewWithWriter returns a console logger writing to w.
func NewWithWriter(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core)
}

package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds a console logger on stderr. Stdout carries the emission
// protocol and must stay untouched.
func newLogger(verbosity int) (*zap.Logger, error) {
	var level zapcore.Level
	switch verbosity {
	case 0:
		level = zapcore.ErrorLevel
	case 1:
		level = zapcore.WarnLevel
	case 2:
		level = zapcore.InfoLevel
	case 3:
		level = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("invalid verbosity %d", verbosity)
	}

	encoder := zap.NewProductionEncoderConfig()
	encoder.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoder),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core), nil
}

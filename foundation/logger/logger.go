// Package logger provides a convenience function to constructing a logger
// for use. This is required not just for applications but for testing.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation describes a log file that is rotated by size and age.
type Rotation struct {
	Filename   string
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
}

// New constructs a Sugared Logger that writes to stdout and
// provides human readable timestamps. Every rotation with a file name
// also receives a copy of the logs.
func New(service string, rotations ...Rotation) (*zap.SugaredLogger, error) {
	config := zap.NewProductionConfig()

	config.OutputPaths = []string{"stdout"}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true
	config.InitialFields = map[string]any{
		"service": service,
	}

	log, err := config.Build()
	if err != nil {
		return nil, err
	}

	for _, r := range rotations {
		if r.Filename == "" {
			continue
		}

		lj := lumberjack.Logger{
			Filename:   r.Filename,
			MaxSize:    r.MaxSizeMB,
			MaxAge:     r.MaxAgeDays,
			MaxBackups: r.MaxBackups,
		}

		file := zapcore.NewCore(zapcore.NewJSONEncoder(config.EncoderConfig), zapcore.AddSync(&lj), config.Level).
			With([]zapcore.Field{zap.String("service", service)})

		log = log.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, file)
		}))
	}

	return log.Sugar(), nil
}

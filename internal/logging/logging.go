// Package logging builds the zap logger used across the tool. Logs go to a
// size-rotated JSON file so they never interleave with command output.
package logging

import (
	"gopkg.in/natefinch/lumberjack.v2"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	serrors "github.com/jh3/agent-session-manager/internal/errors"
)

// Options controls the log file and level
type Options struct {
	File  string
	Level string
	Debug bool
}

// New returns a JSON logger writing to opts.File. Debug forces debug level.
// The returned close func flushes and closes the file.
func New(opts Options) (*zap.Logger, func(), error) {
	const op serrors.Op = "logging.New"

	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.Set(opts.Level); err != nil {
			return nil, nil, serrors.E(op, serrors.KindConfig, "log level "+opts.Level, err)
		}
	}
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     30, // days
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(rotator),
		level,
	)
	logger := zap.New(core, zap.AddCaller())

	closer := func() {
		_ = logger.Sync()
		_ = rotator.Close()
	}
	return logger, closer, nil
}

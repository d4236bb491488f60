package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SetupLogger builds the process logger. devMode switches to the console
// encoder; level accepts the zap level names in any case.
func SetupLogger(level string, devMode bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	if devMode {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger := zap.Must(cfg.Build())
	return logger.Sugar()
}

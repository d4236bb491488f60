package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestSetupLoggerLevel(t *testing.T) {
	logger := SetupLogger("WARN", false)
	assert.False(t, logger.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Desugar().Core().Enabled(zapcore.WarnLevel))
}

func TestSetupLoggerFallsBackToInfo(t *testing.T) {
	logger := SetupLogger("chatty", true)
	assert.True(t, logger.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Desugar().Core().Enabled(zapcore.DebugLevel))
}

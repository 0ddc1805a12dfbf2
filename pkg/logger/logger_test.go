package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestConfigForEnv(t *testing.T) {
	dev := ConfigForEnv("development", "warn")
	assert.True(t, dev.IsDevelopment)
	assert.Equal(t, "console", dev.Encoding)
	assert.Equal(t, "debug", dev.Level)

	prod := ConfigForEnv("production", "warn")
	assert.False(t, prod.IsDevelopment)
	assert.Equal(t, "json", prod.Encoding)
}

func TestNewZapLoggerHonoursLevel(t *testing.T) {
	l := NewZapLogger(&ZapLoggerConfig{Encoding: "json", Level: "warn"})
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

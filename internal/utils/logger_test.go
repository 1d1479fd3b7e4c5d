package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelInfo, ParseLevel("INFO"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelWarn, ParseLevel("warn"))
	assert.Equal(t, LevelWarn, ParseLevel("bogus"))
	assert.Equal(t, "ERROR", LevelError.String())
}

func TestStructuredLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(zap.NewNop())

	Errorw("despawn failed", "entity", 7, "kind", "EntityMissingComponents")
	Warn("queue at %d", 3)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "despawn failed", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 7, fields["entity"])
	assert.Equal(t, "EntityMissingComponents", fields["kind"])
	assert.Equal(t, "queue at 3", entries[1].Message)
}

func TestRaylibLogCallback(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(zap.NewNop())

	RaylibLogCallback(4, "texture too big")
	RaylibLogCallback(5, "shader failed")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "[RAYLIB] texture too big", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

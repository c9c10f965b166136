package logger

import (
	"testing"

	"arcade-catalog/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "debug console", cfg: Config{Level: "debug", Format: "console"}},
		{name: "info json", cfg: Config{Level: "info", Format: "json"}},
		{name: "warn auto", cfg: Config{Level: "warn"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestNew_LevelApplied(t *testing.T) {
	l, err := New(&Config{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestResolveFormat(t *testing.T) {
	assert.Equal(t, "console", resolveFormat("console", 0))
	assert.Equal(t, "json", resolveFormat("json", 0))
	// An invalid descriptor is never a terminal.
	assert.Equal(t, "json", resolveFormat("", ^uintptr(0)))
}

func TestWithRelease(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := WithRelease(zap.New(core), model.Release{Product: "MAME", Version: "0.263", Seq: 7})
	l.Info("hello")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "MAME", fields["product"])
	assert.Equal(t, "0.263", fields["version"])
	assert.Equal(t, int64(7), fields["seq"])
}

func TestWithRun(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	WithRun(zap.New(core), "run-1").Info("a")
	WithRun(zap.New(core), "").Info("b")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "run-1", logs.All()[0].ContextMap()["run_id"])
	assert.NotContains(t, logs.All()[1].ContextMap(), "run_id")
}

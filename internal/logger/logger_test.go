package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, mode := range []string{"dev", "prod"} {
		l, err := New(mode, false)
		require.NoError(t, err, mode)
		assert.False(t, l.Enabled(zap.DebugLevel), mode)
		assert.True(t, l.Enabled(zap.InfoLevel), mode)
	}

	l, err := New("", true)
	require.NoError(t, err)
	assert.True(t, l.Enabled(zap.DebugLevel))
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromCore(core).With("service", "catalog")

	l.Info("saved", "count", 3)
	l.Debug("detail")

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "saved", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "catalog", fields["service"])
	assert.EqualValues(t, 3, fields["count"])
	assert.Equal(t, "catalog", logs.All()[1].ContextMap()["service"])
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Error("ignored", "k", "v")
	assert.False(t, l.Enabled(zap.ErrorLevel))
	assert.NoError(t, l.Sync())
}

package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, zapcore.WarnLevel)

	l.Debug("hidden")
	l.Error("update failed", zap.String("path", "version.json"))
	_ = l.Sync()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "update failed")
	assert.Contains(t, out, "version.json")
}

func TestTestLoggerObserves(t *testing.T) {
	l, logs := TestLogger()
	l.Debug("read version file", zap.String("path", "a.json"))

	entries := logs.FilterMessage("read version file").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "a.json", entries[0].ContextMap()["path"])
	}
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
}

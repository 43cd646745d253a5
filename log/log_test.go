package log

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetLevel(t *testing.T) {
	defer SetLevel("info")

	require.NoError(t, SetLevel("warn"))
	assert.False(t, Logger().Core().Enabled(zap.InfoLevel))
	assert.True(t, Logger().Core().Enabled(zap.WarnLevel))

	require.NoError(t, SetLevel("trace"))
	assert.True(t, Trace)
	assert.True(t, Logger().Core().Enabled(zap.DebugLevel))

	assert.Error(t, SetLevel("loud"))
}

func TestMultipleWriter(t *testing.T) {
	var buf bytes.Buffer
	AddWriter(&buf)
	defer DeleteWriter(&buf)

	With(zap.String("channel", "test")).Warn("buffer full")
	assert.Contains(t, buf.String(), "buffer full")
	assert.Contains(t, buf.String(), "test")
}

func TestAddFile(t *testing.T) {
	before := multipleWriter.Len()
	closer := AddFile(filepath.Join(t.TempDir(), "replicast.log"), 1, 1)
	assert.Equal(t, before+1, multipleWriter.Len())
	Info("file sink attached")
	require.NoError(t, closer.Close())
	assert.Equal(t, before, multipleWriter.Len())
}

func TestTracef(t *testing.T) {
	var buf bytes.Buffer
	AddWriter(&buf)
	defer DeleteWriter(&buf)
	defer SetLevel("info")

	require.NoError(t, SetLevel("debug"))
	Tracef("slot %d", 1)
	assert.NotContains(t, buf.String(), "slot 1")

	require.NoError(t, SetLevel("trace"))
	Tracef("slot %d", 2)
	assert.Contains(t, buf.String(), "slot 2")
}

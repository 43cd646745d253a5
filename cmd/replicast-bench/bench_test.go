package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"m7s.live/replicast/config"
	"m7s.live/replicast/metrics"
)

func testConfig(t *testing.T, mode string) *Config {
	t.Helper()
	var conf Config
	require.NoError(t, config.Load(filepath.Join(t.TempDir(), "absent.yaml"), &conf))
	conf.Channel.Name = t.Name()
	conf.Channel.Capacity = 8
	conf.Bench.Writers = 3
	conf.Bench.Readers = 2
	conf.Bench.Messages = 200
	conf.Bench.Mode = mode
	conf.Bench.Interval = 100 * time.Microsecond
	conf.Bench.Batch = 4
	require.NoError(t, conf.Validate())
	return &conf
}

func TestRun(t *testing.T) {
	for _, mode := range []string{ModeBlocking, ModeTry} {
		t.Run(mode, func(t *testing.T) {
			conf := testConfig(t, mode)
			collector := metrics.NewCollector()
			res, err := run(context.Background(), conf, collector)
			require.NoError(t, err)
			assert.Equal(t, 600, res.Published)
			assert.Equal(t, 1200, res.Delivered)
			assert.Equal(t, uint64(600), res.Channel.Sequence)
			assert.Equal(t, uint64(1200), res.Channel.Consumed)
			assert.Zero(t, res.Channel.Readers)
			assert.Zero(t, collector.Len())
			if mode == ModeBlocking {
				assert.Zero(t, res.Channel.Rejected)
			}

			lines := res.lines(host{})
			require.Len(t, lines, 4)
			assert.Contains(t, strings.Join(lines, "\n"), t.Name())
		})
	}
}

func TestRunNoReaders(t *testing.T) {
	conf := testConfig(t, ModeTry)
	conf.Bench.Readers = 0
	res, err := run(context.Background(), conf, metrics.NewCollector())
	require.NoError(t, err)
	assert.Zero(t, res.Delivered)
	assert.Zero(t, res.Fallbacks)
}

func TestRunCanceled(t *testing.T) {
	conf := testConfig(t, ModeBlocking)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := run(ctx, conf, metrics.NewCollector())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfigValidate(t *testing.T) {
	conf := testConfig(t, ModeBlocking)
	conf.Bench.Mode = "fast"
	assert.ErrorIs(t, conf.Validate(), config.ErrInvalidConfig)
	conf = testConfig(t, ModeBlocking)
	conf.Bench.Writers = 0
	assert.ErrorIs(t, conf.Validate(), config.ErrInvalidConfig)
	conf = testConfig(t, ModeBlocking)
	conf.Channel.Capacity = 0
	assert.ErrorIs(t, conf.Validate(), config.ErrInvalidConfig)
}

func TestConfigDefaults(t *testing.T) {
	var conf Config
	require.NoError(t, config.Load("", &conf))
	assert.Equal(t, 4, conf.Bench.Writers)
	assert.Equal(t, ModeBlocking, conf.Bench.Mode)
	assert.Equal(t, 100*time.Microsecond, conf.Bench.RetrySleep)
	assert.Equal(t, 16, conf.Channel.Capacity)
}

// SPDX-License-Identifier: MIT

package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/seisinv/logging"
)

func TestNew(t *testing.T) {
	for _, dev := range []bool{false, true} {
		l, err := logging.New("warn", dev)
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	}

	_, err := logging.New("loud", false)
	assert.Error(t, err)
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewWriter(&buf, zapcore.InfoLevel)
	l.Debug("hidden")
	l.Info("burn-in done", zap.Float64("acceptance", 0.42))
	require.NoError(t, l.Sync())

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "burn-in done", rec["msg"])
	assert.Equal(t, 0.42, rec["acceptance"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewTest(t *testing.T) {
	l := logging.NewTest()
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

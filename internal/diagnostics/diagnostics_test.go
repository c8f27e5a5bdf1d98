package diagnostics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/KonishchevDmitry/diskstats-metrics/internal/metrics"
)

func TestEncoderCountsWarnings(t *testing.T) {
	encoder := newEncoder(zapcore.NewConsoleEncoder(zapcore.EncoderConfig{MessageKey: "message"}))
	before := testutil.ToFloat64(metrics.ErrorsMetric)

	for _, level := range []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel} {
		buf, err := encoder.Clone().EncodeEntry(zapcore.Entry{Level: level, Message: "Test message."}, nil)
		require.NoError(t, err)
		require.Contains(t, buf.String(), "Test message.")
		buf.Free()
	}

	require.Equal(t, before+2, testutil.ToFloat64(metrics.ErrorsMetric))
}

func TestConfigure(t *testing.T) {
	for _, develMode := range []bool{false, true} {
		logger, err := Configure(develMode)
		require.NoError(t, err)
		require.NotNil(t, logger)
	}
}

package common

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	_ "liyu1981.xyz/tpms-service/pkg/testing"
)

func TestLoggingCapture(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	logger := GetLogger()
	logger.Info("Test log message", zap.String("key", "value"))

	logOutput := buf.String()
	if !strings.Contains(logOutput, "Test log message") {
		t.Errorf("expected log output to contain message, got: %s", logOutput)
	}
}

func TestCategoryLogger(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	GetCategoryLogger(LoggerNameTPMSCore, LoggerCategoryTPMSReading).Info("Reading stored")

	logOutput := buf.String()
	for _, want := range []string{`"logger":"tpms_core"`, `"category":"reading"`, `"msg":"Reading stored"`} {
		if !strings.Contains(logOutput, want) {
			t.Errorf("expected log output to contain %s, got: %s", want, logOutput)
		}
	}
}

func TestCaptureLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.WarnLevel)

	GetLogger().Info("dropped")
	GetLogger().Warn("kept")

	logOutput := buf.String()
	if strings.Contains(logOutput, "dropped") {
		t.Errorf("info message should be filtered at warn level, got: %s", logOutput)
	}
	if !strings.Contains(logOutput, "kept") {
		t.Errorf("warn message should be logged, got: %s", logOutput)
	}
}

func TestLogOptionsFromEnv(t *testing.T) {
	t.Setenv(EnvKeyTPMSLogDir, "")
	t.Setenv(EnvKeyTPMSLogLevel, "")

	opts, err := LogOptionsFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "logs", filepath.Base(opts.Dir))
	assert.Equal(t, zapcore.InfoLevel, opts.FileLevel)

	dir := t.TempDir()
	t.Setenv(EnvKeyTPMSLogDir, dir)
	t.Setenv(EnvKeyTPMSLogLevel, "WARN")
	opts, err = LogOptionsFromEnv()
	require.NoError(t, err)
	assert.Equal(t, dir, opts.Dir)
	assert.Equal(t, zapcore.WarnLevel, opts.FileLevel)

	t.Setenv(EnvKeyTPMSLogLevel, "loud")
	_, err = LogOptionsFromEnv()
	assert.ErrorContains(t, err, EnvKeyTPMSLogLevel)
}

func TestNewLoggerWritesFileAtLevel(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	l, err := NewLogger(LogOptions{Dir: dir, FileLevel: zapcore.WarnLevel, Production: true})
	require.NoError(t, err)

	l.Named(LoggerNameDispatch).Info("below threshold")
	l.Named(LoggerNameDispatch).Warn("kafka unreachable", zap.String("topic", "tire-notifications"))
	_ = l.Sync()

	content, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "below threshold")
	assert.Contains(t, string(content), `"msg":"kafka unreachable"`)
	assert.Contains(t, string(content), `"logger":"dispatch"`)
	assert.Contains(t, string(content), `"topic":"tire-notifications"`)
}

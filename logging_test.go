package gekko

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDefaultLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := newDefaultLogger("test", false, zapcore.AddSync(&buf), LogFileConfig{})

	logger.Debugf("hidden %d", 1)
	logger.Infof("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")
	assert.Contains(t, buf.String(), "test")
	assert.False(t, logger.DebugEnabled())

	logger.SetDebug(true)
	assert.True(t, logger.DebugEnabled())
	logger.Debugf("now visible")
	assert.Contains(t, buf.String(), "now visible")
	assert.Contains(t, buf.String(), "DEBUG")
}

func TestDefaultLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "grid.log")
	logger := newDefaultLogger("", true, nil, DefaultLogFileConfig(path))

	logger.Warnf("written to %s", "file")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
	assert.Contains(t, string(data), "WARN")
}

type failingSyncer struct {
	bytes.Buffer
	err error
}

func (s *failingSyncer) Sync() error { return s.err }

func TestDefaultLogger_SyncReportsErrors(t *testing.T) {
	errSync := errors.New("disk gone")
	path := filepath.Join(t.TempDir(), "grid.log")
	logger := newDefaultLogger("", false, &failingSyncer{err: errSync}, DefaultLogFileConfig(path))

	logger.Infof("before sync")
	err := logger.Sync()

	assert.ErrorIs(t, err, errSync)
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "before sync", "the file is still flushed and closed")
}

func TestLoggingModule_InstallsLogger(t *testing.T) {
	app := NewApp()
	_, isNop := app.Logger().(*nopLogger)
	assert.True(t, isNop, "apps without a logger resource fall back to a no-op logger")

	app.UseModules(LoggingModule{Prefix: "app", Debug: true})

	logger, ok := app.Logger().(*DefaultLogger)
	require.True(t, ok)
	assert.True(t, logger.DebugEnabled())
	assert.Same(t, Resource[DefaultLogger](app), logger)
}

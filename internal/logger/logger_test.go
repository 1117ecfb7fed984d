package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"poshak-storefront/config"
)

func TestInit(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	t.Run("Console", func(t *testing.T) {
		l, err := Init(config.Logger{Mode: "development", Level: "debug"})
		require.NoError(t, err)
		assert.Same(t, l, zap.L())
		assert.True(t, l.Core().Enabled(zap.DebugLevel))
	})

	t.Run("RollingFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "storefront.log")
		l, err := Init(config.Logger{Mode: "production", Level: "warn", FileEnable: true, Filename: path})
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zap.InfoLevel))

		l.Warn("cart session evicted", zap.String("cart", "c1"))
		_ = l.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "cart session evicted")
	})

	t.Run("BadLevel", func(t *testing.T) {
		_, err := Init(config.Logger{Level: "loud"})
		assert.Error(t, err)
	})
}

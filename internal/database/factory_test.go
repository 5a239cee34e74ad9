package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profilesave/internal/config"
)

func TestNewHistoryFromConfig(t *testing.T) {
	t.Run("memory history", func(t *testing.T) {
		h, err := NewHistoryFromConfig(config.HistoryConfig{Type: "memory"})
		require.NoError(t, err)
		defer h.Close()
		assert.IsType(t, &SQLiteHistory{}, h)
	})

	t.Run("sqlite history creates data dir", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "data")
		h, err := NewHistoryFromConfig(config.HistoryConfig{Type: "sqlite", DataDir: dir})
		require.NoError(t, err)
		defer h.Close()

		_, err = os.Stat(filepath.Join(dir, HistoryFileName))
		assert.NoError(t, err)
	})

	t.Run("sqlite history requires data dir", func(t *testing.T) {
		_, err := NewHistoryFromConfig(config.HistoryConfig{Type: "sqlite"})
		assert.Error(t, err)
	})

	t.Run("none records nothing", func(t *testing.T) {
		h, err := NewHistoryFromConfig(config.HistoryConfig{Type: "none"})
		require.NoError(t, err)
		runs, err := h.ListRuns(10)
		require.NoError(t, err)
		assert.Empty(t, runs)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := NewHistoryFromConfig(config.HistoryConfig{Type: "postgres"})
		assert.Error(t, err)
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, BackendCSV, cfg.Backend)
	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, DefaultDatabasePath, cfg.DatabasePath)
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("SHELVES_BACKEND", "sqlite")
	t.Setenv("SHELVES_DATABASE_PATH", "/tmp/library.db")

	cfg := NewConfig()
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "/tmp/library.db", cfg.DatabasePath)
}

func TestNewConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shelves.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: sqlite\ndatabase_path: /tmp/from-file.db\n"), 0o644))
	t.Setenv("SHELVES_CONFIG_FILE", path)

	cfg := NewConfig()
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "/tmp/from-file.db", cfg.DatabasePath)
}

func TestNewConfigEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shelves.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: sqlite\n"), 0o644))
	t.Setenv("SHELVES_CONFIG_FILE", path)
	t.Setenv("SHELVES_BACKEND", "csv")

	cfg := NewConfig()
	assert.Equal(t, BackendCSV, cfg.Backend)
}

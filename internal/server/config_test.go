package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmaster/internal/store"
)

// clearServerEnv blanks the variables viper reads; empty values count as unset.
func clearServerEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"APP_PORT", "TASKMASTER_STORE", "SQLITE_PATH", "MYSQL_HOST", "MYSQL_DATABASE", "MYSQL_PARAMS"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearServerEnv(t)

	cfg, err := LoadConfig(NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, store.DefaultMySQLParams, cfg.MySQL.Params)
}

func TestLoadConfig_Env(t *testing.T) {
	clearServerEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("TASKMASTER_STORE", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("MYSQL_HOST", "db")

	cfg, err := LoadConfig(NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "/tmp/x.db", cfg.SQLitePath)
	assert.Equal(t, "db", cfg.MySQL.Host)
}

func TestLoadConfig_File(t *testing.T) {
	clearServerEnv(t)

	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app_port: \"7070\"\nstore: mysql\nmysql_database: tasks\n"), 0600))

	cfg, err := LoadConfig(NewViper(), path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.AppPort)
	assert.Equal(t, StoreMySQL, cfg.Store)
	assert.Equal(t, "tasks", cfg.MySQL.Database)
}

func TestLoadConfig_UnknownStore(t *testing.T) {
	t.Setenv("TASKMASTER_STORE", "redis")

	_, err := LoadConfig(NewViper(), "")
	assert.ErrorContains(t, err, "unknown store")
}

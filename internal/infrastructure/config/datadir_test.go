package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDataDir_Default(t *testing.T) {
	ResetDataDir()
	t.Setenv(EnvDataDir, "")

	homeDir, err := os.UserHomeDir()
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(homeDir, ".pu-assistant"), GetDataDir())
}

func TestGetDataDir_Cached(t *testing.T) {
	ResetDataDir()
	t.Setenv(EnvDataDir, "/first/path")
	assert.Equal(t, "/first/path", GetDataDir())

	os.Setenv(EnvDataDir, "/second/path")
	assert.Equal(t, "/first/path", GetDataDir(), "应该返回缓存值，不受环境变量修改影响")
}

func TestDatabasePath(t *testing.T) {
	ResetDataDir()
	t.Setenv(EnvDataDir, "/data")
	t.Cleanup(ResetDataDir)

	assert.Equal(t, filepath.Join("/data", "assistant.db"), (&DatabaseConfig{}).DatabasePath())
	assert.Equal(t, "/tmp/x.db", (&DatabaseConfig{Path: "/tmp/x.db"}).DatabasePath())
}

package config

import (
	"os"
	"path/filepath"
	"sync"
)

const (
	// EnvDataDir 数据目录环境变量名
	EnvDataDir = "PU_ASSISTANT_DATA_DIR"
	// DefaultDataDirName 默认数据目录名
	DefaultDataDirName = ".pu-assistant"
)

var (
	dataDirOnce sync.Once
	dataDirPath string
)

// GetDataDir 获取数据根目录（交互日志数据库等）
// 优先读取 PU_ASSISTANT_DATA_DIR，默认 ~/.pu-assistant/
func GetDataDir() string {
	dataDirOnce.Do(func() {
		if dir := os.Getenv(EnvDataDir); dir != "" {
			dataDirPath = dir
			return
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			dataDirPath = DefaultDataDirName
			return
		}
		dataDirPath = filepath.Join(homeDir, DefaultDataDirName)
	})
	return dataDirPath
}

// DatabasePath 返回交互日志数据库路径
func (c *DatabaseConfig) DatabasePath() string {
	if c.Path != "" {
		return c.Path
	}
	return filepath.Join(GetDataDir(), "assistant.db")
}

// ResetDataDir 重置数据目录缓存（仅用于测试）
func ResetDataDir() {
	dataDirOnce = sync.Once{}
	dataDirPath = ""
}

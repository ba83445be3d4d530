package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/puassist/backend/internal/infrastructure/config"
)

// OpenDB 打开数据库连接并初始化表结构
// path 为 ":memory:" 时使用内存数据库（测试）
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// 单连接：内存库的每个连接都是独立数据库
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// ProvideDB 按配置打开数据库（wire provider）
func ProvideDB(cfg *config.DatabaseConfig) (*sql.DB, func(), error) {
	db, err := OpenDB(cfg.DatabasePath())
	if err != nil {
		return nil, nil, err
	}
	return db, func() { _ = db.Close() }, nil
}

// migrate 创建表和索引
func migrate(db *sql.DB) error {
	statements := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS interactions (
			id TEXT PRIMARY KEY,
			conversation_id TEXT NOT NULL,
			query TEXT NOT NULL,
			effective_query TEXT NOT NULL,
			outcome TEXT NOT NULL,
			reply TEXT NOT NULL,
			follow_up_count INTEGER NOT NULL DEFAULT 0,
			link_url TEXT,
			latency_ms INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_created_at ON interactions(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_conversation ON interactions(conversation_id);`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return nil
}

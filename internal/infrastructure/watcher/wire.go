package watcher

import (
	"github.com/puassist/backend/internal/infrastructure/config"
)

// ProvideIndexMetadata 提供索引元数据
func ProvideIndexMetadata() *IndexMetadata {
	return NewIndexMetadata(config.GetDataDir())
}

// ProvideCorpusWatcher 提供语料监听器
func ProvideCorpusWatcher(cfg *config.Config, onChange ChangeHandler) (*CorpusWatcher, error) {
	return NewCorpusWatcher(DefaultWatchConfig(cfg.Indexer.CorpusPath), onChange)
}

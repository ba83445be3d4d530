package wire

import (
	"context"
	"log/slog"

	appAssistant "github.com/puassist/backend/internal/application/assistant"
	"github.com/puassist/backend/internal/infrastructure/config"
	applog "github.com/puassist/backend/internal/infrastructure/log"
	"github.com/puassist/backend/internal/infrastructure/watcher"
)

// IndexerApp 离线索引程序
type IndexerApp struct {
	Indexer  *appAssistant.Indexer
	Metadata *watcher.IndexMetadata
	cfg      *config.Config
	logger   *slog.Logger
}

// NewIndexerApp 创建索引程序
func NewIndexerApp(indexer *appAssistant.Indexer, metadata *watcher.IndexMetadata, cfg *config.Config) *IndexerApp {
	return &IndexerApp{
		Indexer:  indexer,
		Metadata: metadata,
		cfg:      cfg,
		logger:   applog.NewModuleLogger("app", "indexer"),
	}
}

// CorpusPath 语料文件路径
func (a *IndexerApp) CorpusPath() string {
	return a.cfg.Indexer.CorpusPath
}

// Reindex 索引语料文件并记录元数据
func (a *IndexerApp) Reindex(ctx context.Context, path string) error {
	stats, err := a.Indexer.IndexFile(ctx, path)
	if err != nil {
		return err
	}
	if err := a.Metadata.MarkIndexed(path, stats.Total()); err != nil {
		a.logger.Warn("Failed to persist index metadata", "error", err)
	}
	return nil
}

// Watch 监听语料变化并重新索引，阻塞直到 ctx 取消
func (a *IndexerApp) Watch(ctx context.Context, path string) error {
	w, err := watcher.NewCorpusWatcher(watcher.DefaultWatchConfig(path), a.Reindex)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	w.Stop()
	return nil
}

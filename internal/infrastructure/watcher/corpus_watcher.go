// Package watcher 监听语料文件变化并触发重新索引
package watcher

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/puassist/backend/internal/infrastructure/log"
)

// ChangeHandler 语料变化回调
type ChangeHandler func(ctx context.Context, path string) error

// WatchConfig CorpusWatcher 配置
type WatchConfig struct {
	// CorpusPath 语料 JSON 文件路径
	CorpusPath string
	// DebounceDelay 防抖延迟
	DebounceDelay time.Duration
}

// DefaultWatchConfig 返回默认配置
func DefaultWatchConfig(corpusPath string) WatchConfig {
	return WatchConfig{
		CorpusPath:    corpusPath,
		DebounceDelay: 500 * time.Millisecond,
	}
}

// CorpusWatcher 语料文件监听器
// 监听文件所在目录，编辑器先删除再重建文件时也能收到事件
type CorpusWatcher struct {
	config   WatchConfig
	target   string
	onChange ChangeHandler
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	// 防抖
	timer   *time.Timer
	timerMu sync.Mutex

	// 回调串行执行
	runMu sync.Mutex

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewCorpusWatcher 创建语料监听器
func NewCorpusWatcher(config WatchConfig, onChange ChangeHandler) (*CorpusWatcher, error) {
	if config.CorpusPath == "" {
		return nil, errors.New("corpus path is required")
	}
	if onChange == nil {
		return nil, errors.New("change handler is required")
	}
	if config.DebounceDelay <= 0 {
		config.DebounceDelay = 500 * time.Millisecond
	}

	target, err := filepath.Abs(config.CorpusPath)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &CorpusWatcher{
		config:   config,
		target:   filepath.Clean(target),
		onChange: onChange,
		watcher:  w,
		logger:   log.NewModuleLogger("watcher", "corpus_watcher"),
		stopCh:   make(chan struct{}),
	}, nil
}

// Start 开始监听，ctx 取消时自动停止
func (cw *CorpusWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(cw.target)
	if _, err := os.Stat(dir); err != nil {
		return err
	}
	if err := cw.watcher.Add(dir); err != nil {
		return err
	}

	cw.logger.Info("Watching corpus file", "path", cw.target, "debounce", cw.config.DebounceDelay)

	cw.wg.Add(1)
	go cw.watchLoop(ctx)
	return nil
}

// Stop 停止监听，可重复调用
func (cw *CorpusWatcher) Stop() {
	cw.stopOnce.Do(func() {
		close(cw.stopCh)
		cw.watcher.Close()

		cw.timerMu.Lock()
		if cw.timer != nil {
			cw.timer.Stop()
		}
		cw.timerMu.Unlock()
	})
	cw.wg.Wait()

	cw.logger.Info("Corpus watcher stopped")
}

func (cw *CorpusWatcher) watchLoop(ctx context.Context) {
	defer cw.wg.Done()

	for {
		select {
		case <-ctx.Done():
			go cw.Stop()
			return

		case <-cw.stopCh:
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			cw.handleFsEvent(ctx, event)

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Error("Watcher error", "error", err)
		}
	}
}

// isRelevant 只关心目标文件的写入与创建
func (cw *CorpusWatcher) isRelevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != cw.target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (cw *CorpusWatcher) handleFsEvent(ctx context.Context, event fsnotify.Event) {
	if !cw.isRelevant(event) {
		return
	}

	cw.timerMu.Lock()
	defer cw.timerMu.Unlock()

	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.timer = time.AfterFunc(cw.config.DebounceDelay, func() {
		cw.fire(ctx)
	})
}

func (cw *CorpusWatcher) fire(ctx context.Context) {
	select {
	case <-cw.stopCh:
		return
	default:
	}

	// 重命名后文件可能暂时不存在
	if _, err := os.Stat(cw.target); err != nil {
		cw.logger.Debug("Corpus file not present, skipping", "path", cw.target)
		return
	}

	cw.runMu.Lock()
	defer cw.runMu.Unlock()

	cw.logger.Info("Corpus changed, reindexing", "path", cw.target)
	if err := cw.onChange(ctx, cw.target); err != nil {
		cw.logger.Error("Reindex failed", "path", cw.target, "error", err)
	}
}

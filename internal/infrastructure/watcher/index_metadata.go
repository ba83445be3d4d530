package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// IndexMetadata 记录上次索引时的语料修改时间，决定启动时是否需要重建索引
type IndexMetadata struct {
	mu       sync.RWMutex
	data     indexMetadataData
	filePath string
}

type indexMetadataData struct {
	CorpusModTime time.Time `json:"corpus_mod_time"`
	IndexedAt     time.Time `json:"indexed_at"`
	Passages      int       `json:"passages"`
}

// NewIndexMetadata 从 dataDir/index_metadata.json 加载元数据
func NewIndexMetadata(dataDir string) *IndexMetadata {
	m := &IndexMetadata{filePath: filepath.Join(dataDir, "index_metadata.json")}
	m.load()
	return m
}

// LastIndexedAt 上次索引完成时间，从未索引时为零值
func (m *IndexMetadata) LastIndexedAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.IndexedAt
}

// NeedsReindex 语料文件自上次索引后是否有修改
func (m *IndexMetadata) NeedsReindex(corpusPath string) bool {
	info, err := os.Stat(corpusPath)
	if err != nil {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data.IndexedAt.IsZero() {
		return true
	}
	return !info.ModTime().Equal(m.data.CorpusModTime)
}

// MarkIndexed 记录一次成功索引并持久化
func (m *IndexMetadata) MarkIndexed(corpusPath string, passages int) error {
	var modTime time.Time
	if info, err := os.Stat(corpusPath); err == nil {
		modTime = info.ModTime()
	}

	m.mu.Lock()
	m.data = indexMetadataData{
		CorpusModTime: modTime,
		IndexedAt:     time.Now(),
		Passages:      passages,
	}
	snapshot := m.data
	m.mu.Unlock()

	return m.save(snapshot)
}

func (m *IndexMetadata) load() {
	raw, err := os.ReadFile(m.filePath)
	if err != nil {
		return
	}

	var data indexMetadataData
	if err := json.Unmarshal(raw, &data); err != nil {
		return
	}

	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
}

func (m *IndexMetadata) save(data indexMetadataData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.filePath), 0755); err != nil {
		return err
	}
	return os.WriteFile(m.filePath, raw, 0644)
}

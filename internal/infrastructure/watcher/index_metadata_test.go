package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexMetadata_Lifecycle(t *testing.T) {
	dataDir := t.TempDir()
	corpus := filepath.Join(t.TempDir(), "corpus.json")
	require.NoError(t, os.WriteFile(corpus, []byte("[]"), 0644))

	m := NewIndexMetadata(dataDir)
	assert.True(t, m.LastIndexedAt().IsZero())
	assert.True(t, m.NeedsReindex(corpus), "从未索引过")

	require.NoError(t, m.MarkIndexed(corpus, 12))
	assert.False(t, m.NeedsReindex(corpus))

	// 重新加载后状态保留
	reloaded := NewIndexMetadata(dataDir)
	assert.False(t, reloaded.NeedsReindex(corpus))
	assert.False(t, reloaded.LastIndexedAt().IsZero())

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(corpus, later, later))
	assert.True(t, reloaded.NeedsReindex(corpus))
}

func TestIndexMetadata_MissingCorpus(t *testing.T) {
	m := NewIndexMetadata(t.TempDir())
	assert.False(t, m.NeedsReindex(filepath.Join(t.TempDir(), "nope.json")))
}

func TestIndexMetadata_CorruptFileIgnored(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "index_metadata.json"), []byte("{"), 0644))

	m := NewIndexMetadata(dataDir)
	assert.True(t, m.LastIndexedAt().IsZero())
}

package assistant

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	json "github.com/goccy/go-json"

	domain "github.com/puassist/backend/internal/domain/assistant"
	"github.com/puassist/backend/internal/infrastructure/log"
)

// Document 抽取后的 PDF 文档
type Document struct {
	PDFFile string `json:"pdf_file"`
	Content []Page `json:"content"`
}

// Page 单页内容，表格第一行为表头，单元格可能为 null
type Page struct {
	PageNumber int           `json:"page_number"`
	Text       string        `json:"text"`
	Tables     [][][]*string `json:"tables"`
}

// PassageWriter 片段写入端（向量库）
type PassageWriter interface {
	EnsureCollection(ctx context.Context, vectorSize uint64) error
	Upsert(ctx context.Context, passages []domain.Passage, vectors [][]float32) error
}

// TextEmbedder 批量向量化
type TextEmbedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// IndexStats 一次索引的统计
type IndexStats struct {
	Documents   int
	Pages       int
	TextChunks  int
	TableChunks int
}

// Total 写入的片段总数
func (s IndexStats) Total() int {
	return s.TextChunks + s.TableChunks
}

var (
	disallowedChars = regexp.MustCompile(`[^A-Za-z0-9\-\(\)\s]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// CleanText 非字母数字与 -() 之外的字符替换为空格，并折叠连续空白
func CleanText(text string) string {
	text = disallowedChars.ReplaceAllString(text, " ")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// FlattenTables 将表格展开为 "表头: 单元格, ..." 的行，行之间以空格连接
// 少于两行（无数据行）的表格被跳过
func FlattenTables(tables [][][]*string) string {
	var rows []string
	for _, table := range tables {
		if len(table) < 2 {
			continue
		}
		headers := table[0]
		for _, row := range table[1:] {
			cells := make([]string, 0, len(row))
			for i, cell := range row {
				if i >= len(headers) {
					break
				}
				cells = append(cells, fmt.Sprintf("%s: %s", deref(headers[i]), strings.TrimSpace(deref(cell))))
			}
			rows = append(rows, strings.Join(cells, ", "))
		}
	}
	return strings.Join(rows, " ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Indexer 离线索引：清洗 -> 表格展开 -> 切分 -> 向量化 -> 写入
type Indexer struct {
	chunker    *Chunker
	embedder   TextEmbedder
	writer     PassageWriter
	vectorSize uint64
	batchSize  int
	logger     *slog.Logger
}

// NewIndexer 创建索引器
func NewIndexer(chunker *Chunker, embedder TextEmbedder, writer PassageWriter, vectorSize uint64, batchSize int) *Indexer {
	if batchSize <= 0 {
		batchSize = 32
	}
	return &Indexer{
		chunker:    chunker,
		embedder:   embedder,
		writer:     writer,
		vectorSize: vectorSize,
		batchSize:  batchSize,
		logger:     log.NewModuleLogger("assistant", "indexer"),
	}
}

// LoadDocuments 读取抽取结果 JSON
func LoadDocuments(r io.Reader) ([]Document, error) {
	var docs []Document
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}
	return docs, nil
}

// IndexFile 索引一个语料文件
func (ix *Indexer) IndexFile(ctx context.Context, path string) (IndexStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return IndexStats{}, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	docs, err := LoadDocuments(f)
	if err != nil {
		return IndexStats{}, err
	}
	return ix.Index(ctx, docs)
}

// BuildPassages 将文档切分为片段；chunk_id 在每页内按类型编号
func (ix *Indexer) BuildPassages(docs []Document) ([]domain.Passage, IndexStats) {
	stats := IndexStats{Documents: len(docs)}
	var passages []domain.Passage

	for _, doc := range docs {
		for _, page := range doc.Content {
			stats.Pages++
			for chunk := range ix.chunker.Chunk(CleanText(page.Text)) {
				passages = append(passages, domain.Passage{
					Source:    doc.PDFFile,
					Page:      page.PageNumber,
					ChunkType: domain.ChunkTypeText,
					ChunkID:   fmt.Sprintf("text_%d", chunk.Index),
					Text:      chunk.Text,
				})
				stats.TextChunks++
			}
			for chunk := range ix.chunker.Chunk(FlattenTables(page.Tables)) {
				passages = append(passages, domain.Passage{
					Source:    doc.PDFFile,
					Page:      page.PageNumber,
					ChunkType: domain.ChunkTypeTable,
					ChunkID:   fmt.Sprintf("table_%d", chunk.Index),
					Text:      chunk.Text,
				})
				stats.TableChunks++
			}
		}
	}
	return passages, stats
}

// Index 切分、向量化并分批写入，点 ID 确定，重复执行幂等
func (ix *Indexer) Index(ctx context.Context, docs []Document) (IndexStats, error) {
	if err := ix.writer.EnsureCollection(ctx, ix.vectorSize); err != nil {
		return IndexStats{}, fmt.Errorf("ensure collection: %w", err)
	}

	passages, stats := ix.BuildPassages(docs)
	for start := 0; start < len(passages); start += ix.batchSize {
		end := min(start+ix.batchSize, len(passages))
		batch := passages[start:end]

		texts := make([]string, len(batch))
		for i, p := range batch {
			texts[i] = p.Text
		}
		vectors, err := ix.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return stats, fmt.Errorf("embed batch %d-%d: %w", start, end, err)
		}
		if err := ix.writer.Upsert(ctx, batch, vectors); err != nil {
			return stats, fmt.Errorf("upsert batch %d-%d: %w", start, end, err)
		}
		ix.logger.DebugContext(ctx, "Indexed batch", "start", start, "end", end, "total", len(passages))
	}

	ix.logger.InfoContext(ctx, "Corpus indexed",
		"documents", stats.Documents,
		"pages", stats.Pages,
		"text_chunks", stats.TextChunks,
		"table_chunks", stats.TableChunks,
	)
	return stats, nil
}

package assistant

// ChunkType 片段类型
type ChunkType string

// 片段类型常量
const (
	ChunkTypeText  ChunkType = "text"
	ChunkTypeTable ChunkType = "table"
)

// Passage 可检索的文档片段
// 由离线索引任务创建，创建后不可变
type Passage struct {
	ID        string    // 向量索引中的 point ID
	Source    string    // 来源文档（PDF 文件名或 URL）
	ChunkType ChunkType // text / table
	ChunkID   string    // 文档内片段 ID，如 text_0、table_2
	Text      string    // 原始文本
	Page      int       // 页码，0 表示未知
	Score     float64   // 检索或重排分数
}

// CandidateSet 一次检索产生的有序候选集合
type CandidateSet []Passage

// Texts 按顺序返回候选片段文本
func (c CandidateSet) Texts() []string {
	texts := make([]string, len(c))
	for i, p := range c {
		texts[i] = p.Text
	}
	return texts
}

package tokenizer

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// 在包初始化时设置离线加载器
func init() {
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// DefaultEncoding 默认编码
const DefaultEncoding = "cl100k_base"

// Tiktoken 基于 tiktoken 的分词器，Encode/Decode 互为逆运算
type Tiktoken struct {
	encoding *tiktoken.Tiktoken
}

var (
	instance *Tiktoken
	once     sync.Once
	initErr  error
)

// NewTiktoken 获取 cl100k_base 分词器单例，避免重复加载编码文件
func NewTiktoken() (*Tiktoken, error) {
	once.Do(func() {
		enc, err := tiktoken.GetEncoding(DefaultEncoding)
		if err != nil {
			initErr = err
			return
		}
		instance = &Tiktoken{encoding: enc}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// Encode 文本转 token 序列
func (t *Tiktoken) Encode(text string) []int {
	if text == "" {
		return nil
	}
	return t.encoding.Encode(text, nil, nil)
}

// Decode token 序列转文本
func (t *Tiktoken) Decode(tokens []int) string {
	if len(tokens) == 0 {
		return ""
	}
	return t.encoding.Decode(tokens)
}

// Count 计算文本的 token 数量
func (t *Tiktoken) Count(text string) int {
	return len(t.Encode(text))
}

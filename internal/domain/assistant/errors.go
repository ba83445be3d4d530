package assistant

import "errors"

var (
	// ErrRetrievalUnavailable 向量索引或重排服务不可达、超时或返回错误
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")
	// ErrGenerationUnavailable 生成服务不可达、超时或返回空文本
	ErrGenerationUnavailable = errors.New("generation unavailable")
	// ErrConversationBusy 会话正在被另一个请求处理
	ErrConversationBusy = errors.New("conversation busy")
)

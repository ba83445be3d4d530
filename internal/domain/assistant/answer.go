package assistant

// Link 附加的上下文链接
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// AnswerResult 一次问答的最终输出
type AnswerResult struct {
	MainAnswer        string   `json:"reply"`
	FollowUpQuestions []string `json:"followUps"`
	AttachedLink      *Link    `json:"link,omitempty"`
}

// FallbackReply 外部服务不可用时返回的固定致歉文本
const FallbackReply = "Sorry, something went wrong. Please visit the admin office."

// NewFallbackAnswer 创建兜底回答（无追问、无链接）
func NewFallbackAnswer() *AnswerResult {
	return &AnswerResult{
		MainAnswer:        FallbackReply,
		FollowUpQuestions: []string{},
	}
}

// HasLink 是否附带链接
func (a *AnswerResult) HasLink() bool {
	return a.AttachedLink != nil && a.AttachedLink.URL != ""
}

// FollowUpMarker 追问建议块的起始标记，提示词与解析器共用
const FollowUpMarker = "*Know more about:*"

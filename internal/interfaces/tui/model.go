// Package tui 终端测试客户端：在进程内运行完整问答流程
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	domain "github.com/puassist/backend/internal/domain/assistant"
)

// Assistant 终端客户端依赖的问答能力
type Assistant interface {
	Ask(ctx context.Context, conversationID, message string) (*domain.AnswerResult, error)
	EndConversation(ctx context.Context, conversationID string) error
}

// answerMsg 一次问答完成
type answerMsg struct {
	query  string
	result *domain.AnswerResult
	err    error
}

// resetMsg 会话已重置
type resetMsg struct{ err error }

type turn struct {
	query  string
	result *domain.AnswerResult
}

// Model Bubble Tea 模型
type Model struct {
	assistant      Assistant
	conversationID string
	timeout        time.Duration

	input    textinput.Model
	viewport viewport.Model
	turns    []turn
	status   string
	pending  bool
	ready    bool

	// Tab 依次把最近一次回答的追问填入输入框
	followUpCursor int
}

// New 创建终端模型
func New(assistant Assistant, conversationID string, timeout time.Duration) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about admissions, fees, hostels..."
	ti.Focus()
	ti.CharLimit = 500

	return Model{
		assistant:      assistant,
		conversationID: conversationID,
		timeout:        timeout,
		input:          ti,
		viewport:       viewport.New(0, 0),
		status:         "Enter to send, Tab for follow-ups, Ctrl+R to reset, Ctrl+C to quit.",
	}
}

// Init 初始化光标闪烁
func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) askCmd(query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		result, err := m.assistant.Ask(ctx, m.conversationID, query)
		return answerMsg{query: query, result: result, err: err}
	}
}

func (m Model) resetCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return resetMsg{err: m.assistant.EndConversation(ctx, m.conversationID)}
	}
}

// Update 处理按键、窗口大小与异步结果
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, bh := transcriptStyle.GetFrameSize()
		_, ih := inputStyle.GetFrameSize()
		reserved := 1 + 1 + ih + 1 + bh // header + status + input + spacer
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(3, msg.Height-reserved)
		m.refresh()
		return m, nil

	case answerMsg:
		m.pending = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.turns = append(m.turns, turn{query: msg.query, result: msg.result})
		m.followUpCursor = 0
		m.status = fmt.Sprintf("Answered %q", msg.query)
		m.refresh()
		return m, nil

	case resetMsg:
		m.pending = false
		if msg.err != nil {
			m.status = "Reset failed: " + msg.err.Error()
			return m, nil
		}
		m.turns = nil
		m.status = "Conversation reset."
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyCtrlR:
			if m.pending {
				return m, nil
			}
			m.pending = true
			return m, m.resetCmd()
		case tea.KeyTab:
			if fu := m.lastFollowUps(); len(fu) > 0 {
				m.input.SetValue(fu[m.followUpCursor%len(fu)])
				m.input.CursorEnd()
				m.followUpCursor++
			}
			return m, nil
		case tea.KeyEnter:
			q := strings.TrimSpace(m.input.Value())
			if q == "" || m.pending {
				return m, nil
			}
			m.input.SetValue("")
			m.pending = true
			m.status = "Thinking..."
			return m, m.askCmd(q)
		case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) lastFollowUps() []string {
	if len(m.turns) == 0 {
		return nil
	}
	return m.turns[len(m.turns)-1].result.FollowUpQuestions
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// View 渲染界面
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("PU-Assistant") + "  " + dimStyle.Render("conversation "+m.conversationID)
	return header + "\n" +
		transcriptStyle.Render(m.viewport.View()) + "\n" +
		inputStyle.Render(m.input.View()) + "\n" +
		statusStyle.Render(m.status)
}

func (m Model) renderTranscript() string {
	if len(m.turns) == 0 {
		return dimStyle.Render("No messages yet.")
	}
	var b strings.Builder
	for i, t := range m.turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(youStyle.Render("You: "))
		b.WriteString(t.query)
		b.WriteString("\n")
		b.WriteString(renderAnswer(t.result))
	}
	return b.String()
}

func renderAnswer(r *domain.AnswerResult) string {
	var b strings.Builder
	b.WriteString(botStyle.Render("Assistant: "))
	b.WriteString(r.MainAnswer)
	if len(r.FollowUpQuestions) > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(domain.FollowUpMarker))
		for _, q := range r.FollowUpQuestions {
			b.WriteString("\n  - ")
			b.WriteString(q)
		}
	}
	if r.HasLink() {
		b.WriteString("\n")
		b.WriteString(linkStyle.Render(fmt.Sprintf("%s: %s", r.AttachedLink.Label, r.AttachedLink.URL)))
	}
	return b.String()
}

var (
	headerStyle     = lipgloss.NewStyle().Bold(true)
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	youStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	linkStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Underline(true)
	transcriptStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Package websocket 管理聊天 WebSocket 连接，按会话 ID 分组投递消息
package websocket

import (
	"errors"
	"sync"

	json "github.com/goccy/go-json"
)

// ErrHubStopped Hub 已停止
var ErrHubStopped = errors.New("websocket hub stopped")

// Hub WebSocket 连接管理中心
type Hub struct {
	// 按会话 ID 分组的连接，同一会话可能在多个标签页打开
	conversations map[string]map[*Connection]struct{}
	register      chan *Connection
	unregister    chan *Connection
	deliver       chan *Message
	done          chan struct{}
	stopOnce      sync.Once
	mu            sync.RWMutex
}

// Connection 一个 WebSocket 连接的发送端
type Connection struct {
	ConversationID string
	Send           chan []byte
}

// Message 投递给某个会话的消息
type Message struct {
	ConversationID string
	Data           []byte
}

// NewConnection 创建连接，Send 缓冲 buffer 条消息
func NewConnection(conversationID string, buffer int) *Connection {
	return &Connection{ConversationID: conversationID, Send: make(chan []byte, buffer)}
}

// NewHub 创建 Hub
func NewHub() *Hub {
	return &Hub{
		conversations: make(map[string]map[*Connection]struct{}),
		register:      make(chan *Connection),
		unregister:    make(chan *Connection),
		deliver:       make(chan *Message),
		done:          make(chan struct{}),
	}
}

// Run 运行 Hub（需要在 goroutine 中运行）
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for id, conns := range h.conversations {
				for conn := range conns {
					close(conn.Send)
				}
				delete(h.conversations, id)
			}
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.conversations[conn.ConversationID] == nil {
				h.conversations[conn.ConversationID] = make(map[*Connection]struct{})
			}
			h.conversations[conn.ConversationID][conn] = struct{}{}
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			h.remove(conn)
			h.mu.Unlock()

		case msg := <-h.deliver:
			h.mu.Lock()
			for conn := range h.conversations[msg.ConversationID] {
				select {
				case conn.Send <- msg.Data:
				default:
					// 发送缓冲已满，视为慢连接断开
					h.remove(conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove 调用方需持有写锁
func (h *Hub) remove(conn *Connection) {
	conns, ok := h.conversations[conn.ConversationID]
	if !ok {
		return
	}
	if _, ok := conns[conn]; !ok {
		return
	}
	delete(conns, conn)
	close(conn.Send)
	if len(conns) == 0 {
		delete(h.conversations, conn.ConversationID)
	}
}

// Start 启动 Hub（启动后台 goroutine）
func (h *Hub) Start() {
	go h.Run()
}

// Stop 停止 Hub 并关闭所有连接的发送通道
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) stopped() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Register 注册连接
func (h *Hub) Register(conn *Connection) error {
	if h.stopped() {
		return ErrHubStopped
	}
	select {
	case h.register <- conn:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// Unregister 注销连接
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// SendToConversation 向会话的所有连接投递 JSON 消息
func (h *Hub) SendToConversation(conversationID string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if h.stopped() {
		return ErrHubStopped
	}
	select {
	case h.deliver <- &Message{ConversationID: conversationID, Data: raw}:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// ActiveConnections 当前连接数
func (h *Hub) ActiveConnections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, conns := range h.conversations {
		n += len(conns)
	}
	return n
}

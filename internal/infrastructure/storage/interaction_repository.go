package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/puassist/backend/internal/domain/assistant"
)

// interactionRepository 交互记录 SQLite 仓储实现
type interactionRepository struct {
	db *sql.DB
}

// NewInteractionRepository 创建交互记录仓储
func NewInteractionRepository(db *sql.DB) domain.InteractionRepository {
	return &interactionRepository{db: db}
}

// Save 保存交互记录
func (r *interactionRepository) Save(item *domain.Interaction) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = time.Now().UnixMilli()
	}

	var linkURL sql.NullString
	if item.LinkURL != "" {
		linkURL = sql.NullString{String: item.LinkURL, Valid: true}
	}

	_, err := r.db.Exec(`
		INSERT OR REPLACE INTO interactions
		(id, conversation_id, query, effective_query, outcome, reply, follow_up_count, link_url, latency_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.ConversationID,
		item.Query,
		item.EffectiveQuery,
		item.Outcome,
		item.Reply,
		item.FollowUpCount,
		linkURL,
		item.LatencyMs,
		item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save interaction: %w", err)
	}
	return nil
}

// ListRecent 按时间倒序返回最近的记录
func (r *interactionRepository) ListRecent(limit int) ([]*domain.Interaction, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(`
		SELECT id, conversation_id, query, effective_query, outcome, reply, follow_up_count, link_url, latency_ms, created_at
		FROM interactions
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.Interaction, 0)
	for rows.Next() {
		var item domain.Interaction
		var linkURL sql.NullString
		if err := rows.Scan(
			&item.ID,
			&item.ConversationID,
			&item.Query,
			&item.EffectiveQuery,
			&item.Outcome,
			&item.Reply,
			&item.FollowUpCount,
			&linkURL,
			&item.LatencyMs,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		item.LinkURL = linkURL.String
		items = append(items, &item)
	}
	return items, rows.Err()
}

// CountByOutcome 按结果统计记录数
func (r *interactionRepository) CountByOutcome() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT outcome, COUNT(*) FROM interactions GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("failed to count interactions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[outcome] = n
	}
	return counts, rows.Err()
}

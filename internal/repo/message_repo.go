package repo

import (
	"context"

	"github.com/kisara115522/quickplan-ai/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateMessage 插入一条消息
func CreateMessage(ctx context.Context, db *pgxpool.Pool, m *domain.Message) error {
	_, err := db.Exec(ctx, `
		INSERT INTO messages (id, conversation_id, role, content, created_at)
        VALUES ($1, $2, $3, $4, $5)
	`, m.ID, m.ConversationID, m.Role, m.Content, m.CreatedAt)
	return err
}

// ListMessagesByConversation 按时间正序查询会话消息，limit<=0 表示不限制
func ListMessagesByConversation(ctx context.Context, db *pgxpool.Pool, conversationID string, limit int) ([]domain.Message, error) {
	query := `
		SELECT id, conversation_id, role, content, created_at
        FROM messages
        WHERE conversation_id = $1
        ORDER BY created_at
	`
	args := []any{conversationID}
	if limit > 0 {
		// 取最近 limit 条，再按时间正序返回
		query = `
			SELECT id, conversation_id, role, content, created_at
            FROM (
                SELECT id, conversation_id, role, content, created_at
                FROM messages
                WHERE conversation_id = $1
                ORDER BY created_at DESC
                LIMIT $2
            ) recent
            ORDER BY created_at
		`
		args = append(args, limit)
	}
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// CountMessages 统计会话消息数
func CountMessages(ctx context.Context, db *pgxpool.Pool, conversationID string) (int, error) {
	var n int
	err := db.QueryRow(ctx, `
		SELECT COUNT(*) FROM messages WHERE conversation_id = $1
	`, conversationID).Scan(&n)
	return n, err
}

// DeleteMessagesByConversation 删除会话全部消息
func DeleteMessagesByConversation(ctx context.Context, db *pgxpool.Pool, conversationID string) error {
	_, err := db.Exec(ctx, `
		DELETE FROM messages WHERE conversation_id = $1
	`, conversationID)
	return err
}

func scanMessages(rows pgx.Rows) ([]domain.Message, error) {
	var res []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

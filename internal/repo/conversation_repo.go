package repo

import (
	"context"
	"errors"

	"github.com/kisara115522/quickplan-ai/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateConversation 插入一个会话
func CreateConversation(ctx context.Context, db *pgxpool.Pool, c *domain.Conversation) error {
	_, err := db.Exec(ctx, `
		INSERT INTO conversations (id, user_id, title, created_at, updated_at, is_deleted)
        VALUES ($1, $2, $3, $4, $5, 0)
	`, c.ID, c.UserID, c.Title, c.CreatedAt, c.UpdatedAt)
	return err
}

// GetConversationByID 根据 ID 查询会话，不存在时返回 (nil, nil)
func GetConversationByID(ctx context.Context, db *pgxpool.Pool, id string) (*domain.Conversation, error) {
	row := db.QueryRow(ctx, `
		SELECT id, user_id, title, created_at, updated_at
        FROM conversations
        WHERE id = $1 AND is_deleted = 0
	`, id)
	var c domain.Conversation
	if err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// ListConversationsByUser 查询用户的会话，limit<=0 表示不限制
func ListConversationsByUser(ctx context.Context, db *pgxpool.Pool, userID string, limit int) ([]domain.Conversation, error) {
	query := `
		SELECT id, user_id, title, created_at, updated_at
        FROM conversations
        WHERE user_id = $1 AND is_deleted = 0
        ORDER BY updated_at DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// UpdateConversationTitle 更新会话标题
func UpdateConversationTitle(ctx context.Context, db *pgxpool.Pool, id, title string) (bool, error) {
	tag, err := db.Exec(ctx, `
		UPDATE conversations
        SET title = $1, updated_at = NOW()
        WHERE id = $2 AND is_deleted = 0
	`, title, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// TouchConversation 刷新会话的更新时间
func TouchConversation(ctx context.Context, db *pgxpool.Pool, id string) error {
	_, err := db.Exec(ctx, `
		UPDATE conversations
        SET updated_at = NOW()
        WHERE id = $1 AND is_deleted = 0
	`, id)
	return err
}

// DeleteConversation 逻辑删除会话
func DeleteConversation(ctx context.Context, db *pgxpool.Pool, id string) (bool, error) {
	tag, err := db.Exec(ctx, `
		UPDATE conversations
        SET is_deleted = 1, updated_at = NOW()
        WHERE id = $1 AND is_deleted = 0
	`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

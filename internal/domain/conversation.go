package domain

import (
	"time"
)

type Conversation struct {
	ID        string    `json:"id"`         // 会话唯一标识 (UUID)
	UserID    string    `json:"user_id"`    // 所属用户ID
	Title     string    `json:"title"`      // 会话标题，新会话默认"新对话"
	CreatedAt time.Time `json:"created_at"` // 创建时间
	UpdatedAt time.Time `json:"updated_at"` // 更新时间
	IsDeleted int       `json:"is_deleted"` // 逻辑删除: 0-未删除, 1-已删除
}

type Message struct {
	ID             string    `json:"id"`              // 消息唯一标识 (UUID)
	ConversationID string    `json:"conversation_id"` // 所属会话ID
	Role           string    `json:"role"`            // 角色: user/assistant
	Content        string    `json:"content"`         // 消息内容
	CreatedAt      time.Time `json:"created_at"`      // 创建时间
}

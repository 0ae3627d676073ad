package domain

import (
	"time"
)

type Reminder struct {
	ID             string     `json:"id"`              // 提醒唯一标识 (UUID)
	ConversationID string     `json:"conversation_id"` // 来源会话ID，可为空
	UserID         string     `json:"user_id"`         // 所属用户ID
	Title          string     `json:"title"`           // 提醒标题
	Description    string     `json:"description"`     // 备注描述
	RemindAt       *time.Time `json:"remind_at"`       // 提醒时间，未识别到时间时为空
	IsCompleted    int        `json:"is_completed"`    // 是否完成: 0-未完成, 1-已完成
	IsNotified     int        `json:"is_notified"`     // 是否已推送: 0-未推送, 1-已推送
	CreatedAt      time.Time  `json:"created_at"`      // 创建时间
	UpdatedAt      time.Time  `json:"updated_at"`      // 更新时间
	IsDeleted      int        `json:"is_deleted"`      // 逻辑删除: 0-未删除, 1-已删除
}

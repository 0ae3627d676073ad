package domain

import (
	"time"
)

type Schedule struct {
	ID          string    `json:"id"`          // 日程唯一标识 (UUID)
	UserID      string    `json:"user_id"`     // 所属用户ID
	Title       string    `json:"title"`       // 日程标题
	Location    string    `json:"location"`    // 地点，默认"未指定"
	Date        time.Time `json:"date"`        // 日期（只取日期部分）
	Time        string    `json:"time"`        // 时间，HH:mm 格式
	Description string    `json:"description"` // 备注描述
	CreatedAt   time.Time `json:"created_at"`  // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`  // 更新时间
	IsDeleted   int       `json:"is_deleted"`  // 逻辑删除: 0-未删除, 1-已删除
}

// Package notify 扫描到期提醒并投递到 Redis 通知队列
// 队列使用 Redis List，下游推送服务从队列头部消费；推送本身不在本服务范围内
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReadyKey 生成通知就绪队列的 Redis key，格式 "notify:{queue}:ready"
func ReadyKey(queue string) string {
	return "notify:" + queue + ":ready"
}

// Notification 投递到队列里的通知消息
type Notification struct {
	ReminderID string    `json:"reminder_id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	RemindAt   time.Time `json:"remind_at"`
}

// Enqueue 把通知追加到就绪队列尾部，保持 FIFO
func Enqueue(ctx context.Context, rdb *redis.Client, queue string, n Notification) error {
	b, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return rdb.RPush(ctx, ReadyKey(queue), string(b)).Err()
}

// Connect 建立 Redis 连接并验证可用
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// Package memory 基于 Redis 的聊天记忆存储
// Key 格式: quickplan:chat:memory:{conversationId}
// conversationId 在数据库里已关联 userId，间接实现用户隔离
package memory

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/kisara115522/quickplan-ai/internal/llm"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "quickplan:chat:memory:"

// Key 生成会话聊天记忆的 Redis key
func Key(conversationID string) string {
	return keyPrefix + conversationID
}

type Store struct {
	rdb    *redis.Client
	window int // 最多保留的消息条数，超出裁掉最早的
}

func NewStore(rdb *redis.Client, window int) *Store {
	if window <= 0 {
		window = 100
	}
	return &Store{rdb: rdb, window: window}
}

// Messages 读取会话的历史消息，无记录时返回空列表
func (s *Store) Messages(ctx context.Context, conversationID string) ([]llm.Message, error) {
	raw, err := s.rdb.Get(ctx, Key(conversationID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var msgs []llm.Message
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// Update 整体覆盖会话消息，超出窗口时只保留最近的
func (s *Store) Update(ctx context.Context, conversationID string, msgs []llm.Message) error {
	msgs = Trim(msgs, s.window)
	raw, err := json.Marshal(msgs)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, Key(conversationID), raw, 0).Err()
}

// Append 在会话末尾追加消息
func (s *Store) Append(ctx context.Context, conversationID string, msgs ...llm.Message) error {
	history, err := s.Messages(ctx, conversationID)
	if err != nil {
		return err
	}
	return s.Update(ctx, conversationID, append(history, msgs...))
}

// Delete 清空会话的聊天记忆
func (s *Store) Delete(ctx context.Context, conversationID string) error {
	return s.rdb.Del(ctx, Key(conversationID)).Err()
}

// Trim 保留最近的 window 条消息
func Trim(msgs []llm.Message, window int) []llm.Message {
	if window > 0 && len(msgs) > window {
		return msgs[len(msgs)-window:]
	}
	return msgs
}

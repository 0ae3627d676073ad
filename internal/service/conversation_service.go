package service

import (
	"context"
	"time"

	"github.com/kisara115522/quickplan-ai/internal/domain"
	"github.com/kisara115522/quickplan-ai/internal/memory"
	"github.com/kisara115522/quickplan-ai/internal/repo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultConversationTitle 新会话的初始标题，首条消息到达后自动替换
const DefaultConversationTitle = "新对话"

type ConversationService struct {
	db  *pgxpool.Pool
	mem *memory.Store
}

func NewConversationService(db *pgxpool.Pool, mem *memory.Store) *ConversationService {
	return &ConversationService{db: db, mem: mem}
}

func (s *ConversationService) CreateConversation(ctx context.Context, userID, title string) (*domain.Conversation, error) {
	if title == "" {
		title = DefaultConversationTitle
	}
	now := time.Now()
	c := &domain.Conversation{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.CreateConversation(ctx, s.db, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ConversationService) GetConversationByID(ctx context.Context, id string) (*domain.Conversation, error) {
	return repo.GetConversationByID(ctx, s.db, id)
}

func (s *ConversationService) ListConversations(ctx context.Context, userID string) ([]domain.Conversation, error) {
	return repo.ListConversationsByUser(ctx, s.db, userID, 0)
}

func (s *ConversationService) RecentConversations(ctx context.Context, userID string, limit int) ([]domain.Conversation, error) {
	if limit <= 0 {
		limit = 10
	}
	return repo.ListConversationsByUser(ctx, s.db, userID, limit)
}

func (s *ConversationService) UpdateTitle(ctx context.Context, id, title string) (bool, error) {
	return repo.UpdateConversationTitle(ctx, s.db, id, title)
}

func (s *ConversationService) TouchConversation(ctx context.Context, id string) error {
	return repo.TouchConversation(ctx, s.db, id)
}

// DeleteConversation 逻辑删除会话，同时清掉消息和 Redis 聊天记忆
func (s *ConversationService) DeleteConversation(ctx context.Context, id string) (bool, error) {
	ok, err := repo.DeleteConversation(ctx, s.db, id)
	if err != nil || !ok {
		return ok, err
	}
	if err := repo.DeleteMessagesByConversation(ctx, s.db, id); err != nil {
		return true, err
	}
	if err := s.mem.Delete(ctx, id); err != nil {
		return true, err
	}
	return true, nil
}

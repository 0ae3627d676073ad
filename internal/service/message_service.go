package service

import (
	"context"
	"time"

	"github.com/kisara115522/quickplan-ai/internal/domain"
	"github.com/kisara115522/quickplan-ai/internal/repo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageService struct {
	db *pgxpool.Pool
}

func NewMessageService(db *pgxpool.Pool) *MessageService {
	return &MessageService{db: db}
}

func (s *MessageService) SaveUserMessage(ctx context.Context, conversationID, content string) (*domain.Message, error) {
	return s.save(ctx, conversationID, "user", content)
}

func (s *MessageService) SaveAssistantMessage(ctx context.Context, conversationID, content string) (*domain.Message, error) {
	return s.save(ctx, conversationID, "assistant", content)
}

func (s *MessageService) save(ctx context.Context, conversationID, role, content string) (*domain.Message, error) {
	m := &domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	if err := repo.CreateMessage(ctx, s.db, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MessageService) ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	return repo.ListMessagesByConversation(ctx, s.db, conversationID, 0)
}

func (s *MessageService) RecentMessages(ctx context.Context, conversationID string, limit int) ([]domain.Message, error) {
	return repo.ListMessagesByConversation(ctx, s.db, conversationID, limit)
}

func (s *MessageService) CountMessages(ctx context.Context, conversationID string) (int, error) {
	return repo.CountMessages(ctx, s.db, conversationID)
}

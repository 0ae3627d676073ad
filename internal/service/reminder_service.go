package service

import (
	"context"
	"log"
	"time"

	"github.com/kisara115522/quickplan-ai/internal/domain"
	"github.com/kisara115522/quickplan-ai/internal/extract"
	"github.com/kisara115522/quickplan-ai/internal/repo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReminderService struct {
	db *pgxpool.Pool
}

func NewReminderService(db *pgxpool.Pool) *ReminderService {
	return &ReminderService{db: db}
}

// CreateFromText 解析 OCR 文本并逐条落库
// 单条插入失败只记日志，不中断批次，返回成功创建的提醒
func (s *ReminderService) CreateFromText(ctx context.Context, userID, conversationID, ocrText string) ([]domain.Reminder, error) {
	candidates := extract.ParseCandidates(ocrText, time.Now())

	created := make([]domain.Reminder, 0, len(candidates))
	for _, c := range candidates {
		now := time.Now()
		r := domain.Reminder{
			ID:             uuid.NewString(),
			ConversationID: conversationID,
			UserID:         userID,
			Title:          c.Title,
			Description:    "由 OCR 自动生成",
			RemindAt:       c.RemindAt,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := repo.CreateReminder(ctx, s.db, &r); err != nil {
			log.Printf("创建OCR提醒失败 (line=%q): %v", c.SourceLine, err)
			continue
		}
		created = append(created, r)
	}
	return created, nil
}

func (s *ReminderService) GetReminderByID(ctx context.Context, id string) (*domain.Reminder, error) {
	return repo.GetReminderByID(ctx, s.db, id)
}

func (s *ReminderService) ListRemindersByUser(ctx context.Context, userID string) ([]domain.Reminder, error) {
	return repo.ListRemindersByUser(ctx, s.db, userID)
}

func (s *ReminderService) ListUncompletedReminders(ctx context.Context, userID string) ([]domain.Reminder, error) {
	return repo.ListUncompletedReminders(ctx, s.db, userID)
}

func (s *ReminderService) ListRemindersByConversation(ctx context.Context, conversationID string) ([]domain.Reminder, error) {
	return repo.ListRemindersByConversation(ctx, s.db, conversationID)
}

func (s *ReminderService) MarkCompleted(ctx context.Context, id string) (bool, error) {
	return repo.MarkReminderCompleted(ctx, s.db, id)
}

func (s *ReminderService) DeleteReminder(ctx context.Context, id string) (bool, error) {
	return repo.DeleteReminder(ctx, s.db, id)
}

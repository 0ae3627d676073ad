package service

import (
	"context"
	"time"

	"github.com/kisara115522/quickplan-ai/internal/domain"
	"github.com/kisara115522/quickplan-ai/internal/repo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ScheduleService struct {
	db *pgxpool.Pool
}

func NewScheduleService(db *pgxpool.Pool) *ScheduleService {
	return &ScheduleService{db: db}
}

// CreateSchedule 创建日程，补齐 ID、缺省地点和时间戳
func (s *ScheduleService) CreateSchedule(ctx context.Context, sch *domain.Schedule) error {
	if sch.ID == "" {
		sch.ID = uuid.NewString()
	}
	if sch.Location == "" {
		sch.Location = "未指定"
	}
	now := time.Now()
	sch.CreatedAt = now
	sch.UpdatedAt = now
	return repo.CreateSchedule(ctx, s.db, sch)
}

func (s *ScheduleService) GetScheduleByID(ctx context.Context, id string) (*domain.Schedule, error) {
	return repo.GetScheduleByID(ctx, s.db, id)
}

func (s *ScheduleService) ListSchedulesByUser(ctx context.Context, userID string) ([]domain.Schedule, error) {
	return repo.ListSchedulesByUser(ctx, s.db, userID)
}

func (s *ScheduleService) GetSchedulesByDate(ctx context.Context, userID string, date time.Time) ([]domain.Schedule, error) {
	return repo.ListSchedulesByDate(ctx, s.db, userID, date)
}

func (s *ScheduleService) GetSchedulesByDateRange(ctx context.Context, userID string, start, end time.Time) ([]domain.Schedule, error) {
	return repo.ListSchedulesByDateRange(ctx, s.db, userID, start, end)
}

func (s *ScheduleService) UpdateSchedule(ctx context.Context, sch *domain.Schedule) (bool, error) {
	sch.UpdatedAt = time.Now()
	return repo.UpdateSchedule(ctx, s.db, sch)
}

func (s *ScheduleService) DeleteSchedule(ctx context.Context, id string) (bool, error) {
	return repo.DeleteSchedule(ctx, s.db, id)
}

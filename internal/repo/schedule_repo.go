package repo

import (
	"context"
	"errors"
	"time"

	"github.com/kisara115522/quickplan-ai/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const scheduleColumns = `id, user_id, title, location, date, time, description, created_at, updated_at`

// CreateSchedule 插入一条日程
func CreateSchedule(ctx context.Context, db *pgxpool.Pool, s *domain.Schedule) error {
	_, err := db.Exec(ctx, `
		INSERT INTO schedules (id, user_id, title, location, date, time, description, created_at, updated_at, is_deleted)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0)
	`, s.ID, s.UserID, s.Title, s.Location, s.Date, s.Time, s.Description, s.CreatedAt, s.UpdatedAt)
	return err
}

// GetScheduleByID 根据 ID 查询日程，不存在时返回 (nil, nil)
func GetScheduleByID(ctx context.Context, db *pgxpool.Pool, id string) (*domain.Schedule, error) {
	row := db.QueryRow(ctx, `
		SELECT `+scheduleColumns+`
        FROM schedules
        WHERE id = $1 AND is_deleted = 0
	`, id)
	var s domain.Schedule
	if err := row.Scan(
		&s.ID, &s.UserID, &s.Title, &s.Location, &s.Date, &s.Time, &s.Description, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// ListSchedulesByUser 查询用户的全部日程，按日期和时间排序
func ListSchedulesByUser(ctx context.Context, db *pgxpool.Pool, userID string) ([]domain.Schedule, error) {
	rows, err := db.Query(ctx, `
		SELECT `+scheduleColumns+`
        FROM schedules
        WHERE user_id = $1 AND is_deleted = 0
        ORDER BY date, time
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSchedules(rows)
}

// ListSchedulesByDate 查询用户某一天的日程
func ListSchedulesByDate(ctx context.Context, db *pgxpool.Pool, userID string, date time.Time) ([]domain.Schedule, error) {
	rows, err := db.Query(ctx, `
		SELECT `+scheduleColumns+`
        FROM schedules
        WHERE user_id = $1 AND date = $2 AND is_deleted = 0
        ORDER BY time
	`, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSchedules(rows)
}

// ListSchedulesByDateRange 查询用户一段日期范围内的日程（含两端）
func ListSchedulesByDateRange(ctx context.Context, db *pgxpool.Pool, userID string, start, end time.Time) ([]domain.Schedule, error) {
	rows, err := db.Query(ctx, `
		SELECT `+scheduleColumns+`
        FROM schedules
        WHERE user_id = $1 AND date >= $2 AND date <= $3 AND is_deleted = 0
        ORDER BY date, time
	`, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSchedules(rows)
}

// UpdateSchedule 更新日程内容，返回是否命中记录
func UpdateSchedule(ctx context.Context, db *pgxpool.Pool, s *domain.Schedule) (bool, error) {
	tag, err := db.Exec(ctx, `
		UPDATE schedules
        SET title = $1, location = $2, date = $3, time = $4, description = $5, updated_at = $6
        WHERE id = $7 AND is_deleted = 0
	`, s.Title, s.Location, s.Date, s.Time, s.Description, s.UpdatedAt, s.ID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteSchedule 逻辑删除日程，返回是否命中记录
func DeleteSchedule(ctx context.Context, db *pgxpool.Pool, id string) (bool, error) {
	tag, err := db.Exec(ctx, `
		UPDATE schedules
        SET is_deleted = 1, updated_at = NOW()
        WHERE id = $1 AND is_deleted = 0
	`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanSchedules(rows pgx.Rows) ([]domain.Schedule, error) {
	var res []domain.Schedule
	for rows.Next() {
		var s domain.Schedule
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Title, &s.Location, &s.Date, &s.Time, &s.Description, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

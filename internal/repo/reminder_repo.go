package repo

import (
	"context"
	"errors"
	"time"

	"github.com/kisara115522/quickplan-ai/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reminderColumns = `id, conversation_id, user_id, title, description, remind_at, is_completed, is_notified, created_at, updated_at`

// CreateReminder 插入一条 OCR 提醒
func CreateReminder(ctx context.Context, db *pgxpool.Pool, r *domain.Reminder) error {
	_, err := db.Exec(ctx, `
		INSERT INTO ocr_reminders (id, conversation_id, user_id, title, description, remind_at, is_completed, is_notified, created_at, updated_at, is_deleted)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0)
	`, r.ID, nullable(r.ConversationID), r.UserID, r.Title, r.Description, r.RemindAt, r.IsCompleted, r.IsNotified, r.CreatedAt, r.UpdatedAt)
	return err
}

// GetReminderByID 根据 ID 查询提醒，不存在时返回 (nil, nil)
func GetReminderByID(ctx context.Context, db *pgxpool.Pool, id string) (*domain.Reminder, error) {
	row := db.QueryRow(ctx, `
		SELECT `+reminderColumns+`
        FROM ocr_reminders
        WHERE id = $1 AND is_deleted = 0
	`, id)
	r, err := scanReminderRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return r, nil
}

// ListRemindersByUser 查询用户的全部提醒
func ListRemindersByUser(ctx context.Context, db *pgxpool.Pool, userID string) ([]domain.Reminder, error) {
	rows, err := db.Query(ctx, `
		SELECT `+reminderColumns+`
        FROM ocr_reminders
        WHERE user_id = $1 AND is_deleted = 0
        ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReminders(rows)
}

// ListUncompletedReminders 查询用户未完成的提醒
func ListUncompletedReminders(ctx context.Context, db *pgxpool.Pool, userID string) ([]domain.Reminder, error) {
	rows, err := db.Query(ctx, `
		SELECT `+reminderColumns+`
        FROM ocr_reminders
        WHERE user_id = $1 AND is_completed = 0 AND is_deleted = 0
        ORDER BY remind_at NULLS LAST, created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReminders(rows)
}

// ListRemindersByConversation 查询某个会话产生的提醒
func ListRemindersByConversation(ctx context.Context, db *pgxpool.Pool, conversationID string) ([]domain.Reminder, error) {
	rows, err := db.Query(ctx, `
		SELECT `+reminderColumns+`
        FROM ocr_reminders
        WHERE conversation_id = $1 AND is_deleted = 0
        ORDER BY created_at DESC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReminders(rows)
}

// ListDueReminders 查询到期且未完成、未推送的提醒
func ListDueReminders(ctx context.Context, db *pgxpool.Pool, now time.Time, limit int) ([]domain.Reminder, error) {
	rows, err := db.Query(ctx, `
		SELECT `+reminderColumns+`
        FROM ocr_reminders
        WHERE remind_at IS NOT NULL AND remind_at <= $1
          AND is_completed = 0 AND is_notified = 0 AND is_deleted = 0
        ORDER BY remind_at
        LIMIT $2
	`, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReminders(rows)
}

// MarkReminderCompleted 标记提醒完成，返回是否命中记录
func MarkReminderCompleted(ctx context.Context, db *pgxpool.Pool, id string) (bool, error) {
	tag, err := db.Exec(ctx, `
		UPDATE ocr_reminders
        SET is_completed = 1, updated_at = NOW()
        WHERE id = $1 AND is_deleted = 0
	`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// MarkReminderNotified 标记提醒已推送
func MarkReminderNotified(ctx context.Context, db *pgxpool.Pool, id string) error {
	_, err := db.Exec(ctx, `
		UPDATE ocr_reminders
        SET is_notified = 1, updated_at = NOW()
        WHERE id = $1
	`, id)
	return err
}

// DeleteReminder 逻辑删除提醒，返回是否命中记录
func DeleteReminder(ctx context.Context, db *pgxpool.Pool, id string) (bool, error) {
	tag, err := db.Exec(ctx, `
		UPDATE ocr_reminders
        SET is_deleted = 1, updated_at = NOW()
        WHERE id = $1 AND is_deleted = 0
	`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanReminderRow(row pgx.Row) (*domain.Reminder, error) {
	var r domain.Reminder
	var convID *string
	if err := row.Scan(
		&r.ID, &convID, &r.UserID, &r.Title, &r.Description, &r.RemindAt,
		&r.IsCompleted, &r.IsNotified, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if convID != nil {
		r.ConversationID = *convID
	}
	return &r, nil
}

func scanReminders(rows pgx.Rows) ([]domain.Reminder, error) {
	var res []domain.Reminder
	for rows.Next() {
		r, err := scanReminderRow(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *r)
	}
	return res, rows.Err()
}

// nullable 空串入库写 NULL
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

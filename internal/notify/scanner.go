package notify

import (
	"context"
	"log"
	"time"

	"github.com/kisara115522/quickplan-ai/internal/repo"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Scanner 周期性扫描到期的提醒，投递通知并标记已推送
type Scanner struct {
	db    *pgxpool.Pool
	rdb   *redis.Client
	queue string
	batch int
}

func NewScanner(db *pgxpool.Pool, rdb *redis.Client, queue string) *Scanner {
	return &Scanner{
		db:    db,
		rdb:   rdb,
		queue: queue,
		batch: 100,
	}
}

// ScanOnce 扫一轮到期提醒，返回成功投递的数量
// 单条提醒投递失败不影响本轮其余提醒
func (s *Scanner) ScanOnce(ctx context.Context) (int, error) {
	now := time.Now()
	due, err := repo.ListDueReminders(ctx, s.db, now, s.batch)
	if err != nil {
		return 0, err
	}

	enqueued := 0
	for _, r := range due {
		n := Notification{
			ReminderID: r.ID,
			UserID:     r.UserID,
			Title:      r.Title,
			RemindAt:   *r.RemindAt,
		}
		if err := Enqueue(ctx, s.rdb, s.queue, n); err != nil {
			log.Printf("通知入队失败 (reminder=%s): %v", r.ID, err)
			continue
		}
		// 先入队再标记，重复投递比丢失可接受
		if err := repo.MarkReminderNotified(ctx, s.db, r.ID); err != nil {
			log.Printf("标记提醒已推送失败 (reminder=%s): %v", r.ID, err)
		}
		enqueued++
	}

	_ = s.rdb.Incr(ctx, "metrics:notifier:ticks").Err()
	_ = s.rdb.HSet(ctx, "metrics:notifier:last", map[string]any{
		"time":      now.Format(time.RFC3339),
		"due_count": len(due),
		"enqueued":  enqueued,
	}).Err()

	if len(due) > 0 {
		log.Printf("notifier tick: due=%d enqueued=%d", len(due), enqueued)
	}
	return enqueued, nil
}

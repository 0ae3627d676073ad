package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kisara115522/quickplan-ai/internal/config"
	"github.com/kisara115522/quickplan-ai/internal/db"
	"github.com/kisara115522/quickplan-ai/internal/notify"

	"github.com/robfig/cron/v3"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.Init(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres init failed: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("ensure schema failed: %v", err)
	}

	rdb, err := notify.Connect(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis init failed: %v", err)
	}
	defer rdb.Close()

	scanner := notify.NewScanner(pool, rdb, cfg.NotifyQueue)

	// 每分钟扫一轮到期提醒
	c := cron.New()
	_, err = c.AddFunc("@every 1m", func() {
		scanCtx, scanCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer scanCancel()
		if _, err := scanner.ScanOnce(scanCtx); err != nil {
			log.Printf("scan due reminders failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("cron setup failed: %v", err)
	}

	c.Start()
	log.Printf("notifier started, queue=%s", cfg.NotifyQueue)

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stopCtx := c.Stop()
	<-stopCtx.Done()
	log.Println("notifier stopped")
}

package main

import (
	"context"
	"log"
	"time"

	"github.com/kisara115522/quickplan-ai/internal/config"
	"github.com/kisara115522/quickplan-ai/internal/db"
	"github.com/kisara115522/quickplan-ai/internal/http/handler"
	"github.com/kisara115522/quickplan-ai/internal/llm"
	"github.com/kisara115522/quickplan-ai/internal/memory"
	"github.com/kisara115522/quickplan-ai/internal/notify"
	"github.com/kisara115522/quickplan-ai/internal/service"
	"github.com/kisara115522/quickplan-ai/internal/tools"

	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据库连接
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.Init(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres init failed: %v", err)
	}
	defer pool.Close()

	// 确保最小表结构存在
	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("ensure schema failed: %v", err)
	}

	// 初始化 Redis
	rdb, err := notify.Connect(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis init failed: %v", err)
	}
	defer rdb.Close()

	// 组装服务
	mem := memory.NewStore(rdb, cfg.ChatMemoryWindow)
	scheduleSvc := service.NewScheduleService(pool)
	reminderSvc := service.NewReminderService(pool)
	conversationSvc := service.NewConversationService(pool, mem)
	messageSvc := service.NewMessageService(pool)

	completer := llm.NewClient(llm.Config{
		BaseURL: cfg.LLMBaseURL,
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	})
	dispatcher := tools.NewDispatcher(scheduleSvc)
	chatSvc := service.NewChatService(completer, mem, dispatcher, messageSvc, conversationSvc)

	// 路由
	engine := gin.Default()

	healthH := handler.NewHealthHandler(pool, rdb)
	chatH := handler.NewChatHandler(chatSvc, conversationSvc)
	ocrH := handler.NewOcrHandler(reminderSvc)
	scheduleH := handler.NewScheduleHandler(scheduleSvc)
	conversationH := handler.NewConversationHandler(conversationSvc, messageSvc)

	// 健康与就绪
	engine.GET("/healthz", healthH.Healthz)
	engine.GET("/readyz", healthH.Readyz)

	ai := engine.Group("/api/ai")
	{
		ai.POST("/chat", chatH.SendMessage)
		ai.POST("/chat/stream", chatH.SendMessageStream)
		ai.POST("/chat/new", chatH.StartNewConversation)

		ai.POST("/ocr/reminder", ocrH.CreateReminderFromOcr)
		ai.GET("/ocr/reminders/:userId", ocrH.GetUserReminders)
		ai.GET("/ocr/reminders/uncompleted/:userId", ocrH.GetUncompletedReminders)
		ai.GET("/ocr/reminders/conversation/:conversationId", ocrH.GetConversationReminders)
		ai.PUT("/ocr/reminder/complete/:reminderId", ocrH.MarkReminderCompleted)
		ai.DELETE("/ocr/reminder/delete/:reminderId", ocrH.DeleteReminder)
	}

	schedule := engine.Group("/api/schedule")
	{
		schedule.POST("/create", scheduleH.CreateSchedule)
		schedule.GET("/list/:userId", scheduleH.GetScheduleList)
		schedule.GET("/date", scheduleH.GetSchedulesByDate)
		schedule.GET("/range", scheduleH.GetSchedulesByRange)
		schedule.GET("/detail/:scheduleId", scheduleH.GetScheduleDetail)
		schedule.PUT("/update", scheduleH.UpdateSchedule)
		schedule.DELETE("/delete/:scheduleId", scheduleH.DeleteSchedule)
	}

	conversation := engine.Group("/api/conversation")
	{
		conversation.POST("/create", conversationH.CreateConversation)
		conversation.GET("/list/:userId", conversationH.GetConversationList)
		conversation.GET("/recent/:userId", conversationH.GetRecentConversations)
		conversation.GET("/detail/:conversationId", conversationH.GetConversationDetail)
		conversation.GET("/messages/:conversationId", conversationH.GetConversationMessages)
		conversation.PUT("/update-title", conversationH.UpdateConversationTitle)
		conversation.DELETE("/delete/:conversationId", conversationH.DeleteConversation)
		conversation.GET("/stats/:conversationId", conversationH.GetConversationStats)
	}

	log.Printf("starting api server on :%s", cfg.HTTPPort)
	if err := engine.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}

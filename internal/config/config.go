package config

import (
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	HTTPPort         string
	PostgresDSN      string
	RedisURL         string
	LLMBaseURL       string
	LLMAPIKey        string
	LLMModel         string
	LLMTimeout       time.Duration
	ChatMemoryWindow int
	NotifyQueue      string
}

func Load() AppConfig {
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=quickplan dbname=quickplan sslmode=disable"
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	llmBase := os.Getenv("LLM_BASE_URL")
	if llmBase == "" {
		llmBase = "https://dashscope.aliyuncs.com/compatible-mode/v1"
	}

	llmModel := os.Getenv("LLM_MODEL")
	if llmModel == "" {
		llmModel = "qwen2.5-7b-instruct"
	}

	timeout := 60 * time.Second
	if v := os.Getenv("LLM_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}

	// 聊天记忆窗口，超出后裁掉最早的消息
	window := 100
	if v := os.Getenv("CHAT_MEMORY_WINDOW"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			window = parsed
		}
	}

	queue := os.Getenv("NOTIFY_QUEUE")
	if queue == "" {
		queue = "default"
	}

	return AppConfig{
		HTTPPort:         port,
		PostgresDSN:      dsn,
		RedisURL:         redisURL,
		LLMBaseURL:       llmBase,
		LLMAPIKey:        os.Getenv("LLM_API_KEY"),
		LLMModel:         llmModel,
		LLMTimeout:       timeout,
		ChatMemoryWindow: window,
		NotifyQueue:      queue,
	}
}

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "qwen2.5-7b-instruct", req.Model)
		assert.False(t, req.Stream)
		require.Len(t, req.Messages, 2)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "你好！"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key", Model: "qwen2.5-7b-instruct"})
	got, err := c.Chat(context.Background(), []Message{
		{Role: "system", Content: "你是助手"},
		{Role: "user", Content: "你好"},
	})
	require.NoError(t, err)
	assert.Equal(t, "你好！", got)
}

func TestChatHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.Chat(context.Background(), []Message{{Role: "user", Content: "你好"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestChatNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.Chat(context.Background(), []Message{{Role: "user", Content: "你好"}})
	require.Error(t, err)
}

func TestChatStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)

		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: {\"choices\": [{\"delta\": {\"content\": \"今天\"}}]}\n\n"))
		w.Write([]byte("data: {\"choices\": [{\"delta\": {\"content\": \"天气\"}}]}\n\n"))
		w.Write([]byte(": keepalive 注释行应被忽略\n\n"))
		w.Write([]byte("data: 不是JSON的脏分片\n\n"))
		w.Write([]byte("data: {\"choices\": [{\"delta\": {\"content\": \"不错\"}}]}\n\n"))
		w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	var chunks []string
	got, err := c.ChatStream(context.Background(), []Message{{Role: "user", Content: "天气如何"}}, func(s string) {
		chunks = append(chunks, s)
	})
	require.NoError(t, err)
	assert.Equal(t, "今天天气不错", got)
	assert.Equal(t, []string{"今天", "天气", "不错"}, chunks)
}

func TestChatStreamNilCallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("data: {\"choices\": [{\"delta\": {\"content\": \"好\"}}]}\n\ndata: [DONE]\n\n"))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	got, err := c.ChatStream(context.Background(), []Message{{Role: "user", Content: "在吗"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "好", got)
}

func TestSystemPrompt(t *testing.T) {
	got := SystemPrompt("user-42", "2025-10-26")
	assert.Contains(t, got, "当前用户ID: user-42")
	assert.Contains(t, got, "今天的日期: 2025-10-26")
	assert.NotContains(t, got, "{{userId}}")
	assert.NotContains(t, got, "{{currentDate}}")
}

package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/kisara115522/quickplan-ai/internal/service"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chat          *service.ChatService
	conversations *service.ConversationService
}

func NewChatHandler(chat *service.ChatService, conversations *service.ConversationService) *ChatHandler {
	return &ChatHandler{chat: chat, conversations: conversations}
}

type chatRequest struct {
	Message  string `json:"message"`
	MemoryID string `json:"memoryId"`
	UserID   string `json:"userId"`
}

// POST /api/ai/chat
// 一轮非流式对话，工具调用在服务端解析执行
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "参数错误", "data": nil})
		return
	}
	if msg := validateChatRequest(req); msg != "" {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": msg, "data": nil})
		return
	}

	final, err := h.chat.Chat(c.Request.Context(), service.ChatParams{
		ConversationID: req.MemoryID,
		UserID:         req.UserID,
		Message:        req.Message,
	})
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": chatErrorMessage(err), "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": final, "data": nil})
}

// POST /api/ai/chat/stream
// SSE 流式对话：模型分片按原样下发，结束后以 result 事件下发最终文本
// （工具调用执行后最终文本可能与流出的分片不同）
func (h *ChatHandler) SendMessageStream(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "参数错误", "data": nil})
		return
	}
	if msg := validateChatRequest(req); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg, "data": nil})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	flusher, _ := c.Writer.(http.Flusher)
	onChunk := func(chunk string) {
		fmt.Fprintf(c.Writer, "data: %s\n\n", strings.ReplaceAll(chunk, "\n", "\ndata: "))
		if flusher != nil {
			flusher.Flush()
		}
	}

	final, err := h.chat.ChatStream(c.Request.Context(), service.ChatParams{
		ConversationID: req.MemoryID,
		UserID:         req.UserID,
		Message:        req.Message,
	}, onChunk)
	if err != nil {
		fmt.Fprintf(c.Writer, "event: error\ndata: %s\n\n", chatErrorMessage(err))
		if flusher != nil {
			flusher.Flush()
		}
		return
	}

	fmt.Fprintf(c.Writer, "event: result\ndata: %s\n\n", strings.ReplaceAll(final, "\n", "\ndata: "))
	fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	if flusher != nil {
		flusher.Flush()
	}
}

type newConversationRequest struct {
	UserID string `json:"userId"`
	Title  string `json:"title"`
}

// POST /api/ai/chat/new
func (h *ChatHandler) StartNewConversation(c *gin.Context) {
	var req newConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "参数错误", "data": nil})
		return
	}
	if req.UserID == "" {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "用户ID不能为空", "data": nil})
		return
	}

	conv, err := h.conversations.CreateConversation(c.Request.Context(), req.UserID, req.Title)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "创建会话失败: " + err.Error(), "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "创建成功", "data": conv})
}

func validateChatRequest(req chatRequest) string {
	if req.Message == "" {
		return "消息为空"
	}
	if req.MemoryID == "" {
		return "会话ID不能为空"
	}
	if req.UserID == "" {
		return "用户ID不能为空"
	}
	return ""
}

// chatErrorMessage 把底层错误翻译成用户可读的提示
func chatErrorMessage(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection reset"):
		return "AI服务连接中断，请重试"
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return "AI服务响应超时，请重试"
	default:
		return "抱歉，AI服务暂时不可用"
	}
}

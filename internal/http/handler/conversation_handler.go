package handler

import (
	"net/http"
	"strconv"

	"github.com/kisara115522/quickplan-ai/internal/service"

	"github.com/gin-gonic/gin"
)

type ConversationHandler struct {
	conversations *service.ConversationService
	messages      *service.MessageService
}

func NewConversationHandler(conversations *service.ConversationService, messages *service.MessageService) *ConversationHandler {
	return &ConversationHandler{conversations: conversations, messages: messages}
}

// POST /api/conversation/create
func (h *ConversationHandler) CreateConversation(c *gin.Context) {
	var req struct {
		UserID string `json:"userId"`
		Title  string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "用户ID不能为空", "data": nil})
		return
	}
	conv, err := h.conversations.CreateConversation(c.Request.Context(), req.UserID, req.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error(), "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "创建成功", "data": conv})
}

// GET /api/conversation/list/:userId
func (h *ConversationHandler) GetConversationList(c *gin.Context) {
	conversations, err := h.conversations.ListConversations(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error(), "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": conversations, "total": len(conversations), "message": nil})
}

// GET /api/conversation/recent/:userId?limit=10
func (h *ConversationHandler) GetRecentConversations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	conversations, err := h.conversations.RecentConversations(c.Request.Context(), c.Param("userId"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error(), "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": conversations, "total": len(conversations), "message": nil})
}

// GET /api/conversation/detail/:conversationId
func (h *ConversationHandler) GetConversationDetail(c *gin.Context) {
	conv, err := h.conversations.GetConversationByID(c.Request.Context(), c.Param("conversationId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error(), "data": nil})
		return
	}
	if conv == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "会话不存在", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": conv, "message": nil})
}

// GET /api/conversation/messages/:conversationId
func (h *ConversationHandler) GetConversationMessages(c *gin.Context) {
	messages, err := h.messages.ListMessages(c.Request.Context(), c.Param("conversationId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error(), "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": messages, "total": len(messages), "message": nil})
}

// PUT /api/conversation/update-title
func (h *ConversationHandler) UpdateConversationTitle(c *gin.Context) {
	var req struct {
		ConversationID string `json:"conversationId"`
		Title          string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ConversationID == "" || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "会话ID和标题不能为空", "data": nil})
		return
	}
	ok, err := h.conversations.UpdateTitle(c.Request.Context(), req.ConversationID, req.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error(), "data": nil})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "会话不存在", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "更新成功", "data": nil})
}

// DELETE /api/conversation/delete/:conversationId
func (h *ConversationHandler) DeleteConversation(c *gin.Context) {
	ok, err := h.conversations.DeleteConversation(c.Request.Context(), c.Param("conversationId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error(), "data": nil})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "会话不存在", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "删除成功", "data": nil})
}

// GET /api/conversation/stats/:conversationId
func (h *ConversationHandler) GetConversationStats(c *gin.Context) {
	conversationID := c.Param("conversationId")
	count, err := h.messages.CountMessages(c.Request.Context(), conversationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error(), "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"conversationId": conversationID, "messageCount": count},
		"message": nil,
	})
}

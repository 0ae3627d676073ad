package handler

import (
	"fmt"
	"net/http"

	"github.com/kisara115522/quickplan-ai/internal/service"

	"github.com/gin-gonic/gin"
)

type OcrHandler struct {
	reminders *service.ReminderService
}

func NewOcrHandler(reminders *service.ReminderService) *OcrHandler {
	return &OcrHandler{reminders: reminders}
}

type createReminderRequest struct {
	MemoryID string `json:"memoryId"`
	UserID   string `json:"userId"`
	OcrText  string `json:"ocrText"`
}

// POST /api/ai/ocr/reminder
// 解析 OCR 文本并批量创建提醒
func (h *OcrHandler) CreateReminderFromOcr(c *gin.Context) {
	var req createReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "参数错误", "data": nil})
		return
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "用户ID不能为空", "data": nil})
		return
	}
	if req.OcrText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "OCR文本不能为空", "data": nil})
		return
	}

	created, err := h.reminders.CreateFromText(c.Request.Context(), req.UserID, req.MemoryID, req.OcrText)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "创建提醒失败: " + err.Error(), "data": nil})
		return
	}

	if len(created) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "未识别到有效的提醒内容", "data": nil})
		return
	}

	resp := gin.H{
		"success": true,
		"message": fmt.Sprintf("成功创建 %d 条提醒", len(created)),
		// 最后一条作为主数据
		"data": created[len(created)-1],
	}
	if len(created) > 1 {
		resp["allReminders"] = created
		resp["createdCount"] = len(created)
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/ai/ocr/reminders/:userId
func (h *OcrHandler) GetUserReminders(c *gin.Context) {
	reminders, err := h.reminders.ListRemindersByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error(), "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": reminders, "total": len(reminders), "message": nil})
}

// GET /api/ai/ocr/reminders/uncompleted/:userId
func (h *OcrHandler) GetUncompletedReminders(c *gin.Context) {
	reminders, err := h.reminders.ListUncompletedReminders(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error(), "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": reminders, "total": len(reminders), "message": nil})
}

// GET /api/ai/ocr/reminders/conversation/:conversationId
func (h *OcrHandler) GetConversationReminders(c *gin.Context) {
	reminders, err := h.reminders.ListRemindersByConversation(c.Request.Context(), c.Param("conversationId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error(), "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": reminders, "total": len(reminders), "message": nil})
}

// PUT /api/ai/ocr/reminder/complete/:reminderId
func (h *OcrHandler) MarkReminderCompleted(c *gin.Context) {
	ok, err := h.reminders.MarkCompleted(c.Request.Context(), c.Param("reminderId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error(), "data": nil})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "标记失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "标记成功", "data": nil})
}

// DELETE /api/ai/ocr/reminder/delete/:reminderId
func (h *OcrHandler) DeleteReminder(c *gin.Context) {
	ok, err := h.reminders.DeleteReminder(c.Request.Context(), c.Param("reminderId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error(), "data": nil})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "删除失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "删除成功", "data": nil})
}

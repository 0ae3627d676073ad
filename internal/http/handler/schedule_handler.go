package handler

import (
	"net/http"
	"time"

	"github.com/kisara115522/quickplan-ai/internal/domain"
	"github.com/kisara115522/quickplan-ai/internal/service"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	schedules *service.ScheduleService
}

func NewScheduleHandler(schedules *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

type scheduleRequest struct {
	ID          string `json:"id"`
	UserID      string `json:"userId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Location    string `json:"location"`
	Date        string `json:"date" binding:"required"` // yyyy-MM-dd
	Time        string `json:"time" binding:"required"` // HH:mm
	Description string `json:"description"`
}

// POST /api/schedule/create
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "参数错误: " + err.Error(), "data": nil})
		return
	}
	sch, msg := req.toDomain()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg, "data": nil})
		return
	}

	if err := h.schedules.CreateSchedule(c.Request.Context(), sch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "创建日程失败: " + err.Error(), "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "创建成功", "data": sch})
}

// GET /api/schedule/list/:userId
func (h *ScheduleHandler) GetScheduleList(c *gin.Context) {
	schedules, err := h.schedules.ListSchedulesByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error(), "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": schedules, "total": len(schedules), "message": nil})
}

// GET /api/schedule/date?userId=xxx&date=yyyy-MM-dd
func (h *ScheduleHandler) GetSchedulesByDate(c *gin.Context) {
	userID := c.Query("userId")
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if userID == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "参数错误: 需要 userId 和 date(yyyy-MM-dd)", "data": nil})
		return
	}
	schedules, err := h.schedules.GetSchedulesByDate(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error(), "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": schedules, "total": len(schedules), "message": nil})
}

// GET /api/schedule/range?userId=xxx&startDate=yyyy-MM-dd&endDate=yyyy-MM-dd
func (h *ScheduleHandler) GetSchedulesByRange(c *gin.Context) {
	userID := c.Query("userId")
	start, err1 := time.Parse("2006-01-02", c.Query("startDate"))
	end, err2 := time.Parse("2006-01-02", c.Query("endDate"))
	if userID == "" || err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "参数错误: 需要 userId、startDate 和 endDate(yyyy-MM-dd)", "data": nil})
		return
	}
	schedules, err := h.schedules.GetSchedulesByDateRange(c.Request.Context(), userID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error(), "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": schedules, "total": len(schedules), "message": nil})
}

// GET /api/schedule/detail/:scheduleId
func (h *ScheduleHandler) GetScheduleDetail(c *gin.Context) {
	sch, err := h.schedules.GetScheduleByID(c.Request.Context(), c.Param("scheduleId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error(), "data": nil})
		return
	}
	if sch == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "日程不存在", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": sch, "message": nil})
}

// PUT /api/schedule/update
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "参数错误: " + err.Error(), "data": nil})
		return
	}
	if req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "日程ID不能为空", "data": nil})
		return
	}
	sch, msg := req.toDomain()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg, "data": nil})
		return
	}

	ok, err := h.schedules.UpdateSchedule(c.Request.Context(), sch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "更新日程失败: " + err.Error(), "data": nil})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "日程不存在", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "更新成功", "data": sch})
}

// DELETE /api/schedule/delete/:scheduleId
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	ok, err := h.schedules.DeleteSchedule(c.Request.Context(), c.Param("scheduleId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error(), "data": nil})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "日程不存在", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "删除成功", "data": nil})
}

// toDomain 校验日期时间格式并转为领域对象
func (r scheduleRequest) toDomain() (*domain.Schedule, string) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return nil, "日期格式错误, 应为 yyyy-MM-dd"
	}
	at, err := time.Parse("15:04", r.Time)
	if err != nil {
		return nil, "时间格式错误, 应为 HH:mm"
	}
	return &domain.Schedule{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Location:    r.Location,
		Date:        date,
		Time:        at.Format("15:04"),
		Description: r.Description,
	}, ""
}

// Package tools 把提取出的工具调用校验并路由到日程领域操作
package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kisara115522/quickplan-ai/internal/domain"
	"github.com/kisara115522/quickplan-ai/internal/extract"
)

// DefaultLocation 地点缺省值
const DefaultLocation = "未指定"

// ScheduleStore 调度器依赖的日程持久化能力
// GetScheduleByID 在记录不存在时返回 (nil, nil)
type ScheduleStore interface {
	CreateSchedule(ctx context.Context, s *domain.Schedule) error
	GetScheduleByID(ctx context.Context, id string) (*domain.Schedule, error)
	DeleteSchedule(ctx context.Context, id string) (bool, error)
	GetSchedulesByDate(ctx context.Context, userID string, date time.Time) ([]domain.Schedule, error)
}

// Result 一次调度的对外结果，调度器不向外抛任何错误
type Result struct {
	OK      bool
	Message string
}

type Dispatcher struct {
	store ScheduleStore
}

func NewDispatcher(store ScheduleStore) *Dispatcher {
	return &Dispatcher{store: store}
}

// Dispatch 按动作名路由到对应的日程操作
// requestingUserID 是发起请求的用户，addSchedule 缺 userId 时用它兜底
// ActionNone 不做任何事，返回零值 Result，调用方应原样返回模型回复
func (d *Dispatcher) Dispatch(ctx context.Context, act extract.Action, requestingUserID string) Result {
	switch act.Name {
	case extract.ActionAddSchedule:
		return d.addSchedule(ctx, act.Args, requestingUserID)
	case extract.ActionGetSchedulesByDate:
		return d.getSchedulesByDate(ctx, act.Args)
	case extract.ActionDeleteSchedule:
		return d.deleteSchedule(ctx, act.Args)
	default:
		return Result{}
	}
}

func (d *Dispatcher) addSchedule(ctx context.Context, args map[string]string, requestingUserID string) Result {
	userID := args["userId"]
	if userID == "" {
		userID = requestingUserID
	}
	title := strings.TrimSpace(args["title"])
	dateStr := args["date"]
	timeStr := args["time"]

	if missing := firstMissing(map[string]string{"title": title, "date": dateStr, "time": timeStr}); missing != "" {
		return Result{Message: "❌ 缺少必需参数: " + missing}
	}

	location := strings.TrimSpace(args["location"])
	if location == "" {
		location = DefaultLocation
	}
	description := args["description"]

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return Result{Message: "❌ 时间格式错误,日期格式: yyyy-MM-dd (如2025-10-30), 时间格式: HH:mm (如14:00)"}
	}
	at, err := time.Parse("15:04", timeStr)
	if err != nil {
		return Result{Message: "❌ 时间格式错误,日期格式: yyyy-MM-dd (如2025-10-30), 时间格式: HH:mm (如14:00)"}
	}

	s := &domain.Schedule{
		UserID:      userID,
		Title:       title,
		Location:    location,
		Date:        date,
		Time:        at.Format("15:04"),
		Description: description,
	}
	if err := d.store.CreateSchedule(ctx, s); err != nil {
		return Result{Message: "❌ 添加日程失败: " + err.Error()}
	}

	return Result{
		OK: true,
		Message: fmt.Sprintf("✅ 日程添加成功!\n标题: %s\n日期: %s\n时间: %s\n地点: %s",
			title, dateStr, at.Format("15:04"), location),
	}
}

func (d *Dispatcher) getSchedulesByDate(ctx context.Context, args map[string]string) Result {
	userID := args["userId"]
	dateStr := args["date"]
	if missing := firstMissing(map[string]string{"userId": userID, "date": dateStr}); missing != "" {
		return Result{Message: "❌ 缺少必需参数: " + missing}
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return Result{Message: "❌ 时间格式错误,日期格式: yyyy-MM-dd (如2025-10-30)"}
	}

	schedules, err := d.store.GetSchedulesByDate(ctx, userID, date)
	if err != nil {
		return Result{Message: "❌ 查询日程失败: " + err.Error()}
	}

	if len(schedules) == 0 {
		return Result{OK: true, Message: fmt.Sprintf("📅 %s 没有安排任何日程", dateStr)}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 %s 的日程安排:\n\n", dateStr)
	for i, s := range schedules {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s.Title)
		fmt.Fprintf(&b, "   时间: %s\n", s.Time)
		if s.Location != "" {
			fmt.Fprintf(&b, "   地点: %s\n", s.Location)
		}
		b.WriteString("\n")
	}
	return Result{OK: true, Message: b.String()}
}

func (d *Dispatcher) deleteSchedule(ctx context.Context, args map[string]string) Result {
	userID := args["userId"]
	scheduleID := args["scheduleId"]
	if missing := firstMissing(map[string]string{"userId": userID, "scheduleId": scheduleID}); missing != "" {
		return Result{Message: "❌ 缺少必需参数: " + missing}
	}

	s, err := d.store.GetScheduleByID(ctx, scheduleID)
	if err != nil {
		return Result{Message: "❌ 删除日程失败: " + err.Error()}
	}
	if s == nil {
		return Result{Message: "❌ 日程不存在"}
	}
	// 所有权校验：不允许替他人删除日程
	if s.UserID != userID {
		return Result{Message: "❌ 无权删除此日程"}
	}

	ok, err := d.store.DeleteSchedule(ctx, scheduleID)
	if err != nil {
		return Result{Message: "❌ 删除日程失败: " + err.Error()}
	}
	if !ok {
		return Result{Message: "❌ 删除日程失败"}
	}
	return Result{OK: true, Message: fmt.Sprintf("✅ 已删除日程: %s", s.Title)}
}

// firstMissing 返回第一个为空的必需参数名，参数齐全时返回空串
func firstMissing(required map[string]string) string {
	// map 遍历无序，固定顺序逐个检查
	for _, k := range []string{"title", "date", "time", "userId", "scheduleId"} {
		if v, ok := required[k]; ok && v == "" {
			return k
		}
	}
	return ""
}

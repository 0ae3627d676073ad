package tools

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kisara115522/quickplan-ai/internal/domain"
	"github.com/kisara115522/quickplan-ai/internal/extract"
)

// fakeStore 内存版 ScheduleStore，按 ID 存取
type fakeStore struct {
	schedules map[string]*domain.Schedule
	created   []*domain.Schedule
	deleted   []string
	err       error // 非空时所有方法返回该错误
}

func newFakeStore() *fakeStore {
	return &fakeStore{schedules: map[string]*domain.Schedule{}}
}

func (f *fakeStore) CreateSchedule(_ context.Context, s *domain.Schedule) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, s)
	return nil
}

func (f *fakeStore) GetScheduleByID(_ context.Context, id string) (*domain.Schedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.schedules[id], nil
}

func (f *fakeStore) DeleteSchedule(_ context.Context, id string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.schedules[id]; !ok {
		return false, nil
	}
	delete(f.schedules, id)
	f.deleted = append(f.deleted, id)
	return true, nil
}

func (f *fakeStore) GetSchedulesByDate(_ context.Context, userID string, date time.Time) ([]domain.Schedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Schedule
	for _, s := range f.schedules {
		if s.UserID == userID && s.Date.Equal(date) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func addAction(args map[string]string) extract.Action {
	return extract.Action{Name: extract.ActionAddSchedule, Args: args}
}

func TestDispatchAddSchedule(t *testing.T) {
	store := newFakeStore()
	d := NewDispatcher(store)

	res := d.Dispatch(context.Background(), addAction(map[string]string{
		"title": "开会", "date": "2025-10-31", "time": "14:00", "location": "会议室A",
	}), "user-1")

	assert.True(t, res.OK)
	assert.Contains(t, res.Message, "✅ 日程添加成功!")
	assert.Contains(t, res.Message, "标题: 开会")
	assert.Contains(t, res.Message, "地点: 会议室A")

	require.Len(t, store.created, 1)
	s := store.created[0]
	assert.Equal(t, "user-1", s.UserID, "缺省使用发起请求的用户")
	assert.Equal(t, "开会", s.Title)
	assert.Equal(t, "14:00", s.Time)
	assert.Equal(t, time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC), s.Date)
}

// 未提供地点时落到缺省值，并体现在回执里
func TestDispatchAddScheduleDefaultLocation(t *testing.T) {
	store := newFakeStore()
	d := NewDispatcher(store)

	res := d.Dispatch(context.Background(), addAction(map[string]string{
		"title": "开会", "date": "2025-10-31", "time": "14:00",
	}), "user-1")

	assert.True(t, res.OK)
	assert.Contains(t, res.Message, "地点: "+DefaultLocation)
	require.Len(t, store.created, 1)
	assert.Equal(t, DefaultLocation, store.created[0].Location)
}

func TestDispatchAddScheduleMissingArgs(t *testing.T) {
	d := NewDispatcher(newFakeStore())

	cases := []struct {
		args    map[string]string
		missing string
	}{
		{map[string]string{"date": "2025-10-31", "time": "14:00"}, "title"},
		{map[string]string{"title": "开会", "time": "14:00"}, "date"},
		{map[string]string{"title": "开会", "date": "2025-10-31"}, "time"},
		{map[string]string{"title": "  ", "date": "2025-10-31", "time": "14:00"}, "title"},
	}
	for _, tc := range cases {
		res := d.Dispatch(context.Background(), addAction(tc.args), "user-1")
		assert.False(t, res.OK)
		assert.Equal(t, "❌ 缺少必需参数: "+tc.missing, res.Message)
	}
}

func TestDispatchAddScheduleBadFormat(t *testing.T) {
	store := newFakeStore()
	d := NewDispatcher(store)

	for _, args := range []map[string]string{
		{"title": "开会", "date": "2025/10/31", "time": "14:00"},
		{"title": "开会", "date": "2025-10-31", "time": "下午两点"},
		{"title": "开会", "date": "10-31", "time": "14:00"},
	} {
		res := d.Dispatch(context.Background(), addAction(args), "user-1")
		assert.False(t, res.OK)
		assert.True(t, strings.HasPrefix(res.Message, "❌ 时间格式错误"), res.Message)
	}
	assert.Empty(t, store.created, "格式错误时不应写库")
}

func TestDispatchAddScheduleStoreError(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("db down")
	d := NewDispatcher(store)

	res := d.Dispatch(context.Background(), addAction(map[string]string{
		"title": "开会", "date": "2025-10-31", "time": "14:00",
	}), "user-1")

	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "❌ 添加日程失败")
}

func TestDispatchGetSchedulesByDate(t *testing.T) {
	store := newFakeStore()
	store.schedules["s1"] = &domain.Schedule{
		ID: "s1", UserID: "user-1", Title: "晨会",
		Date: time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC), Time: "09:00", Location: "大会议室",
	}
	d := NewDispatcher(store)

	res := d.Dispatch(context.Background(), extract.Action{
		Name: extract.ActionGetSchedulesByDate,
		Args: map[string]string{"userId": "user-1", "date": "2025-10-31"},
	}, "user-1")

	assert.True(t, res.OK)
	assert.Contains(t, res.Message, "📅 2025-10-31 的日程安排:")
	assert.Contains(t, res.Message, "1. 晨会")
	assert.Contains(t, res.Message, "时间: 09:00")
	assert.Contains(t, res.Message, "地点: 大会议室")
}

func TestDispatchGetSchedulesByDateEmpty(t *testing.T) {
	d := NewDispatcher(newFakeStore())

	res := d.Dispatch(context.Background(), extract.Action{
		Name: extract.ActionGetSchedulesByDate,
		Args: map[string]string{"userId": "user-1", "date": "2025-10-31"},
	}, "user-1")

	assert.True(t, res.OK)
	assert.Equal(t, "📅 2025-10-31 没有安排任何日程", res.Message)
}

func TestDispatchDeleteSchedule(t *testing.T) {
	store := newFakeStore()
	store.schedules["s1"] = &domain.Schedule{ID: "s1", UserID: "user-1", Title: "晨会"}
	d := NewDispatcher(store)

	res := d.Dispatch(context.Background(), extract.Action{
		Name: extract.ActionDeleteSchedule,
		Args: map[string]string{"userId": "user-1", "scheduleId": "s1"},
	}, "user-1")

	assert.True(t, res.OK)
	assert.Equal(t, "✅ 已删除日程: 晨会", res.Message)
	assert.Equal(t, []string{"s1"}, store.deleted)
}

func TestDispatchDeleteScheduleNotFound(t *testing.T) {
	d := NewDispatcher(newFakeStore())

	res := d.Dispatch(context.Background(), extract.Action{
		Name: extract.ActionDeleteSchedule,
		Args: map[string]string{"userId": "user-1", "scheduleId": "nope"},
	}, "user-1")

	assert.False(t, res.OK)
	assert.Equal(t, "❌ 日程不存在", res.Message)
}

// 不允许替他人删除日程，且拒绝时不能发生删除
func TestDispatchDeleteScheduleOwnership(t *testing.T) {
	store := newFakeStore()
	store.schedules["s1"] = &domain.Schedule{ID: "s1", UserID: "user-2", Title: "别人的会"}
	d := NewDispatcher(store)

	res := d.Dispatch(context.Background(), extract.Action{
		Name: extract.ActionDeleteSchedule,
		Args: map[string]string{"userId": "user-1", "scheduleId": "s1"},
	}, "user-1")

	assert.False(t, res.OK)
	assert.Equal(t, "❌ 无权删除此日程", res.Message)
	assert.Empty(t, store.deleted)
	assert.Contains(t, store.schedules, "s1")
}

func TestDispatchNoneIsNoop(t *testing.T) {
	d := NewDispatcher(newFakeStore())
	res := d.Dispatch(context.Background(), extract.None(), "user-1")
	assert.False(t, res.OK)
	assert.Empty(t, res.Message)
}

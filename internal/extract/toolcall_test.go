package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractToolCallStandardJSON(t *testing.T) {
	reply := `好的，我来帮你添加日程。{"name": "addSchedule", "arguments": {"title": "开会", "date": "2025-10-31", "time": "14:00"}}`
	got := ExtractToolCall(reply)

	assert.Equal(t, ActionAddSchedule, got.Name)
	assert.Equal(t, "开会", got.Args["title"])
	assert.Equal(t, "2025-10-31", got.Args["date"])
	assert.Equal(t, "14:00", got.Args["time"])
}

// 模型丢掉外层大括号时补上再解析
func TestExtractToolCallMissingOuterBraces(t *testing.T) {
	reply := `"name": "deleteSchedule", "arguments": {"scheduleId": "abc-123"}`
	got := ExtractToolCall(reply)

	assert.Equal(t, ActionDeleteSchedule, got.Name)
	assert.Equal(t, "abc-123", got.Args["scheduleId"])
}

// arguments 键名写错时仍能救回工具名
func TestExtractToolCallLooseBlock(t *testing.T) {
	reply := `{"name": "getSchedulesByDate", "args": {"date": "2025-10-31"}}`
	got := ExtractToolCall(reply)

	assert.Equal(t, ActionGetSchedulesByDate, got.Name)
	assert.Empty(t, got.Args)
}

// 尾逗号等轻微损坏交给 jsonrepair 修复
func TestExtractToolCallRepairsBrokenJSON(t *testing.T) {
	reply := `{"name": "addSchedule", "arguments": {"title": "开会",}}`
	got := ExtractToolCall(reply)

	assert.Equal(t, ActionAddSchedule, got.Name)
	assert.Equal(t, "开会", got.Args["title"])
}

func TestExtractToolCallNormalizesArgTypes(t *testing.T) {
	reply := `{"name": "addSchedule", "arguments": {"title": "开会", "priority": 3, "remind": true, "note": null}}`
	got := ExtractToolCall(reply)

	require.Equal(t, ActionAddSchedule, got.Name)
	assert.Equal(t, "3", got.Args["priority"])
	assert.Equal(t, "true", got.Args["remind"])
	_, hasNote := got.Args["note"]
	assert.False(t, hasNote, "null 参数应被丢弃")
}

func TestExtractToolCallPlainTextReturnsNone(t *testing.T) {
	for _, reply := range []string{
		"今天天气不错，适合出门散步。",
		"我可以帮你调用 addSchedule 工具来添加日程。", // 提到工具名但没有 JSON
		"",
	} {
		got := ExtractToolCall(reply)
		assert.Equal(t, ActionNone, got.Name, reply)
		assert.Empty(t, got.Args, reply)
	}
}

func TestExtractToolCallUnknownToolName(t *testing.T) {
	// JSON 里是未知工具，正文里提到已知工具名也不能误判
	reply := `deleteSchedule 我做不到。{"name": "sendEmail", "arguments": {"to": "a@b.c"}}`
	got := ExtractToolCall(reply)
	assert.Equal(t, ActionNone, got.Name)
}

func TestExtractToolCallNoKnownNameInJSON(t *testing.T) {
	reply := `{"name": "foo", "arguments": {"x": "1"}}`
	got := ExtractToolCall(reply)
	assert.Equal(t, ActionNone, got.Name)
}

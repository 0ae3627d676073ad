package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultTitle 提取不到标题时的兜底标题
const DefaultTitle = "待办事项"

var (
	// 完整日期时间，如 "2025-10-31 14:00"、"2025/10/31 9:05"
	strictTimeRe = regexp.MustCompile(`(\d{4}[-/]\d{1,2}[-/]\d{1,2})\s+(\d{1,2}):(\d{2})`)
	// 相对时间，如 "明天下午3点"、"明早9点"、"晚上8点30分"、"15:30"
	looseTimeRe = regexp.MustCompile(`(明天|后天|明早|明晚)?\s*(上午|下午|晚上|中午|早上)?(\d{1,2})[点时:]?(\d{0,2})分?`)
)

// Candidate 从单行文本里解析出的待确认提醒
type Candidate struct {
	Title      string     // 提醒标题，非空
	RemindAt   *time.Time // 提醒时间，未识别到时为空
	SourceLine string     // 清理后的原始行，用于追溯
}

// ParseCandidates 解析 OCR 文本为候选提醒列表
// 每个非空行恰好产出一个候选：
// 先尝试完整日期时间，再尝试相对时间，都不中则整行作为标题。
// 宁可多收也不漏收：纯噪声行也保留为无时间的候选，由用户自行删除。
func ParseCandidates(raw string, ref time.Time) []Candidate {
	lines := SegmentLines(raw)
	out := make([]Candidate, 0, len(lines))
	for _, line := range lines {
		out = append(out, parseLine(line, ref))
	}
	return out
}

// parseLine 按 严格格式 → 宽松格式 → 仅标题 的顺序解析一行
// 时间解析失败不致命：整行退化为无时间的标题
func parseLine(line string, ref time.Time) Candidate {
	if m := strictTimeRe.FindStringSubmatch(line); m != nil {
		hour, _ := strconv.Atoi(m[2])
		minute, _ := strconv.Atoi(m[3])
		tok := Token{ExplicitDate: m[1], Hour: hour, Minute: minute}
		t, err := Resolve(tok, ref)
		if err != nil {
			// 日期不合法（如 13 月），保留整行作为标题
			return Candidate{Title: orDefault(line), SourceLine: line}
		}
		title := strings.TrimSpace(strictTimeRe.ReplaceAllString(line, ""))
		return Candidate{Title: orDefault(title), RemindAt: &t, SourceLine: line}
	}

	if m := looseTimeRe.FindStringSubmatch(line); m != nil {
		day, period := m[1], m[2]
		hour, _ := strconv.Atoi(m[3])
		minute := 0
		if m[4] != "" {
			minute, _ = strconv.Atoi(m[4])
		}

		offset := 0
		switch day {
		case "明天", "明早", "明晚":
			offset = 1
		case "后天":
			offset = 2
		}

		tok := Token{
			DayOffset: offset,
			Hour:      hour,
			Minute:    minute,
			PM:        period == "下午" || period == "晚上",
		}
		t, err := Resolve(tok, ref)
		if err != nil {
			return Candidate{Title: orDefault(line), SourceLine: line}
		}
		title := strings.TrimSpace(looseTimeRe.ReplaceAllString(line, ""))
		return Candidate{Title: orDefault(title), RemindAt: &t, SourceLine: line}
	}

	return Candidate{Title: orDefault(line), SourceLine: line}
}

func orDefault(title string) string {
	if title == "" {
		return DefaultTitle
	}
	return title
}

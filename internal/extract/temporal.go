// Package extract 从非结构化文本中提取日程信息
// 包含时间表达式解析、OCR 文本分行、候选提醒解析和工具调用提取
package extract

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate 匹配到的文本无法解析为合法日历日期
var ErrInvalidDate = errors.New("invalid calendar date")

// Token 正则匹配得到的时间表达式中间结果，不做持久化
type Token struct {
	DayOffset    int    // 相对天数: 今天=0, 明天=1, 后天=2
	Hour         int    // 小时，OCR 识别可能超出 23
	Minute       int    // 分钟
	PM           bool   // 下午/晚上标记，hour<12 时 +12
	ExplicitDate string // 显式日期，如 "2025-10-31" 或 "2025/10/31"，为空表示相对日期
}

// Resolve 将 Token 相对参考时间解析为具体时间
// 先应用下午/晚上 +12 调整，再把 hour>=24 的溢出折算为天数，
// 保证结果小时始终落在 [0,23]（OCR 可能识别出 24、25 这类非法小时）
func Resolve(tok Token, ref time.Time) (time.Time, error) {
	var date time.Time
	if tok.ExplicitDate != "" {
		// 支持不带前导零的日期，斜杠统一换成横杠
		normalized := strings.ReplaceAll(tok.ExplicitDate, "/", "-")
		d, err := time.ParseInLocation("2006-1-2", normalized, ref.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, tok.ExplicitDate)
		}
		date = d
	} else {
		date = time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
		date = date.AddDate(0, 0, tok.DayOffset)
	}

	hour := tok.Hour
	if tok.PM && hour < 12 {
		hour += 12
	}
	// 溢出的小时折算到日期上
	if hour >= 24 {
		date = date.AddDate(0, 0, hour/24)
		hour = hour % 24
	}

	if tok.Minute < 0 || tok.Minute > 59 {
		return time.Time{}, fmt.Errorf("%w: minute %d", ErrInvalidDate, tok.Minute)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, tok.Minute, 0, 0, ref.Location()), nil
}

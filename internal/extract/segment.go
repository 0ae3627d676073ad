package extract

import (
	"regexp"
	"strings"
)

// 行首的编号/项目符号前缀，如 "1. "、"2、"、"- "、"• "
// 编号后必须跟 "."/"、" 分隔符，避免误吞 "2025-10-31" 这类日期开头
var bulletPrefixRe = regexp.MustCompile(`^(?:(?:\d{1,2}[.、]|[-•*])\s*)+`)

// SegmentLines 把原始 OCR 文本切分为干净的候选行
// 兼容 \n 和 \r\n 两种换行，丢弃全空白行，去掉行首编号前缀，保持原文顺序
func SegmentLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(bulletPrefixRe.ReplaceAllString(line, ""))
		out = append(out, line)
	}
	return out
}

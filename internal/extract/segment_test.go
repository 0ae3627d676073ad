package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentLines(t *testing.T) {
	raw := "1. 买牛奶\n\n2、 取快递\r\n- 交房租\n• 写周报\n   \n* 健身"
	got := SegmentLines(raw)
	assert.Equal(t, []string{"买牛奶", "取快递", "交房租", "写周报", "健身"}, got)
}

func TestSegmentLinesKeepsDatePrefix(t *testing.T) {
	// 编号前缀必须跟 "."/"、"，日期开头的行不能被误吞
	got := SegmentLines("2025-10-31 14:00 女篮换届大会")
	assert.Equal(t, []string{"2025-10-31 14:00 女篮换届大会"}, got)
}

func TestSegmentLinesNestedBullets(t *testing.T) {
	// 多重前缀一次去掉
	got := SegmentLines("- 1. 开会")
	assert.Equal(t, []string{"开会"}, got)
}

func TestSegmentLinesEmptyInput(t *testing.T) {
	assert.Empty(t, SegmentLines(""))
	assert.Empty(t, SegmentLines("  \n\r\n\t\n"))
}

// 重复切分不改变结果
func TestSegmentLinesIdempotent(t *testing.T) {
	raw := "1. 买牛奶\n2. 取快递"
	once := SegmentLines(raw)
	twice := SegmentLines(once[0] + "\n" + once[1])
	assert.Equal(t, once, twice)
}

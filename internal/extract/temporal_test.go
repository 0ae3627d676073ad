package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveExplicitDate(t *testing.T) {
	ref := time.Date(2025, 10, 26, 9, 30, 0, 0, time.UTC)

	got, err := Resolve(Token{ExplicitDate: "2025-10-31", Hour: 14, Minute: 0}, ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 31, 14, 0, 0, 0, time.UTC), got)

	// 斜杠分隔和不带前导零的日期
	got, err = Resolve(Token{ExplicitDate: "2025/3/5", Hour: 8, Minute: 5}, ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 5, 8, 5, 0, 0, time.UTC), got)
}

func TestResolveInvalidDate(t *testing.T) {
	ref := time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC)

	for _, d := range []string{"2025-13-01", "2025-02-30", "2025-11-31"} {
		_, err := Resolve(Token{ExplicitDate: d, Hour: 9, Minute: 0}, ref)
		assert.ErrorIs(t, err, ErrInvalidDate, "date %s", d)
	}
}

func TestResolveRelativeOffset(t *testing.T) {
	ref := time.Date(2025, 10, 26, 18, 45, 0, 0, time.UTC)

	got, err := Resolve(Token{DayOffset: 1, Hour: 9, Minute: 0}, ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 27, 9, 0, 0, 0, time.UTC), got)

	got, err = Resolve(Token{DayOffset: 2, Hour: 20, Minute: 15}, ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 28, 20, 15, 0, 0, time.UTC), got)
}

func TestResolveAfternoonShift(t *testing.T) {
	ref := time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC)

	got, err := Resolve(Token{Hour: 3, PM: true}, ref)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Hour())

	// 已经是 24 小时制的不再加 12
	got, err = Resolve(Token{Hour: 15, PM: true}, ref)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Hour())
}

// OCR 可能把小时识别成 24、25 甚至 28，溢出部分折算成天数
func TestResolveHourOverflow(t *testing.T) {
	ref := time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		hour     int
		wantDay  int
		wantHour int
	}{
		{24, 27, 0},
		{25, 27, 1},
		{26, 27, 2},
		{48, 28, 0},
		{50, 28, 2},
	}
	for _, tc := range cases {
		got, err := Resolve(Token{Hour: tc.hour, Minute: 30}, ref)
		require.NoError(t, err)
		assert.Equal(t, tc.hour%24, got.Hour(), "hour %d", tc.hour)
		assert.Equal(t, tc.wantHour, got.Hour(), "hour %d", tc.hour)
		assert.Equal(t, tc.wantDay, got.Day(), "hour %d", tc.hour)
	}
}

// 下午标记先加 12，再做溢出折算
func TestResolveShiftThenOverflow(t *testing.T) {
	ref := time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC)

	// OCR 误识别出的 "下午13点"：13 不小于 12，不加 12，结果 13 点
	got, err := Resolve(Token{Hour: 13, PM: true}, ref)
	require.NoError(t, err)
	assert.Equal(t, 13, got.Hour())
	assert.Equal(t, 26, got.Day())
}

func TestResolveExplicitDateOverflowAdvancesDate(t *testing.T) {
	ref := time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC)

	got, err := Resolve(Token{ExplicitDate: "2025-10-31", Hour: 25, Minute: 10}, ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 1, 1, 10, 0, 0, time.UTC), got)
}

func TestResolveInvalidMinute(t *testing.T) {
	ref := time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC)
	_, err := Resolve(Token{Hour: 9, Minute: 75}, ref)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

package memory

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kisara115522/quickplan-ai/internal/llm"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "quickplan:chat:memory:c1", Key("c1"))
}

func TestTrim(t *testing.T) {
	msgs := make([]llm.Message, 0, 120)
	for i := 0; i < 120; i++ {
		msgs = append(msgs, llm.Message{Role: "user", Content: strconv.Itoa(i)})
	}

	got := Trim(msgs, 100)
	assert.Len(t, got, 100)
	// 裁掉的是最早的消息
	assert.Equal(t, "20", got[0].Content)
	assert.Equal(t, "119", got[len(got)-1].Content)
}

func TestTrimWithinWindow(t *testing.T) {
	msgs := []llm.Message{{Role: "user", Content: "a"}, {Role: "assistant", Content: "b"}}
	assert.Equal(t, msgs, Trim(msgs, 100))
	assert.Equal(t, msgs, Trim(msgs, 0), "window 为 0 时不裁剪")
	assert.Empty(t, Trim(nil, 100))
}

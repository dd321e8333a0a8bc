package discord

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTypingDelay(t *testing.T) {
	assert.Equal(t, 300*time.Millisecond, typingDelay("ten chars!"))
	assert.Equal(t, 2500*time.Millisecond, typingDelay(strings.Repeat("x", 500)))
	assert.Zero(t, typingDelay(""))
}

func TestSplitMessage_ShortPassesThrough(t *testing.T) {
	assert.Equal(t, []string{"gm"}, splitMessage("gm", 2000))
	assert.Empty(t, splitMessage("", 2000))
}

func TestSplitMessage_PrefersNewlineBoundary(t *testing.T) {
	msg := strings.Repeat("a", 10) + "\n" + strings.Repeat("b", 10)
	chunks := splitMessage(msg, 15)
	assert.Equal(t, []string{strings.Repeat("a", 10), strings.Repeat("b", 10)}, chunks)
}

func TestSplitMessage_HardCutWithoutNewline(t *testing.T) {
	msg := strings.Repeat("a", 25)
	chunks := splitMessage(msg, 10)
	assert.Equal(t, []string{
		strings.Repeat("a", 10),
		strings.Repeat("a", 10),
		strings.Repeat("a", 5),
	}, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 10)
	}
}

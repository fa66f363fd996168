package whatsapp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessageShortBodyPassesThrough(t *testing.T) {
	assert.Equal(t, []string{"hola"}, SplitMessage("hola", MaxMessageLength))
	assert.Equal(t, []string{""}, SplitMessage("", MaxMessageLength))
}

func TestSplitMessageBreaksAtNewlineBeforeBound(t *testing.T) {
	first := strings.Repeat("a", 800)
	second := strings.Repeat("b", 500)
	body := first + "\n" + second

	chunks := SplitMessage(body, MaxMessageLength)
	require.Len(t, chunks, 2)
	assert.Equal(t, first, chunks[0])
	assert.Equal(t, second, chunks[1])
}

func TestSplitMessageHardCutsWithoutNewline(t *testing.T) {
	body := strings.Repeat("x", 1850)

	chunks := SplitMessage(body, MaxMessageLength)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 900)
	assert.Len(t, chunks[1], 900)
	assert.Len(t, chunks[2], 50)
	assert.Equal(t, body, strings.Join(chunks, ""))
}

func TestSplitMessageKeepsEveryChunkUnderBound(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString(strings.Repeat("línea con acentos ", 4))
		b.WriteString("\n")
	}
	body := b.String()

	chunks := SplitMessage(body, MaxMessageLength)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len([]rune(chunk)), MaxMessageLength)
	}
}

func TestSplitMessageCountsRunesNotBytes(t *testing.T) {
	// Multibyte characters: 900 runes of "ñ" is 1800 bytes but one chunk.
	body := strings.Repeat("ñ", MaxMessageLength)
	chunks := SplitMessage(body, MaxMessageLength)
	assert.Equal(t, []string{body}, chunks)
}

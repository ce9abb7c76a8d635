package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitChunksShortTextIsUntouched(t *testing.T) {
	chunks := splitChunks("hello world", maxMessageLength)
	assert.Equal(t, []string{"hello world"}, chunks)
}

func TestSplitChunksPrefersNewline(t *testing.T) {
	first := strings.Repeat("a", 1000)
	second := strings.Repeat("b", 1500)
	chunks := splitChunks(first+"\n"+second, maxMessageLength)

	require.Len(t, chunks, 2)
	assert.Equal(t, first, chunks[0])
	assert.Equal(t, second, chunks[1])
}

func TestSplitChunksFallsBackToSpace(t *testing.T) {
	first := strings.Repeat("a", 2000)
	second := strings.Repeat("b", 500)
	chunks := splitChunks(first+" "+second, maxMessageLength)

	require.Len(t, chunks, 2)
	assert.Equal(t, first, chunks[0])
	assert.Equal(t, second, chunks[1])
}

func TestSplitChunksHardCutWithoutDelimiters(t *testing.T) {
	text := strings.Repeat("x", 5000)
	chunks := splitChunks(text, maxMessageLength)

	require.Len(t, chunks, 3)
	var rebuilt strings.Builder
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len([]rune(chunk)), maxMessageLength)
		rebuilt.WriteString(chunk)
	}
	// No non-whitespace characters are lost.
	assert.Equal(t, text, rebuilt.String())
}

func TestSplitChunksTrimsWhitespace(t *testing.T) {
	chunks := splitChunks("  padded  ", maxMessageLength)
	assert.Equal(t, []string{"padded"}, chunks)
}

package telegram

import (
	"strings"
)

// maxMessageLength is the outbound length threshold; longer texts are split
// into multiple messages.
const maxMessageLength = 2048

// splitChunks splits text into trimmed chunks of at most limit runes.
// Preferred split point is the latest newline at or before the limit, then
// the latest space, then a hard cut at the limit.
func splitChunks(text string, limit int) []string {
	var chunks []string

	remaining := strings.TrimSpace(text)
	for len([]rune(remaining)) > limit {
		runes := []rune(remaining)
		// A delimiter at index limit still yields a chunk of exactly limit runes.
		window := runes[:limit+1]

		cut := lastIndexRune(window, '\n')
		if cut < 0 {
			cut = lastIndexRune(window, ' ')
		}
		if cut < 0 {
			cut = limit
		}

		chunk := strings.TrimSpace(string(runes[:cut]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		remaining = strings.TrimSpace(string(runes[cut:]))
	}

	if remaining != "" {
		chunks = append(chunks, remaining)
	}
	return chunks
}

func lastIndexRune(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

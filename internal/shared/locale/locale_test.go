package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestT(t *testing.T) {
	tests := []struct {
		name   string
		lang   string
		key    string
		values map[string]any
		want   string
	}{
		{
			name: "known language and key",
			lang: "it",
			key:  "messages.summarized",
			want: "_Il messaggio era troppo lungo, quindi è stato riassunto._",
		},
		{
			name: "unknown language falls back to english",
			lang: "de",
			key:  "messages.summarized",
			want: "_The message was too long, so it was summarized._",
		},
		{
			name: "unknown key falls back to raw key",
			lang: "en",
			key:  "messages.does_not_exist",
			want: "messages.does_not_exist",
		},
		{
			name:   "numeric interpolation",
			lang:   "en",
			key:    "messages.stats",
			values: map[string]any{"today": 3, "total": 42},
			want:   "📊 Transcriptions\nToday: 3\nAll time: 42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, T(tt.lang, tt.key, tt.values))
		})
	}
}

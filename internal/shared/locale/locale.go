// Package locale resolves user-facing strings by language and dotted key.
// Lookup falls back to English when the requested language or key is missing,
// and to the raw key when English is missing too.
package locale

import (
	"fmt"
	"strings"
)

const fallbackLanguage = "en"

var messages = map[string]map[string]string{
	"en": {
		"messages.welcome": "👋 Hi! Send me a voice message and I'll transcribe it for you.\n\nUse /help to see what I can do.",
		"messages.help": "🎙 Send a voice message (or an audio file in a private chat) and I'll reply with a cleaned-up transcription.\n\n" +
			"Commands:\n" +
			"/start - Welcome message\n" +
			"/help - This message\n" +
			"/stats - Transcription statistics\n\n" +
			"Long recordings are summarized instead of transcribed verbatim. More details: https://core.telegram.org/bots",
		"messages.stats":      "📊 Transcriptions\nToday: {{today}}\nAll time: {{total}}",
		"messages.summarized": "_The message was too long, so it was summarized._",
	},
	"it": {
		"messages.welcome": "👋 Ciao! Mandami un messaggio vocale e lo trascriverò per te.\n\nUsa /help per vedere cosa so fare.",
		"messages.help": "🎙 Manda un messaggio vocale (o un file audio in una chat privata) e risponderò con una trascrizione ripulita.\n\n" +
			"Comandi:\n" +
			"/start - Messaggio di benvenuto\n" +
			"/help - Questo messaggio\n" +
			"/stats - Statistiche delle trascrizioni\n\n" +
			"Le registrazioni lunghe vengono riassunte invece che trascritte per intero. Maggiori dettagli: https://core.telegram.org/bots",
		"messages.stats":      "📊 Trascrizioni\nOggi: {{today}}\nTotale: {{total}}",
		"messages.summarized": "_Il messaggio era troppo lungo, quindi è stato riassunto._",
	},
}

// T resolves a dotted key for the given language, interpolating {{name}}
// placeholders with values. Missing translations fall back to English, then
// to the key itself.
func T(lang, key string, values map[string]any) string {
	if s, ok := lookup(lang, key, values); ok {
		return s
	}
	if s, ok := lookup(fallbackLanguage, key, values); ok {
		return s
	}
	return key
}

func lookup(lang, key string, values map[string]any) (string, bool) {
	table, ok := messages[lang]
	if !ok {
		return "", false
	}
	template, ok := table[key]
	if !ok {
		return "", false
	}

	for name, value := range values {
		template = strings.ReplaceAll(template, "{{"+name+"}}", fmt.Sprintf("%v", value))
	}
	return template, true
}

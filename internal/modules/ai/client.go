// Package ai wraps the remote speech-to-text and text-to-text capabilities.
// The models are opaque: potentially slow and potentially low-quality, so
// callers validate outputs (length, sentinel) rather than trusting them.
package ai

import "context"

// NoContent is the sentinel the text model is instructed to return when it
// has nothing to say. Callers treat it as a failed refinement.
const NoContent = "No content"

// Client is the transcription/refinement capability used by the pipeline.
type Client interface {
	// Transcribe converts raw audio bytes to text.
	Transcribe(ctx context.Context, audio []byte) (string, error)

	// Refine cleans up a raw transcript (punctuation, disfluencies,
	// paragraphing) preserving language and meaning.
	Refine(ctx context.Context, text string) (string, error)

	// Summarize condenses a transcript that is too long to refine verbatim.
	Summarize(ctx context.Context, text string) (string, error)
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

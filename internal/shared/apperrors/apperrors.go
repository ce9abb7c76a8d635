// Package apperrors defines the error kinds the webhook pipeline maps to
// HTTP-status classes. They are sentinel errors so call sites can wrap them
// with extra context (samber/oops) and still be matched with errors.Is.
package apperrors

import "errors"

var (
	// ErrUnauthorized is the only kind rejected before processing (bad webhook secret).
	ErrUnauthorized = errors.New("unauthorized webhook request")

	// ErrForbidden is returned for commands from non-admin senders in group chats.
	ErrForbidden = errors.New("sender is not a chat administrator")

	// ErrTooManyRequests is returned when the rate limiter has no token for the sender.
	ErrTooManyRequests = errors.New("rate limit exceeded")

	// ErrConflict is returned for audio-file uploads outside private chats.
	ErrConflict = errors.New("audio uploads are only accepted in private chats")

	// ErrPayloadTooLarge is returned when media duration exceeds the configured cap.
	ErrPayloadTooLarge = errors.New("audio duration exceeds the configured maximum")

	// ErrFailedDependency is returned when a model produces unusable output.
	ErrFailedDependency = errors.New("model returned unusable output")
)

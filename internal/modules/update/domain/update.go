// Package domain models one inbound Telegram webhook update. A message is
// exactly one of text, voice or audio; anything else is Unsupported and
// produces no action. Malformed message sub-shapes decode to an absent
// message instead of an error, matching how Telegram tolerates partial
// clients.
package domain

import "encoding/json"

//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

// MessageKind classifies an inbound message
// ENUM(text,voice,audio,unsupported)
type MessageKind string

// ChatTypePrivate is the only chat type with special handling; Telegram also
// sends group, supergroup and channel.
const ChatTypePrivate = "private"

// Update is one inbound event delivered by Telegram to the webhook.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

// Message carries the fields shared by all message shapes plus the three
// recognized payloads. Exactly one of Text/Voice/Audio is meaningful; Kind
// resolves the ambiguity in a fixed order.
type Message struct {
	MessageID int       `json:"message_id"`
	Chat      Chat      `json:"chat"`
	From      *User     `json:"from,omitempty"`
	Text      string    `json:"text,omitempty"`
	Voice     *MediaRef `json:"voice,omitempty"`
	Audio     *MediaRef `json:"audio,omitempty"`
}

type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// MediaRef points at a remote voice note or audio file.
type MediaRef struct {
	FileID   string `json:"file_id"`
	Duration int    `json:"duration"`
}

// Kind classifies the message. The checks are mutually exclusive: text first,
// then voice, then audio.
func (m *Message) Kind() MessageKind {
	switch {
	case m.Text != "":
		return MessageKindText
	case m.Voice != nil:
		return MessageKindVoice
	case m.Audio != nil:
		return MessageKindAudio
	default:
		return MessageKindUnsupported
	}
}

// Media returns the voice or audio reference, nil for other kinds.
func (m *Message) Media() *MediaRef {
	if m.Voice != nil {
		return m.Voice
	}
	return m.Audio
}

// SenderLanguage returns the sender's language code, defaulting to English.
func (m *Message) SenderLanguage() string {
	if m.From != nil && m.From.LanguageCode != "" {
		return m.From.LanguageCode
	}
	return "en"
}

// RateLimitKey identifies the party charged for processing: the sender when
// known, otherwise the chat.
func (m *Message) RateLimitKey() int64 {
	if m.From != nil {
		return m.From.ID
	}
	return m.Chat.ID
}

// UnmarshalJSON decodes an update tolerantly: an update without a message, or
// with a message that does not match the expected shape, is still a valid
// update with Message == nil.
func (u *Update) UnmarshalJSON(data []byte) error {
	var raw struct {
		UpdateID int64           `json:"update_id"`
		Message  json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	u.UpdateID = raw.UpdateID
	u.Message = nil

	if len(raw.Message) == 0 || string(raw.Message) == "null" {
		return nil
	}

	var msg Message
	if err := json.Unmarshal(raw.Message, &msg); err != nil {
		// Unrecognized message sub-shape: tolerate, treat as absent.
		return nil
	}
	u.Message = &msg
	return nil
}

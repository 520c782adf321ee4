package store

import (
	"ai-journal-be/internal/entity"

	"github.com/google/uuid"
)

// Session states. AwaitingReply is the concurrency guard: no second agent
// call may start while one is in flight.
const (
	StateIdle          = "IDLE"
	StateActive        = "ACTIVE"
	StateAwaitingReply = "AWAITING_REPLY"
)

// Session is the live conversation state held in memory. It owns the
// ordered message sequence (ordering authority is insertion order, not
// timestamps) and the pointer to the diary entry currently being written.
type Session struct {
	ID    string `json:"id"`
	State string `json:"state"`

	// CurrentEntryId is nil until the first sync mints an entry, and is
	// cleared when the user starts a new entry.
	CurrentEntryId *uuid.UUID `json:"current_entry_id"`

	messages []*entity.Message
}

func NewSession(id string) *Session {
	return &Session{
		ID:    id,
		State: StateIdle,
	}
}

// Append adds a message at the tail. It is the only mutation used during an
// active conversation; appended messages are never modified.
func (s *Session) Append(msg *entity.Message) {
	s.messages = append(s.messages, msg)
}

// ReplaceAll discards the in-memory conversation and substitutes the loaded
// one. Used exclusively when loading a previously saved entry.
func (s *Session) ReplaceAll(msgs []*entity.Message) {
	s.messages = make([]*entity.Message, len(msgs))
	copy(s.messages, msgs)
}

// Current returns the ordered message sequence.
func (s *Session) Current() []*entity.Message {
	out := make([]*entity.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Clear establishes the empty state used when starting a new entry.
func (s *Session) Clear() {
	s.messages = nil
}

func (s *Session) MessageCount() int {
	return len(s.messages)
}

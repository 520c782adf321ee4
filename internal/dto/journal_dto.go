package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type MessageResponse struct {
	Id                uuid.UUID `json:"id"`
	Role              string    `json:"role"`
	Content           string    `json:"content"`
	Timestamp         time.Time `json:"timestamp"`
	Mood              string    `json:"mood,omitempty"`
	Insights          string    `json:"insights,omitempty"`
	FollowUpQuestions []string  `json:"follow_up_questions,omitempty"`
}

type SendMessageResponse struct {
	Sent  *MessageResponse `json:"sent,omitempty"`
	Reply *MessageResponse `json:"reply,omitempty"`
	Entry *EntryResponse   `json:"entry,omitempty"`

	// Ignored is true when the send arrived while a reply was still in
	// flight; nothing was appended or sent.
	Ignored bool `json:"ignored,omitempty"`
}

type EntryResponse struct {
	Id           uuid.UUID `json:"id"`
	Date         time.Time `json:"date"`
	DateLabel    string    `json:"date_label"`
	Preview      string    `json:"preview"`
	Mood         string    `json:"mood"`
	MoodClass    string    `json:"mood_class"`
	MessageCount int       `json:"message_count"`
}

type MonthGroupResponse struct {
	Month   string          `json:"month"`
	Entries []EntryResponse `json:"entries"`
}

type LoadEntryRequest struct {
	EntryId uuid.UUID `json:"entry_id" validate:"required"`
}

type SessionStateResponse struct {
	State          string            `json:"state"`
	CurrentEntryId *uuid.UUID        `json:"current_entry_id,omitempty"`
	Messages       []MessageResponse `json:"messages"`
	Greeting       string            `json:"greeting"`
	QuickPrompts   []string          `json:"quick_prompts"`
}

type TranscribeResponse struct {
	Text string `json:"text"`
}

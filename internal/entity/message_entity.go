package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is one turn in a journaling conversation. Fields are write-once:
// a message is never mutated after it has been appended to a session.
type Message struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Agent metadata, present only on assistant messages that carried it.
	Mood              string   `json:"mood,omitempty"`
	Insights          string   `json:"insights,omitempty"`
	FollowUpQuestions []string `json:"followUpQuestions,omitempty"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// DiaryEntry is a persisted snapshot of one conversation. Preview and Mood
// are recomputed on every sync, never hand-edited. Date is set once when the
// entry is first materialized and marks when the entry started.
type DiaryEntry struct {
	Id       uuid.UUID  `json:"id"`
	Date     time.Time  `json:"date"`
	Preview  string     `json:"preview"`
	Mood     string     `json:"mood"`
	Messages []*Message `json:"messages"`
}

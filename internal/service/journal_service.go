package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"ai-journal-be/internal/constant"
	"ai-journal-be/internal/dto"
	"ai-journal-be/internal/entity"
	"ai-journal-be/internal/pkg/logger"
	"ai-journal-be/internal/repository/contract"
	"ai-journal-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IJournalService owns the entry catalog: it derives diary entries from the
// live conversation (sync), and serves the filtered/grouped catalog views.
type IJournalService interface {
	// Sync derives or updates the diary entry for the given session state.
	// Empty messages are a no-op (nil entry). The returned flag reports
	// whether a new entry was minted; the caller must then adopt its id.
	Sync(ctx context.Context, currentEntryId *uuid.UUID, messages []*entity.Message) (*entity.DiaryEntry, bool)

	ListEntries(ctx context.Context, query string) []dto.EntryResponse
	GroupedEntries(ctx context.Context, query string) []dto.MonthGroupResponse
	FindEntry(ctx context.Context, id uuid.UUID) (*entity.DiaryEntry, bool)

	// Snapshot returns the full catalog in display order, for persistence.
	Snapshot(ctx context.Context) []*entity.DiaryEntry
}

type journalService struct {
	catalogRepo contract.IEntryCatalogRepository
	pubSub      *gochannel.GoChannel
	logger      logger.ILogger
	now         func() time.Time

	// entries is the authoritative in-memory catalog view, most recent
	// first. Durable writes happen asynchronously off the event bus.
	mu      sync.RWMutex
	entries []*entity.DiaryEntry
}

func NewJournalService(
	catalogRepo contract.IEntryCatalogRepository,
	pubSub *gochannel.GoChannel,
	log logger.ILogger,
) IJournalService {
	s := &journalService{
		catalogRepo: catalogRepo,
		pubSub:      pubSub,
		logger:      log,
		now:         time.Now,
	}

	// Rehydrate the catalog once at startup; a corrupted slot loads empty.
	s.entries = catalogRepo.Load(context.Background())
	log.Info("Journal", "Entry catalog loaded", map[string]interface{}{
		"entry_count": len(s.entries),
	})

	return s
}

func (s *journalService) Sync(ctx context.Context, currentEntryId *uuid.UUID, messages []*entity.Message) (*entity.DiaryEntry, bool) {
	if len(messages) == 0 {
		return nil, false
	}

	preview := computePreview(messages)
	mood := computeMood(messages)

	snapshot := make([]*entity.Message, len(messages))
	copy(snapshot, messages)

	s.mu.Lock()
	if currentEntryId != nil {
		for i, e := range s.entries {
			if e.Id == *currentEntryId {
				// Copy-on-write: entries are never mutated once published,
				// so the persistence consumer can marshal a snapshot of
				// pointers without holding the lock.
				updated := &entity.DiaryEntry{
					Id:       e.Id,
					Date:     e.Date,
					Preview:  preview,
					Mood:     mood,
					Messages: snapshot,
				}
				s.entries[i] = updated
				s.mu.Unlock()

				s.publishSynced(updated.Id, false)
				return updated, false
			}
		}
	}

	// No current entry (or its id is no longer in the catalog): materialize
	// a fresh one at the front of the display order. The original date is
	// set here, once, and survives later updates.
	entry := &entity.DiaryEntry{
		Id:       uuid.New(),
		Date:     s.now(),
		Preview:  preview,
		Mood:     mood,
		Messages: snapshot,
	}
	if currentEntryId != nil {
		entry.Id = *currentEntryId
	}
	s.entries = append([]*entity.DiaryEntry{entry}, s.entries...)
	s.mu.Unlock()

	s.publishSynced(entry.Id, true)
	return entry, true
}

func (s *journalService) publishSynced(entryId uuid.UUID, created bool) {
	if s.pubSub == nil {
		return
	}

	event := events.NewEntrySyncedEvent(entryId.String(), created)
	payload, err := json.Marshal(event.Payload())
	if err != nil {
		s.logger.Error("Journal", "Failed to marshal sync event", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	// Fire and forget: the persistence consumer picks this up. In-memory
	// reads are already consistent at this point.
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(constant.EntrySyncedTopicName, msg); err != nil {
		s.logger.Error("Journal", "Failed to publish sync event", map[string]interface{}{
			"entry_id": entryId.String(),
			"error":    err.Error(),
		})
	}
}

func (s *journalService) ListEntries(ctx context.Context, query string) []dto.EntryResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := filterEntries(s.entries, query)
	out := make([]dto.EntryResponse, 0, len(matched))
	for _, e := range matched {
		out = append(out, toEntryResponse(e, s.now()))
	}
	return out
}

func (s *journalService) GroupedEntries(ctx context.Context, query string) []dto.MonthGroupResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := filterEntries(s.entries, query)

	// Bucket order is first-occurrence order over the catalog, which keeps
	// months reverse-chronological since the catalog is most-recent-first.
	groups := make([]dto.MonthGroupResponse, 0)
	index := make(map[string]int)
	for _, e := range matched {
		label := e.Date.Format("January 2006")
		i, ok := index[label]
		if !ok {
			groups = append(groups, dto.MonthGroupResponse{Month: label})
			i = len(groups) - 1
			index[label] = i
		}
		groups[i].Entries = append(groups[i].Entries, toEntryResponse(e, s.now()))
	}
	return groups
}

func (s *journalService) FindEntry(ctx context.Context, id uuid.UUID) (*entity.DiaryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.Id == id {
			return e, true
		}
	}
	return nil, false
}

func (s *journalService) Snapshot(ctx context.Context) []*entity.DiaryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.DiaryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// computePreview derives the entry preview from the first user message,
// truncated to the preview bound with an ellipsis marker when cut.
func computePreview(messages []*entity.Message) string {
	for _, m := range messages {
		if m.Role != constant.ChatMessageRoleUser {
			continue
		}
		runes := []rune(m.Content)
		if len(runes) > constant.PreviewMaxLength {
			return string(runes[:constant.PreviewMaxLength]) + constant.PreviewEllipsis
		}
		return m.Content
	}
	return constant.PreviewPlaceholder
}

// computeMood picks the first mood found in message order. This intentionally
// reports the earliest mood even when later messages carry a different one.
func computeMood(messages []*entity.Message) string {
	for _, m := range messages {
		if m.Mood != "" {
			return m.Mood
		}
	}
	return constant.DefaultMood
}

// filterEntries is a case-insensitive substring match over the preview only.
func filterEntries(entries []*entity.DiaryEntry, query string) []*entity.DiaryEntry {
	if query == "" {
		return entries
	}
	q := strings.ToLower(query)
	out := make([]*entity.DiaryEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Preview), q) {
			out = append(out, e)
		}
	}
	return out
}

func toEntryResponse(e *entity.DiaryEntry, now time.Time) dto.EntryResponse {
	return dto.EntryResponse{
		Id:           e.Id,
		Date:         e.Date,
		DateLabel:    FormatDateLabel(e.Date, now),
		Preview:      e.Preview,
		Mood:         e.Mood,
		MoodClass:    ClassifyMood(e.Mood),
		MessageCount: len(e.Messages),
	}
}

// FormatDateLabel renders a relative day label the way the client shows it.
func FormatDateLabel(date, now time.Time) string {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}

	yesterday := now.AddDate(0, 0, -1)
	y3, m3, d3 := yesterday.Date()
	if y1 == y3 && m1 == m3 && d1 == d3 {
		return "Yesterday"
	}

	return date.Format("Jan 2, 2006")
}

// ClassifyMood maps a free-form mood label to one of four display classes.
func ClassifyMood(mood string) string {
	m := strings.ToLower(mood)
	switch {
	case strings.Contains(m, "happy") || strings.Contains(m, "joy") || strings.Contains(m, "celebrat"):
		return "positive"
	case strings.Contains(m, "sad") || strings.Contains(m, "struggling") || strings.Contains(m, "anxious"):
		return "negative"
	case strings.Contains(m, "calm") || strings.Contains(m, "peaceful") || strings.Contains(m, "inviting"):
		return "calm"
	default:
		return "neutral"
	}
}

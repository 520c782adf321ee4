package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"ai-journal-be/internal/entity"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// stubCatalogRepo records saves. The mutex matters because the persistence
// consumer saves from its own goroutine.
type stubCatalogRepo struct {
	entries []*entity.DiaryEntry

	mu    sync.Mutex
	saved [][]*entity.DiaryEntry
}

func (r *stubCatalogRepo) Load(ctx context.Context) []*entity.DiaryEntry {
	if r.entries == nil {
		return []*entity.DiaryEntry{}
	}
	return r.entries
}

func (r *stubCatalogRepo) Save(ctx context.Context, entries []*entity.DiaryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, entries)
	return nil
}

func (r *stubCatalogRepo) savedCalls() [][]*entity.DiaryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]*entity.DiaryEntry, len(r.saved))
	copy(out, r.saved)
	return out
}

func userMessage(content string) *entity.Message {
	return &entity.Message{
		Id:        uuid.New(),
		Role:      "user",
		Content:   content,
		Timestamp: time.Now(),
	}
}

func assistantMessage(content, mood string) *entity.Message {
	return &entity.Message{
		Id:        uuid.New(),
		Role:      "assistant",
		Content:   content,
		Timestamp: time.Now(),
		Mood:      mood,
	}
}

func newTestJournalService() IJournalService {
	return NewJournalService(&stubCatalogRepo{}, nil, nopLogger{})
}

func TestSyncEmptyMessagesIsNoOp(t *testing.T) {
	svc := newTestJournalService()

	entry, created := svc.Sync(context.Background(), nil, nil)
	if entry != nil || created {
		t.Fatalf("Sync with no messages should be a no-op, got entry=%v created=%v", entry, created)
	}
	if got := len(svc.Snapshot(context.Background())); got != 0 {
		t.Fatalf("catalog should stay empty, got %d entries", got)
	}
}

func TestSyncCreatesEntryWithPreviewAndMood(t *testing.T) {
	svc := newTestJournalService()

	msgs := []*entity.Message{
		userMessage("I had a hard day"),
		assistantMessage("That sounds difficult.", "sad"),
	}

	entry, created := svc.Sync(context.Background(), nil, msgs)
	if !created {
		t.Fatal("expected a new entry to be created")
	}
	if entry.Preview != "I had a hard day" {
		t.Errorf("Preview = %q, want %q", entry.Preview, "I had a hard day")
	}
	if entry.Mood != "sad" {
		t.Errorf("Mood = %q, want %q", entry.Mood, "sad")
	}
	if len(entry.Messages) != 2 {
		t.Errorf("Messages = %d, want 2", len(entry.Messages))
	}
}

func TestSyncPreviewBoundary(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantPreview string
	}{
		{
			name:        "exactly 50 characters, no ellipsis",
			content:     strings.Repeat("a", 50),
			wantPreview: strings.Repeat("a", 50),
		},
		{
			name:        "51 characters, truncated with ellipsis",
			content:     strings.Repeat("a", 51),
			wantPreview: strings.Repeat("a", 50) + "...",
		},
		{
			name:        "short content unchanged",
			content:     "short",
			wantPreview: "short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestJournalService()
			entry, _ := svc.Sync(context.Background(), nil, []*entity.Message{userMessage(tt.content)})
			if entry.Preview != tt.wantPreview {
				t.Errorf("Preview = %q, want %q", entry.Preview, tt.wantPreview)
			}
		})
	}
}

func TestSyncPreviewPlaceholderWithoutUserMessage(t *testing.T) {
	svc := newTestJournalService()

	entry, _ := svc.Sync(context.Background(), nil, []*entity.Message{
		assistantMessage("Welcome back", ""),
	})
	if entry.Preview != "New entry" {
		t.Errorf("Preview = %q, want %q", entry.Preview, "New entry")
	}
	if entry.Mood != "neutral" {
		t.Errorf("Mood = %q, want %q", entry.Mood, "neutral")
	}
}

func TestSyncMoodIsFirstFound(t *testing.T) {
	svc := newTestJournalService()

	msgs := []*entity.Message{
		userMessage("day one"),
		assistantMessage("reply one", "anxious"),
		userMessage("day two"),
		assistantMessage("reply two", "happy"),
	}

	entry, _ := svc.Sync(context.Background(), nil, msgs)
	if entry.Mood != "anxious" {
		t.Errorf("Mood = %q, want first found %q", entry.Mood, "anxious")
	}
}

func TestSyncIsIdempotentForSameId(t *testing.T) {
	svc := newTestJournalService()
	ctx := context.Background()

	msgs := []*entity.Message{userMessage("hello world")}

	entry, created := svc.Sync(ctx, nil, msgs)
	if !created {
		t.Fatal("first sync should create")
	}

	again, createdAgain := svc.Sync(ctx, &entry.Id, msgs)
	if createdAgain {
		t.Fatal("second sync with same id should update, not create")
	}
	if again.Id != entry.Id {
		t.Errorf("entry id changed across syncs: %s != %s", again.Id, entry.Id)
	}

	snapshot := svc.Snapshot(ctx)
	if len(snapshot) != 1 {
		t.Fatalf("catalog has %d entries, want exactly 1", len(snapshot))
	}
}

func TestSyncUpdatePreservesOriginalDate(t *testing.T) {
	svc := newTestJournalService()
	ctx := context.Background()

	entry, _ := svc.Sync(ctx, nil, []*entity.Message{userMessage("first")})
	originalDate := entry.Date

	time.Sleep(5 * time.Millisecond)

	updated, _ := svc.Sync(ctx, &entry.Id, []*entity.Message{
		userMessage("first"),
		assistantMessage("reply", "calm"),
	})
	if !updated.Date.Equal(originalDate) {
		t.Errorf("Date changed on update: %v != %v", updated.Date, originalDate)
	}
	if updated.Mood != "calm" {
		t.Errorf("Mood not recomputed on update, got %q", updated.Mood)
	}
}

func TestSyncNewEntriesArePrepended(t *testing.T) {
	svc := newTestJournalService()
	ctx := context.Background()

	first, _ := svc.Sync(ctx, nil, []*entity.Message{userMessage("older entry")})
	second, _ := svc.Sync(ctx, nil, []*entity.Message{userMessage("newer entry")})

	snapshot := svc.Snapshot(ctx)
	if len(snapshot) != 2 {
		t.Fatalf("catalog has %d entries, want 2", len(snapshot))
	}
	if snapshot[0].Id != second.Id || snapshot[1].Id != first.Id {
		t.Error("catalog is not most-recent-first")
	}
}

func TestListEntriesFilterMatchesPreviewOnly(t *testing.T) {
	repo := &stubCatalogRepo{entries: []*entity.DiaryEntry{
		{
			Id: uuid.New(), Date: time.Now(), Preview: "Walked the dog", Mood: "happy",
			Messages: []*entity.Message{assistantMessage("the CAT was there too", "happy")},
		},
		{
			Id: uuid.New(), Date: time.Now(), Preview: "Quiet evening", Mood: "calm",
			Messages: []*entity.Message{userMessage("Quiet evening")},
		},
	}}
	svc := NewJournalService(repo, nil, nopLogger{})

	got := svc.ListEntries(context.Background(), "DOG")
	if len(got) != 1 {
		t.Fatalf("filter matched %d entries, want 1", len(got))
	}
	if got[0].Preview != "Walked the dog" {
		t.Errorf("matched wrong entry: %q", got[0].Preview)
	}

	// "cat" only appears in message content, never in a preview.
	if got := svc.ListEntries(context.Background(), "cat"); len(got) != 0 {
		t.Errorf("filter over message content matched %d entries, want 0", len(got))
	}
}

func TestGroupedEntriesBucketsAndFilterCompose(t *testing.T) {
	march := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	february := time.Date(2026, time.February, 2, 9, 0, 0, 0, time.UTC)

	repo := &stubCatalogRepo{entries: []*entity.DiaryEntry{
		{Id: uuid.New(), Date: march, Preview: "march entry one"},
		{Id: uuid.New(), Date: march.Add(-24 * time.Hour), Preview: "march entry two"},
		{Id: uuid.New(), Date: february, Preview: "february entry"},
	}}
	svc := NewJournalService(repo, nil, nopLogger{})

	groups := svc.GroupedEntries(context.Background(), "")
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Month != "March 2026" || groups[1].Month != "February 2026" {
		t.Errorf("bucket order = [%s, %s], want first-occurrence order", groups[0].Month, groups[1].Month)
	}
	if len(groups[0].Entries) != 2 || len(groups[1].Entries) != 1 {
		t.Errorf("bucket sizes = [%d, %d], want [2, 1]", len(groups[0].Entries), len(groups[1].Entries))
	}

	// Every grouped entry must still satisfy the filter.
	filtered := svc.GroupedEntries(context.Background(), "february")
	for _, g := range filtered {
		for _, e := range g.Entries {
			if !strings.Contains(strings.ToLower(e.Preview), "february") {
				t.Errorf("grouped entry %q does not match the filter", e.Preview)
			}
		}
	}
	if len(filtered) != 1 {
		t.Errorf("filtered groups = %d, want 1", len(filtered))
	}
}

func TestFormatDateLabel(t *testing.T) {
	now := time.Date(2026, time.August, 29, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"today", now.Add(-2 * time.Hour), "Today"},
		{"yesterday", now.AddDate(0, 0, -1), "Yesterday"},
		{"older", time.Date(2026, time.March, 3, 8, 0, 0, 0, time.UTC), "Mar 3, 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDateLabel(tt.date, now); got != tt.want {
				t.Errorf("FormatDateLabel = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyMood(t *testing.T) {
	tests := []struct {
		mood string
		want string
	}{
		{"happy", "positive"},
		{"joyful", "positive"},
		{"celebrating", "positive"},
		{"sad", "negative"},
		{"struggling", "negative"},
		{"anxious", "negative"},
		{"calm", "calm"},
		{"peaceful", "calm"},
		{"inviting", "calm"},
		{"neutral", "neutral"},
		{"confused", "neutral"},
	}

	for _, tt := range tests {
		if got := ClassifyMood(tt.mood); got != tt.want {
			t.Errorf("ClassifyMood(%q) = %q, want %q", tt.mood, got, tt.want)
		}
	}
}

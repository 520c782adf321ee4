package implementation

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ai-journal-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func sampleEntries() []*entity.DiaryEntry {
	return []*entity.DiaryEntry{
		{
			Id:      uuid.New(),
			Date:    time.Date(2026, time.August, 28, 20, 15, 0, 0, time.UTC),
			Preview: "I had a hard day",
			Mood:    "sad",
			Messages: []*entity.Message{
				{
					Id:        uuid.New(),
					Role:      "user",
					Content:   "I had a hard day",
					Timestamp: time.Date(2026, time.August, 28, 20, 15, 0, 0, time.UTC),
				},
				{
					Id:        uuid.New(),
					Role:      "assistant",
					Content:   "That sounds difficult.",
					Timestamp: time.Date(2026, time.August, 28, 20, 15, 5, 0, time.UTC),
					Mood:      "sad",
				},
			},
		},
		{
			Id:      uuid.New(),
			Date:    time.Date(2026, time.July, 1, 9, 0, 0, 0, time.UTC),
			Preview: "Quiet morning",
			Mood:    "calm",
		},
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary_entries.json")
	repo := NewFileEntryCatalogRepository(path, nopLogger{})
	ctx := context.Background()

	want := sampleEntries()
	require.NoError(t, repo.Save(ctx, want))

	got := repo.Load(ctx)
	require.Len(t, got, 2)
	assert.Equal(t, want[0].Id, got[0].Id)
	assert.Equal(t, want[0].Preview, got[0].Preview)
	assert.Equal(t, want[0].Mood, got[0].Mood)
	assert.True(t, want[0].Date.Equal(got[0].Date), "dates must survive the round trip")
	require.Len(t, got[0].Messages, 2)
	assert.Equal(t, "assistant", got[0].Messages[1].Role)
	assert.Equal(t, "sad", got[0].Messages[1].Mood)
	assert.Equal(t, want[1].Id, got[1].Id)
}

func TestLoadMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does_not_exist.json")
	repo := NewFileEntryCatalogRepository(path, nopLogger{})

	got := repo.Load(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadCorruptedFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary_entries.json")
	require.NoError(t, os.WriteFile(path, []byte("{not valid json"), 0644))

	repo := NewFileEntryCatalogRepository(path, nopLogger{})
	got := repo.Load(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "nested", "diary_entries.json")
	repo := NewFileEntryCatalogRepository(path, nopLogger{})
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleEntries()))
	assert.Len(t, repo.Load(ctx), 2)
}

func TestSaveOverwritesPreviousSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary_entries.json")
	repo := NewFileEntryCatalogRepository(path, nopLogger{})
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleEntries()))

	replacement := sampleEntries()[:1]
	require.NoError(t, repo.Save(ctx, replacement))

	got := repo.Load(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, replacement[0].Id, got[0].Id)

	// No temp file left behind by the atomic write.
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

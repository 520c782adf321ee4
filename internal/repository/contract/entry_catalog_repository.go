package contract

import (
	"context"

	"ai-journal-be/internal/entity"
)

// IEntryCatalogRepository persists the full entry catalog in a single slot.
type IEntryCatalogRepository interface {
	// Load returns the stored catalog. Missing or malformed data yields an
	// empty catalog, never an error surfaced to the caller (fail open).
	Load(ctx context.Context) []*entity.DiaryEntry

	// Save overwrites the slot with the full catalog. Not incremental.
	Save(ctx context.Context, entries []*entity.DiaryEntry) error
}

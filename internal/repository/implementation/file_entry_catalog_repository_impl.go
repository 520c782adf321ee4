package implementation

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"ai-journal-be/internal/apperrors"
	"ai-journal-be/internal/entity"
	"ai-journal-be/internal/pkg/logger"
	"ai-journal-be/internal/repository/contract"
)

// fileEntryCatalogRepository keeps the serialized catalog in a single JSON
// file. Dates and timestamps are stored as RFC 3339 strings.
type fileEntryCatalogRepository struct {
	filePath string
	logger   logger.ILogger
}

func NewFileEntryCatalogRepository(filePath string, log logger.ILogger) contract.IEntryCatalogRepository {
	return &fileEntryCatalogRepository{
		filePath: filePath,
		logger:   log,
	}
}

func (r *fileEntryCatalogRepository) Load(ctx context.Context) []*entity.DiaryEntry {
	data, err := os.ReadFile(r.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Warn("EntryCatalog", "Failed to read entries file, starting empty", map[string]interface{}{
				"path":  r.filePath,
				"error": err.Error(),
			})
		}
		return []*entity.DiaryEntry{}
	}

	var entries []*entity.DiaryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		// Malformed stored data is treated as "no saved entries".
		corruption := &apperrors.StorageCorruption{Err: err}
		r.logger.Warn("EntryCatalog", "Stored catalog is corrupted, starting empty", map[string]interface{}{
			"path":  r.filePath,
			"error": corruption.Error(),
		})
		return []*entity.DiaryEntry{}
	}

	if entries == nil {
		return []*entity.DiaryEntry{}
	}
	return entries
}

func (r *fileEntryCatalogRepository) Save(ctx context.Context, entries []*entity.DiaryEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(r.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	// Write to a sibling temp file first so a crash mid-write cannot leave
	// a truncated slot behind.
	tmpPath := r.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, r.filePath)
}

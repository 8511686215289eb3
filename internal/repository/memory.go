package repository

import (
	"context"
	"sync"

	"moderation-backend/internal/models"
)

// memoryModerationRepository is an in-process, append-only store used in
// local/mock mode and by the test suite. Append is a single step under the
// lock, so a concurrent history read never observes a half-written record.
type memoryModerationRepository struct {
	mu      sync.RWMutex
	records []models.ModerationRecord
}

// NewMemoryModerationRepository creates an empty in-process store. Each call
// returns an independent instance; nothing is shared between them.
func NewMemoryModerationRepository() ModerationRepository {
	return &memoryModerationRepository{}
}

func (r *memoryModerationRepository) CreateRecord(_ context.Context, record *models.ModerationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *record)
	return nil
}

func (r *memoryModerationRepository) GetHistory(_ context.Context, limit, offset int) ([]models.ModerationRecord, error) {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	// Most recent first: walk the append-only sequence backwards.
	out := make([]models.ModerationRecord, 0, limit)
	for i := len(r.records) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}

func (r *memoryModerationRepository) CountTotal(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

func (r *memoryModerationRepository) CountByResult(_ context.Context, result string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for i := range r.records {
		if r.records[i].Result == result {
			count++
		}
	}
	return count, nil
}

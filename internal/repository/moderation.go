package repository

import (
	"context"

	"moderation-backend/internal/models"
)

// ModerationRepository persists moderation records and answers count and
// history queries. Implementations are bound once at startup; records are
// immutable, so there are no update or delete operations.
type ModerationRepository interface {
	CreateRecord(ctx context.Context, record *models.ModerationRecord) error
	// GetHistory returns at most limit records after skipping offset,
	// most-recently-created first. An offset past the available count yields
	// an empty slice, not an error.
	GetHistory(ctx context.Context, limit, offset int) ([]models.ModerationRecord, error)
	CountTotal(ctx context.Context) (int, error)
	CountByResult(ctx context.Context, result string) (int, error)
}

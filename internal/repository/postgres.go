package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"moderation-backend/internal/models"
)

// postgresModerationRepository stores records in the 'moderation_records'
// table, ordered natively by created_at for history reads.
type postgresModerationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewPostgresModerationRepository creates a PostgreSQL-backed moderation store.
func NewPostgresModerationRepository(db *sqlx.DB, logger *zap.Logger) ModerationRepository {
	return &postgresModerationRepository{db: db, logger: logger}
}

func (r *postgresModerationRepository) CreateRecord(ctx context.Context, record *models.ModerationRecord) error {
	query := `INSERT INTO moderation_records (id, content_id, content_type, original_content, result, reason, score, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, record.ID, record.ContentID, record.ContentType,
		record.OriginalContent, record.Result, record.Reason, record.Score, record.CreatedAt)
	return err
}

func (r *postgresModerationRepository) GetHistory(ctx context.Context, limit, offset int) ([]models.ModerationRecord, error) {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	records := []models.ModerationRecord{}
	query := `SELECT id, content_id, content_type, original_content, result, reason, score, created_at
	          FROM moderation_records
	          ORDER BY created_at DESC, id DESC
	          LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &records, query, limit, offset); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *postgresModerationRepository) CountTotal(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM moderation_records`)
	return count, err
}

func (r *postgresModerationRepository) CountByResult(ctx context.Context, result string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM moderation_records WHERE result = $1`, result)
	return count, err
}

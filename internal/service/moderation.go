package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"moderation-backend/internal/classifier"
	"moderation-backend/internal/models"
	"moderation-backend/internal/repository"
)

// ModerationService is the moderation pipeline: it builds the prompt, invokes
// the classifier gateway, parses the response into a verdict, persists it and
// aggregates statistics.
type ModerationService interface {
	// CheckContent always produces a verdict record. Invocation and parse
	// failures degrade to the conservative default instead of failing the
	// caller; a persistence failure is logged and the record still returned.
	CheckContent(ctx context.Context, content, contentType string) (*models.ModerationRecord, error)
	GetHistory(ctx context.Context, limit, offset int) ([]models.ModerationRecord, error)
	GetStats(ctx context.Context) (*models.ModerationStats, error)
}

type moderationService struct {
	repo    repository.ModerationRepository
	gateway classifier.Gateway
	logger  *zap.Logger
}

// NewModerationService creates a moderation pipeline over the given store and
// classifier gateway. Both are chosen once by the bootstrap code.
func NewModerationService(repo repository.ModerationRepository, gateway classifier.Gateway, logger *zap.Logger) ModerationService {
	return &moderationService{
		repo:    repo,
		gateway: gateway,
		logger:  logger,
	}
}

func (s *moderationService) CheckContent(ctx context.Context, content, contentType string) (*models.ModerationRecord, error) {
	prompt := classifier.BuildModerationPrompt(content)

	response := s.gateway.Invoke(ctx, prompt, content)
	if response.Fallback {
		s.logger.Warn("Classifier fell back to the default verdict",
			zap.String("cause", response.FallbackReason))
	}

	outcome := classifier.ParseVerdict(response.Raw)
	if len(outcome.DefaultedFields) > 0 {
		s.logger.Warn("Classifier response was partially unusable",
			zap.Strings("defaulted_fields", outcome.DefaultedFields))
	}

	id := uuid.NewString()
	record := &models.ModerationRecord{
		ID:              id,
		ContentID:       "temp-" + id, // the submitted item has no prior identity
		ContentType:     contentType,
		OriginalContent: content,
		Result:          outcome.Verdict.Result,
		Reason:          outcome.Verdict.Reason,
		Score:           outcome.Verdict.Score,
		CreatedAt:       time.Now().Unix(),
	}

	if err := s.repo.CreateRecord(ctx, record); err != nil {
		// A correctly computed verdict is still returned when the store is
		// unavailable; the failure only needs to be operator-visible.
		s.logger.Error("Failed to persist moderation record",
			zap.String("id", record.ID), zap.Error(err))
	}

	return record, nil
}

func (s *moderationService) GetHistory(ctx context.Context, limit, offset int) ([]models.ModerationRecord, error) {
	records, err := s.repo.GetHistory(ctx, limit, offset)
	if err != nil {
		s.logger.Error("Failed to get moderation history", zap.Error(err))
		return nil, fmt.Errorf("failed to get moderation history: %w", err)
	}
	if records == nil {
		records = []models.ModerationRecord{}
	}
	return records, nil
}

func (s *moderationService) GetStats(ctx context.Context) (*models.ModerationStats, error) {
	// Three independent counts; under concurrent writes the rate is a
	// best-effort snapshot.
	total, err := s.repo.CountTotal(ctx)
	if err != nil {
		s.logger.Error("Failed to count moderation records", zap.Error(err))
		return nil, fmt.Errorf("failed to count moderation records: %w", err)
	}

	approved, err := s.repo.CountByResult(ctx, models.ResultApproved)
	if err != nil {
		s.logger.Error("Failed to count approved records", zap.Error(err))
		return nil, fmt.Errorf("failed to count approved records: %w", err)
	}

	rejected, err := s.repo.CountByResult(ctx, models.ResultRejected)
	if err != nil {
		s.logger.Error("Failed to count rejected records", zap.Error(err))
		return nil, fmt.Errorf("failed to count rejected records: %w", err)
	}

	rate := 0.0
	if total > 0 {
		rate = float64(approved) / float64(total)
	}

	return &models.ModerationStats{
		TotalCount:    total,
		ApprovedCount: approved,
		RejectedCount: rejected,
		ApprovalRate:  rate,
	}, nil
}

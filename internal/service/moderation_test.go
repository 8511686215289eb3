package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"moderation-backend/internal/classifier"
	"moderation-backend/internal/models"
	"moderation-backend/internal/repository"
)

// brokenGateway simulates a classifier whose invocation always fails and
// whose substitute output is additionally unparseable.
type brokenGateway struct{}

func (brokenGateway) Invoke(_ context.Context, _, _ string) classifier.Response {
	return classifier.Response{Raw: "total garbage", Fallback: true, FallbackReason: "forced failure"}
}

// brokenRepository simulates an unavailable store.
type brokenRepository struct{}

func (brokenRepository) CreateRecord(context.Context, *models.ModerationRecord) error {
	return errors.New("store unavailable")
}

func (brokenRepository) GetHistory(context.Context, int, int) ([]models.ModerationRecord, error) {
	return nil, errors.New("store unavailable")
}

func (brokenRepository) CountTotal(context.Context) (int, error) {
	return 0, errors.New("store unavailable")
}

func (brokenRepository) CountByResult(context.Context, string) (int, error) {
	return 0, errors.New("store unavailable")
}

func newTestService(repo repository.ModerationRepository, gateway classifier.Gateway) ModerationService {
	return NewModerationService(repo, gateway, zap.NewNop())
}

func TestCheckContentLocalMode(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantResult string
		scoreBelow float64
		scoreAbove float64
	}{
		{
			name:       "violent content is rejected",
			content:    "I hate everyone, violence now",
			wantResult: models.ResultRejected,
			scoreBelow: 0.5,
		},
		{
			name:       "harmless content is approved",
			content:    "Great game today, Go Carp!",
			wantResult: models.ResultApproved,
			scoreAbove: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repository.NewMemoryModerationRepository()
			svc := newTestService(repo, classifier.NewLocalGateway())

			record, err := svc.CheckContent(context.Background(), tt.content, "post")
			require.NoError(t, err)
			require.NotNil(t, record)

			assert.NotEmpty(t, record.ID)
			assert.Equal(t, "temp-"+record.ID, record.ContentID)
			assert.Equal(t, "post", record.ContentType)
			assert.Equal(t, tt.content, record.OriginalContent)
			assert.Equal(t, tt.wantResult, record.Result)
			assert.NotEmpty(t, record.Reason)
			assert.NotZero(t, record.CreatedAt)

			if tt.scoreBelow > 0 {
				assert.Less(t, record.Score, tt.scoreBelow)
			}
			if tt.scoreAbove > 0 {
				assert.Greater(t, record.Score, tt.scoreAbove)
			}

			// The verdict is persisted.
			history, err := svc.GetHistory(context.Background(), 10, 0)
			require.NoError(t, err)
			require.Len(t, history, 1)
			assert.Equal(t, record.ID, history[0].ID)
		})
	}
}

func TestCheckContentIsDeterministicInLocalMode(t *testing.T) {
	repo := repository.NewMemoryModerationRepository()
	svc := newTestService(repo, classifier.NewLocalGateway())

	first, err := svc.CheckContent(context.Background(), "some spam message", "comment")
	require.NoError(t, err)
	second, err := svc.CheckContent(context.Background(), "some spam message", "comment")
	require.NoError(t, err)

	assert.Equal(t, first.Result, second.Result)
	assert.Equal(t, first.Score, second.Score)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCheckContentSurvivesGatewayFailure(t *testing.T) {
	repo := repository.NewMemoryModerationRepository()
	svc := newTestService(repo, brokenGateway{})

	record, err := svc.CheckContent(context.Background(), "anything at all", "post")
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, models.ResultApproved, record.Result)
	assert.Contains(t, record.Reason, "default")
	assert.InDelta(t, classifier.DefaultScore, record.Score, 1e-9)

	// The defaulted verdict still lands in the history.
	history, err := svc.GetHistory(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, record.ID, history[0].ID)
}

func TestCheckContentSurvivesPersistenceFailure(t *testing.T) {
	svc := newTestService(brokenRepository{}, classifier.NewLocalGateway())

	record, err := svc.CheckContent(context.Background(), "Great game today, Go Carp!", "post")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, models.ResultApproved, record.Result)
}

func TestGetHistoryPagination(t *testing.T) {
	repo := repository.NewMemoryModerationRepository()
	svc := newTestService(repo, classifier.NewLocalGateway())

	for i := 0; i < 5; i++ {
		_, err := svc.CheckContent(context.Background(), "fine content", "post")
		require.NoError(t, err)
	}

	page, err := svc.GetHistory(context.Background(), 3, 0)
	require.NoError(t, err)
	assert.Len(t, page, 3)

	page, err = svc.GetHistory(context.Background(), 3, 3)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = svc.GetHistory(context.Background(), 3, 42)
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.NotNil(t, page)
}

func TestGetStats(t *testing.T) {
	repo := repository.NewMemoryModerationRepository()
	svc := newTestService(repo, classifier.NewLocalGateway())

	approvedContents := []string{"go team", "nice weather", "good morning"}
	rejectedContents := []string{"this is spam", "hate speech"}
	for _, content := range approvedContents {
		_, err := svc.CheckContent(context.Background(), content, "post")
		require.NoError(t, err)
	}
	for _, content := range rejectedContents {
		_, err := svc.CheckContent(context.Background(), content, "comment")
		require.NoError(t, err)
	}

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalCount)
	assert.Equal(t, 3, stats.ApprovedCount)
	assert.Equal(t, 2, stats.RejectedCount)
	assert.InDelta(t, 0.6, stats.ApprovalRate, 1e-9)
}

func TestGetStatsEmptyStore(t *testing.T) {
	repo := repository.NewMemoryModerationRepository()
	svc := newTestService(repo, classifier.NewLocalGateway())

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalCount)
	assert.Equal(t, 0.0, stats.ApprovalRate)
}

func TestReadPathsFailLoudlyWhenStoreIsDown(t *testing.T) {
	svc := newTestService(brokenRepository{}, classifier.NewLocalGateway())

	_, err := svc.GetHistory(context.Background(), 10, 0)
	require.Error(t, err)

	_, err = svc.GetStats(context.Background())
	require.Error(t, err)
}

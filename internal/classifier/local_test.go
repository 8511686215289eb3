package classifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moderation-backend/internal/models"
)

func TestLocalGatewayInvoke(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantResult string
		wantScore  float64
	}{
		{
			name:       "violent content is rejected",
			content:    "I hate everyone, violence now",
			wantResult: models.ResultRejected,
			wantScore:  localRejectedScore,
		},
		{
			name:       "harmless content is approved",
			content:    "Great game today, Go Carp!",
			wantResult: models.ResultApproved,
			wantScore:  localApprovedScore,
		},
		{
			name:       "keyword match is case-insensitive",
			content:    "This is pure SPAM, buy now",
			wantResult: models.ResultRejected,
			wantScore:  localRejectedScore,
		},
		{
			name:       "keyword inside a longer word still matches",
			content:    "stop the harassment please",
			wantResult: models.ResultRejected,
			wantScore:  localRejectedScore,
		},
		{
			name:       "empty content is approved",
			content:    "",
			wantResult: models.ResultApproved,
			wantScore:  localApprovedScore,
		},
	}

	gateway := NewLocalGateway()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildModerationPrompt(tt.content)
			response := gateway.Invoke(context.Background(), prompt, tt.content)

			require.False(t, response.Fallback)

			outcome := ParseVerdict(response.Raw)
			assert.Empty(t, outcome.DefaultedFields)
			assert.Equal(t, tt.wantResult, outcome.Verdict.Result)
			assert.InDelta(t, tt.wantScore, outcome.Verdict.Score, 1e-9)
			assert.NotEmpty(t, outcome.Verdict.Reason)
		})
	}
}

func TestLocalGatewayIsDeterministic(t *testing.T) {
	gateway := NewLocalGateway()
	content := "a message mentioning discrimination"
	prompt := BuildModerationPrompt(content)

	first := gateway.Invoke(context.Background(), prompt, content)
	second := gateway.Invoke(context.Background(), prompt, content)

	assert.Equal(t, first, second)
}

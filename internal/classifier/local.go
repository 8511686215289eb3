package classifier

import (
	"context"
	"encoding/json"
	"strings"

	"moderation-backend/internal/models"
)

// Scores assigned by the local keyword rule.
const (
	localRejectedScore = 0.3
	localApprovedScore = 0.9

	localReason = "auto-judged by the local keyword rule (mock mode)"
)

// disallowedKeywords trip the local rule when contained in the submitted
// content, case-insensitively.
var disallowedKeywords = []string{
	"violence",
	"hate",
	"discrimination",
	"spam",
	"harassment",
}

// LocalGateway computes a deterministic verdict from the submitted content
// alone, with no network dependency. It is used when no classifier API key is
// configured or the debug flag is set, and by the test suite.
type LocalGateway struct{}

// NewLocalGateway creates a new local mock classifier gateway.
func NewLocalGateway() *LocalGateway {
	return &LocalGateway{}
}

// Invoke ignores the prompt and judges the content by keyword containment.
// The verdict is emitted as JSON so the parse path stays uniform with the
// live gateway.
func (g *LocalGateway) Invoke(_ context.Context, _ string, content string) Response {
	lowered := strings.ToLower(content)

	rejected := false
	for _, kw := range disallowedKeywords {
		if strings.Contains(lowered, kw) {
			rejected = true
			break
		}
	}

	verdict := rawVerdict{
		Result: models.ResultApproved,
		Reason: localReason,
		Score:  localApprovedScore,
	}
	if rejected {
		verdict.Result = models.ResultRejected
		verdict.Score = localRejectedScore
	}

	raw, _ := json.Marshal(verdict)
	return Response{Raw: string(raw)}
}

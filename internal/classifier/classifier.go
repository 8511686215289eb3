package classifier

import (
	"context"
	"encoding/json"

	"moderation-backend/internal/models"
)

const (
	// DefaultScore is the confidence recorded whenever the classifier or the
	// parser had to fall back to a default verdict.
	DefaultScore = 0.5

	invocationFallbackReason = "classifier invocation failed; approved by default"
)

// Response is the raw classifier output handed to the response parser.
// Fallback marks responses synthesized locally after an invocation failure,
// so callers can tell "the model approved" apart from "the call failed and we
// defaulted to approved".
type Response struct {
	Raw            string
	Fallback       bool
	FallbackReason string // cause of the fallback, empty when Fallback is false
}

// Gateway invokes a text classifier with a built prompt. Implementations
// never return an error: any invocation failure is converted into a
// conservative fallback Response so the moderation path stays available.
type Gateway interface {
	Invoke(ctx context.Context, prompt, content string) Response
}

// rawVerdict is the JSON structure the classifier is asked to answer with.
type rawVerdict struct {
	Result string  `json:"result"`
	Reason string  `json:"reason"`
	Score  float64 `json:"score"`
}

// fallbackResponse builds the fixed conservative verdict substituted when an
// invocation fails. It is emitted as JSON so the parse path stays uniform.
func fallbackResponse(cause string) Response {
	raw, _ := json.Marshal(rawVerdict{
		Result: models.ResultApproved,
		Reason: invocationFallbackReason,
		Score:  DefaultScore,
	})
	return Response{Raw: string(raw), Fallback: true, FallbackReason: cause}
}

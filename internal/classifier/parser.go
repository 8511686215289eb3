package classifier

import (
	"encoding/json"
	"strconv"
	"strings"

	"moderation-backend/internal/models"
)

const (
	parseFallbackReason      = "moderation response could not be parsed; approved by default"
	missingReasonPlaceholder = "no reason provided"
)

// Verdict is the validated classification outcome extracted from a raw
// classifier response.
type Verdict struct {
	Result string
	Reason string
	Score  float64
}

// ParseOutcome carries the verdict plus the names of any fields that had to
// fall back to defaults, so callers can tell a clean parse apart from a
// recovered one.
type ParseOutcome struct {
	Verdict         Verdict
	DefaultedFields []string
}

// ParseVerdict turns a raw classifier response into a validated verdict. It
// tolerates markdown fences, JSON embedded in surrounding prose, and missing
// or malformed fields, recovering each field independently. It never fails:
// unparseable input yields the fixed default verdict.
func ParseVerdict(raw string) ParseOutcome {
	content := stripCodeFences(raw)

	if !strings.HasPrefix(content, "{") {
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start == -1 || end <= start {
			return defaultOutcome()
		}
		content = content[start : end+1]
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return defaultOutcome()
	}

	outcome := ParseOutcome{}
	outcome.Verdict.Result = parseResult(fields, &outcome)
	outcome.Verdict.Reason = parseReason(fields, &outcome)
	outcome.Verdict.Score = parseScore(fields, &outcome)
	return outcome
}

func defaultOutcome() ParseOutcome {
	return ParseOutcome{
		Verdict: Verdict{
			Result: models.ResultApproved,
			Reason: parseFallbackReason,
			Score:  DefaultScore,
		},
		DefaultedFields: []string{"result", "reason", "score"},
	}
}

func parseResult(fields map[string]json.RawMessage, outcome *ParseOutcome) string {
	var result string
	if raw, ok := fields["result"]; ok {
		if err := json.Unmarshal(raw, &result); err == nil {
			result = strings.ToLower(strings.TrimSpace(result))
			if result == models.ResultApproved || result == models.ResultRejected {
				return result
			}
		}
	}
	outcome.DefaultedFields = append(outcome.DefaultedFields, "result")
	return models.ResultApproved
}

func parseReason(fields map[string]json.RawMessage, outcome *ParseOutcome) string {
	var reason string
	if raw, ok := fields["reason"]; ok {
		if err := json.Unmarshal(raw, &reason); err == nil && strings.TrimSpace(reason) != "" {
			return reason
		}
	}
	outcome.DefaultedFields = append(outcome.DefaultedFields, "reason")
	return missingReasonPlaceholder
}

// parseScore coerces the score field to a float in [0,1]. Numbers and numeric
// strings are accepted; anything else defaults that field only.
func parseScore(fields map[string]json.RawMessage, outcome *ParseOutcome) float64 {
	raw, ok := fields["score"]
	if !ok {
		outcome.DefaultedFields = append(outcome.DefaultedFields, "score")
		return DefaultScore
	}

	var score float64
	if err := json.Unmarshal(raw, &score); err != nil {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			outcome.DefaultedFields = append(outcome.DefaultedFields, "score")
			return DefaultScore
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			outcome.DefaultedFields = append(outcome.DefaultedFields, "score")
			return DefaultScore
		}
		score = parsed
	}

	// Keep the stored score inside its documented domain.
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

// stripCodeFences removes markdown code blocks if present.
func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}

	return strings.TrimSpace(content)
}

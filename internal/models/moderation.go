package models

// Moderation results. A record never carries anything outside these two values.
const (
	ResultApproved = "approved"
	ResultRejected = "rejected"
)

// ModerationRecord represents one classification outcome, stored in the
// 'moderation_records' table (or the DynamoDB moderation table). Records are
// immutable once created.
type ModerationRecord struct {
	ID              string  `db:"id" json:"id" dynamodbav:"id"`
	ContentID       string  `db:"content_id" json:"content_id" dynamodbav:"content_id"`
	ContentType     string  `db:"content_type" json:"content_type" dynamodbav:"content_type"`
	OriginalContent string  `db:"original_content" json:"original_content" dynamodbav:"original_content"`
	Result          string  `db:"result" json:"result" dynamodbav:"result"`
	Reason          string  `db:"reason" json:"reason" dynamodbav:"reason"`
	Score           float64 `db:"score" json:"score" dynamodbav:"score"`
	CreatedAt       int64   `db:"created_at" json:"created_at" dynamodbav:"created_at"` // epoch seconds
}

// ModerationStats is the aggregate summary over all stored records. The three
// counts are collected independently, so under concurrent writes they are a
// best-effort snapshot, not an atomic one.
type ModerationStats struct {
	TotalCount    int     `json:"total_count"`
	ApprovedCount int     `json:"approved_count"`
	RejectedCount int     `json:"rejected_count"`
	ApprovalRate  float64 `json:"approval_rate"`
}

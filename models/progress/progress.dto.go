package progress

// OpenRequest starts (or resumes) consumption of a piece of content.
type OpenRequest struct {
	ContentID uint `json:"content_id"`
}

// PingRequest is a video heartbeat. The seconds value is clamped
// server-side; clients cannot be trusted with it.
type PingRequest struct {
	ContentID            uint  `json:"content_id"`
	SecondsSinceLastPing int64 `json:"seconds_since_last_ping"`
}

// CompleteRequest marks content finished, optionally with a quiz score.
type CompleteRequest struct {
	ContentID uint `json:"content_id"`
	QuizScore *int `json:"quiz_score"`
}

// ListQuery paginates a progress listing.
type ListQuery struct {
	Page  *int `query:"page" json:"page"`
	Limit *int `query:"limit" json:"limit"`
}

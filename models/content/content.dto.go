package content

// Patch is the client-editable subset of a content record. Approval
// fields are never patchable through this path.
type Patch struct {
	Title        *string `json:"title" validate:"omitempty,min=3,max=150"`
	Description  *string `json:"description" validate:"omitempty,max=2000"`
	Subject      *string `json:"subject" validate:"omitempty,max=100"`
	Grade        *string `json:"grade" validate:"omitempty,max=50"`
	StorageKey   *string `json:"storage_key"`
	ThumbnailKey *string `json:"thumbnail_key"`
	DurationSec  *int    `json:"duration_sec" validate:"omitempty,min=0"`
}

// ListQuery is the filter and pagination set accepted by listings. The
// approval filter is only honored for admins; everyone else gets the
// approved-only scope regardless of what they send.
type ListQuery struct {
	Page           *int   `query:"page" json:"page"`
	Limit          *int   `query:"limit" json:"limit"`
	ContentType    string `query:"content_type" json:"content_type"`
	Subject        string `query:"subject" json:"subject"`
	Grade          string `query:"grade" json:"grade"`
	ApprovalStatus string `query:"approval_status" json:"approval_status"`
}

// ReviewRequest carries the optional feedback of an approve/reject.
type ReviewRequest struct {
	Feedback string `json:"feedback" validate:"max=2000"`
}

// UploadRequest asks for a presigned upload URL for a new object.
type UploadRequest struct {
	Filename    string `json:"filename" validate:"required,max=255"`
	ContentType string `json:"content_type" validate:"required,max=100"`
}

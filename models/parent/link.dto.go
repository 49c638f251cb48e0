package parent

// LinkRequest resolves a student either by id or by join code. Exactly
// one of the two must be supplied.
type LinkRequest struct {
	ChildID     *uint  `json:"child_id"`
	StudentCode string `json:"student_code"`
}

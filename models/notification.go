package models

// DigestPayload is the asynq task payload for a trending digest push.
type DigestPayload struct {
	MemberID string `json:"memberId"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}

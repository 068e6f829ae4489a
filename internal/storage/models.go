package storage

import "time"

// ScoringJob tracks one batch scoring run. Progress counters back the
// status endpoint's "done of total" display.
type ScoringJob struct {
	ID             string     `json:"id"`
	Status         string     `json:"status"` // pending, processing, completed, failed
	JobDescription string     `json:"-"`
	Total          int        `json:"total"`
	Done           int        `json:"done"`
	ErrorMessage   *string    `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// StoredResult is one persisted CandidateResult row, résumé text included
// so interviews can be started from a stored candidate id. The résumé text
// stays server-side; it is never serialized to listings.
type StoredResult struct {
	JobID       string    `json:"job_id"`
	CandidateID string    `json:"candidate_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Score       int       `json:"score"`
	Domain      string    `json:"domain"`
	Comment     string    `json:"comment"`
	Failed      bool      `json:"failed"`
	ErrorDetail string    `json:"error_detail,omitempty"`
	ResumeText  string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

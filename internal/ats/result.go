package ats

// CandidateResult is the outcome of scoring one uploaded résumé. A failed
// extraction or scoring call still produces a result record so the
// operator can see failure counts; nothing is dropped silently.
type CandidateResult struct {
	SourceFilename string `json:"source_filename"`
	CandidateID    string `json:"candidate_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Score          int    `json:"score"`
	Domain         string `json:"domain"`
	Comment        string `json:"comment"`
	Failed         bool   `json:"failed"`
	ErrorDetail    string `json:"error_detail,omitempty"`
}

package interview

import (
	"time"

	"github.com/mohitcdry/automatic-recruitment-system/internal/llm"
)

// State of an interview session. Transitions are linear; the only way back
// is a full reset to a brand-new session.
type State string

const (
	StateSetup     State = "SETUP"
	StateInterview State = "INTERVIEW"
	StateReport    State = "REPORT"
)

// Session tracks one candidate's live interview: the ordered transcript,
// the current state and the dedup guard for speech synthesis. It is owned
// exclusively by the Manager; handlers only see snapshots.
type Session struct {
	CandidateName string        `json:"candidate_name"`
	ResumeText    string        `json:"-"`
	Transcript    []llm.Message `json:"transcript"`
	State         State         `json:"state"`
	StartTime     time.Time     `json:"start_time"`

	// lastSpoken guards against re-synthesizing the same assistant turn
	// across repeated cycles.
	lastSpoken string

	report *Report
}

// latestAssistant returns the content of the most recent assistant turn,
// or "" when none exists yet.
func (s *Session) latestAssistant() string {
	for i := len(s.Transcript) - 1; i >= 0; i-- {
		if s.Transcript[i].Role == llm.RoleAssistant {
			return s.Transcript[i].Content
		}
	}
	return ""
}

func (s *Session) append(role llm.Role, content string) {
	s.Transcript = append(s.Transcript, llm.Message{Role: role, Content: content})
}

// Elapsed is the wall-clock time since the interview started.
func (s *Session) Elapsed(now time.Time) time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	return now.Sub(s.StartTime)
}

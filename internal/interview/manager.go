package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mohitcdry/automatic-recruitment-system/internal/llm"
)

var (
	ErrNoSession   = errors.New("no active interview session")
	ErrWrongState  = errors.New("operation not valid in current session state")
	ErrEmptyResume = errors.New("resume text is required to start an interview")
	ErrNoReportYet = errors.New("interview has not concluded")
)

// defaultClosingPhrases mark an assistant turn as the end of the
// interview. Matching is case-insensitive substring.
var defaultClosingPhrases = []string{
	"thank you for your time",
	"this concludes our interview",
	"we will be in touch",
	"have a great day",
	"best of luck",
}

type chatModel interface {
	Chat(ctx context.Context, messages []llm.Message) (string, error)
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Synthesizer converts assistant text to playable audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type artifactStore interface {
	Save(audio []byte) (string, error)
	Cleanup()
}

// TurnOutcome is what one interview cycle produced.
type TurnOutcome struct {
	Assistant string `json:"assistant,omitempty"`
	AudioPath string `json:"audio_path,omitempty"`
	State     State  `json:"state"`
	Warning   string `json:"warning,omitempty"`
	Elapsed   string `json:"elapsed"`
}

// Manager drives the interview state machine. One active session per
// process; every transition happens through an explicit call (start, turn,
// force-finish, reset) instead of re-evaluating the world each tick.
// mu serializes entire cycles, not just pointer handoffs: one turn,
// synthesis pass or report generation fully completes before the next
// call touches the session.
type Manager struct {
	mu sync.Mutex

	model          chatModel
	synth          Synthesizer
	audio          artifactStore
	maxDuration    time.Duration
	closingPhrases []string
	logger         *zap.Logger

	now func() time.Time

	session *Session
}

func NewManager(model chatModel, synth Synthesizer, audio artifactStore, maxDuration time.Duration, logger *zap.Logger) *Manager {
	if maxDuration <= 0 {
		maxDuration = 8 * time.Minute
	}
	return &Manager{
		model:          model,
		synth:          synth,
		audio:          audio,
		maxDuration:    maxDuration,
		closingPhrases: defaultClosingPhrases,
		logger:         logger,
		now:            time.Now,
	}
}

const systemPromptFormat = `You are a professional AI HR Recruiter interviewing %s.
- Start with a warm greeting and a quick introduction request.
- Ask CV-based questions (Work Experience > Skills). One at a time. Ask follow-ups if needed.
- Conclude politely when you have covered the candidate's background, ending with "Thank you for your time".
Candidate's Resume:
%s`

// Start creates a fresh session from résumé text and obtains the opening
// question. It fails without touching any existing session when the résumé
// text is empty.
func (m *Manager) Start(ctx context.Context, candidateName, resumeText string) (*Session, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, ErrEmptyResume
	}
	if candidateName == "" {
		candidateName = "Candidate"
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	session := &Session{
		CandidateName: candidateName,
		ResumeText:    resumeText,
		State:         StateSetup,
	}
	session.append(llm.RoleSystem, fmt.Sprintf(systemPromptFormat, candidateName, resumeText))

	opening, err := m.model.Chat(ctx, session.Transcript)
	if err != nil {
		return nil, fmt.Errorf("obtain opening question: %w", err)
	}
	session.append(llm.RoleAssistant, opening)
	session.State = StateInterview
	session.StartTime = m.now()
	m.session = session

	m.logger.Info("interview started",
		zap.String("candidate", candidateName),
		zap.Int("resume_length", len(resumeText)),
	)

	return session, nil
}

// Speak synthesizes the latest assistant turn unless it was already
// spoken, returning the audio artifact path. Returns "" when there is
// nothing new to say.
func (m *Manager) Speak(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.session
	if session == nil {
		return "", ErrNoSession
	}

	latest := session.latestAssistant()
	if latest == "" || latest == session.lastSpoken || m.synth == nil {
		return "", nil
	}

	audio, err := m.synth.Synthesize(ctx, latest)
	if err != nil {
		return "", fmt.Errorf("synthesize assistant turn: %w", err)
	}

	path := ""
	if len(audio) > 0 && m.audio != nil {
		path, err = m.audio.Save(audio)
		if err != nil {
			return "", err
		}
	}

	session.lastSpoken = latest
	return path, nil
}

// Turn runs one interview cycle for a recognized utterance: append the
// user turn, obtain the next assistant turn, then evaluate the transition
// conditions. An empty utterance ends the cycle with a warning and no new
// turn, so the same assistant question stands for the next cycle.
func (m *Manager) Turn(ctx context.Context, utterance string) (*TurnOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.session
	if session == nil {
		return nil, ErrNoSession
	}
	if session.State != StateInterview {
		return nil, ErrWrongState
	}

	elapsed := session.Elapsed(m.now())
	if elapsed > m.maxDuration {
		m.conclude(session)
		return &TurnOutcome{
			State:   StateReport,
			Warning: "interview time limit reached",
			Elapsed: elapsed.Round(time.Second).String(),
		}, nil
	}

	if strings.TrimSpace(utterance) == "" {
		return &TurnOutcome{
			State:   session.State,
			Warning: "no speech recognized, please try again",
			Elapsed: elapsed.Round(time.Second).String(),
		}, nil
	}

	session.append(llm.RoleUser, utterance)

	assistant, err := m.model.Chat(ctx, session.Transcript)
	if err != nil {
		return nil, fmt.Errorf("obtain next question: %w", err)
	}
	session.append(llm.RoleAssistant, assistant)

	outcome := &TurnOutcome{
		Assistant: assistant,
		State:     session.State,
		Elapsed:   elapsed.Round(time.Second).String(),
	}

	if m.containsClosingPhrase(assistant) {
		m.conclude(session)
		outcome.State = StateReport
	}

	return outcome, nil
}

// Finish is the operator's explicit transition to report generation.
func (m *Manager) Finish() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.session
	if session == nil {
		return ErrNoSession
	}
	m.conclude(session)
	return nil
}

// Reset discards the session and any audio artifacts, from any state.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = nil
	if m.audio != nil {
		m.audio.Cleanup()
	}
	m.logger.Info("interview session reset")
}

// Session returns the active session, or nil.
func (m *Manager) Session() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// conclude moves the session to REPORT. Callers hold m.mu.
func (m *Manager) conclude(session *Session) {
	if session.State != StateReport {
		session.State = StateReport
		m.logger.Info("interview concluded",
			zap.String("candidate", session.CandidateName),
			zap.Int("turns", len(session.Transcript)),
		)
	}
}

func (m *Manager) containsClosingPhrase(content string) bool {
	lowered := strings.ToLower(content)
	for _, phrase := range m.closingPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

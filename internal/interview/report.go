package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mohitcdry/automatic-recruitment-system/internal/llm"
)

// Report is the final evaluation of a concluded interview.
type Report struct {
	CandidateName string   `json:"candidate_name"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Score         int      `json:"interview_score"`
	Decision      string   `json:"status"`
}

// ParseError carries the model's raw response when it did not conform to
// the expected structure. The operator sees the raw text and can re-trigger
// generation manually.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("report response did not parse: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

const reportPromptFormat = `You are a senior HR Analyst. Based on the following interview transcript with %s, provide a detailed evaluation.

Interview Transcript:
---
%s
---

Your Task:
Provide the final evaluation based on the transcript. Give:
- Strengths: The candidate's key strengths.
- Weaknesses: Their potential weaknesses or areas for improvement.
- Interview Score: A score out of 100.
- Decision: A final decision ("Shortlisted", "Hold", or "Reject").

Output your response as a single, valid JSON object with the keys: "strengths", "weaknesses", "interview_score", "status".`

// Report generates the evaluation for a concluded session. The first
// successful generation is cached on the session; later calls return the
// identical report without another model call.
func (m *Manager) Report(ctx context.Context) (*Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.session
	if session == nil {
		return nil, ErrNoSession
	}
	if session.State != StateReport {
		return nil, ErrNoReportYet
	}
	if session.report != nil {
		return session.report, nil
	}

	prompt := fmt.Sprintf(reportPromptFormat, session.CandidateName, transcriptText(session.Transcript))

	raw, err := m.model.GenerateJSON(ctx, prompt, "Provide the evaluation now.")
	if err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}

	report, err := parseReport(raw)
	if err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	report.CandidateName = session.CandidateName
	session.report = report

	return report, nil
}

// transcriptText flattens the conversation, excluding system turns.
func transcriptText(transcript []llm.Message) string {
	var lines []string
	for _, msg := range transcript {
		if msg.Role == llm.RoleSystem {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}
	return strings.Join(lines, "\n")
}

func parseReport(raw string) (*Report, error) {
	cleaned := llm.ExtractJSON(raw)

	var data struct {
		Strengths  json.RawMessage `json:"strengths"`
		Weaknesses json.RawMessage `json:"weaknesses"`
		Score      float64         `json:"interview_score"`
		Status     string          `json:"status"`
	}
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, err
	}

	return &Report{
		Strengths:  coerceStringList(data.Strengths),
		Weaknesses: coerceStringList(data.Weaknesses),
		Score:      int(data.Score),
		Decision:   strings.TrimSpace(data.Status),
	}, nil
}

// coerceStringList accepts either a JSON array of strings or a single
// string; the model alternates between the two.
func coerceStringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{"N/A"}
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return []string{"N/A"}
		}
		return list
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil && strings.TrimSpace(single) != "" {
		return []string{single}
	}

	return []string{"N/A"}
}

// WriteText exports the report in the plain-text layout used by the
// download endpoint.
func WriteText(w io.Writer, report *Report) error {
	var b strings.Builder
	b.WriteString("Interview Evaluation Report\n")
	b.WriteString("===========================\n")
	fmt.Fprintf(&b, "Candidate Name: %s\n", report.CandidateName)
	fmt.Fprintf(&b, "Score: %d/100\n", report.Score)
	fmt.Fprintf(&b, "Decision: %s\n\n", report.Decision)

	b.WriteString("Strengths:\n")
	for _, s := range report.Strengths {
		fmt.Fprintf(&b, "- %s\n", s)
	}

	b.WriteString("\nWeaknesses:\n")
	for _, s := range report.Weaknesses {
		fmt.Fprintf(&b, "- %s\n", s)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

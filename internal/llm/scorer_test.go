package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastSystem string
	lastUser   string
}

func (s *stubGenerator) GenerateJSON(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	s.lastSystem = systemPrompt
	s.lastUser = userPrompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestScoreResume(t *testing.T) {
	stub := &stubGenerator{response: `{"name": "John Doe", "email": "john@example.com", "score": 85, "domain": "Information Technology", "comment": "Strong candidate."}`}
	scorer := NewScorer(stub, zap.NewNop())

	eval, err := scorer.ScoreResume(context.Background(), "resume text", "job description")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if eval.Name != "John Doe" || eval.Email != "john@example.com" {
		t.Fatalf("unexpected candidate details: %+v", eval)
	}
	if eval.Score != 85 {
		t.Fatalf("expected score 85, got %d", eval.Score)
	}
	if eval.Domain != "Information Technology" {
		t.Fatalf("unexpected domain: %s", eval.Domain)
	}

	if !strings.Contains(stub.lastUser, "resume text") || !strings.Contains(stub.lastUser, "job description") {
		t.Fatalf("prompt missing inputs: %s", stub.lastUser)
	}
	if !strings.Contains(stub.lastSystem, "AI HR Recruiter") {
		t.Fatalf("system prompt not sent")
	}
}

func TestScoreResumeHandlesCodeFence(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"name\": \"Jane\", \"email\": \"jane@example.com\", \"score\": 61.7, \"domain\": \"Hospitality\", \"comment\": \"ok\"}\n```"}
	scorer := NewScorer(stub, zap.NewNop())

	eval, err := scorer.ScoreResume(context.Background(), "r", "j")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval.Score != 61 {
		t.Fatalf("fractional score not truncated: %d", eval.Score)
	}
}

func TestScoreResumeDefaultsAndClamps(t *testing.T) {
	stub := &stubGenerator{response: `{"name": "", "email": "", "score": 140, "domain": "Manufacturing", "comment": "x"}`}
	scorer := NewScorer(stub, zap.NewNop())

	eval, err := scorer.ScoreResume(context.Background(), "r", "j")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval.Name != "N/A" || eval.Email != "N/A" {
		t.Fatalf("missing details must default to N/A: %+v", eval)
	}
	if eval.Score != 100 {
		t.Fatalf("score not clamped: %d", eval.Score)
	}
}

func TestScoreResumeMalformedResponse(t *testing.T) {
	stub := &stubGenerator{response: "sorry, I cannot help with that"}
	scorer := NewScorer(stub, zap.NewNop())

	_, err := scorer.ScoreResume(context.Background(), "r", "j")
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !strings.Contains(err.Error(), "sorry, I cannot help") {
		t.Fatalf("raw response not carried in error: %v", err)
	}
}

func TestScoreResumePropagatesClientError(t *testing.T) {
	sentinel := errors.New("api unreachable")
	scorer := NewScorer(&stubGenerator{err: sentinel}, zap.NewNop())

	_, err := scorer.ScoreResume(context.Background(), "r", "j")
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected client error to propagate, got %v", err)
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `{"a": 1}`, `{"a": 1}`},
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"padded", "  {\"a\": 1}  ", `{"a": 1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractJSON(tc.input); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

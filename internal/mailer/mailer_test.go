package mailer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/mohitcdry/automatic-recruitment-system/internal/ats"
)

type stubGenerator struct {
	prompts []string
	err     error
}

func (s *stubGenerator) Generate(_ context.Context, _, userPrompt string) (string, error) {
	s.prompts = append(s.prompts, userPrompt)
	if s.err != nil {
		return "", s.err
	}
	return "Dear candidate, you are invited.", nil
}

type stubSendCloser struct {
	sent   []string
	failAt int // 1-based index of the send that fails; 0 means never
	closed bool
}

func (s *stubSendCloser) Send(_ string, to []string, _ io.WriterTo) error {
	if s.failAt > 0 && len(s.sent)+1 == s.failAt {
		return errors.New("connection reset")
	}
	s.sent = append(s.sent, to[0])
	return nil
}

func (s *stubSendCloser) Close() error {
	s.closed = true
	return nil
}

type stubDialer struct {
	conn    *stubSendCloser
	dialErr error
}

func (s *stubDialer) Dial() (gomail.SendCloser, error) {
	if s.dialErr != nil {
		return nil, s.dialErr
	}
	return s.conn, nil
}

func shortlisted() []ats.CandidateResult {
	return []ats.CandidateResult{
		{CandidateID: "alice", Name: "Alice", Email: "alice@example.com", Score: 90},
		{CandidateID: "bob", Name: "N/A", Email: "N/A", Score: 80},
		{CandidateID: "carol", Name: "Carol", Email: "carol@example.com", Score: 70},
	}
}

func TestComposeSkipsCandidatesWithoutEmail(t *testing.T) {
	gen := &stubGenerator{}
	m := New(gen, &stubDialer{conn: &stubSendCloser{}}, "hr@example.com", zap.NewNop())

	invitations, err := m.Compose(context.Background(), shortlisted(), "Backend Engineer", "https://interview.example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(invitations) != 2 {
		t.Fatalf("expected 2 invitations (bob has no email), got %d", len(invitations))
	}
	for _, inv := range invitations {
		if inv.Subject != "Invitation: AI Interview for Backend Engineer" {
			t.Fatalf("unexpected subject: %s", inv.Subject)
		}
	}

	if len(gen.prompts) != 2 {
		t.Fatalf("expected one generation per invitee, got %d", len(gen.prompts))
	}
	if !strings.Contains(gen.prompts[0], "Alice") || !strings.Contains(gen.prompts[0], "Backend Engineer") {
		t.Fatalf("prompt not personalized: %s", gen.prompts[0])
	}
	if !strings.Contains(gen.prompts[0], "https://interview.example.com") {
		t.Fatalf("prompt missing interview link: %s", gen.prompts[0])
	}
}

func TestComposeFailsOnGenerationError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("model unavailable")}
	m := New(gen, &stubDialer{conn: &stubSendCloser{}}, "hr@example.com", zap.NewNop())

	if _, err := m.Compose(context.Background(), shortlisted(), "", ""); err == nil {
		t.Fatalf("expected compose to fail")
	}
}

func TestSendDeliversBatchOverOneSession(t *testing.T) {
	conn := &stubSendCloser{}
	m := New(&stubGenerator{}, &stubDialer{conn: conn}, "hr@example.com", zap.NewNop())

	invitations := []Invitation{
		{CandidateID: "alice", Recipient: "alice@example.com", Subject: "s", Body: "b"},
		{CandidateID: "carol", Recipient: "carol@example.com", Subject: "s", Body: "b"},
	}

	sent, err := m.Send(invitations)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent != 2 {
		t.Fatalf("expected 2 sends, got %d", sent)
	}
	if fmt.Sprint(conn.sent) != "[alice@example.com carol@example.com]" {
		t.Fatalf("unexpected recipients: %v", conn.sent)
	}
	if !conn.closed {
		t.Fatalf("smtp session not closed")
	}
}

func TestSendAbortsOnTransportFailure(t *testing.T) {
	conn := &stubSendCloser{failAt: 2}
	m := New(&stubGenerator{}, &stubDialer{conn: conn}, "hr@example.com", zap.NewNop())

	invitations := []Invitation{
		{CandidateID: "a", Recipient: "a@example.com", Subject: "s", Body: "b"},
		{CandidateID: "b", Recipient: "b@example.com", Subject: "s", Body: "b"},
		{CandidateID: "c", Recipient: "c@example.com", Subject: "s", Body: "b"},
	}

	sent, err := m.Send(invitations)
	if err == nil {
		t.Fatalf("expected transport failure")
	}
	if sent != 1 {
		t.Fatalf("expected 1 delivered before the abort, got %d", sent)
	}
	if len(conn.sent) != 1 {
		t.Fatalf("remaining sends must not be attempted, got %v", conn.sent)
	}
}

func TestSendDialFailure(t *testing.T) {
	m := New(&stubGenerator{}, &stubDialer{dialErr: errors.New("tls handshake failed")}, "hr@example.com", zap.NewNop())

	sent, err := m.Send([]Invitation{{Recipient: "a@example.com"}})
	if err == nil || sent != 0 {
		t.Fatalf("expected dial failure with zero sends, got sent=%d err=%v", sent, err)
	}
}

func TestSendEmptyBatch(t *testing.T) {
	m := New(&stubGenerator{}, &stubDialer{conn: &stubSendCloser{}}, "hr@example.com", zap.NewNop())

	sent, err := m.Send(nil)
	if err != nil || sent != 0 {
		t.Fatalf("empty batch must be a no-op, got sent=%d err=%v", sent, err)
	}
}

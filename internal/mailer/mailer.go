package mailer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/mohitcdry/automatic-recruitment-system/internal/ats"
)

type generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Dialer opens one SMTP session for a batch of sends.
type Dialer interface {
	Dial() (gomail.SendCloser, error)
}

// Mailer generates a personalized invitation per shortlisted candidate and
// delivers the whole batch over a single SMTP session. A transport failure
// aborts the remaining sends; there is no retry or partial-failure
// tracking.
type Mailer struct {
	generator generator
	dialer    Dialer
	from      string
	logger    *zap.Logger
}

func New(g generator, d Dialer, from string, logger *zap.Logger) *Mailer {
	return &Mailer{
		generator: g,
		dialer:    d,
		from:      from,
		logger:    logger,
	}
}

// NewSMTPDialer builds the production dialer.
func NewSMTPDialer(host string, port int, username, password string) *gomail.Dialer {
	return gomail.NewDialer(host, port, username, password)
}

// Invitation is one composed message ready for delivery.
type Invitation struct {
	CandidateID string
	Recipient   string
	Subject     string
	Body        string
}

const invitePromptFormat = "Write a professional email to %s informing them they are shortlisted for the position of %s. " +
	"Invite them to attend an AI-powered interview at this link: %s. " +
	"Keep the tone friendly and formal. Sign off as 'HR Team'."

// Compose generates one personalized message per candidate with a usable
// email address. Generation failures fail the whole compose step; nothing
// has been sent yet at that point.
func (m *Mailer) Compose(ctx context.Context, candidates []ats.CandidateResult, jobTitle, interviewLink string) ([]Invitation, error) {
	if jobTitle == "" {
		jobTitle = "the position"
	}

	subject := fmt.Sprintf("Invitation: AI Interview for %s", jobTitle)

	var invitations []Invitation
	for _, c := range candidates {
		email := strings.TrimSpace(c.Email)
		if email == "" || strings.EqualFold(email, "N/A") {
			m.logger.Warn("skipping candidate without email", zap.String("candidate_id", c.CandidateID))
			continue
		}

		name := c.Name
		if name == "" || strings.EqualFold(name, "N/A") {
			name = "Candidate"
		}

		body, err := m.generator.Generate(ctx, "", fmt.Sprintf(invitePromptFormat, name, jobTitle, interviewLink))
		if err != nil {
			return nil, fmt.Errorf("generate invitation for %s: %w", c.CandidateID, err)
		}

		invitations = append(invitations, Invitation{
			CandidateID: c.CandidateID,
			Recipient:   email,
			Subject:     subject,
			Body:        body,
		})
	}

	return invitations, nil
}

// Send delivers the invitations over one SMTP session, returning how many
// went out before any transport failure.
func (m *Mailer) Send(invitations []Invitation) (int, error) {
	if len(invitations) == 0 {
		return 0, nil
	}

	conn, err := m.dialer.Dial()
	if err != nil {
		return 0, fmt.Errorf("dial smtp: %w", err)
	}
	defer conn.Close()

	sent := 0
	for _, inv := range invitations {
		msg := gomail.NewMessage()
		msg.SetHeader("From", m.from)
		msg.SetHeader("To", inv.Recipient)
		msg.SetHeader("Subject", inv.Subject)
		msg.SetBody("text/plain", inv.Body)

		if err := gomail.Send(conn, msg); err != nil {
			// Batch-fatal: remaining candidates are not attempted.
			return sent, fmt.Errorf("send to %s: %w", inv.Recipient, err)
		}
		sent++
		m.logger.Info("invitation sent",
			zap.String("candidate_id", inv.CandidateID),
			zap.String("recipient", inv.Recipient),
		)
	}

	return sent, nil
}

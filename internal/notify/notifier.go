package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/brightforge/site-api/internal/intake"
	"github.com/brightforge/site-api/internal/metrics"
)

// Notifier turns completed sessions and contact-form submissions into
// outbound notifications. It implements intake.LeadNotifier.
type Notifier struct {
	sender  Sender
	slack   *SlackAlerter
	metrics *metrics.Metrics
	logger  zerolog.Logger
	inbox   string
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithSlack adds an optional Slack lead alert alongside the email.
func WithSlack(a *SlackAlerter) Option {
	return func(n *Notifier) { n.slack = a }
}

// WithMetrics wires the lead counter.
func WithMetrics(m *metrics.Metrics) Option {
	return func(n *Notifier) { n.metrics = m }
}

// New creates a Notifier that delivers to the given lead inbox.
func New(sender Sender, inbox string, logger zerolog.Logger, opts ...Option) *Notifier {
	n := &Notifier{
		sender: sender,
		logger: logger.With().Str("component", "notify").Logger(),
		inbox:  inbox,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// LeadCompleted sends the lead email (and the optional Slack alert) for a
// session that just reached the completed stage.
func (n *Notifier) LeadCompleted(ctx context.Context, s *intake.Session) error {
	if n.metrics != nil {
		n.metrics.RecordLead()
	}

	// The Slack ping is independent of email delivery; a Slack failure
	// never fails the lead.
	if n.slack != nil {
		if err := n.slack.LeadAlert(ctx, s); err != nil {
			n.logger.Warn().Err(err).Str("session_id", s.ID).Msg("slack lead alert failed")
		}
	}

	if err := n.sender.Send(ctx, buildLeadEmail(n.inbox, s)); err != nil {
		return fmt.Errorf("lead email: %w", err)
	}
	return nil
}

// ContactSubmitted dispatches the two contact-form emails: the internal
// alert and the customer auto-reply. The alert is the one that matters;
// an auto-reply failure is logged and swallowed.
func (n *Notifier) ContactSubmitted(ctx context.Context, sub ContactSubmission) error {
	if err := n.sender.Send(ctx, buildContactAlert(n.inbox, sub)); err != nil {
		return fmt.Errorf("contact alert email: %w", err)
	}

	if err := n.sender.Send(ctx, buildContactAutoReply(sub)); err != nil {
		n.logger.Warn().Err(err).Str("email", sub.Email).Msg("contact auto-reply failed")
	}
	return nil
}

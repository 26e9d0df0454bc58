// Package notify formats and delivers outbound lead and contact-form
// notifications. Delivery is best-effort: one primary provider, one
// fallback, no retries.
package notify

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/brightforge/site-api/internal/metrics"
)

// Email is one outbound message, ready to send.
type Email struct {
	To      []string
	Subject string
	Text    string
	// Kind labels the email for metrics: "lead", "contact_alert",
	// "contact_reply".
	Kind string
}

// Sender delivers one email.
type Sender interface {
	Send(ctx context.Context, e Email) error
	Name() string
}

// FailoverSender tries the primary provider and, if that fails, the
// fallback exactly once. There is deliberately no retry: a failure on
// both legs is terminal for that one email.
type FailoverSender struct {
	primary  Sender
	fallback Sender
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewFailoverSender wires a primary and an optional fallback provider.
// metrics may be nil.
func NewFailoverSender(primary, fallback Sender, m *metrics.Metrics, logger zerolog.Logger) *FailoverSender {
	return &FailoverSender{
		primary:  primary,
		fallback: fallback,
		metrics:  m,
		logger:   logger.With().Str("component", "email").Logger(),
	}
}

func (f *FailoverSender) Name() string { return "failover" }

// Send delivers e via the primary provider, falling back once on failure.
func (f *FailoverSender) Send(ctx context.Context, e Email) error {
	primaryErr := f.primary.Send(ctx, e)
	f.record(f.primary.Name(), e.Kind, primaryErr)
	if primaryErr == nil {
		return nil
	}

	f.logger.Warn().
		Err(primaryErr).
		Str("provider", f.primary.Name()).
		Str("kind", e.Kind).
		Msg("primary email provider failed")

	if f.fallback == nil {
		return primaryErr
	}

	fallbackErr := f.fallback.Send(ctx, e)
	f.record(f.fallback.Name(), e.Kind, fallbackErr)
	if fallbackErr == nil {
		return nil
	}
	return errors.Join(primaryErr, fallbackErr)
}

func (f *FailoverSender) record(provider, kind string, err error) {
	if f.metrics == nil {
		return
	}
	status := "sent"
	if err != nil {
		status = "error"
	}
	f.metrics.RecordEmail(provider, kind, status)
}

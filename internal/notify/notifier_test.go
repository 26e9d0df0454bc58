package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightforge/site-api/internal/intake"
)

// fakeSender records sent emails and can be told to fail.
type fakeSender struct {
	name string
	sent []Email
	err  error
}

func (f *fakeSender) Name() string { return f.name }

func (f *fakeSender) Send(_ context.Context, e Email) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, e)
	return nil
}

func completedSession() *intake.Session {
	s := intake.NewSession("lead-1")
	s.MergeClientInfo(intake.ClientInfo{Name: "John", Email: "john@example.com", Phone: "555-1234"})
	s.MergeProjectDetails(intake.ProjectDetails{
		Type: "web-app", Requirements: "saas", Budget: "25k-50k", Timeline: "1-3-months",
	})
	s.Append(intake.SenderUser, "hello")
	s.Append(intake.SenderBot, "hi!")
	s.Stage = intake.StageCompleted
	s.EmailSent = true
	return s
}

func TestNotifier_LeadCompleted(t *testing.T) {
	sender := &fakeSender{name: "fake"}
	n := New(sender, "leads@brightforge.dev", zerolog.Nop())

	require.NoError(t, n.LeadCompleted(context.Background(), completedSession()))
	require.Len(t, sender.sent, 1)

	e := sender.sent[0]
	assert.Equal(t, []string{"leads@brightforge.dev"}, e.To)
	assert.Equal(t, "lead", e.Kind)
	assert.Contains(t, e.Subject, "web-app")
	assert.Contains(t, e.Text, "john@example.com")
	assert.Contains(t, e.Text, "555-1234")
	assert.Contains(t, e.Text, "Transcript")
	assert.Contains(t, e.Text, "hello")
}

func TestNotifier_LeadCompleted_SendFailure(t *testing.T) {
	sender := &fakeSender{name: "fake", err: errors.New("provider down")}
	n := New(sender, "leads@brightforge.dev", zerolog.Nop())

	err := n.LeadCompleted(context.Background(), completedSession())
	assert.Error(t, err)
}

func TestNotifier_ContactSubmitted_SendsTwoEmails(t *testing.T) {
	sender := &fakeSender{name: "fake"}
	n := New(sender, "leads@brightforge.dev", zerolog.Nop())

	sub := ContactSubmission{
		Name: "Jane", Email: "jane@example.com",
		Service: "e-commerce", Message: "We need a new store.",
	}
	require.NoError(t, n.ContactSubmitted(context.Background(), sub))
	require.Len(t, sender.sent, 2)

	alert, reply := sender.sent[0], sender.sent[1]
	assert.Equal(t, "contact_alert", alert.Kind)
	assert.Equal(t, []string{"leads@brightforge.dev"}, alert.To)
	assert.Contains(t, alert.Text, "We need a new store.")

	assert.Equal(t, "contact_reply", reply.Kind)
	assert.Equal(t, []string{"jane@example.com"}, reply.To)
	assert.Contains(t, reply.Text, "Jane")
}

func TestFailoverSender_PrimaryWins(t *testing.T) {
	primary := &fakeSender{name: "resend"}
	fallback := &fakeSender{name: "smtp"}
	f := NewFailoverSender(primary, fallback, nil, zerolog.Nop())

	require.NoError(t, f.Send(context.Background(), Email{Kind: "lead"}))
	assert.Len(t, primary.sent, 1)
	assert.Empty(t, fallback.sent)
}

func TestFailoverSender_FallsBackOnce(t *testing.T) {
	primary := &fakeSender{name: "resend", err: errors.New("429")}
	fallback := &fakeSender{name: "smtp"}
	f := NewFailoverSender(primary, fallback, nil, zerolog.Nop())

	require.NoError(t, f.Send(context.Background(), Email{Kind: "lead"}))
	assert.Len(t, fallback.sent, 1)
}

func TestFailoverSender_BothFail(t *testing.T) {
	primary := &fakeSender{name: "resend", err: errors.New("429")}
	fallback := &fakeSender{name: "smtp", err: errors.New("connection refused")}
	f := NewFailoverSender(primary, fallback, nil, zerolog.Nop())

	err := f.Send(context.Background(), Email{Kind: "lead"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestFailoverSender_NoFallbackConfigured(t *testing.T) {
	primary := &fakeSender{name: "resend", err: errors.New("down")}
	f := NewFailoverSender(primary, nil, nil, zerolog.Nop())

	assert.Error(t, f.Send(context.Background(), Email{Kind: "lead"}))
}

// fakeSlack captures posted messages.
type fakeSlack struct {
	channel string
	posts   int
	err     error
}

func (f *fakeSlack) PostMessageContext(_ context.Context, channelID string, _ ...slack.MsgOption) (string, string, error) {
	f.channel = channelID
	f.posts++
	return "", "", f.err
}

func TestNotifier_SlackAlertIsIndependent(t *testing.T) {
	sender := &fakeSender{name: "fake"}
	api := &fakeSlack{err: errors.New("channel_not_found")}
	n := New(sender, "leads@brightforge.dev", zerolog.Nop(),
		WithSlack(NewSlackAlerter(api, "#leads")))

	// Slack failing must not fail the lead email.
	require.NoError(t, n.LeadCompleted(context.Background(), completedSession()))
	assert.Equal(t, 1, api.posts)
	assert.Len(t, sender.sent, 1)
}

func TestSlackAlerter_PostsToConfiguredChannel(t *testing.T) {
	api := &fakeSlack{}
	a := NewSlackAlerter(api, "#leads")

	require.NoError(t, a.LeadAlert(context.Background(), completedSession()))
	assert.Equal(t, "#leads", api.channel)
}

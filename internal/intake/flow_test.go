package intake

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureNotifier struct {
	calls int
	last  *Session
	err   error
}

func (n *captureNotifier) LeadCompleted(_ context.Context, s *Session) error {
	n.calls++
	n.last = s
	return n.err
}

func TestHandle_GreetingEmitsWelcomeWithFiveOptions(t *testing.T) {
	c := NewController(nil, zerolog.Nop())
	s := NewSession("sess-1")

	reply := c.Handle(context.Background(), s, Input{Text: "hello"})

	assert.Equal(t, welcomeReply.Text, reply.Text)
	assert.Len(t, reply.Options, 5)
	assert.Equal(t, StageProjectType, s.Stage)
	require.Len(t, s.Messages, 2)
	assert.Equal(t, SenderUser, s.Messages[0].Sender)
	assert.Equal(t, SenderBot, s.Messages[1].Sender)
}

func TestHandle_FullWalkthrough(t *testing.T) {
	n := &captureNotifier{}
	c := NewController(n, zerolog.Nop())
	s := NewSession("sess-2")
	ctx := context.Background()

	c.Handle(ctx, s, Input{Text: "hi"})
	assert.Equal(t, StageProjectType, s.Stage)

	c.Handle(ctx, s, Input{Option: "web-app"})
	assert.Equal(t, StageRequirements, s.Stage)
	assert.Equal(t, "web-app", s.ProjectDetails.Type)

	c.Handle(ctx, s, Input{Option: "saas"})
	assert.Equal(t, StageBudget, s.Stage)
	assert.Equal(t, "saas", s.ProjectDetails.Requirements)
	assert.Contains(t, s.ProjectDetails.Features, "saas")

	c.Handle(ctx, s, Input{Option: "25k-50k"})
	assert.Equal(t, StageTimeline, s.Stage)
	assert.Equal(t, "25k-50k", s.ProjectDetails.Budget)

	c.Handle(ctx, s, Input{Text: "before the summer"})
	assert.Equal(t, StageContactInfo, s.Stage)
	assert.Equal(t, "before the summer", s.ProjectDetails.Timeline)

	reply := c.Handle(ctx, s, Input{Text: "John Smith john@example.com 555-1234"})
	assert.Equal(t, StageCompleted, s.Stage)
	assert.Equal(t, completionReply.Text, reply.Text)
	assert.Equal(t, "John", s.ClientInfo.Name)
	assert.Equal(t, "john@example.com", s.ClientInfo.Email)
	assert.True(t, s.EmailSent)
	assert.Equal(t, 1, n.calls)

	// 6 turns, two messages each
	assert.Len(t, s.Messages, 12)
}

func TestHandle_StagesNeverRegress(t *testing.T) {
	c := NewController(nil, zerolog.Nop())
	s := NewSession("sess-3")
	ctx := context.Background()

	prev := s.Stage
	inputs := []Input{
		{Text: "hello"}, {Option: "mobile-app"}, {Option: "ios"},
		{Option: "under-10k"}, {Option: "asap"}, {Text: "Ana ana@example.com"},
		{Text: "one more thing"}, {Text: "and another"},
	}
	for _, in := range inputs {
		c.Handle(ctx, s, in)
		assert.GreaterOrEqual(t, s.Stage.Index(), prev.Index())
		prev = s.Stage
	}
	assert.Equal(t, StageCompleted, s.Stage)
}

func TestHandle_CompletedNeverReSignals(t *testing.T) {
	n := &captureNotifier{}
	c := NewController(n, zerolog.Nop())
	s := NewSession("sess-4")
	ctx := context.Background()

	for _, in := range []Input{
		{Text: "hi"}, {Option: "ui-ux"}, {Option: "concept"},
		{Option: "over-50k"}, {Option: "flexible"}, {Text: "Bo bo@example.com"},
	} {
		c.Handle(ctx, s, in)
	}
	require.True(t, s.EmailSent)
	require.Equal(t, 1, n.calls)

	reply := c.Handle(ctx, s, Input{Text: "also, we need it in blue"})
	assert.Equal(t, completedFollowUpReply.Text, reply.Text)
	assert.Equal(t, 1, n.calls, "absorbing stage must not re-signal")
	assert.True(t, s.EmailSent)
}

func TestHandle_NotifierFailureIsNonFatal(t *testing.T) {
	n := &captureNotifier{err: errors.New("smtp down")}
	c := NewController(n, zerolog.Nop())
	s := NewSession("sess-5")
	ctx := context.Background()

	for _, in := range []Input{
		{Text: "hi"}, {Option: "e-commerce"}, {Option: "new-store"},
		{Option: "10k-25k"}, {Option: "1-3-months"}, {Text: "Kim kim@example.com"},
	} {
		c.Handle(ctx, s, in)
	}

	assert.Equal(t, StageCompleted, s.Stage)
	assert.True(t, s.EmailSent, "emailSent flips even when notification fails")
	assert.Equal(t, 1, n.calls)
}

func TestHandle_UnknownProjectTypeFallsBack(t *testing.T) {
	c := NewController(nil, zerolog.Nop())
	s := NewSession("sess-6")
	ctx := context.Background()

	c.Handle(ctx, s, Input{Text: "hi"})
	reply := c.Handle(ctx, s, Input{Text: "a blockchain for my bakery"})

	assert.Equal(t, requirementFallback.Text, reply.Text)
	assert.Equal(t, "a blockchain for my bakery", s.ProjectDetails.Type)
	assert.Equal(t, StageRequirements, s.Stage)
}

func TestReject_KeepsStageAndGrowsTranscript(t *testing.T) {
	c := NewController(nil, zerolog.Nop())
	s := NewSession("sess-7")

	reply := c.Reject(s, Input{Text: "aaaaa"}, Reply{Text: "Please keep it meaningful."})

	assert.Equal(t, "Please keep it meaningful.", reply.Text)
	assert.Equal(t, StageGreeting, s.Stage)
	assert.Equal(t, 1, s.Warnings)
	assert.Len(t, s.Messages, 2)
	assert.Empty(t, s.ProjectDetails.Type)
}

func TestSession_MergeNeverClears(t *testing.T) {
	s := NewSession("sess-8")
	s.MergeClientInfo(ClientInfo{Name: "John", Email: "john@example.com"})
	s.MergeClientInfo(ClientInfo{Phone: "555-1234"})

	assert.Equal(t, "John", s.ClientInfo.Name)
	assert.Equal(t, "john@example.com", s.ClientInfo.Email)
	assert.Equal(t, "555-1234", s.ClientInfo.Phone)
}

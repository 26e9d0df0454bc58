package intake

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// LeadNotifier is signalled exactly once per session, when the flow first
// reaches the completed stage.
type LeadNotifier interface {
	LeadCompleted(ctx context.Context, s *Session) error
}

// Input is one visitor turn: either free text or a clicked quick-reply
// choice. When both are present the choice wins.
type Input struct {
	Text   string
	Option string
}

func (in Input) value() string {
	if in.Option != "" {
		return in.Option
	}
	return strings.TrimSpace(in.Text)
}

// Controller drives a session through the fixed intake stages. Each turn
// appends exactly one user and one bot message; stages project-type
// through contact-info perform exactly one field write.
type Controller struct {
	notifier LeadNotifier
	logger   zerolog.Logger
}

// NewController creates a flow controller. The notifier may be nil, in
// which case completion is logged only.
func NewController(n LeadNotifier, logger zerolog.Logger) *Controller {
	return &Controller{
		notifier: n,
		logger:   logger.With().Str("component", "intake").Logger(),
	}
}

// Handle processes one accepted visitor turn and returns the bot reply.
// The session is mutated in place; persisting it is the caller's concern.
func (c *Controller) Handle(ctx context.Context, s *Session, in Input) Reply {
	s.Append(SenderUser, in.value())

	var reply Reply
	switch s.Stage {
	case StageGreeting:
		reply = welcomeReply
		s.Advance()

	case StageProjectType:
		choice := in.value()
		s.MergeProjectDetails(ProjectDetails{Type: choice})
		var ok bool
		if reply, ok = requirementReplies[choice]; !ok {
			reply = requirementFallback
		}
		s.Advance()

	case StageRequirements:
		s.MergeProjectDetails(ProjectDetails{Requirements: in.value()})
		if in.Option != "" {
			s.MergeProjectDetails(ProjectDetails{Features: []string{in.Option}})
		}
		reply = budgetReply
		s.Advance()

	case StageBudget:
		s.MergeProjectDetails(ProjectDetails{Budget: in.value()})
		reply = timelineReply
		s.Advance()

	case StageTimeline:
		s.MergeProjectDetails(ProjectDetails{Timeline: in.value()})
		reply = contactReply
		s.Advance()

	case StageContactInfo:
		s.MergeClientInfo(ExtractContact(in.Text))
		reply = completionReply
		s.Advance()
		c.complete(ctx, s)

	default: // completed: absorbing, acknowledgment only
		reply = completedFollowUpReply
	}

	s.Append(SenderBot, reply.Text)
	return reply
}

// Reject records a guard-rejected turn. The transcript still grows (one
// user message, one bot message) and the warning counter advances, but
// the stage and all lead fields stay untouched.
func (c *Controller) Reject(s *Session, in Input, reply Reply) Reply {
	s.Append(SenderUser, in.value())
	s.Warnings++
	s.Append(SenderBot, reply.Text)
	return reply
}

// complete signals the notifier on the first arrival at completed.
// Re-entry never re-signals; notifier failures are logged and dropped.
func (c *Controller) complete(ctx context.Context, s *Session) {
	if s.EmailSent {
		return
	}
	s.EmailSent = true

	if c.notifier == nil {
		c.logger.Info().Str("session_id", s.ID).Msg("lead completed (no notifier configured)")
		return
	}
	if err := c.notifier.LeadCompleted(ctx, s); err != nil {
		c.logger.Error().Err(err).Str("session_id", s.ID).Msg("lead notification failed")
		return
	}
	c.logger.Info().
		Str("session_id", s.ID).
		Str("project_type", s.ProjectDetails.Type).
		Str("email", s.ClientInfo.Email).
		Msg("lead completed and notified")
}

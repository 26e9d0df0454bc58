package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/brightforge/site-api/internal/intake"
)

// SlackAPI is the minimal Slack API surface needed by the alerter.
type SlackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// SlackAlerter posts a short lead summary to a channel.
type SlackAlerter struct {
	api     SlackAPI
	channel string
}

// NewSlackAlerter creates a SlackAlerter from a Slack API client.
func NewSlackAlerter(api SlackAPI, channel string) *SlackAlerter {
	return &SlackAlerter{api: api, channel: channel}
}

// LeadAlert posts a one-message lead summary.
func (a *SlackAlerter) LeadAlert(ctx context.Context, s *intake.Session) error {
	_, _, err := a.api.PostMessageContext(ctx, a.channel,
		slack.MsgOptionText(leadSummary(s), false))
	if err != nil {
		return fmt.Errorf("slack post: %w", err)
	}
	return nil
}

func leadSummary(s *intake.Session) string {
	var b strings.Builder
	b.WriteString(":tada: *New chat lead*\n")
	fmt.Fprintf(&b, "> *Who:* %s (%s)\n", orDash(s.ClientInfo.Name), orDash(s.ClientInfo.Email))
	fmt.Fprintf(&b, "> *Project:* %s — %s\n", orDash(s.ProjectDetails.Type), orDash(s.ProjectDetails.Requirements))
	fmt.Fprintf(&b, "> *Budget:* %s · *Timeline:* %s\n", orDash(s.ProjectDetails.Budget), orDash(s.ProjectDetails.Timeline))
	fmt.Fprintf(&b, "> *Session:* %s", s.ID)
	return b.String()
}

package guard

import (
	"regexp"
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/rs/zerolog"
)

// Reason classifies why a message was rejected.
type Reason string

const (
	ReasonRateLimited   Reason = "rate_limited"
	ReasonTooShort      Reason = "too_short"
	ReasonInappropriate Reason = "inappropriate"
	ReasonSpam          Reason = "spam"
	ReasonNonsense      Reason = "nonsense"
	ReasonModerated     Reason = "moderated"
)

// Rejection is the outcome of a failed check: the reason plus the soft
// response shown to the visitor.
type Rejection struct {
	Reason   Reason `json:"reason"`
	Response string `json:"response"`
}

var responses = map[Reason]string{
	ReasonRateLimited:   "You're sending messages a little too quickly. Give it a few seconds and try again.",
	ReasonTooShort:      "Could you say a bit more? A couple of words helps us point you the right way.",
	ReasonInappropriate: "Let's keep things professional — we're happy to help with any genuine project enquiry.",
	ReasonSpam:          "That looks like spam to us. If it isn't, try rephrasing your message.",
	ReasonNonsense:      "We couldn't quite make sense of that. Could you rephrase it?",
	ReasonModerated:     "This conversation has been limited due to repeated flagged messages. If you have a genuine enquiry, please use the contact form instead.",
}

func reject(r Reason) *Rejection {
	return &Rejection{Reason: r, Response: responses[r]}
}

// Structural patterns. RE2 has no backreferences, so the repetition-based
// shapes (repeated characters, repeated units, repeated phrases) are
// implemented as plain code below.
var (
	symbolOnlyPattern = regexp.MustCompile(`^[^a-zA-Z0-9]+$`)
	cardLikePattern   = regexp.MustCompile(`(?:\d[ -]?){12,}\d`)
	vowelOnlyPattern  = regexp.MustCompile(`^(?i)[aeiou]{4,}$`)
	consonantPattern  = regexp.MustCompile(`^(?i)[bcdfghjklmnpqrstvwxyz]{5,}$`)
)

// Guard applies the ordered rejection checks to one free-text input.
// Exactly one rejection reason (or none) is returned per call; no check
// after the first match runs.
type Guard struct {
	rules   Rules
	limiter *limiter
	logger  zerolog.Logger
	checks  uint64
}

// New creates a Guard with the given rules.
func New(rules Rules, logger zerolog.Logger) *Guard {
	return &Guard{
		rules:   rules,
		limiter: newLimiter(rules),
		logger:  logger.With().Str("component", "guard").Logger(),
	}
}

// Check classifies one message. warnings is the session's accumulated
// rejection count; once it reaches the escalation threshold the strict
// moderated response wins regardless of content. The rate limiter records
// the call's timestamp whatever the outcome.
func (g *Guard) Check(sessionID, text string, warnings int) *Rejection {
	limited := g.limiter.record(sessionID)
	if atomic.AddUint64(&g.checks, 1)%256 == 0 {
		g.limiter.sweep()
	}

	var r *Rejection
	switch {
	case g.rules.Escalation > 0 && warnings >= g.rules.Escalation:
		r = reject(ReasonModerated)
	case limited:
		r = reject(ReasonRateLimited)
	case tooShort(text):
		r = reject(ReasonTooShort)
	case g.inappropriate(text):
		r = reject(ReasonInappropriate)
	case g.spammy(text):
		r = reject(ReasonSpam)
	case nonsense(text):
		r = reject(ReasonNonsense)
	default:
		return nil
	}

	g.logger.Debug().
		Str("session_id", sessionID).
		Str("reason", string(r.Reason)).
		Int("warnings", warnings).
		Msg("message rejected")
	return r
}

// TrackedSessions reports how many sessions the rate limiter currently
// holds timestamps for.
func (g *Guard) TrackedSessions() int {
	return g.limiter.tracked()
}

// tooShort rejects input with fewer than 2 alphanumeric characters.
func tooShort(text string) bool {
	n := 0
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			n++
			if n >= 2 {
				return false
			}
		}
	}
	return true
}

func (g *Guard) inappropriate(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range g.rules.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (g *Guard) spammy(text string) bool {
	if hasRepeatedRun(text, 5) {
		return true
	}
	if allCaps(text) {
		return true
	}
	lower := strings.ToLower(text)
	for _, phrase := range g.rules.SpamPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	if hasRepeatedPhrase(text) {
		return true
	}
	if symbolOnlyPattern.MatchString(text) {
		return true
	}
	return cardLikePattern.MatchString(text)
}

func nonsense(text string) bool {
	t := strings.TrimSpace(text)
	if vowelOnlyPattern.MatchString(t) || consonantPattern.MatchString(t) {
		return true
	}
	if hasRepeatedUnit(t) {
		return true
	}
	return symbolOnlyPattern.MatchString(t)
}

// hasRepeatedRun reports a run of n or more identical characters.
func hasRepeatedRun(text string, n int) bool {
	var prev rune
	run := 0
	for _, r := range text {
		if r == prev {
			run++
			if run >= n {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

// allCaps rejects shouting: at least 5 letters, all of them uppercase.
func allCaps(text string) bool {
	letters := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters >= 5
}

// hasRepeatedPhrase detects the same word four or more times in a row,
// or a two-word phrase repeated three or more times.
func hasRepeatedPhrase(text string) bool {
	words := strings.Fields(strings.ToLower(text))

	run := 1
	for i := 1; i < len(words); i++ {
		if words[i] == words[i-1] {
			run++
			if run >= 4 {
				return true
			}
		} else {
			run = 1
		}
	}

	for i := 0; i+5 < len(words); i++ {
		if words[i] == words[i+2] && words[i] == words[i+4] &&
			words[i+1] == words[i+3] && words[i+1] == words[i+5] {
			return true
		}
	}
	return false
}

// hasRepeatedUnit detects strings built from one short unit repeated
// back-to-back, e.g. "ababab" or "xyzxyzxyz".
func hasRepeatedUnit(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	n := len(t)
	if n < 6 {
		return false
	}
	for size := 1; size <= 3; size++ {
		if n%size != 0 {
			continue
		}
		unit := t[:size]
		repeated := true
		for i := size; i < n; i += size {
			if t[i:i+size] != unit {
				repeated = false
				break
			}
		}
		if repeated {
			return true
		}
	}
	return false
}

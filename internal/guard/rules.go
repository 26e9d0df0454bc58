// Package guard classifies free-text chat input before it reaches the
// intake flow. It is pure classification: apart from the rate limiter's
// timestamps it keeps no memory of message content.
package guard

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Rules holds the tunable guard configuration. The thresholds are
// operational knobs, not a contract; defaults match observed production
// behavior.
type Rules struct {
	// Rate limiting: reject when more than Burst messages arrive within
	// BurstWindow, or more than Sustained within SustainedWindow.
	Burst           int
	BurstWindow     time.Duration
	Sustained       int
	SustainedWindow time.Duration

	// Escalation: once a session has accumulated this many rejections,
	// every further message gets the moderated response.
	Escalation int

	// Keyword and phrase lists, matched against the lowercased text.
	Keywords    []string
	SpamPhrases []string
}

// DefaultRules returns the built-in guard configuration.
func DefaultRules() Rules {
	return Rules{
		Burst:           3,
		BurstWindow:     10 * time.Second,
		Sustained:       10,
		SustainedWindow: 60 * time.Second,
		Escalation:      3,
		Keywords: []string{
			"viagra", "casino", "jackpot", "porn", "xxx",
			"nigerian prince", "crypto giveaway",
			"fuck", "shit", "bitch", "asshole",
		},
		SpamPhrases: []string{
			"buy now", "click here", "free money", "work from home",
			"limited time offer", "100% free", "act now", "winner winner",
		},
	}
}

// rulesFile is the YAML shape of a rules override file. Durations are
// given in seconds; zero values fall back to the defaults.
type rulesFile struct {
	Burst              int      `yaml:"burst"`
	BurstWindowSec     int      `yaml:"burst_window_seconds"`
	Sustained          int      `yaml:"sustained"`
	SustainedWindowSec int      `yaml:"sustained_window_seconds"`
	Escalation         int      `yaml:"escalation"`
	Keywords           []string `yaml:"keywords"`
	SpamPhrases        []string `yaml:"spam_phrases"`
}

// LoadRules reads a YAML override file and merges it over the defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("reading guard rules: %w", err)
	}

	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return rules, fmt.Errorf("parsing guard rules: %w", err)
	}

	if f.Burst > 0 {
		rules.Burst = f.Burst
	}
	if f.BurstWindowSec > 0 {
		rules.BurstWindow = time.Duration(f.BurstWindowSec) * time.Second
	}
	if f.Sustained > 0 {
		rules.Sustained = f.Sustained
	}
	if f.SustainedWindowSec > 0 {
		rules.SustainedWindow = time.Duration(f.SustainedWindowSec) * time.Second
	}
	if f.Escalation > 0 {
		rules.Escalation = f.Escalation
	}
	if len(f.Keywords) > 0 {
		rules.Keywords = f.Keywords
	}
	if len(f.SpamPhrases) > 0 {
		rules.SpamPhrases = f.SpamPhrases
	}
	return rules, nil
}

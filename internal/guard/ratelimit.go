package guard

import (
	"sync"
	"time"
)

// limiter tracks per-session message timestamps over two sliding windows.
// Recording happens on every call, accepted or not, so a visitor cannot
// probe the limit for free.
type limiter struct {
	mu       sync.Mutex
	rules    Rules
	sessions map[string][]time.Time
	now      func() time.Time
}

func newLimiter(rules Rules) *limiter {
	return &limiter{
		rules:    rules,
		sessions: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// record notes one message for the session and reports whether the
// session is over either window's limit.
func (l *limiter) record(sessionID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.rules.SustainedWindow)

	// Drop timestamps outside the longer window; they can never count
	// against either limit again.
	kept := l.sessions[sessionID][:0]
	for _, ts := range l.sessions[sessionID] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	kept = append(kept, now)
	l.sessions[sessionID] = kept

	if len(kept) > l.rules.Sustained {
		return true
	}

	burstCutoff := now.Add(-l.rules.BurstWindow)
	inBurst := 0
	for _, ts := range kept {
		if ts.After(burstCutoff) {
			inBurst++
		}
	}
	return inBurst > l.rules.Burst
}

// sweep removes sessions whose every timestamp has aged out. Called
// opportunistically by the guard; keeps the map from growing for the
// lifetime of the process.
func (l *limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.rules.SustainedWindow)
	for id, stamps := range l.sessions {
		if len(stamps) == 0 || !stamps[len(stamps)-1].After(cutoff) {
			delete(l.sessions, id)
		}
	}
}

func (l *limiter) tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sessions)
}

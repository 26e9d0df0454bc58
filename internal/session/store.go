// Package session persists conversation sessions behind a small keyed
// store interface, so the flow logic never knows which backend holds it.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/brightforge/site-api/internal/intake"
)

// ErrNotFound is returned when no live session exists for a key.
var ErrNotFound = errors.New("session not found")

// Store is the persistence boundary for conversation sessions. Writes are
// best-effort from the caller's perspective: a failed Put is logged and
// the in-request copy stays authoritative.
type Store interface {
	// Get retrieves a session by ID. Returns ErrNotFound for missing or
	// expired sessions.
	Get(ctx context.Context, id string) (*intake.Session, error)
	// Put stores a session with the given TTL, replacing any previous copy.
	Put(ctx context.Context, s *intake.Session, ttl time.Duration) error
	// Delete removes a session by ID. Deleting a missing session is not
	// an error.
	Delete(ctx context.Context, id string) error
	// Cleanup removes expired sessions and reports how many were dropped.
	Cleanup(ctx context.Context) (int, error)
	// Close releases backend resources.
	Close() error
}

// Package httpapi provides the public HTTP API for the site backend.
package httpapi

import (
	"github.com/brightforge/site-api/internal/intake"
)

// ProblemDetail is an RFC 7807 style error body.
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// --- Request DTOs ---

// ChatMessage is the visitor's turn: free text, a quick-reply choice, or
// both (the choice wins).
type ChatMessage struct {
	Text   string `json:"text"`
	Option string `json:"option,omitempty"`
}

// ChatRequest is the payload for POST /api/v1/chat/messages. Besides the
// message, the widget may push a partial state snapshot; merges are
// opportunistic and forward-only.
type ChatRequest struct {
	SessionID      string                 `json:"session_id"`
	Message        *ChatMessage           `json:"message,omitempty"`
	ClientInfo     *intake.ClientInfo     `json:"client_info,omitempty"`
	ProjectDetails *intake.ProjectDetails `json:"project_details,omitempty"`
	Stage          string                 `json:"stage,omitempty"`
}

// ContactRequest is the payload for POST /api/v1/contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Service string `json:"service,omitempty"`
	Message string `json:"message"`
}

// --- Response DTOs ---

// Chat statuses.
const (
	StatusOK       = "ok"
	StatusRejected = "rejected"
)

// ChatResponse is returned by the lead-intake endpoint.
type ChatResponse struct {
	SessionID string        `json:"session_id"`
	Stage     intake.Stage  `json:"stage"`
	Status    string        `json:"status"`
	Reply     *intake.Reply `json:"reply,omitempty"`
	Reason    string        `json:"reason,omitempty"`
}

// SessionResponse wraps a stored session for the lookup endpoint.
type SessionResponse struct {
	Session *intake.Session `json:"session"`
}

// ContactResponse is returned by the contact-form endpoint.
type ContactResponse struct {
	Status string `json:"status"`
}

// HealthDetailResponse is returned by GET /api/v1/health.
type HealthDetailResponse struct {
	Status       string            `json:"status"`
	Integrations map[string]string `json:"integrations"`
	Uptime       string            `json:"uptime"`
	Version      string            `json:"version"`
}

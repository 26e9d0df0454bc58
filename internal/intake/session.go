package intake

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one entry in a session's append-only transcript.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// ClientInfo holds the visitor's contact details. Fields fill in
// opportunistically from free-text parsing and are never cleared.
type ClientInfo struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

// ProjectDetails holds what the visitor told us about their project.
type ProjectDetails struct {
	Type         string   `json:"type,omitempty"`
	Budget       string   `json:"budget,omitempty"`
	Timeline     string   `json:"timeline,omitempty"`
	Requirements string   `json:"requirements,omitempty"`
	Features     []string `json:"features,omitempty"`
}

// Session is one visitor's conversation instance, keyed by a
// client-generated identifier.
type Session struct {
	ID             string         `json:"session_id"`
	Stage          Stage          `json:"stage"`
	Messages       []Message      `json:"messages"`
	ClientInfo     ClientInfo     `json:"client_info"`
	ProjectDetails ProjectDetails `json:"project_details"`
	EmailSent      bool           `json:"email_sent"`
	Warnings       int            `json:"warnings"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NewSession creates a fresh session at the greeting stage.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Stage:     StageGreeting,
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Append adds a message to the transcript and returns it. The transcript
// only grows.
func (s *Session) Append(sender Sender, text string) Message {
	m := Message{
		ID:        uuid.New().String(),
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now().UTC(),
	}
	s.Messages = append(s.Messages, m)
	s.UpdatedAt = m.Timestamp
	return m
}

// Advance moves the session to the next stage. The completed stage is
// absorbing.
func (s *Session) Advance() {
	s.Stage = s.Stage.Next()
	s.UpdatedAt = time.Now().UTC()
}

// MergeClientInfo fills in contact fields from in. Empty incoming fields
// never clear existing values.
func (s *Session) MergeClientInfo(in ClientInfo) {
	if in.Name != "" {
		s.ClientInfo.Name = in.Name
	}
	if in.Email != "" {
		s.ClientInfo.Email = in.Email
	}
	if in.Phone != "" {
		s.ClientInfo.Phone = in.Phone
	}
	if in.Company != "" {
		s.ClientInfo.Company = in.Company
	}
}

// MergeProjectDetails shallow-merges project fields from in. Features are
// appended, scalar fields are set only when the incoming value is non-empty.
func (s *Session) MergeProjectDetails(in ProjectDetails) {
	if in.Type != "" {
		s.ProjectDetails.Type = in.Type
	}
	if in.Budget != "" {
		s.ProjectDetails.Budget = in.Budget
	}
	if in.Timeline != "" {
		s.ProjectDetails.Timeline = in.Timeline
	}
	if in.Requirements != "" {
		s.ProjectDetails.Requirements = in.Requirements
	}
	if len(in.Features) > 0 {
		s.ProjectDetails.Features = append(s.ProjectDetails.Features, in.Features...)
	}
}

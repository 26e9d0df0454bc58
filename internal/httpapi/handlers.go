package httpapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/brightforge/site-api/internal/guard"
	"github.com/brightforge/site-api/internal/health"
	"github.com/brightforge/site-api/internal/intake"
	"github.com/brightforge/site-api/internal/metrics"
	"github.com/brightforge/site-api/internal/notify"
	"github.com/brightforge/site-api/internal/session"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// ContactNotifier sends the contact-form email pair.
type ContactNotifier interface {
	ContactSubmitted(ctx context.Context, sub notify.ContactSubmission) error
}

// HandlerConfig carries the request-shaping knobs for the API handlers.
type HandlerConfig struct {
	MaxSessionID  int
	MaxMessageLen int
	SessionTTL    time.Duration
	ReplyDelay    time.Duration
}

// Handlers bundles the API endpoint implementations and their
// collaborators.
type Handlers struct {
	flow    *intake.Controller
	guard   *guard.Guard
	store   session.Store
	contact ContactNotifier
	metrics *metrics.Metrics
	checker *health.Checker
	logger  zerolog.Logger
	cfg     HandlerConfig

	startTime time.Time
}

// NewHandlers wires the endpoint handlers. The contact notifier and
// metrics may be nil.
func NewHandlers(flow *intake.Controller, g *guard.Guard, store session.Store, contact ContactNotifier, m *metrics.Metrics, checker *health.Checker, cfg HandlerConfig, logger zerolog.Logger) *Handlers {
	if cfg.MaxSessionID <= 0 {
		cfg.MaxSessionID = 128
	}
	if cfg.MaxMessageLen <= 0 {
		cfg.MaxMessageLen = 2000
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	return &Handlers{
		flow:      flow,
		guard:     g,
		store:     store,
		contact:   contact,
		metrics:   m,
		checker:   checker,
		logger:    logger.With().Str("component", "httpapi").Logger(),
		cfg:       cfg,
		startTime: time.Now(),
	}
}

// ChatMessage handles POST /api/v1/chat/messages: one visitor turn
// through the guard and the intake flow.
func (h *Handlers) ChatMessage(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return problemResponse(c, fiber.StatusBadRequest, "invalid_request", "Invalid Request", "request body must be valid JSON")
	}

	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" {
		return problemResponse(c, fiber.StatusBadRequest, "invalid_request", "Invalid Request", "session_id is required")
	}
	if len(req.SessionID) > h.cfg.MaxSessionID {
		return problemResponse(c, fiber.StatusBadRequest, "invalid_request", "Invalid Request",
			fmt.Sprintf("session_id must be at most %d bytes", h.cfg.MaxSessionID))
	}
	if req.Message == nil {
		return problemResponse(c, fiber.StatusBadRequest, "invalid_request", "Invalid Request", "message is required")
	}

	in := intake.Input{Text: req.Message.Text, Option: req.Message.Option}
	if in.Option == "" {
		if strings.TrimSpace(in.Text) == "" {
			return problemResponse(c, fiber.StatusBadRequest, "invalid_request", "Invalid Request", "message text is required")
		}
		if utf8.RuneCountInString(in.Text) > h.cfg.MaxMessageLen {
			return problemResponse(c, fiber.StatusBadRequest, "invalid_request", "Invalid Request",
				fmt.Sprintf("message text must be at most %d characters", h.cfg.MaxMessageLen))
		}
	}

	ctx := c.Context()

	s, err := h.store.Get(ctx, req.SessionID)
	switch {
	case err == nil:
		// resume
	case errors.Is(err, session.ErrNotFound):
		s = intake.NewSession(req.SessionID)
	default:
		h.logger.Error().Err(err).Str("session_id", req.SessionID).Msg("session load failed, starting fresh")
		s = intake.NewSession(req.SessionID)
	}

	// Client snapshot merges are opportunistic: fields only ever fill in,
	// and the stage only ever moves forward.
	if req.ClientInfo != nil {
		s.MergeClientInfo(*req.ClientInfo)
	}
	if req.ProjectDetails != nil {
		s.MergeProjectDetails(*req.ProjectDetails)
	}
	if st := intake.Stage(req.Stage); st.Valid() && s.Stage.Before(st) {
		s.Stage = st
	}

	resp := ChatResponse{SessionID: s.ID, Status: StatusOK}

	// The guard screens typed text only; quick-reply clicks come from our
	// own option set and pass straight through.
	var rejection *guard.Rejection
	if in.Option == "" && h.guard != nil {
		rejection = h.guard.Check(s.ID, in.Text, s.Warnings)
	}

	if rejection != nil {
		reply := h.flow.Reject(s, in, intake.Reply{Text: rejection.Response})
		resp.Status = StatusRejected
		resp.Reason = string(rejection.Reason)
		resp.Reply = &reply
		if h.metrics != nil {
			h.metrics.RecordRejection(string(rejection.Reason))
			h.metrics.RecordMessage(string(s.Stage), "rejected")
		}
	} else {
		if h.cfg.ReplyDelay > 0 {
			select {
			case <-time.After(h.cfg.ReplyDelay):
			case <-ctx.Done():
				return problemResponse(c, fiber.StatusRequestTimeout, "request_cancelled", "Request Cancelled", "client went away")
			}
		}
		stageBefore := s.Stage
		reply := h.flow.Handle(ctx, s, in)
		resp.Reply = &reply
		if h.metrics != nil {
			h.metrics.RecordMessage(string(stageBefore), "accepted")
		}
	}
	resp.Stage = s.Stage

	if err := h.store.Put(ctx, s, h.cfg.SessionTTL); err != nil {
		h.logger.Error().Err(err).Str("session_id", s.ID).Msg("session save failed")
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetSession handles GET /api/v1/chat/sessions/:id (or ?session_id=).
func (h *Handlers) GetSession(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		id = c.Query("session_id")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return problemResponse(c, fiber.StatusBadRequest, "invalid_request", "Invalid Request", "session id is required")
	}

	s, err := h.store.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return problemResponse(c, fiber.StatusNotFound, "not_found", "Not Found", "session not found or expired")
		}
		return fmt.Errorf("loading session: %w", err)
	}

	return c.JSON(SessionResponse{Session: s})
}

// Contact handles POST /api/v1/contact: validates the submission and
// sends the internal alert plus the visitor auto-reply.
func (h *Handlers) Contact(c *fiber.Ctx) error {
	var req ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return problemResponse(c, fiber.StatusBadRequest, "invalid_request", "Invalid Request", "request body must be valid JSON")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	switch {
	case req.Name == "":
		return problemResponse(c, fiber.StatusBadRequest, "invalid_request", "Invalid Request", "name is required")
	case req.Email == "" || !strings.Contains(req.Email, "@"):
		return problemResponse(c, fiber.StatusBadRequest, "invalid_request", "Invalid Request", "a valid email is required")
	case req.Message == "":
		return problemResponse(c, fiber.StatusBadRequest, "invalid_request", "Invalid Request", "message is required")
	}

	if h.contact == nil {
		return problemResponse(c, fiber.StatusServiceUnavailable, "unavailable", "Service Unavailable", "contact form is not configured")
	}

	sub := notify.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Service: strings.TrimSpace(req.Service),
		Message: req.Message,
	}
	if err := h.contact.ContactSubmitted(c.Context(), sub); err != nil {
		h.logger.Error().Err(err).Str("email", req.Email).Msg("contact submission delivery failed")
		return problemResponse(c, fiber.StatusBadGateway, "delivery_failed", "Delivery Failed", "could not deliver your message, please try again later")
	}

	return c.JSON(ContactResponse{Status: "sent"})
}

// HealthDetail handles GET /api/v1/health.
func (h *Handlers) HealthDetail(c *fiber.Ctx) error {
	integrations := map[string]string{}
	overall := "ok"

	if h.checker != nil {
		for name, st := range h.checker.RunAll(c.Context()) {
			integrations[name] = string(st)
			if st == health.StatusDown {
				overall = "down"
			} else if st == health.StatusDegraded && overall == "ok" {
				overall = "degraded"
			}
		}
	}

	return c.JSON(HealthDetailResponse{
		Status:       overall,
		Integrations: integrations,
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
		Version:      Version,
	})
}

// Liveness handles GET /healthz.
func (h *Handlers) Liveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Readiness handles GET /readyz.
func (h *Handlers) Readiness(c *fiber.Ctx) error {
	if h.checker != nil && !h.checker.IsReady(c.Context()) {
		return problemResponse(c, fiber.StatusServiceUnavailable, "not_ready", "Not Ready", "a required dependency is down")
	}
	return c.JSON(fiber.Map{"status": "ready"})
}

package notify

import (
	"fmt"
	"strings"

	"github.com/brightforge/site-api/internal/intake"
)

// ContactSubmission is one contact-form entry.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Service string `json:"service"`
	Message string `json:"message"`
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}

// buildLeadEmail formats the internal notification for a completed chat
// session: contact details, project details, then the full transcript.
func buildLeadEmail(inbox string, s *intake.Session) Email {
	var b strings.Builder

	fmt.Fprintf(&b, "New lead from the website chat (session %s)\n\n", s.ID)

	b.WriteString("Contact\n")
	fmt.Fprintf(&b, "  Name:    %s\n", orDash(s.ClientInfo.Name))
	fmt.Fprintf(&b, "  Email:   %s\n", orDash(s.ClientInfo.Email))
	fmt.Fprintf(&b, "  Phone:   %s\n", orDash(s.ClientInfo.Phone))
	fmt.Fprintf(&b, "  Company: %s\n\n", orDash(s.ClientInfo.Company))

	b.WriteString("Project\n")
	fmt.Fprintf(&b, "  Type:         %s\n", orDash(s.ProjectDetails.Type))
	fmt.Fprintf(&b, "  Requirements: %s\n", orDash(s.ProjectDetails.Requirements))
	fmt.Fprintf(&b, "  Budget:       %s\n", orDash(s.ProjectDetails.Budget))
	fmt.Fprintf(&b, "  Timeline:     %s\n", orDash(s.ProjectDetails.Timeline))
	if len(s.ProjectDetails.Features) > 0 {
		fmt.Fprintf(&b, "  Features:     %s\n", strings.Join(s.ProjectDetails.Features, ", "))
	}

	b.WriteString("\nTranscript\n")
	for _, m := range s.Messages {
		fmt.Fprintf(&b, "  [%s] %s: %s\n",
			m.Timestamp.Format("15:04:05"), m.Sender, m.Text)
	}

	subject := "New chat lead"
	if s.ProjectDetails.Type != "" {
		subject = fmt.Sprintf("New chat lead: %s", s.ProjectDetails.Type)
	}

	return Email{
		To:      []string{inbox},
		Subject: subject,
		Text:    b.String(),
		Kind:    "lead",
	}
}

// buildContactAlert formats the internal alert for a contact-form
// submission.
func buildContactAlert(inbox string, sub ContactSubmission) Email {
	var b strings.Builder
	b.WriteString("New contact form submission\n\n")
	fmt.Fprintf(&b, "  Name:    %s\n", orDash(sub.Name))
	fmt.Fprintf(&b, "  Email:   %s\n", orDash(sub.Email))
	fmt.Fprintf(&b, "  Service: %s\n\n", orDash(sub.Service))
	fmt.Fprintf(&b, "Message:\n%s\n", sub.Message)

	return Email{
		To:      []string{inbox},
		Subject: fmt.Sprintf("Contact form: %s", orDash(sub.Name)),
		Text:    b.String(),
		Kind:    "contact_alert",
	}
}

// buildContactAutoReply formats the customer-facing confirmation.
func buildContactAutoReply(sub ContactSubmission) Email {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", orDash(sub.Name))
	b.WriteString("Thanks for getting in touch with BrightForge! ")
	b.WriteString("We've received your message and one of our team will reply within one business day.\n\n")
	if sub.Service != "" {
		fmt.Fprintf(&b, "You asked about: %s\n\n", sub.Service)
	}
	b.WriteString("In the meantime, feel free to reply to this email with anything you'd like to add.\n\n")
	b.WriteString("— The BrightForge team\n")

	return Email{
		To:      []string{sub.Email},
		Subject: "We got your message — BrightForge",
		Text:    b.String(),
		Kind:    "contact_reply",
	}
}

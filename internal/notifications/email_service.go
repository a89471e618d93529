package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"chamber/internal/shared/config"
	"chamber/pkg/logger"

	"github.com/wneessen/go-mail"
)

// EmailService delivers notification events over SMTP
type EmailService interface {
	SendBookingConfirmation(ctx context.Context, event *Event) error
}

type emailService struct {
	cfg      config.EmailConfig
	template *template.Template
}

const confirmationTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937; max-width: 600px; margin: 0 auto;">
  <h2>Your session is booked, {{.RecipientName}}!</h2>
  <p>We look forward to seeing you in the chamber. Here are your details:</p>
  <table style="border-collapse: collapse; width: 100%;">
    <tr><td style="padding: 6px 12px; font-weight: bold;">Location</td><td style="padding: 6px 12px;">{{.Location}}</td></tr>
    <tr><td style="padding: 6px 12px; font-weight: bold;">Date</td><td style="padding: 6px 12px;">{{.Date}}</td></tr>
    <tr><td style="padding: 6px 12px; font-weight: bold;">Time</td><td style="padding: 6px 12px;">{{.TimeSlot}}</td></tr>
    <tr><td style="padding: 6px 12px; font-weight: bold;">Duration</td><td style="padding: 6px 12px;">{{.DurationMinutes}} minutes</td></tr>
    <tr><td style="padding: 6px 12px; font-weight: bold;">Group size</td><td style="padding: 6px 12px;">{{.GroupSize}}</td></tr>
    {{if .SeatNames}}<tr><td style="padding: 6px 12px; font-weight: bold;">Guests</td><td style="padding: 6px 12px;">{{join .SeatNames ", "}}</td></tr>{{end}}
  </table>
  <p>Booking reference: <code>{{.BookingID}}</code></p>
  <p>Please arrive 15 minutes early for your first visit.</p>
</body>
</html>`

// NewEmailService builds the SMTP sender. The template is parsed once at
// startup so a bad edit fails fast, not per send.
func NewEmailService(cfg config.EmailConfig) (EmailService, error) {
	tmpl, err := template.New("booking_confirmation").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(confirmationTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse confirmation template: %w", err)
	}
	return &emailService{cfg: cfg, template: tmpl}, nil
}

func (s *emailService) SendBookingConfirmation(ctx context.Context, event *Event) error {
	if s.cfg.SMTPHost == "" {
		logger.GetDefault().InfoWithContext(ctx, "SMTP not configured, skipping confirmation email", map[string]interface{}{
			"to": event.RecipientEmail,
		})
		return nil
	}

	var body bytes.Buffer
	if err := s.template.Execute(&body, event); err != nil {
		return fmt.Errorf("failed to render confirmation email: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.FromName, s.cfg.FromEmail); err != nil {
		return fmt.Errorf("failed to set from address: %w", err)
	}
	if err := msg.To(event.RecipientEmail); err != nil {
		return fmt.Errorf("failed to set to address: %w", err)
	}
	msg.Subject("Your hyperbaric session is confirmed")
	msg.SetBodyString(mail.TypeTextHTML, body.String())

	client, err := mail.NewClient(s.cfg.SMTPHost,
		mail.WithPort(s.cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.SMTPUsername),
		mail.WithPassword(s.cfg.SMTPPassword),
	)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}

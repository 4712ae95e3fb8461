// Package notify delivers scan output to humans. The engine hands over
// structured results; all text rendering lives here.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/flight-deals/flight-deal-radar/internal/domain"
	"github.com/flight-deals/flight-deal-radar/internal/infrastructure/logger"
)

// mailSendURL is the SendGrid v3 mail endpoint.
const mailSendURL = "https://api.sendgrid.com/v3/mail/send"

// Subjects for the two message kinds.
const (
	reportSubject = "Flight Intelligence Report"
	alertSubject  = "Mistake Fare Alert"
)

// SendGridConfig holds mail delivery settings.
type SendGridConfig struct {
	// APIKey authenticates against the mail API.
	APIKey string

	// To receives reports and alerts.
	To string

	// From is the sender address.
	From string

	// BaseURL overrides the mail endpoint (tests only).
	BaseURL string

	// Timeout bounds one delivery call.
	Timeout time.Duration
}

// SendGridNotifier implements domain.Notifier over the SendGrid mail API.
type SendGridNotifier struct {
	client *resty.Client
	cfg    SendGridConfig
	log    *logger.Logger
}

// NewSendGridNotifier creates a mail notifier.
func NewSendGridNotifier(cfg SendGridConfig, log *logger.Logger) *SendGridNotifier {
	if cfg.BaseURL == "" {
		cfg.BaseURL = mailSendURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIKey)

	return &SendGridNotifier{client: client, cfg: cfg, log: log.WithComponent("notify")}
}

// mailPayload is the SendGrid v3 request body.
type mailPayload struct {
	Personalizations []personalization `json:"personalizations"`
	From             emailAddress      `json:"from"`
	Subject          string            `json:"subject"`
	Content          []mailContent     `json:"content"`
}

type personalization struct {
	To []emailAddress `json:"to"`
}

type emailAddress struct {
	Email string `json:"email"`
}

type mailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// SendReport delivers the ranked result of one scan.
func (n *SendGridNotifier) SendReport(ctx context.Context, result *domain.ScanResult) error {
	if err := n.send(ctx, reportSubject, formatReport(result)); err != nil {
		return err
	}
	n.log.Info().Int("deals", len(result.Top)).Msg("Report email sent")
	return nil
}

// SendAlert delivers a single anomaly alert.
func (n *SendGridNotifier) SendAlert(ctx context.Context, alert domain.Alert) error {
	if err := n.send(ctx, alertSubject, formatAlert(alert)); err != nil {
		return err
	}
	n.log.Info().Str("anomaly", alert.Anomaly.String()).Msg("Alert email sent")
	return nil
}

// send posts one plain-text mail.
func (n *SendGridNotifier) send(ctx context.Context, subject, body string) error {
	payload := mailPayload{
		Personalizations: []personalization{{To: []emailAddress{{Email: n.cfg.To}}}},
		From:             emailAddress{Email: n.cfg.From},
		Subject:          subject,
		Content:          []mailContent{{Type: "text/plain", Value: body}},
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(n.cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode())
	}
	return nil
}

// LogNotifier implements domain.Notifier by logging instead of sending.
// Used when no mail credentials are configured.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.Nop()
	}
	return &LogNotifier{log: log.WithComponent("notify")}
}

// SendReport logs the report body.
func (n *LogNotifier) SendReport(_ context.Context, result *domain.ScanResult) error {
	n.log.Info().Int("deals", len(result.Top)).Msg(formatReport(result))
	return nil
}

// SendAlert logs the alert body.
func (n *LogNotifier) SendAlert(_ context.Context, alert domain.Alert) error {
	n.log.Info().Str("anomaly", alert.Anomaly.String()).Msg(formatAlert(alert))
	return nil
}

var (
	_ domain.Notifier = (*SendGridNotifier)(nil)
	_ domain.Notifier = (*LogNotifier)(nil)
)

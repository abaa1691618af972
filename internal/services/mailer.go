package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/AbdellahHatouchi/property-management/internal/config"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

// EmailMessage is one outbound email.
type EmailMessage struct {
	ToName    string
	ToEmail   string
	Subject   string
	PlainText string
	HTML      string
}

// Mailer delivers a single message. Implementations must be safe for
// concurrent use; the expiry sweep sends in parallel.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

type sendgridMailer struct {
	cfg    *config.Config
	client *sendgrid.Client
}

// NewMailer returns a SendGrid mailer, or a logging stub when no API key is
// configured.
func NewMailer(cfg *config.Config) Mailer {
	if cfg.SendGridAPIKey == "" {
		utils.Logger.Warn("SENDGRID_API_KEY not set, emails will only be logged")
		return logMailer{}
	}
	return &sendgridMailer{cfg: cfg, client: sendgrid.NewSendClient(cfg.SendGridAPIKey)}
}

func (m *sendgridMailer) Send(ctx context.Context, msg EmailMessage) error {
	if msg.ToEmail == "" {
		return errors.New("missing recipient address")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	from := mail.NewEmail(m.cfg.OrganizationName, m.cfg.LDFlag_SendgridFromEmail)
	to := mail.NewEmail(msg.ToName, msg.ToEmail)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.PlainText, msg.HTML)

	message.TrackingSettings = &mail.TrackingSettings{
		ClickTracking: &mail.ClickTrackingSetting{
			Enable: utils.Ptr(false),
		},
	}
	if m.cfg.LDFlag_SendgridSandboxMode {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		message.MailSettings = ms
	}

	resp, err := m.client.Send(message)
	if err != nil {
		return fmt.Errorf("%w: sendgrid: %v", utils.ErrExternalServiceFailure, err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: sendgrid status %d: %s", utils.ErrExternalServiceFailure, resp.StatusCode, resp.Body)
	}
	return nil
}

type logMailer struct{}

func (logMailer) Send(_ context.Context, msg EmailMessage) error {
	if msg.ToEmail == "" {
		return errors.New("missing recipient address")
	}
	utils.Logger.WithField("to", msg.ToEmail).Infof("[mail] %s: %s", msg.Subject, msg.PlainText)
	return nil
}

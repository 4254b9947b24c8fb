package services

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/PatchLore/living-cards/internal/config"
	"github.com/PatchLore/living-cards/internal/constants"
	"github.com/PatchLore/living-cards/internal/utils"
)

// EmailSender delivers the fulfillment email carrying the share link.
type EmailSender interface {
	SendCardReadyEmail(ctx context.Context, toEmail, recipientName, cardURL string) error
}

const cardReadyEmailHTML = `<div style="font-family: Arial, sans-serif; max-width: 520px; margin: auto;">
<h2>Your card is ready 🌱</h2>
<p>Hi %s,</p>
<p>Your Living Cards card has been created successfully.</p>
<p style="margin: 24px 0;">
  <a href="%s"
     style="background:#0f172a;color:#fff;padding:12px 18px;
            text-decoration:none;border-radius:8px;display:inline-block;">
    View your card
  </a>
</p>
<p>You can also share this link with anyone:</p>
<p>%s</p>
<p style="margin-top:32px;font-size:12px;color:#555;">
  🌳 A tree has been planted as part of this card.
</p>
</div>`

type sendgridEmailSender struct {
	cfg            *config.Config
	sendgridClient *sendgrid.Client
}

func NewSendgridEmailSender(cfg *config.Config) EmailSender {
	return &sendgridEmailSender{
		cfg:            cfg,
		sendgridClient: sendgrid.NewSendClient(cfg.SendgridAPIKey),
	}
}

func (s *sendgridEmailSender) SendCardReadyEmail(ctx context.Context, toEmail, recipientName, cardURL string) error {
	if s.cfg.SendgridAPIKey == "" {
		return fmt.Errorf("%w: sendgrid api key missing", utils.ErrNotConfigured)
	}

	greeting := recipientName
	if greeting == "" {
		greeting = "there"
	}

	from := mail.NewEmail(constants.OrganizationName, s.cfg.SendgridFromEmail)
	to := mail.NewEmail("", toEmail)
	plain := fmt.Sprintf("Hi %s,\n\nYour Living Cards card has been created successfully.\n\nView and share your card: %s\n\nA tree has been planted as part of this card.", greeting, cardURL)
	html := fmt.Sprintf(cardReadyEmailHTML, greeting, cardURL, cardURL)

	msg := mail.NewSingleEmail(from, constants.EmailSubjectCardReady, to, plain, html)
	if s.cfg.SendgridSandboxMode {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		msg.SetMailSettings(ms)
	}

	if _, err := s.sendgridClient.Send(msg); err != nil {
		return fmt.Errorf("%w: failed to send email via sendgrid: %v", utils.ErrExternalServiceFailure, err)
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/badoux/checkmail"
	"github.com/matcornic/hermes/v2"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// MailService sends the two outbound messages the site produces: the
// confirmation for a saved bracket and contact-form submissions.
type MailService interface {
	SendPredictionConfirmation(ctx context.Context, to, playerName, championName, publicID string) error
	SendContactMessage(ctx context.Context, fromEmail, fromName, subject, message string) error
}

type MailConfig struct {
	SendGridAPIKey string
	FromAddress    string
	FromName       string
	ContactInbox   string
	SiteBaseURL    string
}

type mailService struct {
	cfg    MailConfig
	hermes hermes.Hermes
	logger *slog.Logger
}

func NewMailService(cfg MailConfig, logger *slog.Logger) MailService {
	return &mailService{
		cfg: cfg,
		hermes: hermes.Hermes{
			Product: hermes.Product{
				Name: "StadiumPort",
				Link: cfg.SiteBaseURL,
			},
		},
		logger: logger,
	}
}

func (s *mailService) SendPredictionConfirmation(ctx context.Context, to, playerName, championName, publicID string) error {
	if err := checkmail.ValidateFormat(to); err != nil {
		return fmt.Errorf("%w: %s", ErrEmailInvalid, to)
	}

	email := hermes.Email{
		Body: hermes.Body{
			Name: playerName,
			Intros: []string{
				"Your bracket is locked in.",
				fmt.Sprintf("You crowned %s as champion. Bold call.", championName),
			},
			Actions: []hermes.Action{
				{
					Instructions: "Share your bracket or come back to it any time:",
					Button: hermes.Button{
						Text: "View my bracket",
						Link: fmt.Sprintf("%s/predictions/%s", strings.TrimRight(s.cfg.SiteBaseURL, "/"), publicID),
					},
				},
			},
			Outros: []string{"Good luck once the real matches kick off."},
		},
	}

	htmlBody, err := s.hermes.GenerateHTML(email)
	if err != nil {
		return fmt.Errorf("failed to render confirmation email: %w", err)
	}
	textBody, err := s.hermes.GeneratePlainText(email)
	if err != nil {
		return fmt.Errorf("failed to render confirmation email text: %w", err)
	}

	return s.send(
		mail.NewEmail(s.cfg.FromName, s.cfg.FromAddress),
		mail.NewEmail(playerName, to),
		"Your StadiumPort bracket is saved",
		textBody, htmlBody,
	)
}

func (s *mailService) SendContactMessage(ctx context.Context, fromEmail, fromName, subject, message string) error {
	if err := checkmail.ValidateFormat(fromEmail); err != nil {
		return fmt.Errorf("%w: %s", ErrEmailInvalid, fromEmail)
	}
	if strings.TrimSpace(message) == "" {
		return ErrMessageEmpty
	}
	if strings.TrimSpace(subject) == "" {
		subject = "Contact form message"
	}

	body := fmt.Sprintf("From: %s <%s>\n\n%s", fromName, fromEmail, message)
	return s.send(
		mail.NewEmail(s.cfg.FromName, s.cfg.FromAddress),
		mail.NewEmail("", s.cfg.ContactInbox),
		subject,
		body,
		"<pre>"+body+"</pre>",
	)
}

func (s *mailService) send(from, to *mail.Email, subject, textBody, htmlBody string) error {
	message := mail.NewSingleEmail(from, subject, to, textBody, htmlBody)
	client := sendgrid.NewSendClient(s.cfg.SendGridAPIKey)

	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected message: status %d", response.StatusCode)
	}
	s.logger.Info("email sent", slog.String("to", to.Address), slog.String("subject", subject))
	return nil
}

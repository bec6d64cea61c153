package mail

import (
	"context"
	"log/slog"
	"strings"

	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/pkg/config"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/shared"

	"github.com/resend/resend-go/v2"
)

// EmailSender is the part of the Resend client the mailer uses.
type EmailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type ResendMailer struct {
	sender  EmailSender
	from    string
	replyTo string
	clock   clock.Clock
	logger  *slog.Logger
}

func NewResendMailer(sender EmailSender, cfg config.MailConfig, clk clock.Clock, logger *slog.Logger) *ResendMailer {
	return &ResendMailer{
		sender:  sender,
		from:    cfg.From,
		replyTo: cfg.ReplyTo,
		clock:   clk,
		logger:  logger,
	}
}

// NewResendClient returns the client's e-mail service for NewResendMailer.
func NewResendClient(apiKey string) EmailSender {
	return resend.NewClient(apiKey).Emails
}

func (m *ResendMailer) SendWelcome(ctx context.Context, msg shared.WelcomeEmail) error {
	to := strings.TrimSpace(msg.To)
	if to == "" {
		return errs.New("welcome email has no recipient")
	}

	rendered, err := RenderWelcome(msg, m.clock.Now().Year())
	if err != nil {
		return err
	}

	sent, err := m.sender.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: rendered.Subject,
		Html:    rendered.HTML,
		Text:    rendered.Text,
		ReplyTo: m.replyTo,
		Tags: []resend.Tag{
			{Name: "category", Value: "welcome"},
			{Name: "product", Value: msg.Product.String()},
		},
	})
	if err != nil {
		return errs.Wrap(err, "resend: send welcome email")
	}

	m.logger.DebugContext(ctx, "Resend accepted welcome email", "resend_id", sent.Id, "session_id", msg.SessionID)
	return nil
}

// LogMailer stands in when no Resend API key is configured. It renders the
// message and logs the magic link instead of sending it.
type LogMailer struct {
	clock  clock.Clock
	logger *slog.Logger
}

func NewLogMailer(clk clock.Clock, logger *slog.Logger) *LogMailer {
	return &LogMailer{clock: clk, logger: logger}
}

func (m *LogMailer) SendWelcome(ctx context.Context, msg shared.WelcomeEmail) error {
	rendered, err := RenderWelcome(msg, m.clock.Now().Year())
	if err != nil {
		return err
	}
	m.logger.InfoContext(ctx, "Welcome email not sent, mail delivery disabled",
		"to", msg.To,
		"subject", rendered.Subject,
		"magic_link", msg.MagicLink,
	)
	return nil
}

// NewMailer picks Resend when an API key is configured.
func NewMailer(cfg config.MailConfig, clk clock.Clock, logger *slog.Logger) shared.Mailer {
	if strings.TrimSpace(cfg.ResendAPIKey) == "" {
		logger.Warn("RESEND_API_KEY not set, welcome emails are logged only")
		return NewLogMailer(clk, logger)
	}
	return NewResendMailer(NewResendClient(cfg.ResendAPIKey), cfg, clk, logger)
}

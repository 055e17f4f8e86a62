package mail

import (
	"context"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/config"
)

// Mailer sends plain-text notification mail. When no SMTP host is
// configured every send is logged and dropped, which keeps local
// development working without a relay.
type Mailer struct {
	cfg    config.SMTPConfig
	client *gomail.Client
	logger *zap.Logger
}

// NewMailer builds the SMTP client from configuration.
func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) (*Mailer, error) {
	mailer := &Mailer{cfg: cfg, logger: logger}
	if !cfg.Enabled() {
		logger.Info("smtp disabled, mail will be logged only")
		return mailer, nil
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	}
	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, err
	}
	mailer.client = client
	return mailer, nil
}

// Send delivers one message to the given recipients.
func (m *Mailer) Send(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}
	if m.client == nil {
		m.logger.Info("mail suppressed",
			zap.Strings("to", to),
			zap.String("subject", subject))
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return err
	}
	if err := msg.To(to...); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	return m.client.DialAndSendWithContext(ctx, msg)
}

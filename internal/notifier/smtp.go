package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"github.com/helpdesk/helpdesk/internal/config"
	herrors "github.com/helpdesk/helpdesk/internal/errors"
	"github.com/helpdesk/helpdesk/internal/types"
)

// SMTPSender submits alerts to a mail server with STARTTLS and PLAIN auth
type SMTPSender struct {
	cfg    config.MailConfig
	logger zerolog.Logger
}

// NewSMTPSender creates a new SMTP sender
func NewSMTPSender(cfg config.MailConfig, logger zerolog.Logger) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		logger: logger.With().Str("component", "smtp").Logger(),
	}
}

// Mode implements Sender
func (s *SMTPSender) Mode() Mode {
	return ModeSMTP
}

// Send dials the server and submits msg once. There is no retry.
func (s *SMTPSender) Send(ctx context.Context, msg types.AlertMessage) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	m, err := buildMessage(msg)
	if err != nil {
		return herrors.Wrap(err, herrors.CategoryDelivery, "smtp", "compose", msg.Recipient)
	}

	client, err := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return herrors.Wrap(err, herrors.CategoryDelivery, "smtp", "client", addr)
	}

	s.logger.Debug().
		Str("server", addr).
		Str("recipient", msg.Recipient).
		Str("tls_policy", s.cfg.TLSPolicy).
		Msg("Submitting alert mail")

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return herrors.Wrap(err, herrors.CategoryDelivery, "smtp", "send", addr)
	}
	return nil
}

func (s *SMTPSender) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPolicy(tlsPolicy(s.cfg.TLSPolicy)),
	}
	if s.cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(s.cfg.Timeout))
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	return opts
}

func tlsPolicy(name string) mail.TLSPolicy {
	switch strings.ToLower(name) {
	case config.TLSNone:
		return mail.NoTLS
	case config.TLSOpportunistic:
		return mail.TLSOpportunistic
	default:
		return mail.TLSMandatory
	}
}

// buildMessage converts an alert into a text/plain mail message
func buildMessage(msg types.AlertMessage) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.Sender); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", msg.Sender, err)
	}
	if err := m.To(msg.Recipient); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", msg.Recipient, err)
	}
	m.Subject(msg.Subject)
	if msg.CreatedAt.IsZero() {
		m.SetDate()
	} else {
		m.SetDateWithValue(msg.CreatedAt)
	}
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	return m, nil
}

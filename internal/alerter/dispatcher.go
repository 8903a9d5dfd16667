package alerter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/helpdesk/helpdesk/internal/config"
	herrors "github.com/helpdesk/helpdesk/internal/errors"
	"github.com/helpdesk/helpdesk/internal/notifier"
	"github.com/helpdesk/helpdesk/internal/types"
)

const (
	bodyIntro  = "O HelpDesk-Automator detectou os seguintes erros críticos:"
	bodyFooter = "Por favor, investigue o arquivo de log para mais detalhes."
)

// Compose builds the aggregate alert for findings. The result depends only on
// its arguments.
func Compose(findings []types.Finding, recipient, sender string, now time.Time) types.AlertMessage {
	var b strings.Builder
	b.WriteString(bodyIntro)
	b.WriteString("\n\n")
	for i, f := range findings {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(f.String())
	}
	b.WriteString("\n\n")
	b.WriteString(bodyFooter)

	return types.AlertMessage{
		Subject:   fmt.Sprintf("ALERTA AUTOMÁTICO: %d Erros Críticos Detectados (%s)", len(findings), now.Format("15:04")),
		Body:      b.String(),
		Recipient: recipient,
		Sender:    sender,
		CreatedAt: now,
	}
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithClock overrides the clock used for the subject timestamp
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// Dispatcher decides whether findings warrant a notification and hands the
// composed alert to a single sender
type Dispatcher struct {
	cfg    config.MailConfig
	sender notifier.Sender
	logger zerolog.Logger
	now    func() time.Time
}

// NewDispatcher creates a new alert dispatcher
func NewDispatcher(cfg config.MailConfig, sender notifier.Sender, logger zerolog.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cfg:    cfg,
		sender: sender,
		logger: logger.With().Str("component", "alerter").Logger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch makes at most one delivery attempt. Delivery failures are logged
// and reported in the result; they are never returned as errors.
func (d *Dispatcher) Dispatch(ctx context.Context, findings []types.Finding) types.DispatchResult {
	if len(findings) == 0 {
		d.logger.Info().Msg("No critical errors to notify by email")
		return types.DispatchResult{Outcome: types.OutcomeNotSent}
	}

	msg := Compose(findings, d.cfg.Recipient, d.cfg.Sender, d.now())

	d.logger.Info().
		Str("recipient", msg.Recipient).
		Int("count", len(findings)).
		Str("mode", string(d.sender.Mode())).
		Msg("Sending alert")

	if err := d.sender.Send(ctx, msg); err != nil {
		if !herrors.IsCategory(err, herrors.CategoryDelivery) {
			err = herrors.Wrap(err, herrors.CategoryDelivery, "alerter", "dispatch", msg.Recipient)
		}
		d.logger.Error().
			Err(err).
			Str("recipient", msg.Recipient).
			Msg("Failed to send alert email, check mail settings")
		d.logger.Warn().Msg("Continuing without delivery, alert was logged")
		return types.DispatchResult{Outcome: types.OutcomeFailed, Count: len(findings), Err: err}
	}

	if d.sender.Mode() == notifier.ModeSimulate {
		d.logger.Info().
			Str("recipient", msg.Recipient).
			Msg("Alert recorded in simulation mode, no email was sent")
		return types.DispatchResult{Outcome: types.OutcomeSimulated, Count: len(findings)}
	}

	d.logger.Info().
		Str("recipient", msg.Recipient).
		Msg("Alert email sent")
	return types.DispatchResult{Outcome: types.OutcomeSent, Count: len(findings)}
}

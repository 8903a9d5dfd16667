package notifier

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/helpdesk/helpdesk/internal/types"
)

// LogSender is the simulation channel: it records what would have been
// mailed and never contacts a server.
type LogSender struct {
	logger zerolog.Logger
}

// NewLogSender creates a simulation sender
func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{
		logger: logger.With().Str("component", "mail-simulator").Logger(),
	}
}

// Mode implements Sender
func (l *LogSender) Mode() Mode {
	return ModeSimulate
}

// Send logs the message
func (l *LogSender) Send(_ context.Context, msg types.AlertMessage) error {
	l.logger.Info().
		Str("recipient", msg.Recipient).
		Str("subject", msg.Subject).
		Strs("body", strings.Split(msg.Body, "\n")).
		Msg("Would send alert mail (simulation mode)")
	return nil
}

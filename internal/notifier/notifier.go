package notifier

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/helpdesk/helpdesk/internal/config"
	"github.com/helpdesk/helpdesk/internal/types"
)

// Mode identifies how a Sender delivers messages
type Mode string

const (
	ModeSMTP     Mode = "smtp"
	ModeSimulate Mode = "simulate"
)

// Sender delivers a composed alert over a dispatch channel. Implementations
// make exactly one delivery attempt per call.
type Sender interface {
	Send(ctx context.Context, msg types.AlertMessage) error
	Mode() Mode
}

// New returns the sender selected by cfg.Mode
func New(cfg config.MailConfig, logger zerolog.Logger) (Sender, error) {
	switch cfg.Mode {
	case config.MailModeSMTP:
		return NewSMTPSender(cfg, logger), nil
	case config.MailModeSimulate, "":
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown mail mode %q", cfg.Mode)
	}
}

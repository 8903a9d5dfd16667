package types

import "time"

// AlertMessage is the aggregate notification built from an ordered list of findings
type AlertMessage struct {
	Subject   string
	Body      string
	Recipient string
	Sender    string
	CreatedAt time.Time
}

// Outcome describes what happened to an alert after dispatch
type Outcome string

const (
	OutcomeNotSent   Outcome = "not_sent"
	OutcomeSent      Outcome = "sent"
	OutcomeSimulated Outcome = "simulated"
	OutcomeFailed    Outcome = "failed"
)

// DispatchResult is returned by every dispatch attempt; it never carries a fatal error
type DispatchResult struct {
	Outcome Outcome
	Count   int   // number of findings in the alert
	Err     error // set only when Outcome is OutcomeFailed
}

// Sent reports whether the alert was really delivered to the mail channel.
func (r DispatchResult) Sent() bool {
	return r.Outcome == OutcomeSent
}

// Delivered reports whether the alert reached a dispatch channel, real or simulated.
func (r DispatchResult) Delivered() bool {
	return r.Outcome == OutcomeSent || r.Outcome == OutcomeSimulated
}

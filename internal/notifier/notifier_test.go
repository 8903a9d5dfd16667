package notifier

import (
	"bytes"
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"github.com/helpdesk/helpdesk/internal/config"
	herrors "github.com/helpdesk/helpdesk/internal/errors"
	"github.com/helpdesk/helpdesk/internal/types"
)

func testMessage() types.AlertMessage {
	return types.AlertMessage{
		Subject:   "ALERT: 2 critical errors",
		Body:      "- ERROR - db timeout\n- FATAL - out of memory",
		Recipient: "oncall@corp.example",
		Sender:    "robot@corp.example",
		CreatedAt: time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC),
	}
}

func TestNewSelectsSenderByMode(t *testing.T) {
	cfg := config.Default().Mail

	s, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, ModeSimulate, s.Mode())

	cfg.Mode = config.MailModeSMTP
	s, err = New(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, ModeSMTP, s.Mode())

	cfg.Mode = "fax"
	_, err = New(cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestLogSenderRecordsMessage(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(zerolog.New(&buf))

	require.NoError(t, s.Send(context.Background(), testMessage()))

	out := buf.String()
	assert.Contains(t, out, "simulation mode")
	assert.Contains(t, out, "oncall@corp.example")
	assert.Contains(t, out, "- FATAL - out of memory")
}

func TestBuildMessage(t *testing.T) {
	m, err := buildMessage(testMessage())
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "Subject: ALERT: 2 critical errors")
	assert.Contains(t, raw, "oncall@corp.example")
	assert.Contains(t, raw, "robot@corp.example")
	assert.Contains(t, raw, "- ERROR - db timeout")
}

func TestBuildMessageRejectsBadRecipient(t *testing.T) {
	msg := testMessage()
	msg.Recipient = "not an address"
	_, err := buildMessage(msg)
	assert.Error(t, err)
}

func TestSMTPSenderUnreachableServer(t *testing.T) {
	// grab a free port and close it so the dial is refused
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	cfg := config.Default().Mail
	cfg.Mode = config.MailModeSMTP
	cfg.Host = "127.0.0.1"
	cfg.Port = port
	cfg.TLSPolicy = config.TLSNone
	cfg.Timeout = 2 * time.Second

	s := NewSMTPSender(cfg, zerolog.Nop())
	err = s.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.True(t, herrors.IsCategory(err, herrors.CategoryDelivery))
	assert.Contains(t, err.Error(), "127.0.0.1:"+strconv.Itoa(port))
}

func TestClientOptions(t *testing.T) {
	s := NewSMTPSender(config.MailConfig{Port: 587, TLSPolicy: "mandatory", Username: "u"}, zerolog.Nop())
	assert.Len(t, s.clientOptions(), 5)

	s = NewSMTPSender(config.MailConfig{Port: 25, TLSPolicy: "none"}, zerolog.Nop())
	assert.Len(t, s.clientOptions(), 2)
}

func TestTLSPolicyMapping(t *testing.T) {
	assert.Equal(t, mail.NoTLS, tlsPolicy("none"))
	assert.Equal(t, mail.TLSOpportunistic, tlsPolicy("Opportunistic"))
	assert.Equal(t, mail.TLSMandatory, tlsPolicy("mandatory"))
	assert.Equal(t, mail.TLSMandatory, tlsPolicy(""))
}

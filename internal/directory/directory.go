// Package directory abstracts the user directory behind a small capability
// interface so a real directory-service backend can replace the shell one.
package directory

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"text/template"

	"github.com/rs/zerolog"

	herrors "github.com/helpdesk/helpdesk/internal/errors"
)

// Client resets user credentials in a user directory
type Client interface {
	// ResetPassword resets username's password and returns the backend output
	ResetPassword(ctx context.Context, username string) (string, error)
}

// usernames are placed into a shell command line
var validUsername = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ShellClient runs a command template through `sh -c`
type ShellClient struct {
	tmpl   *template.Template
	shell  string
	logger zerolog.Logger
}

// NewShellClient parses commandTemplate, which receives {{.Username}}
func NewShellClient(commandTemplate string, logger zerolog.Logger) (*ShellClient, error) {
	tmpl, err := template.New("reset").Option("missingkey=error").Parse(commandTemplate)
	if err != nil {
		return nil, herrors.Wrap(err, herrors.CategoryConfig, "directory", "parse command", commandTemplate)
	}
	return &ShellClient{
		tmpl:   tmpl,
		shell:  "sh",
		logger: logger.With().Str("component", "directory").Logger(),
	}, nil
}

// Command renders the command line for username
func (c *ShellClient) Command(username string) (string, error) {
	if !validUsername.MatchString(username) {
		return "", herrors.New(herrors.CategoryOperation, "directory", "reset password",
			fmt.Sprintf("invalid username %q", username))
	}
	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, struct{ Username string }{username}); err != nil {
		return "", herrors.Wrap(err, herrors.CategoryOperation, "directory", "render command", username)
	}
	return buf.String(), nil
}

// ResetPassword implements Client
func (c *ShellClient) ResetPassword(ctx context.Context, username string) (string, error) {
	command, err := c.Command(username)
	if err != nil {
		return "", err
	}

	c.logger.Debug().Str("user", username).Str("command", command).Msg("Running reset command")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.shell, "-c", command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "command failed"
		}
		return "", herrors.Wrap(err, herrors.CategoryOperation, "directory", "reset password", msg)
	}

	return strings.TrimSpace(stdout.String()), nil
}

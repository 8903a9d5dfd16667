package config

import "time"

// Config represents the complete helpdesk configuration
type Config struct {
	Paths     PathsConfig     `yaml:"paths"`
	Mail      MailConfig      `yaml:"mail"`
	Directory DirectoryConfig `yaml:"directory"`
	Metrics   MetricsConfig   `yaml:"metrics,omitempty"`
	LogLevel  string          `yaml:"log_level,omitempty"`
}

// PathsConfig lists the files the operations read and write
type PathsConfig struct {
	LogFile       string `yaml:"log_file"`
	InventoryFile string `yaml:"inventory_file"`
	ReportFile    string `yaml:"report_file"`
}

// Mail delivery modes
const (
	MailModeSimulate = "simulate"
	MailModeSMTP     = "smtp"
)

// TLS policies for the SMTP channel
const (
	TLSMandatory     = "mandatory"
	TLSOpportunistic = "opportunistic"
	TLSNone          = "none"
)

// MailConfig defines the alert mail channel
type MailConfig struct {
	Mode        string        `yaml:"mode"` // "simulate" or "smtp"
	Host        string        `yaml:"host"`
	Port        int           `yaml:"port"`
	Username    string        `yaml:"username,omitempty"`
	PasswordEnv string        `yaml:"password_env,omitempty"`
	Sender      string        `yaml:"sender"`
	Recipient   string        `yaml:"recipient"`
	TLSPolicy   string        `yaml:"tls_policy,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`

	// Password is resolved from PasswordEnv at load time and never read from YAML
	Password string `yaml:"-"`
}

// DirectoryConfig defines the user directory backend used for password resets
type DirectoryConfig struct {
	ResetCommand   string `yaml:"reset_command"` // text/template, {{.Username}} is substituted
	DailyResetUser string `yaml:"daily_reset_user"`
}

// MetricsConfig enables the optional /metrics and /health listener
type MetricsConfig struct {
	ListenAddr string `yaml:"listen_addr,omitempty"`
}

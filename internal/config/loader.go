package config

import (
	"fmt"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	herrors "github.com/helpdesk/helpdesk/internal/errors"
)

// Default returns the built-in configuration used when no config file exists
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			LogFile:       "server_error.log",
			InventoryFile: "inventory_report.csv",
			ReportFile:    "automation_report.xlsx",
		},
		Mail: MailConfig{
			Mode:        MailModeSimulate,
			Host:        "smtp.gmail.com",
			Port:        587,
			Username:    "seu_email@dominio.com",
			PasswordEnv: "HELPDESK_SMTP_PASSWORD",
			Sender:      "seu_email@dominio.com",
			Recipient:   "gestor_ti@dominio.com",
			TLSPolicy:   TLSMandatory,
			Timeout:     30 * time.Second,
		},
		Directory: DirectoryConfig{
			ResetCommand:   "echo Senha de {{.Username}} resetada com sucesso na simulação.",
			DailyResetUser: "usuario_teste_rotina",
		},
		LogLevel: "info",
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not an
// error: the defaults are returned and found is false.
func Load(path string) (cfg *Config, found bool, err error) {
	cfg = Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		found = false
	case err != nil:
		return nil, false, herrors.Wrap(err, herrors.CategoryConfig, "config", "load", path)
	default:
		found = true
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, false, herrors.Wrap(err, herrors.CategoryConfig, "config", "parse", path)
		}
	}

	applyDefaults(cfg)
	cfg.ResolveSecrets()

	if err := Validate(cfg); err != nil {
		return nil, found, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, found, nil
}

// LoadEnvFile loads variables from a .env file. A missing file is not an error.
func LoadEnvFile(path string) (bool, error) {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		return false, herrors.Wrap(err, herrors.CategoryConfig, "config", "load env", path)
	}
	return true, nil
}

// ResolveSecrets reads the SMTP password from the environment variable named by password_env
func (c *Config) ResolveSecrets() {
	if c.Mail.PasswordEnv != "" {
		c.Mail.Password = os.Getenv(c.Mail.PasswordEnv)
	}
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Mail.Mode == "" {
		cfg.Mail.Mode = def.Mail.Mode
	}
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = def.Mail.Port
	}
	if cfg.Mail.TLSPolicy == "" {
		cfg.Mail.TLSPolicy = def.Mail.TLSPolicy
	}
	if cfg.Mail.Timeout == 0 {
		cfg.Mail.Timeout = def.Mail.Timeout
	}
	if cfg.Directory.ResetCommand == "" {
		cfg.Directory.ResetCommand = def.Directory.ResetCommand
	}
	if cfg.Directory.DailyResetUser == "" {
		cfg.Directory.DailyResetUser = def.Directory.DailyResetUser
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
}

// Validate validates the configuration
func Validate(cfg *Config) error {
	if cfg.Paths.LogFile == "" {
		return fmt.Errorf("paths.log_file is required")
	}
	if cfg.Paths.InventoryFile == "" {
		return fmt.Errorf("paths.inventory_file is required")
	}
	if cfg.Paths.ReportFile == "" {
		return fmt.Errorf("paths.report_file is required")
	}

	m := cfg.Mail
	if m.Mode != MailModeSimulate && m.Mode != MailModeSMTP {
		return fmt.Errorf("mail.mode must be '%s' or '%s'", MailModeSimulate, MailModeSMTP)
	}
	if _, err := mail.ParseAddress(m.Recipient); err != nil {
		return fmt.Errorf("mail.recipient %q is not a valid address: %w", m.Recipient, err)
	}
	if _, err := mail.ParseAddress(m.Sender); err != nil {
		return fmt.Errorf("mail.sender %q is not a valid address: %w", m.Sender, err)
	}

	if m.Mode == MailModeSMTP {
		if m.Host == "" {
			return fmt.Errorf("mail.host is required for smtp mode")
		}
		if m.Port <= 0 || m.Port > 65535 {
			return fmt.Errorf("mail.port must be between 1 and 65535")
		}
		switch strings.ToLower(m.TLSPolicy) {
		case TLSMandatory, TLSOpportunistic, TLSNone:
		default:
			return fmt.Errorf("mail.tls_policy must be '%s', '%s' or '%s'", TLSMandatory, TLSOpportunistic, TLSNone)
		}
		// An empty username means unauthenticated submission, which some relays accept
		if m.Username != "" && m.Password == "" {
			return fmt.Errorf("mail.username %q is set but no password was found in $%s", m.Username, m.PasswordEnv)
		}
	}

	if !strings.Contains(cfg.Directory.ResetCommand, "{{.Username}}") {
		return fmt.Errorf("directory.reset_command must reference {{.Username}}")
	}

	return nil
}

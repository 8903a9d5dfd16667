package main

import (
	"context"
	"os"

	"github.com/helpdesk/helpdesk/internal/config"
	"github.com/helpdesk/helpdesk/internal/console"
	"github.com/helpdesk/helpdesk/internal/directory"
	"github.com/helpdesk/helpdesk/internal/helpdesk"
	"github.com/helpdesk/helpdesk/internal/logging"
	"github.com/helpdesk/helpdesk/internal/monitoring"
	"github.com/helpdesk/helpdesk/internal/notifier"
	"github.com/helpdesk/helpdesk/internal/version"
)

const (
	envConfigPath = "HELPDESK_CONFIG"
	envLogLevel   = "HELPDESK_LOG_LEVEL"
	envFile       = "HELPDESK_ENV_FILE"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// Bootstrap logger until the configured level is known
	logger := logging.New(os.Stderr, getenv(envLogLevel, "info"), true)

	envPath := getenv(envFile, ".env")
	if loaded, err := config.LoadEnvFile(envPath); err != nil {
		logger.Warn().Err(err).Str("path", envPath).Msg("Could not load environment file")
	} else if loaded {
		logger.Debug().Str("path", envPath).Msg("Environment loaded")
	}

	configPath := getenv(envConfigPath, "helpdesk.yaml")
	cfg, found, err := config.Load(configPath)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("config_path", configPath).
			Msg("Failed to load configuration")
	}

	logger = logging.New(os.Stderr, getenv(envLogLevel, cfg.LogLevel), true)
	if !found {
		logger.Warn().Str("config_path", configPath).Msg("Configuration file not found, using built-in defaults")
	}

	logger.Info().
		Str("version", version.GetFullVersion()).
		Str("log_file", cfg.Paths.LogFile).
		Str("mail_mode", cfg.Mail.Mode).
		Msg("Starting HelpDesk-Automator")

	// Ctrl+C keeps its default behaviour: the menu blocks on stdin and the
	// process simply terminates.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Metrics.ListenAddr != "" {
		if err := monitoring.NewServer(cfg.Metrics.ListenAddr, logger).Start(ctx); err != nil {
			logger.Error().Err(err).Str("address", cfg.Metrics.ListenAddr).Msg("Metrics server disabled")
		}
	}

	sender, err := notifier.New(cfg.Mail, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create mail sender")
	}

	dir, err := directory.NewShellClient(cfg.Directory.ResetCommand, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create directory client")
	}

	svc := helpdesk.NewService(cfg, dir, sender, os.Stdout, logger)
	menu := console.NewMenu(svc, os.Stdin, os.Stdout, logger)

	if err := menu.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Menu stopped")
	}
	logger.Info().Msg("HelpDesk-Automator stopped")
}

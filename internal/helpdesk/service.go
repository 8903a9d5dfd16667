// Package helpdesk wires the collaborators into the operations offered by the
// console menu. Every operation handles its own failure and reports a bool.
package helpdesk

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog"

	"github.com/helpdesk/helpdesk/internal/alerter"
	"github.com/helpdesk/helpdesk/internal/config"
	"github.com/helpdesk/helpdesk/internal/directory"
	"github.com/helpdesk/helpdesk/internal/inventory"
	"github.com/helpdesk/helpdesk/internal/monitoring"
	"github.com/helpdesk/helpdesk/internal/notifier"
	"github.com/helpdesk/helpdesk/internal/scanner"
	"github.com/helpdesk/helpdesk/internal/types"
)

// Operation names, used in logs and metrics
const (
	OpResetPassword   = "reset_password"
	OpScanAndNotify   = "scan_notify"
	OpInventoryReport = "inventory_report"
	OpRunAll          = "run_all"
)

// Service runs helpdesk operations against a fixed configuration
type Service struct {
	cfg        *config.Config
	directory  directory.Client
	scanner    *scanner.Scanner
	dispatcher *alerter.Dispatcher
	out        io.Writer
	logger     zerolog.Logger
}

// NewService creates a new service. out receives the human-readable console output.
func NewService(cfg *config.Config, dir directory.Client, sender notifier.Sender, out io.Writer, logger zerolog.Logger, opts ...alerter.Option) *Service {
	return &Service{
		cfg:        cfg,
		directory:  dir,
		scanner:    scanner.New(logger),
		dispatcher: alerter.NewDispatcher(cfg.Mail, sender, logger, opts...),
		out:        out,
		logger:     logger.With().Str("component", "helpdesk").Logger(),
	}
}

// ResetPassword resets username's password through the directory client
func (s *Service) ResetPassword(ctx context.Context, username string) bool {
	s.logger.Info().Str("user", username).Msg("Password reset requested")

	output, err := s.directory.ResetPassword(ctx, username)
	if err != nil {
		s.logger.Error().Err(err).Str("user", username).Msg("Password reset FAILED")
		fmt.Fprintf(s.out, "  [ERRO] Falha ao resetar senha de %s\n", username)
		monitoring.RecordOperation(OpResetPassword, false)
		return false
	}

	s.logger.Info().Str("user", username).Str("output", output).Msg("Password reset SUCCESS")
	fmt.Fprintf(s.out, "  [OK] %s\n", output)
	monitoring.RecordOperation(OpResetPassword, true)
	return true
}

// ScanAndNotify scans the configured log and dispatches an alert for its
// findings. It reports true only when the alert reached a dispatch channel.
func (s *Service) ScanAndNotify(ctx context.Context) bool {
	res, err := s.scanAndNotify(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("path", s.cfg.Paths.LogFile).Msg("Log analysis FAILED")
		fmt.Fprintf(s.out, "  [ERRO] Falha ao analisar %s\n", s.cfg.Paths.LogFile)
		monitoring.RecordOperation(OpScanAndNotify, false)
		return false
	}

	monitoring.RecordAlert(res.Outcome)
	switch res.Outcome {
	case types.OutcomeSent:
		fmt.Fprintf(s.out, "  Alerta enviado para %s\n", s.cfg.Mail.Recipient)
	case types.OutcomeSimulated:
		fmt.Fprintln(s.out, "  Alerta registrado em modo de simulação (nenhum e-mail enviado)")
	case types.OutcomeFailed:
		fmt.Fprintln(s.out, "  [AVISO] Falha no envio do alerta, verifique as configurações SMTP")
	case types.OutcomeNotSent:
		fmt.Fprintln(s.out, "  Nenhum erro crítico para notificar")
	}

	ok := res.Delivered()
	monitoring.RecordOperation(OpScanAndNotify, ok)
	return ok
}

func (s *Service) scanAndNotify(ctx context.Context) (types.DispatchResult, error) {
	findings, err := s.scanner.Scan(s.cfg.Paths.LogFile)
	if err != nil {
		return types.DispatchResult{}, err
	}
	monitoring.RecordFindings(findings)
	s.printFindings(findings)
	return s.dispatcher.Dispatch(ctx, findings), nil
}

func (s *Service) printFindings(findings []types.Finding) {
	if len(findings) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(s.out)
	t.SetTitle(fmt.Sprintf("*** %d ERROS CRÍTICOS/FATAIS ENCONTRADOS ***", len(findings)))
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Linha", "Severidade", "Mensagem"})
	for _, f := range findings {
		t.AppendRow(table.Row{f.Line, string(f.Severity), f.Message})
	}
	t.Render()
	for _, f := range findings {
		fmt.Fprintf(s.out, "  [ALERTA] %s\n", f)
	}
}

// BuildInventoryReport seeds the inventory CSV if needed and writes the XLSX report
func (s *Service) BuildInventoryReport(_ context.Context) bool {
	summary, err := s.buildInventoryReport()
	if err != nil {
		s.logger.Error().Err(err).Str("report", s.cfg.Paths.ReportFile).Msg("Inventory report FAILED")
		fmt.Fprintln(s.out, "  [ERRO] Falha ao gerar relatório de inventário")
		monitoring.RecordOperation(OpInventoryReport, false)
		return false
	}

	t := table.NewWriter()
	t.SetOutputMirror(s.out)
	t.SetTitle("INVENTÁRIO POR OS")
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"OS", "Total"})
	for _, c := range summary.Counts {
		t.AppendRow(table.Row{c.OS, c.Total})
	}
	t.Render()

	s.logger.Info().Str("report", s.cfg.Paths.ReportFile).Msg("Consolidated inventory report saved")
	monitoring.RecordOperation(OpInventoryReport, true)
	return true
}

func (s *Service) buildInventoryReport() (inventory.Summary, error) {
	path := s.cfg.Paths.InventoryFile
	seeded, err := inventory.EnsureCSV(path)
	if err != nil {
		return inventory.Summary{}, err
	}
	if seeded {
		s.logger.Info().Str("path", path).Msg("Created sample inventory file")
	}

	assets, err := inventory.LoadCSV(path)
	if err != nil {
		return inventory.Summary{}, err
	}
	summary := inventory.Summarize(assets)
	if err := inventory.WriteXLSX(summary, assets, s.cfg.Paths.ReportFile); err != nil {
		return inventory.Summary{}, err
	}
	return summary, nil
}

// RunAll runs the daily routine. Every step runs even if an earlier one fails.
func (s *Service) RunAll(ctx context.Context) bool {
	s.logger.Info().Msg("Running full daily routine")

	ok := s.ResetPassword(ctx, s.cfg.Directory.DailyResetUser)
	ok = s.ScanAndNotify(ctx) && ok
	ok = s.BuildInventoryReport(ctx) && ok

	s.logger.Info().Bool("success", ok).Msg("Full daily routine finished")
	monitoring.RecordOperation(OpRunAll, ok)
	return ok
}

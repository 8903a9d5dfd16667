// Package scanner extracts ERROR and FATAL findings from line-oriented server logs.
package scanner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	herrors "github.com/helpdesk/helpdesk/internal/errors"
	"github.com/helpdesk/helpdesk/internal/types"
)

// SampleLog is written when the configured log file does not exist.
// Two of its four lines are findings.
var SampleLog = []string{
	"[2025-10-10 08:30:00] INFO: Sistema Iniciado",
	"[2025-10-10 09:15:22] ERROR: Falha na Conexão com DB: Timeout",
	"[2025-10-10 10:45:01] INFO: Rotina de Backup OK",
	"[2025-10-10 11:01:55] FATAL: Erro Crítico de Memória. Processo Terminado",
}

// Scanner reads log files and produces findings in file order
type Scanner struct {
	logger zerolog.Logger
}

// New creates a new log scanner
func New(logger zerolog.Logger) *Scanner {
	return &Scanner{
		logger: logger.With().Str("component", "scanner").Logger(),
	}
}

// EnsureLog seeds path with SampleLog when it does not exist.
func (s *Scanner) EnsureLog(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}

	s.logger.Warn().
		Err(herrors.New(herrors.CategoryFileMissing, "scanner", "ensure log", path)).
		Str("path", path).
		Msg("Log file not found, creating sample log")

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range SampleLog {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return false, fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// Findings returns a lazy sequence over the findings in path. Every iteration
// re-opens the file, so the sequence can be restarted. An open or read error
// is yielded once and ends the sequence.
func (s *Scanner) Findings(path string) iter.Seq2[types.Finding, error] {
	return func(yield func(types.Finding, error) bool) {
		file, err := os.Open(path)
		if err != nil {
			yield(types.Finding{}, fmt.Errorf("opening %s: %w", path, err))
			return
		}
		defer file.Close()

		r := bufio.NewReader(file)
		lineNo := 0
		for {
			// ReadString grows as needed, so lines have no length limit
			line, err := r.ReadString('\n')
			if line != "" {
				lineNo++
				if finding, ok := types.MatchFinding(line); ok {
					finding.Line = lineNo
					if !yield(finding, nil) {
						return
					}
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(types.Finding{}, fmt.Errorf("reading %s: %w", path, err))
				return
			}
		}
	}
}

// Scan seeds the log if needed and collects every finding in file order.
func (s *Scanner) Scan(path string) ([]types.Finding, error) {
	if _, err := s.EnsureLog(path); err != nil {
		return nil, err
	}

	s.logger.Info().Str("path", path).Msg("Starting critical error analysis")

	var findings []types.Finding
	for f, err := range s.Findings(path) {
		if err != nil {
			return nil, err
		}
		findings = append(findings, f)
	}

	if len(findings) > 0 {
		s.logger.Warn().
			Int("count", len(findings)).
			Str("path", path).
			Msg("Critical/fatal errors found")
	} else {
		s.logger.Info().
			Str("path", path).
			Msg("No critical or fatal errors found in log")
	}

	return findings, nil
}

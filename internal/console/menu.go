package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog"

	"github.com/helpdesk/helpdesk/internal/version"
)

// Operations is what the menu can trigger
type Operations interface {
	ResetPassword(ctx context.Context, username string) bool
	ScanAndNotify(ctx context.Context) bool
	BuildInventoryReport(ctx context.Context) bool
	RunAll(ctx context.Context) bool
}

// command is one entry of the dispatch table; run returns true to leave the loop
type command struct {
	label string
	run   func(ctx context.Context) bool
}

// Menu is the interactive numbered menu
type Menu struct {
	ops      Operations
	in       *bufio.Reader
	readErr  error
	out      io.Writer
	logger   zerolog.Logger
	keys     []string
	commands map[string]command
}

// NewMenu creates a menu reading selections from in and writing to out
func NewMenu(ops Operations, in io.Reader, out io.Writer, logger zerolog.Logger) *Menu {
	m := &Menu{
		ops:    ops,
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger.With().Str("component", "menu").Logger(),
	}
	m.register("1", "Resetar Senha de Usuário (Simulação AD/OS)", m.resetPassword)
	m.register("2", "Analisar Logs e Notificar Erros Críticos", func(ctx context.Context) bool {
		m.ops.ScanAndNotify(ctx)
		return false
	})
	m.register("3", "Gerar Relatório Consolidado de Inventário (XLSX)", func(ctx context.Context) bool {
		m.ops.BuildInventoryReport(ctx)
		return false
	})
	m.register("4", "Executar Todas as Rotinas (Diário)", func(ctx context.Context) bool {
		m.ops.RunAll(ctx)
		return false
	})
	m.register("5", "Sair", func(context.Context) bool {
		fmt.Fprintln(m.out, "Encerrando o HelpDesk-Automator. Até logo!")
		return true
	})
	return m
}

func (m *Menu) register(key, label string, run func(ctx context.Context) bool) {
	m.keys = append(m.keys, key)
	if m.commands == nil {
		m.commands = make(map[string]command)
	}
	m.commands[key] = command{label: label, run: run}
}

// Render writes the menu table
func (m *Menu) Render() {
	t := table.NewWriter()
	t.SetOutputMirror(m.out)
	t.SetTitle("HelpDesk-Automator (Automação de Suporte L1/L2) " + version.GetVersion())
	t.SetStyle(table.StyleRounded)
	for _, k := range m.keys {
		t.AppendRow(table.Row{k, m.commands[k].label})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignLeft},
	})
	t.Render()
}

// Run loops until the exit selection, end of input or ctx cancellation.
// Failed operations never end the loop.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(m.out)
		m.Render()

		choice, ok := m.prompt("Selecione uma opção: ")
		if !ok {
			return m.readErr
		}

		cmd, found := m.commands[choice]
		if !found {
			fmt.Fprintln(m.out, "Opção inválida. Tente novamente.")
			continue
		}

		m.logger.Debug().Str("choice", choice).Str("command", cmd.label).Msg("Menu selection")
		if cmd.run(ctx) {
			return nil
		}
	}
}

func (m *Menu) resetPassword(ctx context.Context) bool {
	user, ok := m.prompt("Nome de usuário para resetar: ")
	if !ok {
		return true
	}
	m.ops.ResetPassword(ctx, user)
	return false
}

// prompt prints label and reads one trimmed line of any length; false means
// end of input or a read error, which is kept in readErr
func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		if !errors.Is(err, io.EOF) {
			m.readErr = err
		}
		fmt.Fprintln(m.out)
		return "", false
	}
	return strings.TrimSpace(line), true
}

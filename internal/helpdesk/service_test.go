package helpdesk

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk/helpdesk/internal/alerter"
	"github.com/helpdesk/helpdesk/internal/config"
	"github.com/helpdesk/helpdesk/internal/notifier"
	"github.com/helpdesk/helpdesk/internal/types"
)

type fakeDirectory struct {
	err   error
	users []string
}

func (f *fakeDirectory) ResetPassword(_ context.Context, username string) (string, error) {
	f.users = append(f.users, username)
	if f.err != nil {
		return "", f.err
	}
	return "reset " + username, nil
}

type fakeSender struct {
	mode notifier.Mode
	err  error
	sent []types.AlertMessage
}

func (f *fakeSender) Send(_ context.Context, msg types.AlertMessage) error {
	f.sent = append(f.sent, msg)
	return f.err
}

func (f *fakeSender) Mode() notifier.Mode { return f.mode }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogFile = filepath.Join(dir, "server_error.log")
	cfg.Paths.InventoryFile = filepath.Join(dir, "inventory_report.csv")
	cfg.Paths.ReportFile = filepath.Join(dir, "automation_report.xlsx")
	return cfg
}

func newTestService(cfg *config.Config, dir *fakeDirectory, sender *fakeSender, out *bytes.Buffer) *Service {
	clock := alerter.WithClock(func() time.Time { return time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC) })
	return NewService(cfg, dir, sender, out, zerolog.Nop(), clock)
}

func TestScanAndNotifySeedsLogAndSends(t *testing.T) {
	cfg := testConfig(t)
	sender := &fakeSender{mode: notifier.ModeSMTP}
	var out bytes.Buffer

	ok := newTestService(cfg, &fakeDirectory{}, sender, &out).ScanAndNotify(context.Background())
	assert.True(t, ok)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ALERTA AUTOMÁTICO: 2 Erros Críticos Detectados (12:00)", sender.sent[0].Subject)
	assert.Contains(t, out.String(), "[ALERTA] ERROR - Falha na Conexão com DB: Timeout")
	assert.Contains(t, out.String(), "[ALERTA] FATAL - Erro Crítico de Memória. Processo Terminado")
	assert.FileExists(t, cfg.Paths.LogFile)
}

func TestScanAndNotifyNoFindings(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Paths.LogFile, []byte("[t] INFO: all good\n"), 0o644))
	sender := &fakeSender{mode: notifier.ModeSMTP}
	var out bytes.Buffer

	ok := newTestService(cfg, &fakeDirectory{}, sender, &out).ScanAndNotify(context.Background())
	assert.False(t, ok)
	assert.Empty(t, sender.sent)
	assert.Contains(t, out.String(), "Nenhum erro crítico")
}

func TestScanAndNotifyDeliveryFailureIsReported(t *testing.T) {
	cfg := testConfig(t)
	sender := &fakeSender{mode: notifier.ModeSMTP, err: errors.New("auth failed")}
	var out bytes.Buffer

	ok := newTestService(cfg, &fakeDirectory{}, sender, &out).ScanAndNotify(context.Background())
	assert.False(t, ok)
	assert.Len(t, sender.sent, 1)
	assert.Contains(t, out.String(), "[AVISO]")
}

func TestScanAndNotifySimulation(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	svc := NewService(cfg, &fakeDirectory{}, notifier.NewLogSender(zerolog.Nop()), &out, zerolog.Nop())
	assert.True(t, svc.ScanAndNotify(context.Background()))
	assert.Contains(t, out.String(), "modo de simulação")
}

func TestScanAndNotifyUnreadableLog(t *testing.T) {
	cfg := testConfig(t)
	// a directory where the log file should be cannot be scanned
	require.NoError(t, os.Mkdir(cfg.Paths.LogFile, 0o755))
	sender := &fakeSender{mode: notifier.ModeSMTP}
	var out bytes.Buffer

	ok := newTestService(cfg, &fakeDirectory{}, sender, &out).ScanAndNotify(context.Background())
	assert.False(t, ok)
	assert.Empty(t, sender.sent)
	assert.Contains(t, out.String(), "[ERRO]")
}

func TestResetPassword(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	dir := &fakeDirectory{}
	assert.True(t, newTestService(cfg, dir, &fakeSender{}, &out).ResetPassword(context.Background(), "ana"))
	assert.Equal(t, []string{"ana"}, dir.users)
	assert.Contains(t, out.String(), "reset ana")

	failing := &fakeDirectory{err: errors.New("exit status 1")}
	assert.False(t, newTestService(cfg, failing, &fakeSender{}, &out).ResetPassword(context.Background(), "ana"))
}

func TestBuildInventoryReport(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	ok := newTestService(cfg, &fakeDirectory{}, &fakeSender{}, &out).BuildInventoryReport(context.Background())
	assert.True(t, ok)
	assert.FileExists(t, cfg.Paths.InventoryFile)
	assert.FileExists(t, cfg.Paths.ReportFile)
	assert.Contains(t, out.String(), "Linux")
}

func TestBuildInventoryReportBadCSV(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Paths.InventoryFile, []byte("ID\nx\n"), 0o644))
	var out bytes.Buffer

	ok := newTestService(cfg, &fakeDirectory{}, &fakeSender{}, &out).BuildInventoryReport(context.Background())
	assert.False(t, ok)
	assert.NoFileExists(t, cfg.Paths.ReportFile)
}

func TestRunAllRunsEveryStep(t *testing.T) {
	cfg := testConfig(t)
	dir := &fakeDirectory{err: errors.New("directory down")}
	sender := &fakeSender{mode: notifier.ModeSMTP}
	var out bytes.Buffer

	ok := newTestService(cfg, dir, sender, &out).RunAll(context.Background())
	assert.False(t, ok, "a failed reset fails the routine")
	assert.Equal(t, []string{"usuario_teste_rotina"}, dir.users)
	assert.Len(t, sender.sent, 1, "scan still ran")
	assert.FileExists(t, cfg.Paths.ReportFile, "inventory still ran")
}

func TestRunAllSuccess(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	ok := newTestService(cfg, &fakeDirectory{}, &fakeSender{mode: notifier.ModeSMTP}, &out).RunAll(context.Background())
	assert.True(t, ok)
}

package monitoring

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk/helpdesk/internal/types"
)

func TestRecordOperation(t *testing.T) {
	before := testutil.ToFloat64(operationsTotal.WithLabelValues("scan_notify", "failure"))
	RecordOperation("scan_notify", false)
	RecordOperation("scan_notify", true)
	assert.Equal(t, before+1, testutil.ToFloat64(operationsTotal.WithLabelValues("scan_notify", "failure")))
}

func TestRecordFindingsAndAlerts(t *testing.T) {
	errBefore := testutil.ToFloat64(findingsTotal.WithLabelValues("ERROR"))
	fatalBefore := testutil.ToFloat64(findingsTotal.WithLabelValues("FATAL"))
	RecordFindings([]types.Finding{
		{Severity: types.SeverityError},
		{Severity: types.SeverityError},
		{Severity: types.SeverityFatal},
	})
	assert.Equal(t, errBefore+2, testutil.ToFloat64(findingsTotal.WithLabelValues("ERROR")))
	assert.Equal(t, fatalBefore+1, testutil.ToFloat64(findingsTotal.WithLabelValues("FATAL")))

	simBefore := testutil.ToFloat64(alertsTotal.WithLabelValues("simulated"))
	RecordAlert(types.OutcomeSimulated)
	assert.Equal(t, simBefore+1, testutil.ToFloat64(alertsTotal.WithLabelValues("simulated")))
}

func TestServerEndpoints(t *testing.T) {
	RecordAlert(types.OutcomeSent)
	srv := httptest.NewServer(NewServer("127.0.0.1:0", zerolog.Nop()).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var health map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health["status"])

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `helpdesk_alerts_total{outcome="sent"}`)
}

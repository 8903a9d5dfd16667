package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/helpdesk/helpdesk/internal/types"
)

var (
	operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpdesk_operations_total",
			Help: "Total number of helpdesk operations by result",
		},
		[]string{"operation", "result"},
	)

	findingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpdesk_findings_total",
			Help: "Total number of ERROR/FATAL findings extracted from logs",
		},
		[]string{"severity"},
	)

	alertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpdesk_alerts_total",
			Help: "Total number of alert dispatches by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(operationsTotal)
	prometheus.MustRegister(findingsTotal)
	prometheus.MustRegister(alertsTotal)
}

// RecordOperation records the result of a menu operation
func RecordOperation(operation string, ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	operationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordFindings counts findings per severity
func RecordFindings(findings []types.Finding) {
	for _, f := range findings {
		findingsTotal.WithLabelValues(string(f.Severity)).Inc()
	}
}

// RecordAlert records a dispatch outcome
func RecordAlert(outcome types.Outcome) {
	alertsTotal.WithLabelValues(string(outcome)).Inc()
}

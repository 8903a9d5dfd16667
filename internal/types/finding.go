package types

import (
	"fmt"
	"regexp"
	"strings"
)

// Severity is the classification token that triggers a notification
type Severity string

const (
	SeverityError Severity = "ERROR"
	SeverityFatal Severity = "FATAL"
)

// ParseSeverity returns the severity for an exact ERROR or FATAL token.
func ParseSeverity(s string) (Severity, bool) {
	switch Severity(s) {
	case SeverityError, SeverityFatal:
		return Severity(s), true
	}
	return "", false
}

// Finding is a single ERROR/FATAL record extracted from a log line
type Finding struct {
	Severity Severity
	Message  string
	Line     int // 1-based line number in the source file, 0 if unknown
}

// String renders the finding as "<severity> - <message>".
func (f Finding) String() string {
	return fmt.Sprintf("%s - %s", f.Severity, f.Message)
}

// LogLine is a parsed `[<timestamp>] <LEVEL>: <message>` line
type LogLine struct {
	Raw       string
	Timestamp string
	Level     string
	Message   string
}

var (
	logLinePattern = regexp.MustCompile(`^\[([^\]]*)\]\s+([A-Za-z]+):\s?(.*)$`)
	// findingPattern is searched anywhere in the line, not anchored
	findingPattern = regexp.MustCompile(`\[.*?\] (ERROR|FATAL): (.*)`)
)

// ParseLogLine parses a raw line of any level. Lines that do not follow the
// bracketed timestamp format return false.
func ParseLogLine(raw string) (LogLine, bool) {
	raw = strings.TrimRight(raw, "\r\n")
	m := logLinePattern.FindStringSubmatch(raw)
	if m == nil {
		return LogLine{Raw: raw}, false
	}
	return LogLine{
		Raw:       raw,
		Timestamp: m[1],
		Level:     m[2],
		Message:   m[3],
	}, true
}

// Finding extracts an ERROR/FATAL finding from the raw line. The severity
// token and message are captured verbatim.
func (l LogLine) Finding() (Finding, bool) {
	return MatchFinding(l.Raw)
}

// MatchFinding applies the severity pattern to a raw line.
func MatchFinding(raw string) (Finding, bool) {
	m := findingPattern.FindStringSubmatch(strings.TrimRight(raw, "\r\n"))
	if m == nil {
		return Finding{}, false
	}
	sev, ok := ParseSeverity(m[1])
	if !ok {
		return Finding{}, false
	}
	return Finding{Severity: sev, Message: m[2]}, true
}

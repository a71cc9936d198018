package model

import (
	"fmt"
	"strings"
)

// Severity ranks lint findings
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// MarshalText renders the severity name in JSON output
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity name
func (s *Severity) UnmarshalText(b []byte) error {
	v, ok := ParseSeverity(string(b))
	if !ok {
		return fmt.Errorf("unknown severity %q", b)
	}
	*s = v
	return nil
}

// ParseSeverity accepts "error", "warning"/"warn", "info" or 0-2
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error", "2":
		return SeverityError, true
	case "warning", "warn", "1":
		return SeverityWarning, true
	case "info", "0":
		return SeverityInfo, true
	default:
		return SeverityInfo, false
	}
}

// LintIssue is one finding in a raw taxonomy file
type LintIssue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Category string   `json:"category,omitempty"`
	Keyword  string   `json:"keyword,omitempty"`
	Message  string   `json:"message"`
}

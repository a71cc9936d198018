package validate

import (
	"github.com/ppiankov/diatax/internal/model"
)

// Issue codes reported by the linter
const (
	CodeOverlap         = "overlap"
	CodeDuplicate       = "duplicate"
	CodeEmpty           = "empty"
	CodeUntrimmed       = "untrimmed"
	CodeNotNormalized   = "not_normalized"
	CodeUnmatchable     = "unmatchable"
	CodeUnknownCategory = "unknown_category"
	CodeMissingCategory = "missing_category"
	CodeMissingReserved = "missing_reserved"
)

// defaultSeverities rates each code by whether loading would fail (error),
// silently rewrite the file (warning) or merely fill a gap (info).
var defaultSeverities = map[string]model.Severity{
	CodeOverlap:         model.SeverityError,
	CodeDuplicate:       model.SeverityWarning,
	CodeEmpty:           model.SeverityWarning,
	CodeUntrimmed:       model.SeverityWarning,
	CodeNotNormalized:   model.SeverityWarning,
	CodeUnmatchable:     model.SeverityWarning,
	CodeUnknownCategory: model.SeverityWarning,
	CodeMissingCategory: model.SeverityInfo,
	CodeMissingReserved: model.SeverityInfo,
}

// SeverityPolicy maps issue codes to severities, honouring config overrides
type SeverityPolicy struct {
	overrides map[string]model.Severity
}

// NewSeverityPolicy builds a policy from config. Unknown codes and unparsable
// severities in the config are ignored.
func NewSeverityPolicy(config *model.LintConfig) *SeverityPolicy {
	if config == nil {
		config = &model.DefaultConfig().Lint
	}

	p := &SeverityPolicy{overrides: make(map[string]model.Severity)}
	for code, sev := range config.Severity {
		if _, known := defaultSeverities[code]; !known {
			continue
		}
		if s, ok := model.ParseSeverity(sev); ok {
			p.overrides[code] = s
		}
	}
	return p
}

// Classify returns the severity for code
func (p *SeverityPolicy) Classify(code string) model.Severity {
	if s, ok := p.overrides[code]; ok {
		return s
	}
	return defaultSeverities[code]
}

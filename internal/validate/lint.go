// Package validate lints a raw taxonomy file before it is loaded.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/diatax/internal/model"
	"github.com/ppiankov/diatax/internal/storage"
	"github.com/ppiankov/diatax/internal/textutil"
)

// Linter inspects the file contents as written, before normalization
type Linter struct {
	policy *SeverityPolicy
}

// NewLinter creates a linter
func NewLinter(config *model.LintConfig) *Linter {
	return &Linter{policy: NewSeverityPolicy(config)}
}

// LintFile reads path and lints it. Unreadable or malformed files are
// returned as errors, not issues.
func (l *Linter) LintFile(path string) ([]model.LintIssue, error) {
	var raw map[string][]string
	if err := storage.ReadJSON(path, &raw); err != nil {
		return nil, err
	}
	return l.Lint(raw), nil
}

// Lint returns every issue in raw, ordered by category then keyword
func (l *Linter) Lint(raw map[string][]string) []model.LintIssue {
	var issues []model.LintIssue
	add := func(code, category, keyword, format string, args ...interface{}) {
		issues = append(issues, model.LintIssue{
			Severity: l.policy.Classify(code),
			Code:     code,
			Category: category,
			Keyword:  keyword,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	if _, ok := raw[string(model.Unclassified)]; !ok {
		add(CodeMissingReserved, string(model.Unclassified), "", "reserved bucket is missing and will be created empty")
	}
	for _, c := range model.Categories() {
		if _, ok := raw[string(c)]; !ok {
			add(CodeMissingCategory, string(c), "", "category is missing and will be created empty")
		}
	}

	owner := make(map[string]string)
	for _, name := range sortedNames(raw) {
		cat := model.Category(name)
		if cat != model.Unclassified && !cat.IsRecognized() {
			add(CodeUnknownCategory, name, "", "category is not a classification target")
		}

		seen := make(map[string]bool)
		for _, kw := range raw[name] {
			norm := textutil.Keyword(kw)
			switch {
			case norm == "":
				add(CodeEmpty, name, kw, "blank keyword will be dropped")
				continue
			case kw != strings.TrimSpace(kw):
				add(CodeUntrimmed, name, kw, "keyword has surrounding whitespace")
			case kw != norm:
				add(CodeNotNormalized, name, kw, "keyword will be stored as %q", norm)
			}

			if seen[norm] {
				add(CodeDuplicate, name, norm, "keyword repeated within the category")
				continue
			}
			seen[norm] = true

			if len(strings.Fields(norm)) > 2 {
				add(CodeUnmatchable, name, norm, "only one- and two-word keywords are matched in transcripts")
			}

			if prev, ok := owner[norm]; ok {
				add(CodeOverlap, name, norm, "keyword also listed in %s", prev)
				continue
			}
			owner[norm] = name
		}
	}

	return issues
}

// Count tallies issues per severity
func Count(issues []model.LintIssue) map[model.Severity]int {
	out := make(map[model.Severity]int)
	for _, is := range issues {
		out[is.Severity]++
	}
	return out
}

// Fails reports whether any issue is at or above threshold
func Fails(issues []model.LintIssue, threshold model.Severity) bool {
	for _, is := range issues {
		if is.Severity >= threshold {
			return true
		}
	}
	return false
}

// sortedNames orders recognized categories first in enumeration order, then
// other names alphabetically, with the reserved bucket last.
func sortedNames(raw map[string][]string) []string {
	rank := make(map[string]int)
	for i, c := range model.Categories() {
		rank[string(c)] = i
	}
	rankOf := func(name string) int {
		if r, ok := rank[name]; ok {
			return r
		}
		if name == string(model.Unclassified) {
			return len(rank) + 1
		}
		return len(rank)
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, rj := rankOf(names[i]), rankOf(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
	return names
}

package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/diatax/internal/model"
)

func fullTaxonomy() map[string][]string {
	raw := map[string][]string{string(model.Unclassified): {}}
	for _, c := range model.Categories() {
		raw[string(c)] = []string{}
	}
	return raw
}

func codes(issues []model.LintIssue) map[string]int {
	out := make(map[string]int)
	for _, is := range issues {
		out[is.Code]++
	}
	return out
}

func TestLint_CleanFile(t *testing.T) {
	raw := fullTaxonomy()
	raw["GREETING_KEYWORDS"] = []string{"hola", "buenos días"}
	raw["UNCLASSIFIED_KEYWORDS"] = []string{"factura"}

	if issues := NewLinter(nil).Lint(raw); len(issues) != 0 {
		t.Errorf("expected no issues, got %+v", issues)
	}
}

func TestLint_Findings(t *testing.T) {
	raw := fullTaxonomy()
	raw["GREETING_KEYWORDS"] = []string{"hola", " adiós", "Hola", ""}
	raw["FAREWELL_KEYWORDS"] = []string{"adiós", "que tenga buen día"}
	raw["BILLING_KEYWORDS"] = []string{"factura"}
	delete(raw, "UNCLASSIFIED_KEYWORDS")
	delete(raw, "SUGGESTIONS_KEYWORDS")

	issues := NewLinter(nil).Lint(raw)
	got := codes(issues)

	want := map[string]int{
		CodeUntrimmed:       1, // " adiós"
		CodeNotNormalized:   1, // "Hola"
		CodeDuplicate:       1, // "Hola" repeats "hola"
		CodeEmpty:           1,
		CodeOverlap:         1, // adiós in GREETING and FAREWELL
		CodeUnmatchable:     1,
		CodeUnknownCategory: 1,
		CodeMissingReserved: 1,
		CodeMissingCategory: 1,
	}
	for code, n := range want {
		if got[code] != n {
			t.Errorf("%s: expected %d issues, got %d (%+v)", code, n, got[code], issues)
		}
	}

	for _, is := range issues {
		if is.Code == CodeOverlap {
			if is.Category != "FAREWELL_KEYWORDS" || is.Keyword != "adiós" {
				t.Errorf("unexpected overlap issue: %+v", is)
			}
			if is.Severity != model.SeverityError {
				t.Errorf("expected overlap to be an error, got %s", is.Severity)
			}
		}
	}

	if !Fails(issues, model.SeverityError) {
		t.Error("expected lint to fail on error threshold")
	}
}

func TestLint_WarningsDoNotFailAtErrorThreshold(t *testing.T) {
	raw := fullTaxonomy()
	raw["THANKS_KEYWORDS"] = []string{"Gracias"}

	issues := NewLinter(nil).Lint(raw)
	if Fails(issues, model.SeverityError) {
		t.Errorf("expected warnings only, got %+v", issues)
	}
	if !Fails(issues, model.SeverityWarning) {
		t.Error("expected lint to fail on warning threshold")
	}
	if Count(issues)[model.SeverityWarning] != 1 {
		t.Errorf("unexpected counts: %v", Count(issues))
	}
}

func TestSeverityPolicy_Overrides(t *testing.T) {
	policy := NewSeverityPolicy(&model.LintConfig{Severity: map[string]string{
		CodeUnknownCategory: "error",
		CodeEmpty:           "bogus",
		"not_a_code":        "error",
	}})

	if policy.Classify(CodeUnknownCategory) != model.SeverityError {
		t.Error("expected override to apply")
	}
	if policy.Classify(CodeEmpty) != model.SeverityWarning {
		t.Error("expected unparsable override to be ignored")
	}
	if policy.Classify(CodeMissingReserved) != model.SeverityInfo {
		t.Error("expected default severity")
	}
}

func TestLintFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.json")
	if err := os.WriteFile(path, []byte(`{"GREETING_KEYWORDS": ["hola"], "THANKS_KEYWORDS": ["hola"]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	issues, err := NewLinter(nil).LintFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if codes(issues)[CodeOverlap] != 1 {
		t.Errorf("expected one overlap, got %+v", issues)
	}

	if err := os.WriteFile(path, []byte(`{not json`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewLinter(nil).LintFile(path); err == nil {
		t.Error("expected error for malformed file")
	}
}

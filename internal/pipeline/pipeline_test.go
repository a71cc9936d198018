package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ppiankov/diatax/internal/corpus"
	"github.com/ppiankov/diatax/internal/model"
	"github.com/ppiankov/diatax/internal/taxonomy"
)

func testTaxonomy(t *testing.T) *taxonomy.Taxonomy {
	t.Helper()
	tax, err := taxonomy.FromMap(map[string][]string{
		"GREETING_KEYWORDS":     {"hola", "buenos días"},
		"QUESTION_KEYWORDS":     {"¿cómo"},
		"THANKS_KEYWORDS":       {"gracias"},
		"COMPLAINTS_KEYWORDS":   {"reclamo"},
		"NEGATIVE_KEYWORDS":     {"terrible"},
		"UNCLASSIFIED_KEYWORDS": {"factura"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return tax
}

func testCorpus() *corpus.Corpus {
	return &corpus.Corpus{
		Employee: []model.CallRecord{
			{CallID: "1", Side: model.SideEmployee, Text: []string{"hola buenos días ¿cómo puedo ayudarle?"}},
			{CallID: "2", Side: model.SideEmployee, Text: []string{"gracias por llamar"}},
		},
		Customer: []model.CallRecord{
			{CallID: "1", Side: model.SideCustomer, Text: []string{"tengo un reclammo terrible con mi factura."}},
		},
	}
}

func defaultAnalysis() model.AnalysisConfig {
	return model.DefaultConfig().Analysis
}

func TestAnalyzer_Utterance(t *testing.T) {
	a := NewAnalyzer(testTaxonomy(t), testCorpus(), defaultAnalysis(), zerolog.Nop())

	u := a.Utterance("hola buenos días ¿cómo puedo ayudarle?")

	if u.Act != model.ActQuestion {
		t.Errorf("expected question act, got %s", u.Act)
	}
	if u.Tone != model.TonePositive {
		t.Errorf("expected positive tone, got %s", u.Tone)
	}
	if u.Score != 20 {
		t.Errorf("expected score 20, got %d", u.Score)
	}

	var tokens []string
	for _, h := range u.Keywords {
		tokens = append(tokens, h.Token)
	}
	if strings.Join(tokens, "|") != "hola|buenos días|¿cómo" {
		t.Errorf("unexpected hits: %v", tokens)
	}
	if u.Corrected != "" {
		t.Errorf("expected no correction, got %q", u.Corrected)
	}
}

func TestAnalyzer_SpellingAndStopWords(t *testing.T) {
	a := NewAnalyzer(testTaxonomy(t), testCorpus(), defaultAnalysis(), zerolog.Nop())

	u := a.Utterance("tengo un reclammo terrible con mi factura.")

	if len(u.Corrections) != 1 || u.Corrections[0].Corrected != "reclamo" {
		t.Fatalf("expected reclammo -> reclamo, got %+v", u.Corrections)
	}
	if u.Corrected != "tengo un reclamo terrible con mi factura." {
		t.Errorf("unexpected corrected text %q", u.Corrected)
	}
	if u.Tone != model.ToneNegative || u.Score != 0 {
		t.Errorf("expected negative tone and zero score, got %s/%d", u.Tone, u.Score)
	}
	if u.Filtered != "reclamo terrible factura." {
		t.Errorf("unexpected filtered text %q", u.Filtered)
	}

	unclassified := 0
	for _, h := range u.Keywords {
		if h.Category == model.Unclassified {
			unclassified++
		}
	}
	if unclassified != 1 {
		t.Errorf("expected factura as an unclassified hit, got %+v", u.Keywords)
	}
}

func TestAnalyzer_OptionsOff(t *testing.T) {
	cfg := model.AnalysisConfig{}
	a := NewAnalyzer(testTaxonomy(t), testCorpus(), cfg, zerolog.Nop())

	u := a.Utterance("tengo un reclammo")
	if len(u.Corrections) != 0 {
		t.Errorf("expected no corrections, got %+v", u.Corrections)
	}
	if u.Filtered != "tengo un reclammo" {
		t.Errorf("expected unfiltered text, got %q", u.Filtered)
	}
}

func TestAnalyzer_AnalyzeCall(t *testing.T) {
	a := NewAnalyzer(testTaxonomy(t), testCorpus(), defaultAnalysis(), zerolog.Nop())

	report, err := a.AnalyzeCall(context.Background(), "1")
	if err != nil {
		t.Fatalf("AnalyzeCall failed: %v", err)
	}
	if len(report.Employee) != 1 || len(report.Customer) != 1 {
		t.Fatalf("unexpected sides: %d/%d", len(report.Employee), len(report.Customer))
	}
	if report.Stats.Utterances != 2 || report.Stats.Corrections != 1 {
		t.Errorf("unexpected stats: %+v", report.Stats)
	}

	if _, err := a.AnalyzeCall(context.Background(), "404"); !errors.Is(err, corpus.ErrCallNotFound) {
		t.Errorf("expected ErrCallNotFound, got %v", err)
	}
}

func TestAnalyzer_BuildReportAndRender(t *testing.T) {
	a := NewAnalyzer(testTaxonomy(t), testCorpus(), defaultAnalysis(), zerolog.Nop())

	var calls []model.CallReport
	for _, id := range []string{"1", "2"} {
		r, err := a.AnalyzeCall(context.Background(), id)
		if err != nil {
			t.Fatal(err)
		}
		calls = append(calls, *r)
	}
	report := a.BuildReport(calls, []model.Failure{{CallID: "9", Error: "boom"}}, model.SourceMeta{KeywordsFile: "k.json"})

	if report.Summary.Calls != 2 || report.Summary.Failed != 1 {
		t.Errorf("unexpected summary: %+v", report.Summary)
	}
	if report.Source.Keywords != 7 || report.Source.Unclassified != 1 {
		t.Errorf("unexpected source meta: %+v", report.Source)
	}
	if got := report.CategoryFrequency[model.CategoryGreeting]; got.Employee != 2 {
		t.Errorf("expected 2 employee greeting hits, got %+v", got)
	}

	dir := t.TempDir()
	renderer := NewRenderer(true)
	if err := renderer.RenderJSON(report, filepath.Join(dir, "report.json")); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}
	if err := renderer.RenderMarkdown(report, filepath.Join(dir, "report.md")); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	md, err := os.ReadFile(filepath.Join(dir, "report.md"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"## Category frequency", "| GREETING_KEYWORDS | 2 | 0 | 2 |", "## Failures", "`9`: boom", "_Keyword-based analysis"} {
		if !strings.Contains(string(md), want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	if strings.Contains(NewRenderer(false).Markdown(report), "_Keyword-based analysis") {
		t.Error("expected no footer when disabled")
	}
}

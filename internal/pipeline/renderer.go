package pipeline

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ppiankov/diatax/internal/model"
	"github.com/ppiankov/diatax/internal/storage"
)

// Renderer writes analysis reports as JSON and Markdown
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	return storage.WriteJSON(path, report)
}

// RenderMarkdown writes the human-readable report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return storage.WriteFile(path, []byte(r.Markdown(report)))
}

// Markdown renders the report summary, category frequency table and per-call
// table.
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	b.WriteString("# Dialogue Analysis Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- Employee transcripts: `%s`\n", report.Source.EmployeeFile)
	fmt.Fprintf(&b, "- Customer transcripts: `%s`\n", report.Source.CustomerFile)
	fmt.Fprintf(&b, "- Keywords: `%s` (%d keywords, %d unclassified)\n\n",
		report.Source.KeywordsFile, report.Source.Keywords, report.Source.Unclassified)

	s := report.Summary
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "| Calls | Failed | Utterances | Mean score |\n")
	fmt.Fprintf(&b, "|------:|-------:|-----------:|-----------:|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %.1f |\n\n", s.Calls, s.Failed, s.Utterances, s.MeanScore)

	b.WriteString("### Dialogue acts\n\n")
	writeCounts(&b, actCounts(s.Acts))
	b.WriteString("### Tone\n\n")
	writeCounts(&b, toneCounts(s.Tones))

	if len(report.CategoryFrequency) > 0 {
		b.WriteString("## Category frequency\n\n")
		b.WriteString("| Category | Employee | Customer | Total |\n")
		b.WriteString("|----------|---------:|---------:|------:|\n")
		for _, c := range sortedCategories(report.CategoryFrequency) {
			n := report.CategoryFrequency[c]
			fmt.Fprintf(&b, "| %s | %d | %d | %d |\n", c, n.Employee, n.Customer, n.Employee+n.Customer)
		}
		b.WriteString("\n")
	}

	if len(report.Calls) > 0 {
		b.WriteString("## Calls\n\n")
		b.WriteString("| Call | Utterances | Keyword hits | Unclassified hits | Corrections | Mean score |\n")
		b.WriteString("|------|-----------:|-------------:|------------------:|------------:|-----------:|\n")
		for _, c := range report.Calls {
			fmt.Fprintf(&b, "| %s | %d | %d | %d | %d | %.1f |\n",
				c.CallID, c.Stats.Utterances, c.Stats.KeywordHits, c.Stats.Unclassified, c.Stats.Corrections, c.Stats.MeanScore)
		}
		b.WriteString("\n")
	}

	if len(report.Failures) > 0 {
		b.WriteString("## Failures\n\n")
		for _, f := range report.Failures {
			fmt.Fprintf(&b, "- `%s`: %s\n", f.CallID, f.Error)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("_Keyword-based analysis. Acts, tone and scores reflect taxonomy coverage, not meaning._\n")
	}

	return b.String()
}

// RenderSummary prints a short run summary
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	s := report.Summary
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Calls:        %d (%d failed)\n", s.Calls, s.Failed)
	fmt.Fprintf(w, "  Utterances:   %d\n", s.Utterances)
	fmt.Fprintf(w, "  Mean score:   %.1f/100\n", s.MeanScore)
	fmt.Fprintf(w, "  Unclassified: %d keywords awaiting review\n", report.Source.Unclassified)
	fmt.Fprintf(w, "\n")
}

type countRow struct {
	label string
	n     int
}

func actCounts(m map[model.DialogueAct]int) []countRow {
	rows := make([]countRow, 0, len(m))
	for k, v := range m {
		rows = append(rows, countRow{string(k), v})
	}
	return sortRows(rows)
}

func toneCounts(m map[model.Tone]int) []countRow {
	rows := make([]countRow, 0, len(m))
	for k, v := range m {
		rows = append(rows, countRow{string(k), v})
	}
	return sortRows(rows)
}

func sortRows(rows []countRow) []countRow {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].n != rows[j].n {
			return rows[i].n > rows[j].n
		}
		return rows[i].label < rows[j].label
	})
	return rows
}

func writeCounts(b *strings.Builder, rows []countRow) {
	if len(rows) == 0 {
		b.WriteString("_none_\n\n")
		return
	}
	for _, row := range rows {
		fmt.Fprintf(b, "- %s: %d\n", row.label, row.n)
	}
	b.WriteString("\n")
}

// sortedCategories orders recognized categories first, in enumeration order
func sortedCategories(freq map[model.Category]model.SideCounts) []model.Category {
	var out []model.Category
	for _, c := range model.Categories() {
		if _, ok := freq[c]; ok {
			out = append(out, c)
		}
	}
	var rest []model.Category
	for c := range freq {
		if !c.IsRecognized() {
			rest = append(rest, c)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(out, rest...)
}

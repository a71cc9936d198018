package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/diatax/internal/pipeline"
	"github.com/ppiankov/diatax/internal/worker"
)

var (
	outJSON        string
	outMD          string
	analyzeTimeout time.Duration
	workers        int
	noFooter       bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [call-id...]",
	Short: "Analyze calls against the taxonomy",
	Long: `Analyze runs every utterance of the given calls (all calls when none are
given) through the analysis pipeline:
- Spelling correction against the taxonomy vocabulary
- Dialogue act (question, thanks, greeting, farewell, statement)
- Tone and quality score from positive and negative keyword hits
- Stop-word removal and lexical token counts

Calls are processed in parallel. Per-call failures are reported and do not
abort the run.

Example:
  diatax analyze
  diatax analyze 1042 1043 --md report.md
  diatax analyze --workers 8 --json out/report.json`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path (empty to skip)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Concurrency flags
	analyzeCmd.Flags().IntVar(&workers, "workers", 0, "number of concurrent workers (default from config)")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 10*time.Minute, "total timeout for the run")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, analyzeTimeout)
	defer cancel()

	e, _, err := openEngine(ctx, false)
	if err != nil {
		return err
	}
	cfg := e.Config()
	if workers > 0 {
		cfg.Concurrency.Workers = workers
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Dialogue Analysis\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Keywords:     %s\n", cfg.Data.KeywordsFile)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", analyzeTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	progress := func(done, total int, r *worker.CallResult) {
		if r.Error != nil {
			fmt.Fprintf(os.Stderr, "✗ [%d/%d] call %s: %v\n", done, total, r.CallID, r.Error)
			return
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ [%d/%d] call %s (score: %.1f)\n", done, total, r.CallID, r.Report.Stats.MeanScore)
		}
	}

	report, err := e.AnalyzeAll(ctx, args, progress)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", outJSON)
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("write Markdown: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", outMD)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Analysis Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	renderer.RenderSummary(os.Stderr, report)

	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

var scanJSON bool

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Discover words the taxonomy does not know yet",
	Long: `Scan segments every employee and customer utterance and appends each
word that is neither classified nor already pending to the
UNCLASSIFIED_KEYWORDS bucket. Existing keywords are never removed, and a
second scan over the same transcripts adds nothing.

Example:
  diatax scan
  diatax scan --keywords data/keywords.json --json`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "print the scan result as JSON")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e, _, err := openEngine(ctx, false)
	if err != nil {
		return err
	}

	res, err := e.Scan(ctx)
	if err != nil {
		return err
	}

	if scanJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(os.Stderr, "✓ Scanned %d records, %d utterances, %d tokens in %v\n",
		res.Records, res.Utterances, res.Tokens, res.Duration.Round(time.Millisecond))
	if len(res.Added) == 0 {
		fmt.Fprintln(os.Stderr, "✓ No new keywords")
		return nil
	}
	fmt.Fprintf(os.Stderr, "✓ Added %d keywords to UNCLASSIFIED_KEYWORDS\n\n", len(res.Added))
	for _, kw := range res.Added {
		fmt.Fprintln(out, kw)
	}
	return nil
}

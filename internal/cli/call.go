package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/diatax/internal/review"
)

const (
	ansiMark  = "\033[1;33m"
	ansiReset = "\033[0m"
)

var callHighlight string

var callCmd = &cobra.Command{
	Use:   "call <call-id>",
	Short: "Print both sides of a call",
	Long: `Print the employee and customer utterances of one call. With
--highlight, whole-word occurrences of the keyword are marked.

Example:
  diatax call 1042 --highlight factura`,
	Args: cobra.ExactArgs(1),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)
	callCmd.Flags().StringVar(&callHighlight, "highlight", "", "keyword to highlight")
}

func runCall(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine(cmd.Context(), true)
	if err != nil {
		return err
	}

	employee, customer, err := e.Call(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Call %s\n\n", args[0])
	n := printSide(out, "Employee", employee)
	fmt.Fprintln(out)
	n += printSide(out, "Customer", customer)

	if callHighlight != "" {
		fmt.Fprintf(os.Stderr, "\n%d matches for %q\n", n, callHighlight)
	}
	return nil
}

// printSide writes one side of the call and returns the highlight count
func printSide(w io.Writer, title string, lines []string) int {
	fmt.Fprintf(w, "%s:\n", title)
	n := 0
	for _, l := range lines {
		if callHighlight != "" {
			n += len(review.Find(l, callHighlight))
		}
		fmt.Fprintf(w, "  %s\n", highlightANSI(l, callHighlight))
	}
	return n
}

// highlightANSI marks keyword in line. Output is lowercased when a keyword is
// given, since matching runs on the normalized text.
func highlightANSI(line, keyword string) string {
	if keyword == "" {
		return line
	}
	return review.Mark(line, keyword, ansiMark, ansiReset)
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/diatax/internal/model"
	"github.com/ppiankov/diatax/internal/storage"
	"github.com/ppiankov/diatax/internal/taxonomy"
)

var (
	listJSON      bool
	exampleLimit  int
	classifyBatch string
)

var unclassifiedCmd = &cobra.Command{
	Use:   "unclassified",
	Short: "List keywords awaiting classification",
	Long: `List the UNCLASSIFIED_KEYWORDS bucket in discovery order. The discovery
scan runs first unless --no-scan is given.`,
	Args: cobra.NoArgs,
	RunE: runUnclassified,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the classification categories",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

var classifyCmd = &cobra.Command{
	Use:   "classify <keyword> <category>",
	Short: "Move an unclassified keyword into a category",
	Long: `Classify moves one keyword out of UNCLASSIFIED_KEYWORDS into a category
and saves the taxonomy. The category may be the full name
(THANKS_KEYWORDS) or the short form (thanks). There is no undo.

With --batch, decisions are read from a JSON array of
{"keyword": ..., "category": ...} objects, the format 'diatax suggest --json'
prints. Review and edit that file before applying it. Decisions are applied
in order and the run stops at the first failure.

Example:
  diatax classify gracias thanks
  diatax classify "buenas tardes" GREETING_KEYWORDS
  diatax suggest --json > decisions.json && diatax classify --batch decisions.json`,
	Args: func(cmd *cobra.Command, args []string) error {
		if classifyBatch != "" {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE:              runClassify,
	ValidArgsFunction: completeClassify,
}

var examplesCmd = &cobra.Command{
	Use:   "examples <keyword>",
	Short: "Show transcript lines that contain a keyword",
	Args:  cobra.ExactArgs(1),
	RunE:  runExamples,
}

func init() {
	rootCmd.AddCommand(unclassifiedCmd, categoriesCmd, classifyCmd, examplesCmd)
	unclassifiedCmd.Flags().BoolVar(&listJSON, "json", false, "print as a JSON array")
	examplesCmd.Flags().IntVarP(&exampleLimit, "limit", "n", 10, "maximum number of lines")
	classifyCmd.Flags().StringVar(&classifyBatch, "batch", "", "apply decisions from a JSON file")
}

func runUnclassified(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine(cmd.Context(), true)
	if err != nil {
		return err
	}

	pending := e.Pending()
	if listJSON {
		if pending == nil {
			pending = []string{}
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(pending)
	}

	out := cmd.OutOrStdout()
	for i, kw := range pending {
		fmt.Fprintf(out, "%4d  %s\n", i+1, kw)
	}
	fmt.Fprintf(os.Stderr, "\n%d keywords awaiting review\n", len(pending))
	return nil
}

func runCategories(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine(cmd.Context(), false)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	e.Store().View(func(t *taxonomy.Taxonomy) {
		for _, c := range model.Categories() {
			fmt.Fprintf(out, "%-30s %-20s %d\n", c, c.Short(), len(t.Keywords(c)))
		}
	})
	return nil
}

func runClassify(cmd *cobra.Command, args []string) error {
	if classifyBatch != "" {
		return runClassifyBatch(cmd, classifyBatch)
	}

	keyword, name := args[0], args[1]
	target, ok := model.ParseCategory(name)
	if !ok {
		return fmt.Errorf("%w: %s (run 'diatax categories' for the list)", taxonomy.ErrUnknownCategory, name)
	}

	e, _, err := openEngine(cmd.Context(), true)
	if err != nil {
		return err
	}
	if err := e.Classify(keyword, target); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ %q classified as %s\n", keyword, target)
	return nil
}

type decision struct {
	Keyword  string `json:"keyword"`
	Category string `json:"category"`
}

// readDecisions loads a decision file. Entries without a category (failed
// suggestions) are skipped; an unknown category rejects the whole file.
func readDecisions(path string) (map[string]model.Category, []string, error) {
	var list []decision
	if err := storage.ReadJSON(path, &list); err != nil {
		return nil, nil, err
	}

	decisions := make(map[string]model.Category, len(list))
	var order []string
	for _, d := range list {
		if d.Keyword == "" || d.Category == "" {
			continue
		}
		target, ok := model.ParseCategory(d.Category)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s (keyword %q)", taxonomy.ErrUnknownCategory, d.Category, d.Keyword)
		}
		if _, dup := decisions[d.Keyword]; !dup {
			order = append(order, d.Keyword)
		}
		decisions[d.Keyword] = target
	}
	return decisions, order, nil
}

func runClassifyBatch(cmd *cobra.Command, path string) error {
	decisions, order, err := readDecisions(path)
	if err != nil {
		return err
	}

	e, _, err := openEngine(cmd.Context(), true)
	if err != nil {
		return err
	}

	n, err := e.ClassifyMany(decisions, order)
	fmt.Fprintf(os.Stderr, "✓ Classified %d of %d keywords\n", n, len(order))
	return err
}

func runExamples(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine(cmd.Context(), false)
	if err != nil {
		return err
	}

	lines := e.Examples(args[0], exampleLimit)
	if len(lines) == 0 {
		fmt.Fprintf(os.Stderr, "No transcript line contains %q\n", args[0])
		return nil
	}
	out := cmd.OutOrStdout()
	for _, l := range lines {
		fmt.Fprintln(out, highlightANSI(l, args[0]))
	}
	return nil
}

// completeClassify offers pending keywords, then category short names
func completeClassify(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		noScan = true
		e, _, err := openEngine(context.Background(), false)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return filterPrefix(e.Pending(), toComplete), cobra.ShellCompDirectiveNoFileComp
	case 1:
		var names []string
		for _, c := range model.Categories() {
			names = append(names, c.Short())
		}
		return filterPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

func filterPrefix(list []string, prefix string) []string {
	var out []string
	for _, s := range list {
		if strings.HasPrefix(s, prefix) {
			out = append(out, s)
		}
	}
	return out
}

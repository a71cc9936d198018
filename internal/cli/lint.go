package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/diatax/internal/model"
	"github.com/ppiankov/diatax/internal/validate"
)

var (
	lintJSON   bool
	lintFailOn string
)

var lintCmd = &cobra.Command{
	Use:   "lint [keywords-file]",
	Short: "Check the keyword file for problems",
	Long: `Lint reads the raw keyword file and reports keywords listed under more
than one category, duplicates, blank, untrimmed or non-normalized entries,
unknown or missing categories, and a missing UNCLASSIFIED_KEYWORDS bucket.

The command fails when an issue at or above --fail-on is found.

Example:
  diatax lint
  diatax lint data/keywords.json --fail-on warning`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
	lintCmd.Flags().BoolVar(&lintJSON, "json", false, "print issues as JSON")
	lintCmd.Flags().StringVar(&lintFailOn, "fail-on", "", "lowest severity that fails the run (info, warning, error)")
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}

	path := cfg.Data.KeywordsFile
	if len(args) == 1 {
		path = args[0]
	}
	failOn := cfg.Lint.FailOn
	if lintFailOn != "" {
		failOn = lintFailOn
	}
	threshold, ok := model.ParseSeverity(failOn)
	if !ok {
		return fmt.Errorf("invalid --fail-on %q (want info, warning or error)", failOn)
	}

	issues, err := validate.NewLinter(&cfg.Lint).LintFile(path)
	if err != nil {
		return err
	}

	if lintJSON {
		if issues == nil {
			issues = []model.LintIssue{}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(issues); err != nil {
			return err
		}
	} else {
		out := cmd.OutOrStdout()
		for _, is := range issues {
			loc := is.Category
			if is.Keyword != "" {
				loc += ": " + fmt.Sprintf("%q", is.Keyword)
			}
			fmt.Fprintf(out, "%-7s %-16s %s: %s\n", is.Severity, is.Code, loc, is.Message)
		}
		counts := validate.Count(issues)
		fmt.Fprintf(os.Stderr, "\n%s: %d errors, %d warnings, %d info\n", path,
			counts[model.SeverityError], counts[model.SeverityWarning], counts[model.SeverityInfo])
	}

	if validate.Fails(issues, threshold) {
		return fmt.Errorf("lint failed: issues at or above %s", threshold)
	}
	return nil
}

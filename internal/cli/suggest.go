package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/diatax/internal/llm"
)

var (
	suggestJSON    bool
	suggestTimeout time.Duration
	llmProvider    string
	llmModel       string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [keyword...]",
	Short: "Ask an LLM to propose categories for unclassified keywords",
	Long: `Suggest asks the configured LLM provider which category fits each keyword
(every pending keyword when none are given). Answers outside the fixed
category list are rejected. Suggestions are advisory: nothing is
classified until you run 'diatax classify'.

Example:
  diatax suggest --llm-provider openai
  diatax suggest factura recibo --llm-provider ollama --llm-model llama3.1:8b`,
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "print suggestions as JSON")
	suggestCmd.Flags().DurationVar(&suggestTimeout, "timeout", 5*time.Minute, "total timeout")
	suggestCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	suggestCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, suggestTimeout)
	defer cancel()

	e, _, err := openEngine(ctx, false)
	if err != nil {
		return err
	}

	cfg := e.Config()
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
		applyLLMEnv(&cfg.LLM)
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}

	s, err := e.Suggester()
	if errors.Is(err, llm.ErrDisabled) {
		return fmt.Errorf("%w (set llm.provider or pass --llm-provider)", err)
	}
	if err != nil {
		return err
	}
	if !s.Available(ctx) {
		return fmt.Errorf("LLM provider %s is not reachable", cfg.LLM.Provider)
	}

	suggestions, err := e.SuggestAll(ctx, args)
	if err != nil && len(suggestions) == 0 {
		return err
	}

	if suggestJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(suggestions)
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, s := range suggestions {
		if s.Error != "" {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %s\n", s.Keyword, s.Error)
			continue
		}
		mark := ""
		if s.Cached {
			mark = " (cached)"
		}
		fmt.Fprintf(out, "%-30s %s%s\n", s.Keyword, s.Category.Short(), mark)
	}

	fmt.Fprintf(os.Stderr, "\n%d suggestions, %d failed. Apply with: diatax classify <keyword> <category>\n",
		len(suggestions)-failed, failed)
	return err
}

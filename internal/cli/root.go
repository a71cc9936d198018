package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/diatax/internal/engine"
	"github.com/ppiankov/diatax/internal/logging"
	"github.com/ppiankov/diatax/internal/model"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	cfgFile string
	verbose bool
	noScan  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "diatax",
	Short: "diatax - call-center dialogue keyword taxonomy",
	Long: `diatax maintains the keyword taxonomy used to analyze call-center
dialogues between employees and customers.

It discovers words in the transcripts that the taxonomy does not know yet,
queues them as unclassified, and lets an operator move each one into one
of the fixed categories. The same taxonomy drives the per-utterance
analysis (dialogue act, tone, quality score) of every call.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("diatax %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.diatax/config.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	pf.BoolVar(&noScan, "no-scan", false, "skip the discovery scan that runs before classify, unclassified, call and serve")
	pf.String("employee", "", "employee transcripts JSON file")
	pf.String("customer", "", "customer transcripts JSON file")
	pf.String("keywords", "", "keyword taxonomy JSON file")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-format", "", "log format (console, json)")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", pf.Lookup("verbose"))
	_ = viper.BindPFlag("data.employee_file", pf.Lookup("employee"))
	_ = viper.BindPFlag("data.customer_file", pf.Lookup("customer"))
	_ = viper.BindPFlag("data.keywords_file", pf.Lookup("keywords"))
	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", pf.Lookup("log-format"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(viper.GetViper(), model.DefaultConfig())

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".diatax"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// DIATAX_LLM_PROVIDER -> llm.provider
	viper.SetEnvPrefix("DIATAX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so AutomaticEnv can override it during
// Unmarshal. Keys viper has never seen are not looked up in the environment.
func setDefaults(v *viper.Viper, d *model.Config) {
	v.SetDefault("data.employee_file", d.Data.EmployeeFile)
	v.SetDefault("data.customer_file", d.Data.CustomerFile)
	v.SetDefault("data.keywords_file", d.Data.KeywordsFile)
	v.SetDefault("analysis.stop_words", d.Analysis.StopWords)
	v.SetDefault("analysis.spelling", d.Analysis.Spelling)
	v.SetDefault("analysis.spelling_threshold", d.Analysis.SpellingThreshold)
	v.SetDefault("concurrency.workers", d.Concurrency.Workers)
	v.SetDefault("rate_limiting.requests_per_second", d.RateLimiting.RequestsPerSecond)
	v.SetDefault("rate_limiting.burst_size", d.RateLimiting.BurstSize)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.memory_ttl", d.Cache.MemoryTTL)
	v.SetDefault("cache.disk_ttl", d.Cache.DiskTTL)
	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.api_key", d.LLM.APIKey)
	v.SetDefault("llm.base_url", d.LLM.BaseURL)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.max_tokens", d.LLM.MaxTokens)
	v.SetDefault("llm.http_proxy", d.LLM.HTTPProxy)
	v.SetDefault("llm.https_proxy", d.LLM.HTTPSProxy)
	v.SetDefault("llm.no_proxy", d.LLM.NoProxy)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("output.verbose", d.Output.Verbose)
	v.SetDefault("output.include_footer", d.Output.IncludeFooter)
	v.SetDefault("lint.fail_on", d.Lint.FailOn)
}

// loadConfig resolves the effective configuration from v
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Output.Verbose {
		cfg.Log.Level = "debug"
	}
	applyLLMEnv(&cfg.LLM)
	return cfg, nil
}

// applyLLMEnv falls back to the providers' conventional variables
func applyLLMEnv(c *model.LLMConfig) {
	switch strings.ToLower(c.Provider) {
	case "openai":
		if c.APIKey == "" {
			c.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case "anthropic", "claude":
		if c.APIKey == "" {
			c.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	case "ollama":
		if c.BaseURL == "" {
			c.BaseURL = os.Getenv("OLLAMA_BASE_URL")
		}
	}
}

// setup loads config and builds the logger
func setup() (*model.Config, zerolog.Logger, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, log, nil
}

// openEngine loads the data files. With startupScan set, the discovery scan
// runs first unless --no-scan was given.
func openEngine(ctx context.Context, startupScan bool) (*engine.Engine, zerolog.Logger, error) {
	cfg, log, err := setup()
	if err != nil {
		return nil, log, err
	}

	e, err := engine.Open(cfg, log)
	if err != nil {
		return nil, log, fmt.Errorf("load data: %w", err)
	}

	if startupScan && !noScan {
		res, err := e.Scan(ctx)
		if err != nil {
			return nil, log, err
		}
		if len(res.Added) > 0 {
			fmt.Fprintf(os.Stderr, "✓ Discovered %d new keywords\n", len(res.Added))
		}
	}
	return e, log, nil
}

package model

import "time"

// Config is the complete runtime configuration. Field tags serve both the
// YAML config file and viper's unmarshalling.
type Config struct {
	Data         DataConfig         `yaml:"data" mapstructure:"data"`
	Analysis     AnalysisConfig     `yaml:"analysis" mapstructure:"analysis"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	Server       ServerConfig       `yaml:"server" mapstructure:"server"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Lint         LintConfig         `yaml:"lint" mapstructure:"lint"`
}

// DataConfig locates the transcript and taxonomy files
type DataConfig struct {
	EmployeeFile string `yaml:"employee_file" mapstructure:"employee_file"`
	CustomerFile string `yaml:"customer_file" mapstructure:"customer_file"`
	KeywordsFile string `yaml:"keywords_file" mapstructure:"keywords_file"`
}

// AnalysisConfig tunes the batch analysis pipeline
type AnalysisConfig struct {
	StopWords         bool    `yaml:"stop_words" mapstructure:"stop_words"`                 // Strip Spanish stop words before lexical analysis
	Spelling          bool    `yaml:"spelling" mapstructure:"spelling"`                     // Correct words against the taxonomy vocabulary
	SpellingThreshold float64 `yaml:"spelling_threshold" mapstructure:"spelling_threshold"` // Minimum Jaro-Winkler similarity
}

// ConcurrencyConfig sizes the worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig throttles outbound LLM requests
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// CacheConfig controls the suggestion cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// LLMConfig configures the optional category suggestion provider
type LLMConfig struct {
	Provider   string `yaml:"provider" mapstructure:"provider"` // openai, ollama, or empty to disable
	Model      string `yaml:"model" mapstructure:"model"`
	APIKey     string `yaml:"-" mapstructure:"api_key"` // Never written to disk
	BaseURL    string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout    int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens  int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	HTTPProxy  string `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// ServerConfig configures `diatax serve`
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// LogConfig configures the zerolog logger
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // console or json
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// LintConfig tunes `diatax lint`
type LintConfig struct {
	FailOn   string            `yaml:"fail_on" mapstructure:"fail_on"`             // error, warning or info
	Severity map[string]string `yaml:"severity,omitempty" mapstructure:"severity"` // issue code -> severity override
}

// DefaultConfig returns the built-in defaults, mirroring the data/ layout the
// transcripts and keyword file are usually shipped in.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			EmployeeFile: "data/employee_dialogues.json",
			CustomerFile: "data/customer_dialogues.json",
			KeywordsFile: "data/keywords.json",
		},
		Analysis: AnalysisConfig{
			StopWords:         true,
			Spelling:          true,
			SpellingThreshold: 0.92,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         4,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".diatax-cache",
			MemoryTTL: time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 50,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8089",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		Lint: LintConfig{
			FailOn: "error",
		},
	}
}

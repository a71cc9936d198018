package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/diatax/internal/model"
)

// ErrDisallowedCategory is returned when a provider answers with something
// outside the allowed category list
var ErrDisallowedCategory = errors.New("category not in allowed list")

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Model returns the configured model, used to scope cached answers
	Model() string

	// Suggest asks for the category of one keyword, restricted to req.Allowed
	Suggest(ctx context.Context, req SuggestRequest) (*SuggestResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SuggestRequest contains the input for a category suggestion
type SuggestRequest struct {
	// Keyword is the unclassified keyword to place
	Keyword string

	// Examples are transcript lines in which the keyword occurs
	Examples []string

	// Allowed is the STRICT allowlist of categories the model may answer with.
	// Empty means every recognized category.
	Allowed []model.Category

	// Model overrides the configured model
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SuggestResponse contains the parsed answer
type SuggestResponse struct {
	Category   model.Category
	Raw        string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 50,
	}
}

const systemPrompt = "You classify keywords from Spanish call-center transcripts into a fixed list of categories. Answer with exactly one category name from the list and nothing else."

// BuildPrompt constructs the user prompt for a suggestion request
func BuildPrompt(req SuggestRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Keyword: %q\n\nAllowed categories (answer with one of these, verbatim):\n", req.Keyword)
	for _, c := range allowed(req) {
		fmt.Fprintf(&b, "- %s\n", c)
	}

	if len(req.Examples) > 0 {
		b.WriteString("\nTranscript lines containing the keyword:\n")
		for i, ex := range req.Examples {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- %s\n", ex)
		}
	}

	b.WriteString("\nIf no category fits well, pick the closest one.")
	return b.String()
}

// ParseAnswer extracts the category from a raw model answer and enforces the
// allowlist. Full names ("THANKS_KEYWORDS") and short names ("thanks") are
// accepted; surrounding quotes, backticks and punctuation are ignored.
func ParseAnswer(raw string, allowedCats []model.Category) (model.Category, error) {
	answer := strings.TrimSpace(raw)
	if i := strings.IndexAny(answer, "\r\n"); i >= 0 {
		answer = answer[:i]
	}
	answer = strings.Trim(answer, " \t\"'`.*:-")

	cat, ok := model.ParseCategory(strings.ToUpper(answer))
	if !ok {
		cat, ok = model.ParseCategory(strings.ToLower(answer))
	}
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrDisallowedCategory, raw)
	}

	list := allowedCats
	if len(list) == 0 {
		list = model.Categories()
	}
	for _, c := range list {
		if c == cat {
			return cat, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrDisallowedCategory, cat)
}

func allowed(req SuggestRequest) []model.Category {
	if len(req.Allowed) > 0 {
		return req.Allowed
	}
	return model.Categories()
}

func maxTokens(req SuggestRequest, config Config) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	if config.MaxTokens > 0 {
		return config.MaxTokens
	}
	return 50
}

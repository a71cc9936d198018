package llm

import (
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/diatax/internal/model"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		raw     string
		allowed []model.Category
		want    model.Category
		wantErr bool
	}{
		{"THANKS_KEYWORDS", nil, model.CategoryThanks, false},
		{"  `complaints`.", nil, model.CategoryComplaints, false},
		{"SERVICE_INFORMATION", nil, model.CategoryServiceInformation, false},
		{"NEGATIVE_KEYWORDS\nbecause the customer is upset", nil, model.CategoryNegative, false},
		{"UNCLASSIFIED_KEYWORDS", nil, "", true},
		{"BILLING", nil, "", true},
		{"", nil, "", true},
		{"THANKS_KEYWORDS", []model.Category{model.CategoryGreeting}, "", true},
	}

	for _, tt := range tests {
		got, err := ParseAnswer(tt.raw, tt.allowed)
		if tt.wantErr {
			if !errors.Is(err, ErrDisallowedCategory) {
				t.Errorf("ParseAnswer(%q): expected ErrDisallowedCategory, got %v", tt.raw, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAnswer(%q): %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAnswer(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(SuggestRequest{
		Keyword:  "reclamo",
		Examples: []string{"uno", "dos", "tres", "cuatro", "cinco", "seis"},
		Allowed:  []model.Category{model.CategoryComplaints, model.CategoryNegative},
	})

	if !strings.Contains(prompt, `"reclamo"`) {
		t.Error("expected keyword in prompt")
	}
	if !strings.Contains(prompt, "- COMPLAINTS_KEYWORDS") || strings.Contains(prompt, "THANKS_KEYWORDS") {
		t.Errorf("expected only allowed categories, got:\n%s", prompt)
	}
	if strings.Contains(prompt, "seis") {
		t.Error("expected examples to be capped at five")
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(Config{})
	if err != nil || p != nil {
		t.Errorf("expected disabled provider, got %v %v", p, err)
	}

	if _, err := NewProvider(Config{Provider: "bard"}); err == nil {
		t.Error("expected error for unknown provider")
	}

	p, err = NewProvider(Config{Provider: "Ollama", Model: "mistral"})
	if err != nil || p.Name() != "ollama" {
		t.Errorf("expected ollama provider, got %v %v", p, err)
	}
}

func TestConfigFromModel(t *testing.T) {
	cfg := ConfigFromModel(model.LLMConfig{Provider: "openai", Model: "gpt-4o-mini", NoProxy: "localhost"})
	if cfg.Provider != "openai" || cfg.Model != "gpt-4o-mini" || cfg.NoProxy != "localhost" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

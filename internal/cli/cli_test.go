package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/ppiankov/diatax/internal/model"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	setDefaults(v, model.DefaultConfig())
	v.SetEnvPrefix("DIATAX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(newViper(t))
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	d := model.DefaultConfig()
	if cfg.Data != d.Data || cfg.Server != d.Server || cfg.Cache.MemoryTTL != d.Cache.MemoryTTL {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("DIATAX_CONCURRENCY_WORKERS", "7")
	t.Setenv("DIATAX_DATA_KEYWORDS_FILE", "/tmp/kw.json")
	t.Setenv("DIATAX_CACHE_MEMORY_TTL", "30m")
	t.Setenv("DIATAX_LLM_PROVIDER", "openai")
	t.Setenv("DIATAX_LLM_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := loadConfig(newViper(t))
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Concurrency.Workers != 7 {
		t.Errorf("expected 7 workers, got %d", cfg.Concurrency.Workers)
	}
	if cfg.Data.KeywordsFile != "/tmp/kw.json" {
		t.Errorf("expected keywords file from env, got %q", cfg.Data.KeywordsFile)
	}
	if cfg.Cache.MemoryTTL != 30*time.Minute {
		t.Errorf("expected 30m memory ttl, got %v", cfg.Cache.MemoryTTL)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("expected OPENAI_API_KEY fallback, got %q", cfg.LLM.APIKey)
	}
}

func TestLoadConfig_VerboseRaisesLogLevel(t *testing.T) {
	v := newViper(t)
	v.Set("output.verbose", true)

	cfg, err := loadConfig(v)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug level, got %q", cfg.Log.Level)
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".diatax", "config.yaml")
	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("writeDefaultConfig failed: %v", err)
	}

	v := newViper(t)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("generated file does not parse: %v", err)
	}
	cfg, err := loadConfig(v)
	if err != nil {
		t.Fatal(err)
	}
	d := model.DefaultConfig()
	if cfg.Cache.DiskTTL != d.Cache.DiskTTL || cfg.Analysis != d.Analysis || cfg.Lint.FailOn != d.Lint.FailOn {
		t.Errorf("round trip changed defaults: %+v", cfg)
	}

	if err := writeDefaultConfig(path); err == nil {
		t.Error("expected error when the file already exists")
	}
}

func TestHighlightANSI(t *testing.T) {
	got := highlightANSI("Buenos días, FACTURA pendiente", "factura")
	want := "buenos días, " + ansiMark + "factura" + ansiReset + " pendiente"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	if got := highlightANSI("Hola", ""); got != "Hola" {
		t.Errorf("expected line unchanged without keyword, got %q", got)
	}
}

func TestFilterPrefix(t *testing.T) {
	got := filterPrefix([]string{"thanks", "greeting", "tone"}, "t")
	if len(got) != 2 || got[0] != "thanks" || got[1] != "tone" {
		t.Errorf("unexpected result %v", got)
	}
}

func writeFixtures(t *testing.T) (employee, customer, keywords string) {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return p
	}
	employee = write("employee.json", `[{"call_id": 7, "employee_text": "hola, ¿tiene la factura?"}]`)
	customer = write("customer.json", `[{"call_id": 7, "customer_text": ["sí, gracias"]}]`)
	keywords = write("keywords.json", `{"GREETING_KEYWORDS": ["hola"], "THANKS_KEYWORDS": ["gracias"], "UNCLASSIFIED_KEYWORDS": []}`)
	return employee, customer, keywords
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands_ScanAndClassify(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	employee, customer, keywords := writeFixtures(t)
	data := []string{"--employee", employee, "--customer", customer, "--keywords", keywords, "--log-level", "error"}

	out, err := execute(t, append([]string{"unclassified", "--json"}, data...)...)
	if err != nil {
		t.Fatalf("unclassified failed: %v", err)
	}
	var pending []string
	if err := json.Unmarshal([]byte(out), &pending); err != nil {
		t.Fatalf("expected JSON list, got %q: %v", out, err)
	}
	found := false
	for _, kw := range pending {
		if kw == "factura" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected startup scan to discover factura, got %v", pending)
	}

	if _, err := execute(t, append([]string{"classify", "factura", "service_information"}, data...)...); err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if _, err := execute(t, append([]string{"classify", "factura", "thanks"}, data...)...); err == nil {
		t.Error("expected second classify of the same keyword to fail")
	}
	if _, err := execute(t, append([]string{"classify", "recibo", "billing"}, data...)...); err == nil {
		t.Error("expected unknown category to fail")
	}

	raw, err := os.ReadFile(keywords)
	if err != nil {
		t.Fatal(err)
	}
	var tax map[string][]string
	if err := json.Unmarshal(raw, &tax); err != nil {
		t.Fatal(err)
	}
	if got := tax["SERVICE_INFORMATION_KEYWORDS"]; len(got) != 1 || got[0] != "factura" {
		t.Errorf("expected factura saved under SERVICE_INFORMATION_KEYWORDS, got %v", got)
	}

	out, err = execute(t, append([]string{"call", "7", "--highlight", "gracias"}, data...)...)
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if !strings.Contains(out, ansiMark+"gracias"+ansiReset) {
		t.Errorf("expected highlighted match, got %q", out)
	}
}

func TestReadDecisions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.json")
	content := `[
		{"keyword": "factura", "category": "SERVICE_INFORMATION_KEYWORDS", "cached": false},
		{"keyword": "reclamo", "category": "complaints"},
		{"keyword": "zzz", "error": "LLM answer is not an allowed category"},
		{"keyword": "factura", "category": "neutral"}
	]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	decisions, order, err := readDecisions(path)
	if err != nil {
		t.Fatalf("readDecisions failed: %v", err)
	}
	if len(order) != 2 || order[0] != "factura" || order[1] != "reclamo" {
		t.Errorf("unexpected order %v", order)
	}
	// Last decision for a keyword wins
	if decisions["factura"] != model.CategoryNeutral {
		t.Errorf("expected factura -> neutral, got %s", decisions["factura"])
	}
	if decisions["reclamo"] != model.CategoryComplaints {
		t.Errorf("expected reclamo -> complaints, got %s", decisions["reclamo"])
	}

	if err := os.WriteFile(path, []byte(`[{"keyword": "x", "category": "BILLING"}]`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := readDecisions(path); err == nil {
		t.Error("expected unknown category to reject the file")
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.UI.CopyShortcuts) == 0 {
		t.Error("Expected default copy shortcuts")
	}
	if cfg.UI.MaxVisibleLines <= 0 {
		t.Error("Expected positive max visible lines")
	}
	if _, ok := cfg.Providers["openai"]; !ok {
		t.Error("Expected openai provider in defaults")
	}
	if _, ok := cfg.Providers["grok"]; !ok {
		t.Error("Expected grok provider in defaults")
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Providers) == 0 {
		t.Error("Expected default providers for missing file")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[ui]
copy_shortcuts = ["y", "Y"]
max_visible_lines = 5

[providers.openai]
endpoint = "http://localhost:8080/v1"
api_key = "test-key"
models = ["test-model"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.UI.CopyShortcuts) != 2 || cfg.UI.CopyShortcuts[0] != "y" {
		t.Errorf("Expected configured shortcuts, got %v", cfg.UI.CopyShortcuts)
	}
	if cfg.UI.MaxVisibleLines != 5 {
		t.Errorf("Expected max_visible_lines 5, got %d", cfg.UI.MaxVisibleLines)
	}

	p := cfg.Providers["openai"]
	if p.Endpoint != "http://localhost:8080/v1" {
		t.Errorf("Expected configured endpoint, got %q", p.Endpoint)
	}
	if p.APIKey != "test-key" {
		t.Errorf("Expected configured key, got %q", p.APIKey)
	}
}

func TestLoad_EnvEndpointOverride(t *testing.T) {
	t.Setenv("CATNIP_OPENAI_ENDPOINT", "http://env-host/v1")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Providers["openai"].Endpoint != "http://env-host/v1" {
		t.Errorf("Expected env override, got %q", cfg.Providers["openai"].Endpoint)
	}
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("CATNIP_TEST_KEY", "from-env")

	direct := ProviderConfig{APIKey: "direct", EnvKey: "CATNIP_TEST_KEY"}
	if got := direct.ResolveAPIKey(); got != "direct" {
		t.Errorf("Config key should win, got %q", got)
	}

	env := ProviderConfig{EnvKey: "CATNIP_TEST_KEY"}
	if got := env.ResolveAPIKey(); got != "from-env" {
		t.Errorf("Expected env fallback, got %q", got)
	}

	none := ProviderConfig{EnvKey: "CATNIP_UNSET_KEY"}
	if got := none.ResolveAPIKey(); got != "" {
		t.Errorf("Expected empty key, got %q", got)
	}
}

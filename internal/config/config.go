// Package config handles configuration loading from TOML files and
// environment variables.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/xonecas/catnip/internal/constants"
)

// Config is the root configuration structure.
type Config struct {
	UI        UIConfig                  `toml:"ui"`
	Providers map[string]ProviderConfig `toml:"providers"`
}

// UIConfig holds display settings.
type UIConfig struct {
	// CopyShortcuts maps a code block's ordinal within a message to the
	// key that copies it. Blocks past the end of the list get no hint.
	CopyShortcuts []string `toml:"copy_shortcuts"`

	// MaxVisibleLines caps wrapped plain-text lines for collapsed
	// messages before the ellipsis marker.
	MaxVisibleLines int `toml:"max_visible_lines"`
}

// ProviderConfig holds LLM provider settings.
type ProviderConfig struct {
	Endpoint  string   `toml:"endpoint"`
	APIKey    string   `toml:"api_key"`
	EnvKey    string   `toml:"env_key"` // environment variable fallback for the key
	Models    []string `toml:"models"`
	RateLimit float64  `toml:"rate_limit"`
	RateBurst int      `toml:"rate_burst"`
}

// ResolveAPIKey returns the configured key, falling back to the provider's
// environment variable.
func (p ProviderConfig) ResolveAPIKey() string {
	if p.APIKey != "" {
		return p.APIKey
	}
	if p.EnvKey != "" {
		return os.Getenv(p.EnvKey)
	}
	return ""
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			CopyShortcuts:   append([]string(nil), constants.DefaultCopyShortcuts...),
			MaxVisibleLines: constants.MaxVisibleLinesPerMessage,
		},
		Providers: map[string]ProviderConfig{
			"openai": {
				Endpoint:  "https://api.openai.com/v1",
				EnvKey:    "OPENAI_API_KEY",
				Models:    []string{"gpt-4o", "gpt-4o-mini"},
				RateLimit: 10.0,
				RateBurst: 5,
			},
			"grok": {
				Endpoint:  "https://api.x.ai/v1",
				EnvKey:    "GROK_API_KEY",
				Models:    []string{"grok-3"},
				RateLimit: 10.0,
				RateBurst: 5,
			},
		},
	}
}

// Load reads configuration from a TOML file and applies environment
// variable overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, err
			}
		}
	}

	applyEnvOverrides(cfg)

	if len(cfg.UI.CopyShortcuts) == 0 {
		cfg.UI.CopyShortcuts = append([]string(nil), constants.DefaultCopyShortcuts...)
	}
	if cfg.UI.MaxVisibleLines <= 0 {
		cfg.UI.MaxVisibleLines = constants.MaxVisibleLinesPerMessage
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CATNIP_OPENAI_ENDPOINT"); v != "" {
		if p, ok := cfg.Providers["openai"]; ok {
			p.Endpoint = v
			cfg.Providers["openai"] = p
		}
	}

	if v := os.Getenv("CATNIP_GROK_ENDPOINT"); v != "" {
		if p, ok := cfg.Providers["grok"]; ok {
			p.Endpoint = v
			cfg.Providers["grok"] = p
		}
	}
}

// DataDir returns the path to the Catnip data directory (~/.catnip).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".catnip"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != ProviderAnthropic {
		t.Errorf("expected default provider %q, got %q", ProviderAnthropic, cfg.Provider)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.DataDir != "data" {
		t.Errorf("expected default data_dir %q, got %q", "data", cfg.DataDir)
	}
	if cfg.PageSize != "letter" {
		t.Errorf("expected default page_size letter, got %q", cfg.PageSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.lexdraft.yml")

	original := DefaultConfig()
	original.Provider = ProviderOpenAI
	original.Model = "gpt-4o"
	original.Jurisdiction = "US-CA"
	original.Port = 9090
	original.Signature.BaseURL = "https://esign.example.com"

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Provider != original.Provider {
		t.Errorf("provider: got %q, want %q", loaded.Provider, original.Provider)
	}
	if loaded.Model != original.Model {
		t.Errorf("model: got %q, want %q", loaded.Model, original.Model)
	}
	if loaded.Jurisdiction != original.Jurisdiction {
		t.Errorf("jurisdiction: got %q, want %q", loaded.Jurisdiction, original.Jurisdiction)
	}
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.Signature.BaseURL != original.Signature.BaseURL {
		t.Errorf("signature base_url: got %q, want %q", loaded.Signature.BaseURL, original.Signature.BaseURL)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	if err != nil {
		t.Fatalf("Load of missing file should fall back to defaults: %v", err)
	}
	if cfg.Provider != ProviderAnthropic {
		t.Errorf("expected default provider, got %q", cfg.Provider)
	}
}

func TestEnvOverride(t *testing.T) {
	os.Setenv("LEXDRAFT_PROVIDER", "openai")
	os.Setenv("LEXDRAFT_PORT", "7070")
	defer os.Unsetenv("LEXDRAFT_PROVIDER")
	defer os.Unsetenv("LEXDRAFT_PORT")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("env override provider: got %q", cfg.Provider)
	}
	if cfg.Port != 7070 {
		t.Errorf("env override port: got %d", cfg.Port)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown provider", func(c *Config) { c.Provider = "grok" }},
		{"missing model", func(c *Config) { c.Model = "" }},
		{"missing data dir", func(c *Config) { c.DataDir = "" }},
		{"bad port", func(c *Config) { c.Port = -1 }},
		{"bad page size", func(c *Config) { c.PageSize = "tabloid" }},
		{"negative rpm", func(c *Config) { c.RateLimitRPM = -5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	if got := APIKeyEnvVar(ProviderAnthropic); got != "ANTHROPIC_API_KEY" {
		t.Errorf("anthropic: got %q", got)
	}
	if got := APIKeyEnvVar(ProviderOpenAI); got != "OPENAI_API_KEY" {
		t.Errorf("openai: got %q", got)
	}
	if got := APIKeyEnvVar(ProviderNone); got != "" {
		t.Errorf("none: got %q", got)
	}
}

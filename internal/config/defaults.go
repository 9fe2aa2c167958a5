package config

// defaultModels maps each provider to its default drafting model.
var defaultModels = map[ProviderType]string{
	ProviderAnthropic: "claude-sonnet-4-5-20250929",
	ProviderOpenAI:    "gpt-4o",
}

// DefaultExcludes are glob patterns excluded from template import by default.
var DefaultExcludes = []string{
	".git/**",
	"node_modules/**",
	"*.bak",
	"README*",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderAnthropic,
		Model:          defaultModels[ProviderAnthropic],
		EmbeddingModel: "text-embedding-3-small",
		DataDir:        "data",
		Port:           8080,
		Jurisdiction:   "US",
		RateLimitRPM:   30,
		PageSize:       "letter",
		Templates: TemplatesConfig{
			Include: []string{"**/*.md", "**/*.txt"},
			Exclude: DefaultExcludes,
		},
	}
}

// DefaultModel returns the default drafting model for the given provider,
// falling back to the Anthropic default for unknown providers.
func DefaultModel(provider ProviderType) string {
	if m, ok := defaultModels[provider]; ok {
		return m
	}
	return defaultModels[ProviderAnthropic]
}

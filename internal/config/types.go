package config

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOpenAI    ProviderType = "openai"
	ProviderNone      ProviderType = "none"
)

// Config is the top-level lexdraft configuration, corresponding to .lexdraft.yml.
type Config struct {
	Provider       ProviderType    `yaml:"provider" koanf:"provider"`
	Model          string          `yaml:"model" koanf:"model"`
	EmbeddingModel string          `yaml:"embedding_model" koanf:"embedding_model"`
	DataDir        string          `yaml:"data_dir" koanf:"data_dir"`
	Port           int             `yaml:"port" koanf:"port"`
	Jurisdiction   string          `yaml:"jurisdiction" koanf:"jurisdiction"`
	RateLimitRPM   int             `yaml:"rate_limit_rpm" koanf:"rate_limit_rpm"`
	PageSize       string          `yaml:"page_size" koanf:"page_size"`
	Templates      TemplatesConfig `yaml:"templates" koanf:"templates"`
	Signature      SignatureConfig `yaml:"signature" koanf:"signature"`
}

// TemplatesConfig controls bulk template import.
type TemplatesConfig struct {
	Include []string `yaml:"include" koanf:"include"`
	Exclude []string `yaml:"exclude" koanf:"exclude"`
}

// SignatureConfig holds the external e-signature provider settings.
// The API key is taken from the environment, never from the config file.
type SignatureConfig struct {
	BaseURL     string `yaml:"base_url" koanf:"base_url"`
	CallbackURL string `yaml:"callback_url" koanf:"callback_url"`
}

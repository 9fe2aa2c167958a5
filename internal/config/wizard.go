package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to lexdraft! Let's configure your workspace.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select AI provider for document enhancement",
		Items: []string{"anthropic", "openai", "none (local resolution only)"},
	}
	providerIdx, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	providers := []ProviderType{ProviderAnthropic, ProviderOpenAI, ProviderNone}
	cfg.Provider = providers[providerIdx]
	cfg.Model = DefaultModel(cfg.Provider)
	if cfg.Provider == ProviderNone {
		cfg.Model = ""
	}

	// 2. Jurisdiction.
	jurisdictionPrompt := promptui.Prompt{
		Label:   "Default jurisdiction (e.g. US, US-CA, UK)",
		Default: cfg.Jurisdiction,
	}
	if cfg.Jurisdiction, err = jurisdictionPrompt.Run(); err != nil {
		return nil, fmt.Errorf("jurisdiction: %w", err)
	}

	// 3. Page size for printable exports.
	pagePrompt := promptui.Select{
		Label: "Default page size for printable documents",
		Items: []string{"letter", "a4", "legal"},
	}
	if _, cfg.PageSize, err = pagePrompt.Run(); err != nil {
		return nil, fmt.Errorf("page size: %w", err)
	}

	// 4. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory (database, clause index)",
		Default: cfg.DataDir,
	}
	if cfg.DataDir, err = dataPrompt.Run(); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	// 5. Server port.
	portPrompt := promptui.Prompt{
		Label:   "Server port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("must be a port number between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration written to %s\n", path)
	if envVar := APIKeyEnvVar(cfg.Provider); envVar != "" {
		fmt.Printf("Remember to set %s before starting the server.\n", envVar)
	}

	return cfg, nil
}

package llm

import (
	"fmt"

	"linkharvest/internal/config"
	"linkharvest/internal/llm/providers"
)

// Factory creates oracle provider instances
type Factory struct {
	config *config.Config
}

// NewFactory creates a new provider factory instance
func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		config: cfg,
	}
}

// CreateProvider creates an oracle provider based on the configuration
func (f *Factory) CreateProvider() (Provider, error) {
	switch f.config.LLM.Provider {
	case "ollama":
		return providers.NewOllamaProvider(f.config), nil
	case "claude":
		return providers.NewClaudeProvider(f.config), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", f.config.LLM.Provider)
	}
}

// GetSupportedProviders returns a list of supported providers
func (f *Factory) GetSupportedProviders() []string {
	return []string{"ollama", "claude"}
}

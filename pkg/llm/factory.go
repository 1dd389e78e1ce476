package llm

import (
	"fmt"
	"os"
	"strings"
)

// Provider represents the LLM provider type
type Provider string

const (
	ProviderClaude Provider = "claude"
	ProviderOpenAI Provider = "openai"
)

// Config selects and configures a provider. Empty fields fall back to the
// provider's environment variables and defaults.
type Config struct {
	Provider Provider
	Model    string
	APIKey   string
	BaseURL  string
}

// Factory creates LLM instances based on provider
type Factory struct {
	getenv func(string) string
}

// NewFactory creates a new LLM factory reading the process environment.
func NewFactory() *Factory {
	return &Factory{getenv: os.Getenv}
}

// CreateLLM creates an LLM instance from cfg. Without a provider the
// LLM_PROVIDER variable decides, defaulting to Claude.
func (f *Factory) CreateLLM(cfg Config) (LLM, error) {
	provider := Provider(strings.ToLower(string(cfg.Provider)))
	if provider == "" {
		provider = Provider(strings.ToLower(f.getenv("LLM_PROVIDER")))
	}

	switch provider {
	case ProviderOpenAI:
		apiKey := firstNonEmpty(cfg.APIKey, f.getenv("OPENAI_API_KEY"))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		client := NewOpenAIWithModel(apiKey, firstNonEmpty(cfg.Model, f.getenv("OPENAI_MODEL"), openAIDefaultModel))
		if cfg.BaseURL != "" {
			client.WithBaseURL(cfg.BaseURL)
		}
		return client, nil

	case ProviderClaude, "":
		apiKey := firstNonEmpty(cfg.APIKey, f.getenv("ANTHROPIC_API_KEY"))
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
		client := NewClaudeWithModel(apiKey, firstNonEmpty(cfg.Model, f.getenv("CLAUDE_MODEL"), claudeDefaultModel))
		if cfg.BaseURL != "" {
			client.WithBaseURL(cfg.BaseURL)
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: %s)", provider, ProviderList())
	}
}

// AvailableProviders returns the supported providers, default first.
func AvailableProviders() []Provider {
	return []Provider{ProviderClaude, ProviderOpenAI}
}

// ProviderList joins AvailableProviders for messages and flag help.
func ProviderList() string {
	names := make([]string, 0, 2)
	for _, p := range AvailableProviders() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}

// IsProvider reports whether name is a supported provider.
func IsProvider(name string) bool {
	for _, p := range AvailableProviders() {
		if string(p) == strings.ToLower(name) {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

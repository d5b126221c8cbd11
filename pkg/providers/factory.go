package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/solaceapp/solace/pkg/config"
)

// CreateGenerator builds the configured provider. Unknown provider names
// are an error at startup, not at request time.
func CreateGenerator(cfg *config.Config, log zerolog.Logger) (Generator, error) {
	providerName := strings.ToLower(strings.TrimSpace(cfg.Model.Provider))

	switch providerName {
	case "", "ollama":
		return NewOllamaProvider(cfg.OllamaHost(), cfg.Model.Name, log), nil
	case "openai":
		apiKey := strings.TrimSpace(cfg.Providers.OpenAI.APIKey)
		if apiKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required (set providers.openai.api_key or SOLACE_PROVIDERS_OPENAI_API_KEY)")
		}
		return NewOpenAIProvider(apiKey, cfg.OpenAIBase(), cfg.Model.Name, strings.TrimSpace(cfg.Providers.OpenAI.Proxy), log), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q: solace supports ollama and openai", providerName)
	}
}

// CompleterAdapter exposes a Generator as a bare prompt-in, text-out
// completer for callers that do not care about sampling knobs.
type CompleterAdapter struct {
	Generator Generator
	Opts      GenerateOptions
}

func (a *CompleterAdapter) Complete(ctx context.Context, prompt string) (string, error) {
	return a.Generator.Generate(ctx, "", prompt, a.Opts)
}

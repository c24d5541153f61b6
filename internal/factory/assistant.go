package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/flathive/flathive/internal/assistant"
	"github.com/flathive/flathive/internal/config"
)

// NewCompleter returns the completion provider selected by
// cfg.AssistantProvider.
func NewCompleter(ctx context.Context, cfg *config.Config, log zerolog.Logger) (assistant.Completer, error) {
	switch cfg.AssistantProvider {
	case config.ProviderOllama:
		model := cfg.AssistantModel
		if model == "" {
			model = "llama3.2"
		}
		log.Info().Str("provider", cfg.AssistantProvider).Str("model", model).Msg("assistant provider ready")
		return assistant.NewOllamaProvider(cfg.OllamaURL, model), nil

	case config.ProviderGemini:
		p, err := assistant.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.AssistantModel)
		if err != nil {
			return nil, fmt.Errorf("create gemini provider: %w", err)
		}
		log.Info().Str("provider", cfg.AssistantProvider).Msg("assistant provider ready")
		return p, nil

	case config.ProviderStatic:
		log.Info().Str("provider", cfg.AssistantProvider).Msg("assistant provider ready")
		return assistant.NewStaticProvider(), nil

	default:
		return nil, fmt.Errorf("unknown ASSISTANT_PROVIDER: %s", cfg.AssistantProvider)
	}
}

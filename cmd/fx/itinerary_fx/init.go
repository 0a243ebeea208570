package itinerary_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripwise/internal/config"
	"tripwise/internal/services"
	"tripwise/pkg/metrics"
	"tripwise/pkg/utils"
)

var Module = fx.Provide(
	ProvideTextGenerator,
	services.NewItineraryService,
	ProvideDocumentService,
)

// ProvideTextGenerator selects the completion backend from LLM_PROVIDER.
func ProvideTextGenerator(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (utils.TextGenerator, error) {
	llm := cfg.LLM
	log.Info("initializing text generator", zap.String("provider", llm.Provider), zap.String("model", llm.Model))

	switch llm.Provider {
	case config.ProviderMistral, config.ProviderOpenAI:
		return utils.NewChatCompletionClient(llm.Provider, llm.APIKey, llm.BaseURL, llm.Model, nil), nil
	case config.ProviderGemini:
		client, err := utils.NewGeminiClient(context.Background(), llm.APIKey, llm.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return client.Close() },
		})
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s. Use 'mistral', 'openai' or 'gemini'", llm.Provider)
	}
}

func ProvideDocumentService(cfg *config.Config, m *metrics.Metrics, log *zap.Logger) services.DocumentServiceInterface {
	return services.NewDocumentService(cfg.PDF.Compress, m, log)
}

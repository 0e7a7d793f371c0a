package suggest

import (
	"context"
	"fmt"

	"recruit-workers/internal/common/config"
	commonhttp "recruit-workers/internal/common/http"
	"recruit-workers/internal/common/logger"
)

// New builds the configured generator wrapped with latency metrics.
func New(ctx context.Context, cfg config.SuggestionsConfig, log logger.Logger) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderHTTP, "":
		client := commonhttp.NewClient(config.GetDuration(cfg.Timeout), cfg.RateLimit, cfg.Burst)
		return Instrument(config.ProviderHTTP, NewHTTPGenerator(cfg.BaseURL, cfg.APIKey, client, log)), nil
	case config.ProviderGemini:
		g, err := NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return nil, err
		}
		return Instrument(config.ProviderGemini, g), nil
	default:
		return nil, fmt.Errorf("unknown suggestion provider %q", cfg.Provider)
	}
}

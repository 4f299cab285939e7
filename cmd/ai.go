package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/subject-advisor/internal/ai"
	"github.com/spigell/subject-advisor/internal/ai/gemini"
	"github.com/spigell/subject-advisor/internal/logger"
	"github.com/spigell/subject-advisor/internal/secrets"
)

const providerGemini = "gemini"

// newNarrator returns nil when AI commentary is disabled.
func newNarrator(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Narrator, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != providerGemini {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		Env:  "GEMINI_API_KEY",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	aiLogger := logger.WithCommonFields(log, providerGemini, cfg.Gemini.Model)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries,
		aiLogger.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries)),
	)
	if err != nil {
		return nil, err
	}

	return gemini.NewNarrator(generator, cfg.Gemini.MaxLogLength, aiLogger), nil
}

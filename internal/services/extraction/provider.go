// Package extraction turns an annual report PDF into a models.AnalysisResult
// using a document-capable LLM. One document is one request.
package extraction

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/brfanalys/internal/common"
	"github.com/ternarybob/brfanalys/internal/models"
)

// Document is a single uploaded annual report
type Document struct {
	FileName string
	Data     []byte
}

// Provider extracts structured data from an annual report
type Provider interface {
	// Extract sends the document to the provider and returns the validated result
	Extract(ctx context.Context, doc Document) (*models.AnalysisResult, error)
	// Name identifies the provider in logs and responses
	Name() string
	// Close releases provider resources
	Close() error
}

// NewProvider creates the provider selected by llm.default_provider.
// A missing API key yields an error wrapping ErrNotConfigured.
func NewProvider(ctx context.Context, config *common.Config, logger arbor.ILogger) (Provider, error) {
	timeout := common.ParseDuration(config.LLM.Timeout, 3*time.Minute)
	policy := NewRetryPolicy(config.LLM.MaxRetries)

	switch config.LLM.DefaultProvider {
	case common.LLMProviderClaude:
		apiKey, err := common.ResolveAPIKey("anthropic_api_key", config.Claude.APIKey)
		if err != nil {
			return nil, fmt.Errorf("%w: set ANTHROPIC_API_KEY, BRF_CLAUDE_API_KEY or claude.api_key: %v", ErrNotConfigured, err)
		}
		return NewClaudeProvider(apiKey, config.Claude, timeout, policy, logger), nil

	case common.LLMProviderGemini, "":
		apiKey, err := common.ResolveAPIKey("gemini_api_key", config.Gemini.APIKey)
		if err != nil {
			return nil, fmt.Errorf("%w: set GEMINI_API_KEY, BRF_GEMINI_API_KEY or gemini.api_key: %v", ErrNotConfigured, err)
		}
		return NewGeminiProvider(ctx, apiKey, config.Gemini, timeout, policy, logger)

	case common.LLMProviderFixture:
		return NewFixtureProvider(config.LLM.FixturePath, logger)

	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrNotConfigured, config.LLM.DefaultProvider)
	}
}

package extraction

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/ternarybob/brfanalys/internal/common"
	"github.com/ternarybob/brfanalys/internal/models"
)

// GeminiProvider extracts with Google Gemini. The PDF is sent inline and the
// reply is constrained by a response schema.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	temperature float32
	timeout     time.Duration
	limiter     *rate.Limiter
	policy      RetryPolicy
	logger      arbor.ILogger
}

// NewGeminiProvider creates a Gemini client for apiKey
func NewGeminiProvider(ctx context.Context, apiKey string, config common.GeminiConfig, timeout time.Duration, policy RetryPolicy, logger arbor.ILogger) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	logger.Debug().
		Str("model", model).
		Dur("timeout", timeout).
		Float32("temperature", config.Temperature).
		Int("max_retries", policy.MaxRetries).
		Msg("Gemini extraction provider initialized")

	return &GeminiProvider{
		client:      client,
		model:       model,
		temperature: config.Temperature,
		timeout:     timeout,
		limiter:     newLimiter(common.ParseDuration(config.RateLimit, 4*time.Second)),
		policy:      policy,
		logger:      logger,
	}, nil
}

func (p *GeminiProvider) Name() string {
	return "gemini/" + p.model
}

// Extract implements Provider
func (p *GeminiProvider) Extract(ctx context.Context, doc Document) (*models.AnalysisResult, error) {
	if len(doc.Data) == 0 {
		return nil, fmt.Errorf("document %s is empty", doc.FileName)
	}

	schema, err := convertToGenaiSchema(analysisSchema())
	if err != nil {
		return nil, fmt.Errorf("failed to build response schema: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(p.temperature),
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    schema,
	}

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			genai.NewPartFromText(userInstruction),
			genai.NewPartFromBytes(doc.Data, "application/pdf"),
		},
	}}

	timeoutCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	startTime := time.Now()
	p.logger.Info().
		Str("file", doc.FileName).
		Int("size", len(doc.Data)).
		Str("model", p.model).
		Msg("Analyzing PDF with Gemini")

	text, err := callWithRetry(timeoutCtx, p.logger, p.limiter, p.policy, p.Name(), func(ctx context.Context) (string, error) {
		resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
		if err != nil {
			return "", err
		}
		if resp == nil || len(resp.Candidates) == 0 {
			return "", ErrEmptyResponse
		}
		text := resp.Text()
		if text == "" {
			return "", ErrEmptyResponse
		}
		return text, nil
	})
	if err != nil {
		p.logger.Error().Err(err).Str("file", doc.FileName).Msg("Gemini extraction failed")
		return nil, fmt.Errorf("gemini extraction failed: %w", err)
	}

	result, err := decodeAnalysis(text)
	if err != nil {
		p.logger.Error().Err(err).Int("response_length", len(text)).Msg("Failed to decode Gemini response")
		return nil, err
	}

	p.logger.Info().
		Str("file", doc.FileName).
		Str("association", result.Association.Name).
		Int("technical_items", len(result.Technical)).
		Dur("duration", time.Since(startTime)).
		Msg("Gemini extraction completed")

	return result, nil
}

// Close drops the client reference; genai clients hold no open connections.
func (p *GeminiProvider) Close() error {
	p.client = nil
	return nil
}

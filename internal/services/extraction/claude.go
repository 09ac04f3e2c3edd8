package extraction

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/brfanalys/internal/common"
	"github.com/ternarybob/brfanalys/internal/models"
)

// ClaudeProvider extracts with Anthropic Claude. The PDF is sent as a base64
// document block and the reply is parsed as free-form JSON.
type ClaudeProvider struct {
	client      anthropic.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
	limiter     *rate.Limiter
	policy      RetryPolicy
	logger      arbor.ILogger
}

// NewClaudeProvider creates a Claude client for apiKey
func NewClaudeProvider(apiKey string, config common.ClaudeConfig, timeout time.Duration, policy RetryPolicy, logger arbor.ILogger) *ClaudeProvider {
	model := config.Model
	if model == "" {
		model = "claude-sonnet-4-5"
	}
	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 8192
	}

	logger.Debug().
		Str("model", model).
		Dur("timeout", timeout).
		Int("max_tokens", maxTokens).
		Int("max_retries", policy.MaxRetries).
		Msg("Claude extraction provider initialized")

	return &ClaudeProvider{
		client:      anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:       model,
		maxTokens:   maxTokens,
		temperature: config.Temperature,
		timeout:     timeout,
		limiter:     newLimiter(common.ParseDuration(config.RateLimit, time.Second)),
		policy:      policy,
		logger:      logger,
	}
}

func (p *ClaudeProvider) Name() string {
	return "claude/" + p.model
}

// Extract implements Provider
func (p *ClaudeProvider) Extract(ctx context.Context, doc Document) (*models.AnalysisResult, error) {
	if len(doc.Data) == 0 {
		return nil, fmt.Errorf("document %s is empty", doc.FileName)
	}

	instruction, err := jsonInstruction()
	if err != nil {
		return nil, err
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(p.maxTokens),
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{
					Data: base64.StdEncoding.EncodeToString(doc.Data),
				}),
				anthropic.NewTextBlock(userInstruction+"\n\n"+instruction),
			),
		},
	}
	if p.temperature > 0 {
		params.Temperature = anthropic.Float(float64(p.temperature))
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	startTime := time.Now()
	p.logger.Info().
		Str("file", doc.FileName).
		Int("size", len(doc.Data)).
		Str("model", p.model).
		Msg("Analyzing PDF with Claude")

	text, err := callWithRetry(timeoutCtx, p.logger, p.limiter, p.policy, p.Name(), func(ctx context.Context) (string, error) {
		resp, err := p.client.Messages.New(ctx, params)
		if err != nil {
			return "", err
		}

		var text strings.Builder
		for _, block := range resp.Content {
			if block.Type == "text" {
				text.WriteString(block.Text)
			}
		}
		if text.Len() == 0 {
			return "", ErrEmptyResponse
		}
		return text.String(), nil
	})
	if err != nil {
		p.logger.Error().Err(err).Str("file", doc.FileName).Msg("Claude extraction failed")
		return nil, fmt.Errorf("claude extraction failed: %w", err)
	}

	result, err := decodeAnalysis(text)
	if err != nil {
		p.logger.Error().Err(err).Int("response_length", len(text)).Msg("Failed to decode Claude response")
		return nil, err
	}

	p.logger.Info().
		Str("file", doc.FileName).
		Str("association", result.Association.Name).
		Int("technical_items", len(result.Technical)).
		Dur("duration", time.Since(startTime)).
		Msg("Claude extraction completed")

	return result, nil
}

// Close resets the client to its zero value
func (p *ClaudeProvider) Close() error {
	p.client = anthropic.Client{}
	return nil
}

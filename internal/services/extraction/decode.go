package extraction

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ternarybob/brfanalys/internal/models"
)

// extractJSON returns the JSON object embedded in a model reply. Replies may
// be wrapped in markdown code fences or surrounded by prose.
func extractJSON(text string) (string, error) {
	text = strings.TrimSpace(text)

	if start := strings.Index(text, "```"); start >= 0 {
		body := text[start+3:]
		if nl := strings.IndexByte(body, '\n'); nl >= 0 {
			body = body[nl+1:]
		}
		if end := strings.Index(body, "```"); end >= 0 {
			body = body[:end]
		}
		text = strings.TrimSpace(body)
	}

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return "", fmt.Errorf("%w: no JSON object in reply", ErrInvalidResponse)
	}
	return text[start : end+1], nil
}

// decodeAnalysis turns a provider reply into a validated AnalysisResult.
func decodeAnalysis(text string) (*models.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}

	raw, err := extractJSON(text)
	if err != nil {
		return nil, err
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return &result, nil
}

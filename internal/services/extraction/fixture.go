package extraction

import (
	"context"
	"fmt"
	"os"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/brfanalys/internal/models"
)

// FixtureProvider returns a stored analysis instead of calling an API.
// It makes the server and CLI usable offline and in tests.
type FixtureProvider struct {
	path   string
	logger arbor.ILogger
}

// NewFixtureProvider serves the AnalysisResult JSON at path
func NewFixtureProvider(path string, logger arbor.ILogger) (*FixtureProvider, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: llm.fixture_path is empty", ErrNotConfigured)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: fixture %s: %v", ErrNotConfigured, path, err)
	}
	return &FixtureProvider{path: path, logger: logger}, nil
}

func (p *FixtureProvider) Name() string {
	return "fixture"
}

// Extract ignores the document content and decodes the fixture file
func (p *FixtureProvider) Extract(ctx context.Context, doc Document) (*models.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", p.path, err)
	}

	p.logger.Debug().
		Str("file", doc.FileName).
		Str("fixture", p.path).
		Msg("Serving fixture analysis")

	return decodeAnalysis(string(data))
}

func (p *FixtureProvider) Close() error {
	return nil
}

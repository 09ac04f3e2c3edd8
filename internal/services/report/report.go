// Package report renders a derived rating report as markdown, JSON, YAML or
// PDF. All text is Swedish.
package report

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/brfanalys/internal/models"
	"github.com/ternarybob/brfanalys/internal/services/pdf"
	"github.com/ternarybob/brfanalys/internal/services/rating"
)

// Service produces downloadable reports
type Service struct {
	renderer *pdf.Renderer
	logger   arbor.ILogger
}

// NewService creates a report service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		renderer: pdf.NewRenderer(logger),
		logger:   logger,
	}
}

// PDF renders the report without emoji and returns the document bytes.
func (s *Service) PDF(analysis *models.AnalysisResult, report *rating.Report) ([]byte, error) {
	if analysis == nil {
		return nil, fmt.Errorf("analysis is required")
	}

	data, err := s.renderer.Render(Markdown(analysis, report, Options{Emoji: false}), Title(analysis))
	if err != nil {
		return nil, fmt.Errorf("failed to render report PDF: %w", err)
	}

	s.logger.Debug().
		Str("association", analysis.Association.Name).
		Int("pdf_size", len(data)).
		Msg("Report PDF generated")

	return data, nil
}

// Title is the document title for an analysis
func Title(analysis *models.AnalysisResult) string {
	if analysis == nil || analysis.Association.Name == "" {
		return "BRF-analys"
	}
	return "BRF-analys: " + analysis.Association.Name
}

// FileName is a download-safe file name for the PDF report
func FileName(analysis *models.AnalysisResult) string {
	name := "brf-analys"
	if analysis != nil && analysis.Association.Name != "" {
		name = slug(analysis.Association.Name)
	}
	return name + ".pdf"
}

func slug(s string) string {
	out := make([]rune, 0, len(s))
	dash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
			dash = false
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
			dash = false
		case r == 'å', r == 'ä', r == 'Å', r == 'Ä':
			out = append(out, 'a')
			dash = false
		case r == 'ö', r == 'Ö':
			out = append(out, 'o')
			dash = false
		default:
			if !dash && len(out) > 0 {
				out = append(out, '-')
				dash = true
			}
		}
	}
	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return "brf-analys"
	}
	return string(out)
}

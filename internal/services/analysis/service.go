// Package analysis runs the full pipeline for one annual report: preflight,
// extraction and rating. HTTP handlers and the CLI share it.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/brfanalys/internal/common"
	"github.com/ternarybob/brfanalys/internal/models"
	"github.com/ternarybob/brfanalys/internal/services/extraction"
	"github.com/ternarybob/brfanalys/internal/services/pdf"
	"github.com/ternarybob/brfanalys/internal/services/rating"
)

// Result is the outcome of analysing one document
type Result struct {
	RequestID string                 `json:"requestId"`
	FileName  string                 `json:"fileName,omitempty"`
	Provider  string                 `json:"provider,omitempty"`
	Metadata  *pdf.Metadata          `json:"metadata,omitempty"`
	Analysis  *models.AnalysisResult `json:"data"`
	Report    *rating.Report         `json:"report"`
	Duration  time.Duration          `json:"-"`
}

// Service coordinates preflight, extraction and rating
type Service struct {
	provider extraction.Provider
	limits   pdf.Limits
	clock    rating.Clock
	logger   arbor.ILogger
}

// NewService creates an analysis service. provider may be nil, in which case
// Analyze fails with extraction.ErrNotConfigured and Assess still works.
func NewService(provider extraction.Provider, limits pdf.Limits, clock rating.Clock, logger arbor.ILogger) *Service {
	if clock == nil {
		clock = rating.SystemClock{}
	}
	return &Service{
		provider: provider,
		limits:   limits,
		clock:    clock,
		logger:   logger,
	}
}

// ProviderName returns the configured provider name, or "none"
func (s *Service) ProviderName() string {
	if s.provider == nil {
		return "none"
	}
	return s.provider.Name()
}

// Analyze validates the PDF, extracts its data and derives the report.
func (s *Service) Analyze(ctx context.Context, fileName string, data []byte) (*Result, error) {
	requestID := common.NewRequestID()
	start := time.Now()

	s.logger.Info().
		Str("request_id", requestID).
		Str("file", fileName).
		Int("size", len(data)).
		Msg("Analyzing PDF")

	meta, err := pdf.Inspect(data, s.limits)
	if err != nil {
		s.logger.Warn().Str("request_id", requestID).Err(err).Msg("PDF preflight failed")
		return nil, &Error{RequestID: requestID, Err: err}
	}

	if s.provider == nil {
		return nil, &Error{RequestID: requestID, Err: extraction.ErrNotConfigured}
	}

	extracted, err := s.provider.Extract(ctx, extraction.Document{FileName: fileName, Data: data})
	if err != nil {
		s.logger.Error().Str("request_id", requestID).Err(err).Msg("Extraction failed")
		return nil, &Error{RequestID: requestID, Err: err}
	}

	report := rating.Evaluate(extracted, s.clock)
	duration := time.Since(start)

	s.logger.Info().
		Str("request_id", requestID).
		Str("association", extracted.Association.Name).
		Int("pages", meta.PageCount).
		Int("total_score", report.Scores.Total).
		Str("assessment", string(report.Assessment.Assessment)).
		Dur("duration", duration).
		Msg("Analysis completed")

	if report.ValidationNote != "" {
		s.logger.Warn().
			Str("request_id", requestID).
			Str("note", report.ValidationNote).
			Msg("Provider assessment replaced")
	}

	return &Result{
		RequestID: requestID,
		FileName:  fileName,
		Provider:  s.provider.Name(),
		Metadata:  meta,
		Analysis:  extracted,
		Report:    report,
		Duration:  duration,
	}, nil
}

// Assess derives the report for an existing extraction without calling the
// provider.
func (s *Service) Assess(analysis *models.AnalysisResult) (*Result, error) {
	requestID := common.NewRequestID()
	if err := analysis.Validate(); err != nil {
		return nil, &Error{RequestID: requestID, Err: fmt.Errorf("%w: %v", ErrInvalidInput, err)}
	}

	report := rating.Evaluate(analysis, s.clock)

	s.logger.Debug().
		Str("request_id", requestID).
		Str("association", analysis.Association.Name).
		Int("total_score", report.Scores.Total).
		Msg("Assessment completed")

	return &Result{
		RequestID: requestID,
		Analysis:  analysis,
		Report:    report,
	}, nil
}

// ErrInvalidInput is returned by Assess for an extraction that fails validation
var ErrInvalidInput = errors.New("invalid analysis input")

// Error carries the request ID of a failed analysis
type Error struct {
	RequestID string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("analysis %s: %v", e.RequestID, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// RequestIDOf returns the request ID carried by err, if any
func RequestIDOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.RequestID
	}
	return ""
}

package app

import (
	"context"
	"errors"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/brfanalys/internal/common"
	"github.com/ternarybob/brfanalys/internal/handlers"
	"github.com/ternarybob/brfanalys/internal/services/analysis"
	"github.com/ternarybob/brfanalys/internal/services/extraction"
	"github.com/ternarybob/brfanalys/internal/services/pdf"
	"github.com/ternarybob/brfanalys/internal/services/rating"
	"github.com/ternarybob/brfanalys/internal/services/report"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Extraction provider; nil when no API key is configured
	Provider extraction.Provider

	AnalysisService *analysis.Service
	ReportService   *report.Service

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	AnalysisHandler *handlers.AnalysisHandler
}

// New initializes the application with all dependencies. A missing provider
// key is not fatal: the server still answers /api/assess and reports the
// problem on /api/analyze.
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	provider, err := extraction.NewProvider(context.Background(), cfg, logger)
	switch {
	case err == nil:
		app.Provider = provider
		logger.Info().Str("provider", provider.Name()).Msg("Extraction provider ready")
	case errors.Is(err, extraction.ErrNotConfigured):
		logger.Warn().Err(err).Msg("Extraction provider not configured - /api/analyze disabled")
	default:
		return nil, err
	}

	app.initServices()
	app.initHandlers()

	logger.Debug().Msg("Application initialized")
	return app, nil
}

func (a *App) initServices() {
	limits := pdf.Limits{
		MaxBytes: a.Config.MaxPDFBytes(),
		MaxPages: a.Config.PDF.MaxPages,
	}
	a.AnalysisService = analysis.NewService(a.Provider, limits, rating.SystemClock{}, a.Logger)
	a.ReportService = report.NewService(a.Logger)
}

func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.Logger, a.AnalysisService.ProviderName)
	a.AnalysisHandler = handlers.NewAnalysisHandler(
		a.AnalysisService,
		a.ReportService,
		a.MaxRequestBytes(),
		a.ExtractionTimeout(),
		a.Logger,
	)
}

// MaxRequestBytes bounds API request bodies: base64 inflates the PDF by a
// third, plus room for the JSON envelope.
func (a *App) MaxRequestBytes() int64 {
	return a.Config.MaxPDFBytes()*4/3 + 64<<10
}

// ExtractionTimeout is the per-document provider budget
func (a *App) ExtractionTimeout() time.Duration {
	return common.ParseDuration(a.Config.LLM.Timeout, 3*time.Minute)
}

// Close releases provider resources
func (a *App) Close() error {
	if a.Provider != nil {
		if err := a.Provider.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close extraction provider")
			return err
		}
	}
	a.Logger.Info().Msg("Application closed")
	return nil
}

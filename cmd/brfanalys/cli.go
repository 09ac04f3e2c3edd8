package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/brfanalys/internal/app"
	"github.com/ternarybob/brfanalys/internal/common"
	"github.com/ternarybob/brfanalys/internal/models"
	"github.com/ternarybob/brfanalys/internal/services/analysis"
	"github.com/ternarybob/brfanalys/internal/services/report"
)

// runCLI handles -file and -input and returns the process exit code
func runCLI(config *common.Config, logger arbor.ILogger) int {
	format, err := report.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	application, err := app.New(config, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	var result *analysis.Result
	if *pdfFile != "" {
		result, err = analyzeFile(application, *pdfFile)
	} else {
		result, err = assessFile(application, *inputFile)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n(%v)\n", analysis.UserMessage(err), err)
		return 1
	}

	doc := report.Document{Analysis: result.Analysis, Report: result.Report}
	if err := report.Encode(os.Stdout, format, doc); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
		return 1
	}

	if *pdfOut != "" {
		data, err := application.ReportService.PDF(result.Analysis, result.Report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render PDF: %v\n", err)
			return 1
		}
		if err := os.WriteFile(*pdfOut, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", *pdfOut, err)
			return 1
		}
		logger.Info().Str("path", *pdfOut).Int("size", len(data)).Msg("PDF report written")
	}

	return 0
}

func analyzeFile(application *app.App, path string) (*analysis.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), application.ExtractionTimeout())
	defer cancel()

	return application.AnalysisService.Analyze(ctx, filepath.Base(path), data)
}

func assessFile(application *app.App, path string) (*analysis.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var input models.AnalysisResult
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return application.AnalysisService.Assess(&input)
}

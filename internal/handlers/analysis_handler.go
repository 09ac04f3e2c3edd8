package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/brfanalys/internal/models"
	"github.com/ternarybob/brfanalys/internal/services/analysis"
	"github.com/ternarybob/brfanalys/internal/services/pdf"
	"github.com/ternarybob/brfanalys/internal/services/report"
)

// AnalyzeRequest is the body of POST /api/analyze
type AnalyzeRequest struct {
	PDFBase64 string `json:"pdfBase64"`
	FileName  string `json:"fileName"`
}

// AnalysisResponse is the body of a successful analyze or assess call
type AnalysisResponse struct {
	Success bool `json:"success"`
	*analysis.Result
}

// AnalysisHandler serves the analysis endpoints
type AnalysisHandler struct {
	service *analysis.Service
	reports *report.Service
	maxBody int64
	timeout time.Duration
	logger  arbor.ILogger
}

// NewAnalysisHandler creates the handler. maxBody bounds request bodies and
// timeout bounds a single extraction.
func NewAnalysisHandler(service *analysis.Service, reports *report.Service, maxBody int64, timeout time.Duration, logger arbor.ILogger) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
		reports: reports,
		maxBody: maxBody,
		timeout: timeout,
		logger:  logger,
	}
}

// AnalyzeHandler extracts and rates an uploaded annual report.
// POST /api/analyze {pdfBase64, fileName}
func (h *AnalysisHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req AnalyzeRequest
	if err := DecodeJSON(w, r, &req, h.maxBody); err != nil {
		writeDecodeError(w, err)
		return
	}
	if req.PDFBase64 == "" {
		WriteError(w, http.StatusBadRequest, "pdfBase64 saknas.")
		return
	}
	if req.FileName == "" {
		req.FileName = "arsredovisning.pdf"
	}

	data, err := pdf.DecodeBase64(req.PDFBase64)
	if err != nil {
		h.logger.Warn().Err(err).Str("file", req.FileName).Msg("Invalid base64 payload")
		WriteError(w, http.StatusBadRequest, "Ogiltig PDF-data.")
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.service.Analyze(ctx, req.FileName, data)
	if err != nil {
		h.writeAnalysisError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, AnalysisResponse{Success: true, Result: result})
}

// AssessHandler rates an existing extraction without calling the provider.
// POST /api/assess {AnalysisResult}
func (h *AnalysisHandler) AssessHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	result, ok := h.assess(w, r)
	if !ok {
		return
	}

	WriteJSON(w, http.StatusOK, AnalysisResponse{Success: true, Result: result})
}

// AssessPDFHandler rates an extraction and returns the report as a PDF.
// POST /api/assess/pdf {AnalysisResult}
func (h *AnalysisHandler) AssessPDFHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	result, ok := h.assess(w, r)
	if !ok {
		return
	}

	data, err := h.reports.PDF(result.Analysis, result.Report)
	if err != nil {
		h.logger.Error().Err(err).Str("request_id", result.RequestID).Msg("Failed to render report PDF")
		WriteError(w, http.StatusInternalServerError, "Kunde inte skapa PDF-rapporten.")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(result.Analysis)))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Request-ID", result.RequestID)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *AnalysisHandler) assess(w http.ResponseWriter, r *http.Request) (*analysis.Result, bool) {
	var input models.AnalysisResult
	if err := DecodeJSON(w, r, &input, h.maxBody); err != nil {
		writeDecodeError(w, err)
		return nil, false
	}

	result, err := h.service.Assess(&input)
	if err != nil {
		h.writeAnalysisError(w, err)
		return nil, false
	}
	return result, true
}

func (h *AnalysisHandler) writeAnalysisError(w http.ResponseWriter, err error) {
	status := analysis.StatusCode(err)
	requestID := analysis.RequestIDOf(err)

	event := h.logger.Warn()
	if status >= http.StatusInternalServerError {
		event = h.logger.Error()
	}
	event.Str("request_id", requestID).Int("status", status).Err(err).Msg("Analysis request failed")

	WriteJSON(w, status, ErrorResponse{
		Success:   false,
		Error:     analysis.UserMessage(err),
		RequestID: requestID,
	})
}

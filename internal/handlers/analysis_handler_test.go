package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/brfanalys/internal/models"
	"github.com/ternarybob/brfanalys/internal/services/analysis"
	"github.com/ternarybob/brfanalys/internal/services/extraction"
	"github.com/ternarybob/brfanalys/internal/services/pdf"
	"github.com/ternarybob/brfanalys/internal/services/rating"
	"github.com/ternarybob/brfanalys/internal/services/report"
)

// mockProvider implements extraction.Provider for testing
type mockProvider struct {
	extractFunc func(ctx context.Context, doc extraction.Document) (*models.AnalysisResult, error)
}

func (m *mockProvider) Extract(ctx context.Context, doc extraction.Document) (*models.AnalysisResult, error) {
	if m.extractFunc != nil {
		return m.extractFunc(ctx, doc)
	}
	return nil, extraction.ErrEmptyResponse
}

func (m *mockProvider) Name() string { return "mock" }
func (m *mockProvider) Close() error { return nil }

func testAnalysis() *models.AnalysisResult {
	return &models.AnalysisResult{
		Association: models.Association{Name: "BRF Solgläntan", BuildYear: models.Int(1968)},
		Financial: models.Financial{
			LoanPerSqm:        models.Float(6200),
			SavingsPerSqmYear: models.Float(120),
			Solidarity:        models.Float(22),
		},
		Technical: []models.TechnicalItem{
			{Category: models.CategoryRisers, Name: "Stammar", LastMaintained: models.Int(1968)},
		},
		Summary: "Ansträngd ekonomi.",
	}
}

func newTestHandler(t *testing.T, provider extraction.Provider, maxBody int64) *AnalysisHandler {
	t.Helper()
	logger := arbor.NewLogger()
	service := analysis.NewService(provider, pdf.Limits{MaxBytes: 1 << 20}, rating.FixedYear(2026), logger)
	return NewAnalysisHandler(service, report.NewService(logger), maxBody, time.Minute, logger)
}

func testPDFBase64(t *testing.T) string {
	t.Helper()
	data, err := pdf.NewRenderer(arbor.NewLogger()).Render("# Årsredovisning 2024", "Årsredovisning")
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(data)
}

func postJSON(handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestAnalyzeHandler_Success(t *testing.T) {
	var gotFile string
	provider := &mockProvider{extractFunc: func(ctx context.Context, doc extraction.Document) (*models.AnalysisResult, error) {
		gotFile = doc.FileName
		return testAnalysis(), nil
	}}
	h := newTestHandler(t, provider, 0)

	w := postJSON(h.AnalyzeHandler, "/api/analyze", AnalyzeRequest{
		PDFBase64: "data:application/pdf;base64," + testPDFBase64(t),
		FileName:  "solglantan-2024.pdf",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "solglantan-2024.pdf", gotFile)

	var resp struct {
		Success   bool                  `json:"success"`
		RequestID string                `json:"requestId"`
		Provider  string                `json:"provider"`
		Metadata  pdf.Metadata          `json:"metadata"`
		Data      models.AnalysisResult `json:"data"`
		Report    struct {
			Scores rating.Scores `json:"scores"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, strings.HasPrefix(resp.RequestID, "ana_"))
	assert.Equal(t, "mock", resp.Provider)
	assert.Equal(t, 1, resp.Metadata.PageCount)
	assert.Equal(t, "BRF Solgläntan", resp.Data.Association.Name)
	// technical 70-8, financial 70-10-8-8, feeRisk 60-15-10-5
	assert.Equal(t, rating.Scores{Technical: 62, Financial: 44, FeeRisk: 30, Total: 45}, resp.Report.Scores)
}

func TestAnalyzeHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		provider   extraction.Provider
		body       interface{}
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing pdf",
			provider:   &mockProvider{},
			body:       AnalyzeRequest{FileName: "a.pdf"},
			wantStatus: http.StatusBadRequest,
			wantError:  "pdfBase64 saknas.",
		},
		{
			name:       "bad base64",
			provider:   &mockProvider{},
			body:       AnalyzeRequest{PDFBase64: "!!!"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Ogiltig PDF-data.",
		},
		{
			name:       "not a pdf",
			provider:   &mockProvider{},
			body:       AnalyzeRequest{PDFBase64: base64.StdEncoding.EncodeToString([]byte("hello"))},
			wantStatus: http.StatusBadRequest,
			wantError:  "Filen är inte en giltig PDF.",
		},
		{
			name:       "malformed json",
			provider:   &mockProvider{},
			body:       "{not json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "rate limited",
			provider: &mockProvider{extractFunc: func(ctx context.Context, doc extraction.Document) (*models.AnalysisResult, error) {
				return nil, errors.Join(extraction.ErrRateLimited, errors.New("429"))
			}},
			wantStatus: http.StatusTooManyRequests,
			wantError:  "För många förfrågningar, försök igen om en stund.",
		},
		{
			name: "credits exhausted",
			provider: &mockProvider{extractFunc: func(ctx context.Context, doc extraction.Document) (*models.AnalysisResult, error) {
				return nil, extraction.ErrQuotaExhausted
			}},
			wantStatus: http.StatusPaymentRequired,
			wantError:  "AI-krediter slut, vänligen fyll på.",
		},
		{
			name:       "no provider",
			provider:   nil,
			wantStatus: http.StatusServiceUnavailable,
			wantError:  "AI-analysen är inte konfigurerad.",
		},
	}

	pdfBody := AnalyzeRequest{PDFBase64: testPDFBase64(t), FileName: "a.pdf"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tt.body
			if body == nil {
				body = pdfBody
			}
			w := postJSON(newTestHandler(t, tt.provider, 0).AnalyzeHandler, "/api/analyze", body)
			assert.Equal(t, tt.wantStatus, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, resp.Error)
			}
		})
	}
}

func TestAnalyzeHandler_BodyLimit(t *testing.T) {
	h := newTestHandler(t, &mockProvider{}, 32)
	w := postJSON(h.AnalyzeHandler, "/api/analyze", AnalyzeRequest{PDFBase64: strings.Repeat("A", 200)})
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestAnalyzeHandler_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(t, &mockProvider{}, 0)
	req := httptest.NewRequest(http.MethodGet, "/api/analyze", nil)
	w := httptest.NewRecorder()
	h.AnalyzeHandler(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
}

func TestAssessHandler(t *testing.T) {
	h := newTestHandler(t, nil, 0)

	t.Run("valid analysis", func(t *testing.T) {
		analysis := testAnalysis()
		analysis.OverallAssessment = "strained"
		analysis.AssessmentReason = "Hög belåning."

		w := postJSON(h.AssessHandler, "/api/assess", analysis)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Success bool `json:"success"`
			Report  struct {
				Assessment rating.Resolution `json:"assessment"`
			} `json:"report"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, models.AssessmentStrained, resp.Report.Assessment.Assessment)
		assert.Equal(t, rating.AssessmentFromProvider, resp.Report.Assessment.Source)
	})

	t.Run("missing required fields", func(t *testing.T) {
		w := postJSON(h.AssessHandler, "/api/assess", models.AnalysisResult{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAssessPDFHandler(t *testing.T) {
	h := newTestHandler(t, nil, 0)

	w := postJSON(h.AssessPDFHandler, "/api/assess/pdf", testAnalysis())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "brf-solglantan.pdf")
	assert.True(t, strings.HasPrefix(w.Header().Get("X-Request-ID"), "ana_"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestAPIHandler(t *testing.T) {
	h := NewAPIHandler(arbor.NewLogger(), func() string { return "mock" })

	w := httptest.NewRecorder()
	h.HealthHandler(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","provider":"mock"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.VersionHandler(w, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version"`)

	w = httptest.NewRecorder()
	h.NotFoundHandler(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"/api/nope"`)
}

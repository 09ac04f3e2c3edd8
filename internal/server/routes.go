package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Analysis
	mux.HandleFunc("/api/analyze", s.app.AnalysisHandler.AnalyzeHandler)      // POST {pdfBase64, fileName}
	mux.HandleFunc("/api/assess", s.app.AnalysisHandler.AssessHandler)        // POST AnalysisResult -> report JSON
	mux.HandleFunc("/api/assess/pdf", s.app.AnalysisHandler.AssessPDFHandler) // POST AnalysisResult -> PDF

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)
	mux.HandleFunc("/", s.app.APIHandler.NotFoundHandler)

	return mux
}

package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/brfanalys/internal/common"
)

type APIHandler struct {
	logger   arbor.ILogger
	provider func() string
}

// NewAPIHandler creates the system endpoints. provider reports the active
// extraction provider for the health check.
func NewAPIHandler(logger arbor.ILogger, provider func() string) *APIHandler {
	if logger == nil {
		logger = common.GetLogger()
	}
	return &APIHandler{
		logger:   logger,
		provider: provider,
	}
}

// VersionHandler returns version information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, common.GetVersionInfo())
}

// HealthHandler returns health check status
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	provider := "none"
	if h.provider != nil {
		provider = h.provider()
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"provider": provider,
	})
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"success": false,
		"error":   "Not Found",
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}

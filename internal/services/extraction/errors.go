package extraction

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
)

var (
	// ErrRateLimited means the provider throttled the request (HTTP 429)
	ErrRateLimited = errors.New("extraction provider rate limited")
	// ErrQuotaExhausted means the account has no credits left (HTTP 402)
	ErrQuotaExhausted = errors.New("extraction provider credits exhausted")
	// ErrEmptyResponse means the provider answered without any content
	ErrEmptyResponse = errors.New("empty response from extraction provider")
	// ErrInvalidResponse means the reply could not be decoded into an analysis
	ErrInvalidResponse = errors.New("invalid response from extraction provider")
	// ErrNotConfigured means no API key was found for the selected provider
	ErrNotConfigured = errors.New("extraction provider not configured")
)

// paymentStatusRegex matches a standalone 402 status, not digits inside a
// retry delay such as "14.402s".
var paymentStatusRegex = regexp.MustCompile(`(?:^|[^\d.])402(?:[^\d.]|$)`)

// isThrottle reports whether errStr carries an explicit rate-limit status.
// Gemini's 429 text mentions "quota" and "billing" but is still retryable.
func isThrottle(errStr string) bool {
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "RESOURCE_EXHAUSTED") ||
		strings.Contains(errStr, "rate_limit_error")
}

// IsQuotaError reports whether err signals exhausted credits rather than a
// temporary throttle. Quota errors are never retried.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrQuotaExhausted) {
		return true
	}
	if errors.Is(err, ErrRateLimited) || isThrottle(err.Error()) {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return paymentStatusRegex.MatchString(errStr) ||
		strings.Contains(errStr, "payment required") ||
		strings.Contains(errStr, "credit balance") ||
		strings.Contains(errStr, "insufficient_quota") ||
		strings.Contains(errStr, "billing")
}

// classify tags a raw provider error with the matching sentinel so callers
// can use errors.Is without knowing which SDK produced it.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case IsQuotaError(err):
		return errors.Join(ErrQuotaExhausted, err)
	case IsRateLimitError(err):
		return errors.Join(ErrRateLimited, err)
	default:
		return err
	}
}

// StatusCode maps an extraction error to the HTTP status returned to clients.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrQuotaExhausted):
		return http.StatusPaymentRequired
	case errors.Is(err, ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, ErrEmptyResponse), errors.Is(err, ErrInvalidResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the Swedish message shown to the end user for err.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRateLimited):
		return "För många förfrågningar, försök igen om en stund."
	case errors.Is(err, ErrQuotaExhausted):
		return "AI-krediter slut, vänligen fyll på."
	case errors.Is(err, ErrNotConfigured):
		return "AI-analysen är inte konfigurerad."
	case errors.Is(err, context.DeadlineExceeded):
		return "Analysen tog för lång tid, försök igen."
	case errors.Is(err, ErrEmptyResponse), errors.Is(err, ErrInvalidResponse):
		return "Kunde inte tolka årsredovisningen, försök igen."
	default:
		return "Okänt fel vid analys av årsredovisningen."
	}
}

package analysis

import (
	"errors"
	"net/http"

	"github.com/ternarybob/brfanalys/internal/services/extraction"
	"github.com/ternarybob/brfanalys/internal/services/pdf"
)

// StatusCode maps a pipeline error to an HTTP status
func StatusCode(err error) int {
	switch {
	case errors.Is(err, pdf.ErrTooLarge), errors.Is(err, pdf.ErrTooManyPages):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, pdf.ErrNotPDF), errors.Is(err, pdf.ErrEncrypted), errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return extraction.StatusCode(err)
	}
}

// UserMessage maps a pipeline error to the Swedish message shown to users
func UserMessage(err error) string {
	switch {
	case errors.Is(err, pdf.ErrTooLarge):
		return "Filen är för stor."
	case errors.Is(err, pdf.ErrTooManyPages):
		return "Dokumentet har för många sidor."
	case errors.Is(err, pdf.ErrNotPDF):
		return "Filen är inte en giltig PDF."
	case errors.Is(err, pdf.ErrEncrypted):
		return "PDF-filen är lösenordsskyddad."
	case errors.Is(err, ErrInvalidInput):
		return "Analysdata saknar obligatoriska fält (föreningens namn och sammanfattning)."
	default:
		return extraction.UserMessage(err)
	}
}

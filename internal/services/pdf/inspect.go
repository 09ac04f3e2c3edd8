// -----------------------------------------------------------------------
// PDF preflight - checks an uploaded annual report before extraction
// Uses pdfcpu for Go-native PDF parsing
// -----------------------------------------------------------------------

package pdf

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var (
	// ErrNotPDF is returned when the payload lacks the %PDF header or cannot be parsed
	ErrNotPDF = errors.New("not a PDF document")
	// ErrTooLarge is returned when the payload exceeds the configured size limit
	ErrTooLarge = errors.New("PDF exceeds size limit")
	// ErrTooManyPages is returned when the page limit is configured and exceeded
	ErrTooManyPages = errors.New("PDF exceeds page limit")
	// ErrEncrypted is returned for password protected documents
	ErrEncrypted = errors.New("PDF is encrypted")
)

var pdfMagic = []byte("%PDF-")

// Metadata describes an inspected document
type Metadata struct {
	PageCount   int   `json:"pageCount"`
	FileSize    int64 `json:"fileSize"`
	IsEncrypted bool  `json:"isEncrypted"`
}

// Limits bounds what Inspect accepts. Zero values disable a check.
type Limits struct {
	MaxBytes int64
	MaxPages int
}

// Inspect validates data as a readable, unencrypted PDF within limits and
// returns its metadata.
func Inspect(data []byte, limits Limits) (*Metadata, error) {
	if limits.MaxBytes > 0 && int64(len(data)) > limits.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes > %d", ErrTooLarge, len(data), limits.MaxBytes)
	}
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), pdfMagic) {
		return nil, ErrNotPDF
	}

	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}

	// ReadContext leaves PageCount unset; validation walks the page tree.
	// Reports that fail strict validation still count if the page root is
	// readable.
	if pdfCtx.Encrypt == nil {
		if err := api.ValidateContext(pdfCtx); err != nil {
			if countErr := pdfCtx.EnsurePageCount(); countErr != nil {
				return nil, fmt.Errorf("%w: %v", ErrNotPDF, err)
			}
		}
	}

	metadata := &Metadata{
		PageCount:   pdfCtx.PageCount,
		FileSize:    int64(len(data)),
		IsEncrypted: pdfCtx.Encrypt != nil,
	}

	if metadata.IsEncrypted {
		return metadata, ErrEncrypted
	}
	if limits.MaxPages > 0 && metadata.PageCount > limits.MaxPages {
		return metadata, fmt.Errorf("%w: %d pages > %d", ErrTooManyPages, metadata.PageCount, limits.MaxPages)
	}

	return metadata, nil
}

// DecodeBase64 decodes an uploaded document. Both raw base64 and data URLs
// ("data:application/pdf;base64,...") are accepted.
func DecodeBase64(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if strings.HasPrefix(encoded, "data:") {
		idx := strings.Index(encoded, ",")
		if idx == -1 {
			return nil, fmt.Errorf("malformed data URL")
		}
		encoded = encoded[idx+1:]
	}
	if encoded == "" {
		return nil, fmt.Errorf("empty document")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// Some clients strip padding
		if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "=")); rawErr == nil {
			return raw, nil
		}
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	return data, nil
}

package common

import (
	"github.com/google/uuid"
)

// NewRequestID generates a unique analysis request ID with the "ana_" prefix
// Format: ana_<uuid>
func NewRequestID() string {
	return "ana_" + uuid.New().String()
}

package utils

import (
	"github.com/google/uuid"
)

// NewID generates the identifier used for QR codes and creators.
func NewID() string {
	return uuid.NewString()
}

// GenerateAPIKey generates a UUID string to be used as an API key.
func GenerateAPIKey() string {
	return uuid.NewString()
}

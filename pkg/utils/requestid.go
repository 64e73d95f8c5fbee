package utils

import "github.com/google/uuid"

// NewRequestID returns a fresh trace id for one HTTP request.
func NewRequestID() string {
	return uuid.NewString()
}

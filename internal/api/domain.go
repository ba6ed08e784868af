package api

import "errors"

// Sentinel errors raised by repositories and passed through services
// unchanged. Only the HTTP layer maps them to transport status codes.
var (
	// ErrNotFound signals that the requested row does not exist.
	ErrNotFound = errors.New("requested item not found")
	// ErrConflict signals a write rejected by a store-level uniqueness constraint.
	ErrConflict = errors.New("item already exists or conflict")
)

// Response represents a generic API response for error messages.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

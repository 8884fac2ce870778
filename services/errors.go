package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for the outcomes callers are expected to branch on.
// Anything else bubbling out of a service is a store failure and should be
// surfaced generically.
var (
	// ErrNotFound indicates the requested branch id does not exist
	ErrNotFound = errors.New("branch not found")
	// ErrUnauthorized indicates the supplied AuthContext does not permit the operation
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNoMatch indicates the geocoder returned zero candidates for the address
	ErrNoMatch = errors.New("no match for address")
	// ErrUpstreamUnavailable indicates the geocoding lookup itself failed
	ErrUpstreamUnavailable = errors.New("geocoding service unavailable")
)

// ValidationError reports missing or malformed required fields. The operation
// that produced it was aborted before any write.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-field validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// IsValidationError extracts a *ValidationError from an error chain
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

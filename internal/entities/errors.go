package entities

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound indicates the update or delete target does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConstraintViolation indicates a foreign key breach, e.g. an annotation
// whose item does not exist.
var ErrConstraintViolation = errors.New("constraint violation")

// ErrFetchFailed indicates the remote catalog could not be fetched or parsed.
// The underlying cause is kept in the error chain.
var ErrFetchFailed = errors.New("catalog fetch failed")

// ErrValidationFailed indicates required text was empty after trimming.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError carries per-field messages for a rejected input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidationFailed.Error()
	}

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s %s", name, e.Fields[name]))
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

package document

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownPath = errors.New("document: path is not declared by the schema")
	ErrCast        = errors.New("document: value does not match field kind")
	ErrNotRef      = errors.New("document: path is not a ref field")
	ErrValidation  = errors.New("document: validation failed")
	ErrNilDocument = errors.New("document: nil document")

	// ErrNotFound is wrapped by storage backends when no document has the
	// requested id.
	ErrNotFound = errors.New("document: not found")

	// ErrDuplicateID is wrapped by storage backends when an inserted
	// document's id is taken.
	ErrDuplicateID = errors.New("document: id already exists")
)

// FieldError describes one failed constraint.
type FieldError struct {
	Path    string
	Message string
}

// ValidationErrors collects every failed constraint of a document.
// It matches ErrValidation with errors.Is.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(ve))
	for _, e := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Path, e.Message))
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (ve ValidationErrors) Unwrap() error {
	return ErrValidation
}

// Has reports whether path failed validation.
func (ve ValidationErrors) Has(path string) bool {
	for _, e := range ve {
		if e.Path == path {
			return true
		}
	}
	return false
}

// Paths returns the failed paths in report order.
func (ve ValidationErrors) Paths() []string {
	out := make([]string, 0, len(ve))
	for _, e := range ve {
		out = append(out, e.Path)
	}
	return out
}

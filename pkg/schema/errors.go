package schema

import "errors"

var (
	ErrEmptyPath         = errors.New("schema: field path is empty")
	ErrDuplicatePath     = errors.New("schema: duplicate field path")
	ErrPathConflict      = errors.New("schema: field path conflicts with another field")
	ErrUnknownKind       = errors.New("schema: unknown field kind")
	ErrMissingSchema     = errors.New("schema: nested field has no child schema")
	ErrInvalidDefinition = errors.New("schema: invalid schema definition")
)

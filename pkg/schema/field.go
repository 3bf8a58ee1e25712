package schema

import (
	"fmt"

	"github.com/platdesign/i18ngoose/pkg/docpath"
)

// Type tags the structural shape of a field.
type Type uint8

const (
	// TypeScalar is a leaf holding a single value of some Kind.
	TypeScalar Type = iota
	// TypeObject is a single embedded sub-document governed by a child schema.
	TypeObject
	// TypeArray is an ordered list of sub-documents governed by a child schema.
	TypeArray
)

func (t Type) String() string {
	switch t {
	case TypeScalar:
		return "scalar"
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Kind is the storage kind of a scalar field.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindDate    Kind = "date"
	KindMixed   Kind = "mixed"
	// KindRef holds the id of a related document that may be populated.
	KindRef Kind = "ref"
)

// ParseKind maps a declaration type name onto a Kind. Names are the lower
// case kind names plus a few common aliases.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "string", "String", "text":
		return KindString, nil
	case "number", "Number", "int", "float":
		return KindNumber, nil
	case "boolean", "Boolean", "bool":
		return KindBoolean, nil
	case "date", "Date", "time":
		return KindDate, nil
	case "mixed", "Mixed", "any":
		return KindMixed, nil
	case "ref", "ObjectId", "objectid":
		return KindRef, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Field is a single field declaration owned by a schema. Path is relative to
// the owning schema's root.
type Field struct {
	Path    docpath.Path
	Type    Type
	Kind    Kind
	Options Options
	// Schema governs sub-documents of TypeObject and TypeArray fields.
	Schema *Schema
	// Lang is non-empty on the per-language leaves that replaced a translatable field.
	Lang string
}

// Scalar declares a leaf field.
func Scalar(path string, kind Kind, opts Options) *Field {
	return &Field{Path: docpath.Parse(path), Type: TypeScalar, Kind: kind, Options: opts}
}

// Object declares an embedded sub-document field.
func Object(path string, child *Schema, opts Options) *Field {
	return &Field{Path: docpath.Parse(path), Type: TypeObject, Schema: child, Options: opts}
}

// Array declares an array of sub-documents.
func Array(path string, child *Schema, opts Options) *Field {
	return &Field{Path: docpath.Parse(path), Type: TypeArray, Schema: child, Options: opts}
}

// Name returns the dotted form of the field path.
func (f *Field) Name() string {
	return f.Path.String()
}

// Nested reports whether the field owns a child schema.
func (f *Field) Nested() bool {
	return f.Type == TypeObject || f.Type == TypeArray
}

func (f *Field) Required() bool {
	return f.Options.Bool(OptionRequired)
}

// Default returns the declared default value, if any.
func (f *Field) Default() (any, bool) {
	return f.Options.Get(OptionDefault)
}

// Clone copies the field. Options and path are copied; the child schema is shared.
func (f *Field) Clone() *Field {
	c := *f
	c.Path = docpath.Of(f.Path...)
	c.Options = f.Options.Clone()
	return &c
}

func (f *Field) validate() error {
	if f.Path.IsZero() {
		return ErrEmptyPath
	}
	switch f.Type {
	case TypeScalar:
		switch f.Kind {
		case KindString, KindNumber, KindBoolean, KindDate, KindMixed, KindRef:
		default:
			return fmt.Errorf("%w: %q at %s", ErrUnknownKind, f.Kind, f.Name())
		}
	case TypeObject, TypeArray:
		if f.Schema == nil {
			return fmt.Errorf("%w: %s", ErrMissingSchema, f.Name())
		}
	default:
		return fmt.Errorf("%w: %s has type %s", ErrInvalidDefinition, f.Name(), f.Type)
	}
	return nil
}

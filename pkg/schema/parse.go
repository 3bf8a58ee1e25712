package schema

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/platdesign/i18ngoose/pkg/docpath"
)

const (
	keyType   = "type"
	keySchema = "schema"
	typeObj   = "object"
)

// Parse builds a schema from a YAML or JSON declaration.
//
//	title:
//	  type: string
//	  i18n: true
//	sub:
//	  test: { type: string, i18n: true }
//	items:
//	  - name: { type: string, required: true }
//
// A mapping with a scalar "type" key declares a leaf and its remaining keys
// become the field options. A mapping without "type" is a group whose leaves
// are flattened into dotted paths ("sub.test"). A one-element sequence of a
// mapping declares an array of sub-documents. "type: object" together with
// "schema" declares an embedded sub-document. A bare scalar value is a
// shorthand for a leaf of that kind.
//
// The node tree is walked directly so declaration order is preserved.
func Parse(data []byte) (*Schema, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Join(ErrInvalidDefinition, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDefinition)
	}
	return parseSchema(root.Content[0])
}

// ParseFile reads and parses a declaration file.
func ParseFile(name string) (*Schema, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", name, err)
	}
	return Parse(data)
}

func parseSchema(n *yaml.Node) (*Schema, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: expected a mapping", ErrInvalidDefinition, n.Line)
	}
	var fields []*Field
	if err := parseMapping(n, nil, &fields); err != nil {
		return nil, err
	}
	return New(fields...)
}

func parseMapping(n *yaml.Node, prefix docpath.Path, out *[]*Field) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		path := prefix.Child(docpath.Parse(key.Value)...)

		switch val.Kind {
		case yaml.ScalarNode:
			kind, err := ParseKind(val.Value)
			if err != nil {
				return fmt.Errorf("line %d: %w", val.Line, err)
			}
			*out = append(*out, &Field{Path: path, Type: TypeScalar, Kind: kind, Options: Options{}})

		case yaml.SequenceNode:
			f, err := parseArray(path, val, Options{})
			if err != nil {
				return err
			}
			*out = append(*out, f)

		case yaml.MappingNode:
			typ := lookup(val, keyType)
			if typ == nil {
				if err := parseMapping(val, path, out); err != nil {
					return err
				}
				continue
			}
			f, err := parseDeclaration(path, val, typ)
			if err != nil {
				return err
			}
			*out = append(*out, f)

		default:
			return fmt.Errorf("%w: line %d: unsupported node for %s", ErrInvalidDefinition, val.Line, path)
		}
	}
	return nil
}

func parseDeclaration(path docpath.Path, n, typ *yaml.Node) (*Field, error) {
	opts, err := parseOptions(n)
	if err != nil {
		return nil, err
	}

	switch typ.Kind {
	case yaml.SequenceNode:
		return parseArray(path, typ, opts)
	case yaml.ScalarNode:
	default:
		return nil, fmt.Errorf("%w: line %d: type of %s must be a name or a list", ErrInvalidDefinition, typ.Line, path)
	}

	if typ.Value == typeObj {
		sn := lookup(n, keySchema)
		if sn == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingSchema, path)
		}
		child, err := parseSchema(sn)
		if err != nil {
			return nil, err
		}
		return &Field{Path: path, Type: TypeObject, Schema: child, Options: opts}, nil
	}

	kind, err := ParseKind(typ.Value)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", typ.Line, err)
	}
	return &Field{Path: path, Type: TypeScalar, Kind: kind, Options: opts}, nil
}

func parseArray(path docpath.Path, n *yaml.Node, opts Options) (*Field, error) {
	if len(n.Content) != 1 || n.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: %s must list exactly one sub-document mapping", ErrInvalidDefinition, n.Line, path)
	}
	child, err := parseSchema(n.Content[0])
	if err != nil {
		return nil, err
	}
	return &Field{Path: path, Type: TypeArray, Schema: child, Options: opts}, nil
}

func parseOptions(n *yaml.Node) (Options, error) {
	opts := Options{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if key == keyType || key == keySchema {
			continue
		}
		var v any
		if err := n.Content[i+1].Decode(&v); err != nil {
			return nil, errors.Join(ErrInvalidDefinition, err)
		}
		opts[key] = v
	}
	return opts, nil
}

func lookup(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

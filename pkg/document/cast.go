package document

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/platdesign/i18ngoose/pkg/docpath"
	"github.com/platdesign/i18ngoose/pkg/schema"
)

// castField converts v into the stored representation of f.
func castField(f *schema.Field, v any) (any, error) {
	switch f.Type {
	case schema.TypeObject:
		if v == nil {
			return nil, nil
		}
		return castSubdocument(f, v)
	case schema.TypeArray:
		return castArray(f, v)
	}
	out, err := castScalar(f.Kind, v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s expects %s, got %T", ErrCast, f.Name(), f.Kind, v)
	}
	return out, nil
}

func castScalar(kind schema.Kind, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch kind {
	case schema.KindString, schema.KindRef:
		if s, ok := v.(string); ok {
			return s, nil
		}
		if d, ok := v.(*Document); ok && kind == schema.KindRef && d != nil {
			return d.ID(), nil
		}
	case schema.KindNumber:
		return toFloat(v)
	case schema.KindBoolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case schema.KindDate:
		switch t := v.(type) {
		case time.Time:
			return t.UTC(), nil
		case string:
			return time.Parse(time.RFC3339Nano, t)
		}
	case schema.KindMixed:
		return deepCopy(v), nil
	}
	return nil, ErrCast
}

func toFloat(v any) (any, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	}
	return nil, ErrCast
}

func castArray(f *schema.Field, v any) (any, error) {
	var elems []any
	switch a := v.(type) {
	case nil:
		return []any{}, nil
	case []any:
		elems = a
	case []map[string]any:
		elems = make([]any, len(a))
		for i, m := range a {
			elems[i] = m
		}
	default:
		return nil, fmt.Errorf("%w: %s expects a list, got %T", ErrCast, f.Name(), v)
	}

	out := make([]any, 0, len(elems))
	for i, e := range elems {
		m, err := castSubdocument(f, e)
		if err != nil {
			return nil, fmt.Errorf("%s.%d: %w", f.Name(), i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// castSubdocument builds a fresh sub-document from a plain map, assigning
// declared paths through the child schema and filling in defaults. Keys the
// child schema does not declare are dropped.
func castSubdocument(f *schema.Field, v any) (map[string]any, error) {
	src, ok := v.(map[string]any)
	if !ok {
		if d, isDoc := v.(*Document); isDoc && d != nil {
			src = d.ToObject()
		} else {
			return nil, fmt.Errorf("%w: %s expects a sub-document, got %T", ErrCast, f.Name(), v)
		}
	}
	sub := &Document{schema: f.Schema, data: make(map[string]any, len(src))}
	if err := sub.Merge(src); err != nil {
		return nil, err
	}
	applyDefaults(f.Schema, sub.data)
	return sub.data, nil
}

// applyDefaults fills declared defaults for absent paths and recurses into
// sub-documents that are already present. Arrays default to empty lists.
func applyDefaults(s *schema.Schema, data map[string]any) {
	for _, f := range s.Fields() {
		cur, ok := docpath.Get(data, f.Path)
		switch f.Type {
		case schema.TypeScalar:
			if ok {
				continue
			}
			if def, has := f.Default(); has {
				if v, err := castScalar(f.Kind, deepCopy(def)); err == nil {
					docpath.Set(data, f.Path, v)
				}
			}
		case schema.TypeObject:
			if m, isMap := cur.(map[string]any); isMap {
				applyDefaults(f.Schema, m)
				continue
			}
			if !ok {
				if def, has := f.Default(); has {
					if m, err := castSubdocument(f, deepCopy(def)); err == nil {
						docpath.Set(data, f.Path, m)
					}
				}
			}
		case schema.TypeArray:
			if !ok || cur == nil {
				docpath.Set(data, f.Path, []any{})
				continue
			}
			if elems, isList := cur.([]any); isList {
				for _, e := range elems {
					if m, isMap := e.(map[string]any); isMap {
						applyDefaults(f.Schema, m)
					}
				}
			}
		}
	}
}

// deepCopy clones maps and slices so stored data never aliases caller data.
func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = deepCopy(x)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = deepCopy(x)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = deepCopy(x)
		}
		return out
	}
	return v
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

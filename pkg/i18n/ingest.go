package i18n

import (
	"github.com/platdesign/i18ngoose/pkg/docpath"
	"github.com/platdesign/i18ngoose/pkg/schema"
)

// Assignment is a single value to write into a document at Path.
type Assignment struct {
	Path  docpath.Path
	Value any
}

// Ingest maps a raw single-language document onto the paths of the
// transformed schema s, for language lang.
//
// A language expansion of lang reads raw at the original field path and is
// assigned to its own slot. Expansions of other languages are skipped. Any
// other field is read from raw at its own path. Missing and nil raw values
// produce no assignment.
//
// Arrays of sub-documents are assigned as a whole: each raw element is
// ingested on top of a copy of the element at the same index in base, so
// other language slots of existing elements survive. base may be nil.
// Embedded sub-documents produce assignments below their own path.
func Ingest(s *schema.Schema, lang string, raw, base map[string]any) []Assignment {
	var out []Assignment
	Walk(s, func(path docpath.Path, f *schema.Field) {
		switch {
		case f.Lang != "":
			if f.Lang != lang {
				return
			}
			if v, ok := present(raw, path.Parent()); ok {
				out = append(out, Assignment{Path: path, Value: copyValue(v)})
			}
		case f.Type == schema.TypeArray && f.Schema != nil:
			v, ok := present(raw, path)
			if !ok {
				return
			}
			out = append(out, Assignment{Path: path, Value: ingestArray(f.Schema, lang, v, lookup(base, path))})
		case f.Type == schema.TypeObject && f.Schema != nil:
			v, ok := present(raw, path)
			if !ok {
				return
			}
			m, isMap := v.(map[string]any)
			if !isMap {
				out = append(out, Assignment{Path: path, Value: copyValue(v)})
				return
			}
			sub, _ := lookup(base, path).(map[string]any)
			for _, a := range Ingest(f.Schema, lang, m, sub) {
				out = append(out, Assignment{Path: path.Child(a.Path...), Value: a.Value})
			}
		default:
			if v, ok := present(raw, path); ok {
				out = append(out, Assignment{Path: path, Value: copyValue(v)})
			}
		}
	})
	return out
}

// ingestArray merges raw elements onto the existing elements by index.
// The result has the length of the raw array.
func ingestArray(s *schema.Schema, lang string, raw, base any) any {
	elems := asList(raw)
	if elems == nil {
		return copyValue(raw)
	}
	existing := asList(base)
	out := make([]any, len(elems))
	for i, e := range elems {
		m, ok := e.(map[string]any)
		if !ok {
			out[i] = copyValue(e)
			continue
		}
		target := make(map[string]any)
		if i < len(existing) {
			if prev, ok := existing[i].(map[string]any); ok {
				target = copyValue(prev).(map[string]any)
			}
		}
		for _, a := range Ingest(s, lang, m, target) {
			docpath.Set(target, a.Path, a.Value)
		}
		out[i] = target
	}
	return out
}

func asList(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = m
		}
		return out
	}
	return nil
}

func present(doc map[string]any, p docpath.Path) (any, bool) {
	if doc == nil || p.IsZero() {
		return nil, false
	}
	v, ok := docpath.Get(doc, p)
	return v, ok && v != nil
}

func lookup(doc map[string]any, p docpath.Path) any {
	if doc == nil {
		return nil
	}
	v, _ := docpath.Get(doc, p)
	return v
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = copyValue(x)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = copyValue(x)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = copyValue(x)
		}
		return out
	}
	return v
}

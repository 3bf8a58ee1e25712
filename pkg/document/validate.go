package document

import (
	"strconv"

	"github.com/platdesign/i18ngoose/pkg/docpath"
	"github.com/platdesign/i18ngoose/pkg/schema"
)

// Validate checks required fields, descending into sub-documents. It returns
// ValidationErrors listing every failure, or nil.
func (d *Document) Validate() error {
	var errs ValidationErrors
	validate(d.schema, d.data, nil, &errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validate(s *schema.Schema, data map[string]any, prefix docpath.Path, errs *ValidationErrors) {
	for _, f := range s.Fields() {
		v, ok := docpath.Get(data, f.Path)
		path := prefix.Child(f.Path...)

		if f.Required() && isEmpty(v, ok) {
			*errs = append(*errs, FieldError{Path: path.String(), Message: "is required"})
			continue
		}

		switch f.Type {
		case schema.TypeObject:
			if m, isMap := v.(map[string]any); isMap {
				validate(f.Schema, m, path, errs)
			}
		case schema.TypeArray:
			elems, _ := v.([]any)
			for i, e := range elems {
				if m, isMap := e.(map[string]any); isMap {
					validate(f.Schema, m, path.Child(strconv.Itoa(i)), errs)
				}
			}
		}
	}
}

func isEmpty(v any, ok bool) bool {
	if !ok || v == nil {
		return true
	}
	if s, isString := v.(string); isString {
		return s == ""
	}
	return false
}

package i18n

import (
	"fmt"

	"github.com/platdesign/i18ngoose/pkg/document"
	"github.com/platdesign/i18ngoose/pkg/schema"
)

// InitFromRaw creates a document of s holding the values of raw in the
// language slots of lang. Other language slots only carry their defaults.
func InitFromRaw(s *schema.Schema, lang string, raw map[string]any) (*document.Document, error) {
	if s == nil {
		return nil, ErrNilSchema
	}
	if lang == "" {
		return nil, ErrLanguageRequired
	}
	doc := document.New(s)
	if err := assign(doc, Ingest(s, lang, raw, nil)); err != nil {
		return nil, err
	}
	return doc, nil
}

// SetFromRaw merges raw into the language slots of lang of an existing
// document and returns it. Values of other languages are left untouched.
//
// The assignments are tried on a copy first, so a value that cannot be cast
// leaves doc unchanged.
func SetFromRaw(doc *document.Document, lang string, raw map[string]any) (*document.Document, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	if lang == "" {
		return nil, ErrLanguageRequired
	}
	s := doc.Schema()
	assignments := Ingest(s, lang, raw, doc.ToObject(document.WithoutPopulated()))

	scratch := document.FromObject(s, doc.ID(), doc.ToObject(document.WithoutPopulated()))
	if err := assign(scratch, assignments); err != nil {
		return nil, err
	}
	if err := assign(doc, assignments); err != nil {
		return nil, err
	}
	return doc, nil
}

func assign(doc *document.Document, assignments []Assignment) error {
	for _, a := range assignments {
		if err := doc.Set(a.Path.String(), a.Value); err != nil {
			return fmt.Errorf("i18n: ingest %s: %w", a.Path, err)
		}
	}
	return nil
}

// ToLocalizedObject materializes doc and projects every translatable field,
// in the document and in its populated related documents, onto lang.
func ToLocalizedObject(doc *document.Document, lang string, opts ...document.ObjectOption) (map[string]any, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	if lang == "" {
		return nil, ErrLanguageRequired
	}
	obj := doc.ToObject(localizedOptions(lang, opts)...)
	return CompileLocalizer(doc.Schema()).Apply(obj, lang), nil
}

// ToLocalizedJSON is ToLocalizedObject for the JSON form of doc.
func ToLocalizedJSON(doc *document.Document, lang string, opts ...document.ObjectOption) (map[string]any, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	if lang == "" {
		return nil, ErrLanguageRequired
	}
	obj, err := doc.ToJSON(localizedOptions(lang, opts)...)
	if err != nil {
		return nil, err
	}
	return CompileLocalizer(doc.Schema()).Apply(obj, lang), nil
}

// localizedOptions makes populated documents localize with their own schema.
func localizedOptions(lang string, opts []document.ObjectOption) []document.ObjectOption {
	out := make([]document.ObjectOption, 0, len(opts)+1)
	out = append(out, opts...)
	return append(out, document.WithRelated(func(related *document.Document) map[string]any {
		obj := related.ToObject(localizedOptions(lang, opts)...)
		return CompileLocalizer(related.Schema()).Apply(obj, lang)
	}))
}

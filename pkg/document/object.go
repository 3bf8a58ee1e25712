package document

import (
	"encoding/json"
	"fmt"

	"github.com/platdesign/i18ngoose/pkg/docpath"
	"github.com/platdesign/i18ngoose/pkg/schema"
)

// IDKey is the key the document id is written under by WithID.
const IDKey = "_id"

// ObjectOption tunes materialization.
type ObjectOption func(*objectConfig)

type objectConfig struct {
	virtuals    bool
	id          bool
	noPopulated bool
	related     func(*Document) map[string]any
}

// WithVirtuals includes computed fields in the output.
func WithVirtuals() ObjectOption {
	return func(c *objectConfig) { c.virtuals = true }
}

// WithID writes the document id under IDKey.
func WithID() ObjectOption {
	return func(c *objectConfig) { c.id = true }
}

// WithoutPopulated keeps ref fields as ids instead of inlining populated documents.
func WithoutPopulated() ObjectOption {
	return func(c *objectConfig) { c.noPopulated = true }
}

// WithRelated overrides how populated documents are materialized before they
// are inlined.
func WithRelated(fn func(related *Document) map[string]any) ObjectOption {
	return func(c *objectConfig) { c.related = fn }
}

// ToObject materializes the document into plain nested data that does not
// alias the document's own storage. Populated related documents are inlined
// at their ref paths.
func (d *Document) ToObject(opts ...ObjectOption) map[string]any {
	cfg := &objectConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return d.toObject(cfg)
}

func (d *Document) toObject(cfg *objectConfig) map[string]any {
	out, _ := deepCopy(d.data).(map[string]any)
	if cfg.virtuals {
		addVirtuals(d, d.schema, out)
	}
	if !cfg.noPopulated {
		for path, related := range d.populated {
			p := docpath.Parse(path)
			// Skip refs whose element or object is gone.
			if len(p) > 1 && !docpath.Exists(out, p.Parent()) {
				continue
			}
			var obj map[string]any
			if cfg.related != nil {
				obj = cfg.related(related)
			} else {
				obj = related.toObject(cfg)
			}
			docpath.Set(out, p, obj)
		}
	}
	if cfg.id && d.id != "" {
		out[IDKey] = d.id
	}
	return out
}

// addVirtuals writes the values of s's virtuals, read through src, into out
// and recurses into sub-documents. A virtual sitting on top of a stored field
// group is skipped; the group itself is already in out.
func addVirtuals(src *Document, s *schema.Schema, out map[string]any) {
	for _, v := range s.Virtuals() {
		if v.Get != nil && len(s.Group(v.Path)) == 0 {
			docpath.Set(out, v.Path, deepCopy(v.Get(src)))
		}
	}
	for _, f := range s.Fields() {
		switch f.Type {
		case schema.TypeObject:
			sub := src.embedded(f, false)
			m, ok := mapAt(out, f.Path)
			if sub != nil && ok {
				addVirtuals(sub, f.Schema, m)
			}
		case schema.TypeArray:
			elems := src.array(f)
			v, _ := docpath.Get(out, f.Path)
			list, _ := v.([]any)
			for i := 0; i < len(elems) && i < len(list); i++ {
				if m, ok := list[i].(map[string]any); ok {
					addVirtuals(elems[i], f.Schema, m)
				}
			}
		}
	}
}

func mapAt(doc map[string]any, p docpath.Path) (map[string]any, bool) {
	v, ok := docpath.Get(doc, p)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// ToJSON materializes the document the way it would look after a JSON round
// trip: numbers become float64 and dates become RFC 3339 strings.
func (d *Document) ToJSON(opts ...ObjectOption) (map[string]any, error) {
	return jsonObject(d.ToObject(opts...))
}

// MarshalJSON encodes the document including its id.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToObject(WithID()))
}

func jsonObject(obj map[string]any) (map[string]any, error) {
	b, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("document: encode json: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("document: decode json: %w", err)
	}
	return out, nil
}

package document

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/platdesign/i18ngoose/pkg/docpath"
	"github.com/platdesign/i18ngoose/pkg/schema"
)

// Document is a mutable instance of a schema backed by plain nested data.
//
// A Document is not safe for concurrent mutation.
type Document struct {
	id        string
	schema    *schema.Schema
	data      map[string]any
	populated map[string]*Document
}

var _ schema.Accessor = (*Document)(nil)

// New allocates an empty document with a fresh id and declared defaults applied.
func New(s *schema.Schema) *Document {
	d := &Document{
		id:     uuid.NewString(),
		schema: s,
		data:   make(map[string]any),
	}
	applyDefaults(s, d.data)
	return d
}

// FromObject wraps stored data, for example a record loaded from a database.
// The document takes ownership of data. Missing defaults are filled in.
func FromObject(s *schema.Schema, id string, data map[string]any) *Document {
	if data == nil {
		data = make(map[string]any)
	}
	applyDefaults(s, data)
	return &Document{id: id, schema: s, data: data}
}

// ID returns the document id. Sub-document views have no id of their own.
func (d *Document) ID() string {
	return d.id
}

func (d *Document) Schema() *schema.Schema {
	return d.schema
}

// Get returns the value at path, or nil when nothing is stored there.
// Virtuals take precedence over stored data.
func (d *Document) Get(path string) any {
	v, _ := d.Lookup(path)
	return v
}

// Lookup is like Get but also reports whether a value was found.
func (d *Document) Lookup(path string) (any, bool) {
	return d.lookup(docpath.Parse(path))
}

func (d *Document) lookup(p docpath.Path) (any, bool) {
	if v, ok := d.schema.Virtual(p.String()); ok && v.Get != nil {
		return v.Get(d), true
	}
	if sub, rest, ok := d.descend(p, false); ok {
		return sub.lookup(rest)
	}
	return docpath.Get(d.data, p)
}

// Set assigns value at path.
//
// Virtual paths delegate to their setter. Declared leaves are cast to their
// kind. A map assigned to a group of fields (for example "title" when the
// schema declares "title.de" and "title.en") is distributed over the group;
// keys the group does not declare are dropped, and nil clears the group.
// Paths inside sub-documents ("items.0.name", "meta.views") are resolved
// through the child schema.
func (d *Document) Set(path string, value any) error {
	return d.set(docpath.Parse(path), value)
}

func (d *Document) set(p docpath.Path, value any) error {
	name := p.String()
	if v, ok := d.schema.Virtual(name); ok && v.Set != nil {
		// A full language map still goes to the stored group behind the alias.
		if m, isMap := value.(map[string]any); isMap && len(d.schema.Group(p)) > 0 {
			return d.merge(p, m)
		}
		return v.Set(d, value)
	}
	if f, ok := d.schema.Field(name); ok {
		cast, err := castField(f, value)
		if err != nil {
			return err
		}
		docpath.Set(d.data, f.Path, cast)
		return nil
	}
	if sub, rest, ok := d.descend(p, true); ok {
		return sub.set(rest, value)
	}
	if group := d.schema.Group(p); len(group) > 0 {
		if value == nil {
			for _, f := range group {
				docpath.Delete(d.data, f.Path)
			}
			return nil
		}
		m, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %s expects a map, got %T", ErrCast, name, value)
		}
		return d.merge(p, m)
	}
	return fmt.Errorf("%w: %s", ErrUnknownPath, name)
}

// Merge assigns every key of values as a path below the document root.
// Undeclared keys are dropped.
func (d *Document) Merge(values map[string]any) error {
	return d.merge(nil, values)
}

func (d *Document) merge(prefix docpath.Path, values map[string]any) error {
	for _, k := range sortedKeys(values) {
		err := d.set(prefix.Child(docpath.Parse(k)...), values[k])
		if err != nil && !errors.Is(err, ErrUnknownPath) {
			return err
		}
	}
	return nil
}

// descend resolves a path that reaches inside an embedded sub-document or an
// element of an array of sub-documents. It returns the sub-document view and
// the path relative to it.
func (d *Document) descend(p docpath.Path, create bool) (*Document, docpath.Path, bool) {
	for i := 1; i < len(p); i++ {
		f, ok := d.schema.Field(p[:i].String())
		if !ok || !f.Nested() {
			continue
		}
		rest := p[i:]
		if f.Type == schema.TypeObject {
			sub := d.embedded(f, create)
			if sub == nil {
				return nil, nil, false
			}
			return sub, rest, true
		}
		if len(rest) < 2 {
			return nil, nil, false
		}
		idx, err := strconv.Atoi(rest[0])
		elems := d.array(f)
		if err != nil || idx < 0 || idx >= len(elems) {
			return nil, nil, false
		}
		return elems[idx], rest[1:], true
	}
	return nil, nil, false
}

// Array returns views over the elements of an array of sub-documents.
// Views share storage with d. It returns nil when path is not such a field.
func (d *Document) Array(path string) []*Document {
	f, ok := d.schema.Field(path)
	if !ok || f.Type != schema.TypeArray {
		return nil
	}
	return d.array(f)
}

func (d *Document) array(f *schema.Field) []*Document {
	v, _ := docpath.Get(d.data, f.Path)
	elems, _ := v.([]any)
	out := make([]*Document, 0, len(elems))
	for _, e := range elems {
		if m, ok := e.(map[string]any); ok {
			out = append(out, d.view(f.Schema, m))
		}
	}
	return out
}

// Embedded returns a view over an embedded sub-document, creating an empty
// one when none is stored. It returns nil when path is not such a field.
func (d *Document) Embedded(path string) *Document {
	f, ok := d.schema.Field(path)
	if !ok || f.Type != schema.TypeObject {
		return nil
	}
	return d.embedded(f, true)
}

func (d *Document) embedded(f *schema.Field, create bool) *Document {
	v, _ := docpath.Get(d.data, f.Path)
	m, ok := v.(map[string]any)
	if !ok {
		if !create {
			return nil
		}
		m = make(map[string]any)
		applyDefaults(f.Schema, m)
		docpath.Set(d.data, f.Path, m)
	}
	return d.view(f.Schema, m)
}

func (d *Document) view(s *schema.Schema, data map[string]any) *Document {
	return &Document{schema: s, data: data}
}

// Populate attaches a related document to a ref field. The ref field stores
// the related id; materialization inlines the related document instead.
//
// path may point into sub-documents, with array elements addressed by index
// ("items.0.author"). Embedded objects are created as needed; array elements
// must exist. Populated documents are held by the receiver and views are not
// retained, so nested refs are populated through the root document.
func (d *Document) Populate(path string, related *Document) error {
	if related == nil {
		return ErrNilDocument
	}
	p := docpath.Parse(path)
	owner, rest := d, p
	for {
		if _, ok := owner.schema.Field(rest.String()); ok {
			break
		}
		sub, r, ok := owner.descend(rest, true)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotRef, path)
		}
		owner, rest = sub, r
	}
	f, _ := owner.schema.Field(rest.String())
	if f.Type != schema.TypeScalar || f.Kind != schema.KindRef {
		return fmt.Errorf("%w: %s", ErrNotRef, path)
	}
	docpath.Set(owner.data, f.Path, related.ID())
	if d.populated == nil {
		d.populated = make(map[string]*Document)
	}
	d.populated[p.String()] = related
	return nil
}

// Populated returns the attached related documents keyed by path.
func (d *Document) Populated() map[string]*Document {
	out := make(map[string]*Document, len(d.populated))
	for k, v := range d.populated {
		out[k] = v
	}
	return out
}

package schema

import (
	"fmt"
	"slices"
	"sync"

	"github.com/platdesign/i18ngoose/pkg/docpath"
)

// Accessor is the document surface a virtual reads and writes through.
type Accessor interface {
	Get(path string) any
	Set(path string, value any) error
}

// Virtual is a computed field. It has no storage of its own and is never
// part of the field list.
type Virtual struct {
	Path docpath.Path
	Get  func(doc Accessor) any
	Set  func(doc Accessor, value any) error
}

// Schema is an ordered set of field declarations.
//
// Field mutation (Add, Remove, Replace) is not synchronized: schemas are built
// and transformed once, before they are shared. Memo is safe for concurrent use.
type Schema struct {
	fields   []*Field
	index    map[string]*Field
	virtuals []*Virtual

	memoMu sync.Mutex
	memo   map[any]any
	marks  map[any]struct{}
}

// New builds a schema from field declarations in order.
func New(fields ...*Field) (*Schema, error) {
	s := &Schema{index: make(map[string]*Field)}
	if err := s.Replace(fields); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNew is like New but panics on an invalid declaration.
func MustNew(fields ...*Field) *Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Add appends a field declaration.
func (s *Schema) Add(f *Field) error {
	return s.Replace(append(slices.Clone(s.fields), f))
}

// Remove deletes the field at path from both the field list and the path
// index. It reports whether a field was removed.
func (s *Schema) Remove(path string) bool {
	f, ok := s.index[path]
	if !ok {
		return false
	}
	s.fields = slices.DeleteFunc(slices.Clone(s.fields), func(x *Field) bool { return x == f })
	delete(s.index, path)
	s.resetMemo()
	return true
}

// Replace validates fields and swaps them in as the new field list. On error
// the schema is left unchanged. Memoized values are discarded.
func (s *Schema) Replace(fields []*Field) error {
	index := make(map[string]*Field, len(fields))
	for _, f := range fields {
		if f == nil {
			return fmt.Errorf("%w: nil field", ErrInvalidDefinition)
		}
		if err := f.validate(); err != nil {
			return err
		}
		name := f.Name()
		if _, dup := index[name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicatePath, name)
		}
		index[name] = f
	}
	if err := checkPrefixes(index); err != nil {
		return err
	}
	for _, v := range s.virtuals {
		if _, ok := index[v.Path.String()]; ok {
			return fmt.Errorf("%w: %s is a virtual", ErrPathConflict, v.Path)
		}
	}

	s.fields = slices.Clone(fields)
	s.index = index
	s.resetMemo()
	return nil
}

// checkPrefixes rejects leaves nested below another leaf, e.g. "a" and "a.b".
func checkPrefixes(index map[string]*Field) error {
	for name, f := range index {
		for p := f.Path.Parent(); !p.IsZero(); p = p.Parent() {
			if _, ok := index[p.String()]; ok {
				return fmt.Errorf("%w: %s is nested below %s", ErrPathConflict, name, p)
			}
		}
	}
	return nil
}

// Field returns the declaration at path.
func (s *Schema) Field(path string) (*Field, bool) {
	f, ok := s.index[path]
	return f, ok
}

// Fields returns a snapshot of the field list in declaration order.
func (s *Schema) Fields() []*Field {
	return slices.Clone(s.fields)
}

func (s *Schema) Len() int {
	return len(s.fields)
}

// Group returns the fields declared below prefix, in declaration order.
func (s *Schema) Group(prefix docpath.Path) []*Field {
	var out []*Field
	for _, f := range s.fields {
		if len(f.Path) > len(prefix) && f.Path.HasPrefix(prefix) {
			out = append(out, f)
		}
	}
	return out
}

// AddVirtual registers a computed field. Its path must not name a stored leaf.
func (s *Schema) AddVirtual(v *Virtual) error {
	if v == nil || v.Path.IsZero() {
		return ErrEmptyPath
	}
	name := v.Path.String()
	if _, ok := s.index[name]; ok {
		return fmt.Errorf("%w: %s is a stored field", ErrPathConflict, name)
	}
	if _, ok := s.Virtual(name); ok {
		return fmt.Errorf("%w: virtual %s", ErrDuplicatePath, name)
	}
	s.virtuals = append(s.virtuals, v)
	return nil
}

// Virtual returns the computed field registered at path.
func (s *Schema) Virtual(path string) (*Virtual, bool) {
	for _, v := range s.virtuals {
		if v.Path.String() == path {
			return v, true
		}
	}
	return nil, false
}

// Virtuals returns the registered computed fields in registration order.
func (s *Schema) Virtuals() []*Virtual {
	return slices.Clone(s.virtuals)
}

// Memo returns the value cached under key, building it on first use. The
// build function runs outside the lock; when two callers race, the first
// stored value wins and is returned to both.
func (s *Schema) Memo(key any, build func() any) any {
	s.memoMu.Lock()
	if v, ok := s.memo[key]; ok {
		s.memoMu.Unlock()
		return v
	}
	s.memoMu.Unlock()

	v := build()

	s.memoMu.Lock()
	defer s.memoMu.Unlock()
	if existing, ok := s.memo[key]; ok {
		return existing
	}
	if s.memo == nil {
		s.memo = make(map[any]any)
	}
	s.memo[key] = v
	return v
}

// Lookup reports whether a value is memoized under key without building it.
func (s *Schema) Lookup(key any) (any, bool) {
	s.memoMu.Lock()
	defer s.memoMu.Unlock()
	v, ok := s.memo[key]
	return v, ok
}

// Mark records key on the schema. Unlike memoized values, marks survive
// field mutation.
func (s *Schema) Mark(key any) {
	s.memoMu.Lock()
	defer s.memoMu.Unlock()
	if s.marks == nil {
		s.marks = make(map[any]struct{})
	}
	s.marks[key] = struct{}{}
}

// Marked reports whether key was recorded with Mark.
func (s *Schema) Marked(key any) bool {
	s.memoMu.Lock()
	defer s.memoMu.Unlock()
	_, ok := s.marks[key]
	return ok
}

func (s *Schema) resetMemo() {
	s.memoMu.Lock()
	s.memo = nil
	s.memoMu.Unlock()
}

package i18n

import (
	"sync"

	"github.com/platdesign/i18ngoose/pkg/docpath"
	"github.com/platdesign/i18ngoose/pkg/schema"
)

type localizerKey struct{}

type opKind uint8

const (
	opCollapse opKind = iota
	opEach
	opEmbedded
)

type op struct {
	kind   opKind
	path   docpath.Path
	nested *Localizer
}

// Localizer rewrites materialized documents of one schema so that every
// translatable field holds the value of a single language.
//
// A Localizer is immutable after compilation and safe for concurrent use.
type Localizer struct {
	ops []op
}

// compileMu serializes plan compilation. Plans of a schema tree are
// published only once the whole tree is built.
var compileMu sync.Mutex

// CompileLocalizer returns the localization plan of s. The plan is compiled
// on first use and cached on the schema, so repeated calls return the same
// plan. Child schemas get plans of their own; a schema that contains itself
// shares its plan with the nested reference.
func CompileLocalizer(s *schema.Schema) *Localizer {
	if s == nil {
		return &Localizer{}
	}
	if l, ok := memoized(s); ok {
		return l
	}

	compileMu.Lock()
	defer compileMu.Unlock()
	if l, ok := memoized(s); ok {
		return l
	}
	c := &compiler{plans: make(map[*schema.Schema]*Localizer), active: make(map[*schema.Schema]bool)}
	c.compile(s)
	for child, l := range c.plans {
		child.Memo(localizerKey{}, func() any { return l })
	}
	l, _ := memoized(s)
	return l
}

func memoized(s *schema.Schema) (*Localizer, bool) {
	v, ok := s.Lookup(localizerKey{})
	if !ok {
		return nil, false
	}
	l, ok := v.(*Localizer)
	return l, ok
}

// compiler builds the plans of one schema tree.
type compiler struct {
	plans  map[*schema.Schema]*Localizer
	active map[*schema.Schema]bool
}

func (c *compiler) compile(s *schema.Schema) *Localizer {
	if l, ok := memoized(s); ok {
		return l
	}
	if l, ok := c.plans[s]; ok {
		return l
	}
	l := &Localizer{}
	c.plans[s] = l
	c.active[s] = true
	defer delete(c.active, s)

	seen := make(map[string]bool)
	Walk(s, func(path docpath.Path, f *schema.Field) {
		switch {
		case f.Lang != "" && f.Type == schema.TypeScalar:
			parent := path.Parent()
			if parent.IsZero() || seen[parent.String()] {
				return
			}
			seen[parent.String()] = true
			l.ops = append(l.ops, op{kind: opCollapse, path: parent})
		case f.Type == schema.TypeArray && f.Schema != nil:
			if nested := c.compile(f.Schema); c.active[f.Schema] || nested.Len() > 0 {
				l.ops = append(l.ops, op{kind: opEach, path: path, nested: nested})
			}
		case f.Type == schema.TypeObject && f.Schema != nil:
			if nested := c.compile(f.Schema); c.active[f.Schema] || nested.Len() > 0 {
				l.ops = append(l.ops, op{kind: opEmbedded, path: path, nested: nested})
			}
		}
	})
	return l
}

// Len reports the number of top-level operations in the plan.
func (l *Localizer) Len() int {
	return len(l.ops)
}

// Apply localizes obj in place for lang and returns it. A translatable field
// whose language slot is missing becomes nil. Fields whose container is
// missing from obj are left alone.
func (l *Localizer) Apply(obj map[string]any, lang string) map[string]any {
	if obj == nil {
		return nil
	}
	for _, o := range l.ops {
		switch o.kind {
		case opCollapse:
			container, ok := containerOf(obj, o.path)
			if !ok {
				continue
			}
			key := o.path.Last()
			slots, _ := container[key].(map[string]any)
			container[key] = slots[lang]
		case opEach:
			v, _ := docpath.Get(obj, o.path)
			switch list := v.(type) {
			case []any:
				for _, e := range list {
					if m, ok := e.(map[string]any); ok {
						o.nested.Apply(m, lang)
					}
				}
			case []map[string]any:
				for _, m := range list {
					o.nested.Apply(m, lang)
				}
			}
		case opEmbedded:
			v, _ := docpath.Get(obj, o.path)
			if m, ok := v.(map[string]any); ok {
				o.nested.Apply(m, lang)
			}
		}
	}
	return obj
}

// containerOf returns the map holding the last segment of p.
func containerOf(obj map[string]any, p docpath.Path) (map[string]any, bool) {
	parent := p.Parent()
	if parent.IsZero() {
		return obj, true
	}
	v, ok := docpath.Get(obj, parent)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

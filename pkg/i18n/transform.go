package i18n

import (
	"fmt"
	"log/slog"

	"github.com/platdesign/i18ngoose/pkg/docpath"
	"github.com/platdesign/i18ngoose/pkg/schema"
)

// transformedKey marks a schema as rewritten. The mark survives later field
// mutation, so a schema is never expanded twice.
type transformedKey struct{}

// Plugin expands translatable fields of schemas into per-language fields.
// A Plugin is immutable and may be applied to any number of schemas.
type Plugin struct {
	opts   Options
	logger *slog.Logger
}

// New validates opts and returns a plugin ready to be applied.
func New(opts Options, options ...Option) (*Plugin, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	p := &Plugin{
		opts: Options{
			Languages:       append([]string(nil), opts.Languages...),
			DefaultLanguage: opts.DefaultLanguage,
		},
		logger: discardLogger(),
	}
	for _, opt := range options {
		opt(p)
	}
	return p, nil
}

// Transform is a shorthand for New followed by Apply.
func Transform(s *schema.Schema, opts Options, options ...Option) (*schema.Schema, error) {
	p, err := New(opts, options...)
	if err != nil {
		return nil, err
	}
	if err := p.Apply(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Languages returns the configured language codes.
func (p *Plugin) Languages() []string {
	return append([]string(nil), p.opts.Languages...)
}

// DefaultLanguage returns the configured default language, if any.
func (p *Plugin) DefaultLanguage() string {
	return p.opts.DefaultLanguage
}

// Apply rewrites s in place. Every field flagged with the "i18n" option is
// replaced, at the same position, by one field per language at
// "<path>.<lang>". Child schemas of embedded objects and arrays are rewritten
// the same way. With a default language, an alias virtual at "<path>" reads
// and writes "<path>.<default>".
//
// The complete rewrite is planned and checked before the first schema is
// touched; on error nothing changes.
func (p *Plugin) Apply(s *schema.Schema) error {
	if s == nil {
		return ErrNilSchema
	}
	if transformed(s) {
		return ErrAlreadyTransformed
	}
	rw, err := p.plan(s, make(map[*schema.Schema]bool))
	if err != nil {
		return err
	}
	if err := p.commit(rw); err != nil {
		return err
	}
	p.logger.Info("schema transformed",
		slog.Any("languages", p.opts.Languages),
		slog.String("default_language", p.opts.DefaultLanguage),
		slog.Int("translatable_fields", rw.count()),
	)
	return nil
}

func transformed(s *schema.Schema) bool {
	return s.Marked(transformedKey{})
}

// rewrite is the planned new shape of one schema.
type rewrite struct {
	target   *schema.Schema
	fields   []*schema.Field
	aliases  []docpath.Path
	nested   []*rewrite
	expanded int
}

func (r *rewrite) count() int {
	n := r.expanded
	for _, c := range r.nested {
		n += c.count()
	}
	return n
}

func (p *Plugin) plan(s *schema.Schema, seen map[*schema.Schema]bool) (*rewrite, error) {
	seen[s] = true
	rw := &rewrite{target: s, fields: make([]*schema.Field, 0, s.Len())}

	var err error
	Walk(s, func(path docpath.Path, f *schema.Field) {
		if err != nil {
			return
		}
		switch {
		case f.Options.Bool(schema.OptionI18n):
			if f.Type != schema.TypeScalar {
				err = fmt.Errorf("%w: %s is %s", ErrNestedTranslatable, f.Name(), f.Type)
				return
			}
			rw.fields = append(rw.fields, p.expand(f)...)
			rw.expanded++
			if p.opts.DefaultLanguage != "" {
				rw.aliases = append(rw.aliases, path)
			}
		case f.Nested():
			rw.fields = append(rw.fields, f)
			if seen[f.Schema] || transformed(f.Schema) {
				return
			}
			var child *rewrite
			if child, err = p.plan(f.Schema, seen); err == nil {
				rw.nested = append(rw.nested, child)
			}
		default:
			rw.fields = append(rw.fields, f)
		}
	})
	if err != nil {
		return nil, err
	}

	// Dry run on a scratch schema so conflicts surface before any commit.
	scratch, err := schema.New(rw.fields...)
	if err != nil {
		return nil, fmt.Errorf("i18n: rewrite conflicts with declared fields: %w", err)
	}
	for _, v := range s.Virtuals() {
		if err := scratch.AddVirtual(v); err != nil {
			return nil, fmt.Errorf("i18n: rewrite conflicts with virtual fields: %w", err)
		}
	}
	for _, a := range rw.aliases {
		if err := scratch.AddVirtual(&schema.Virtual{Path: a}); err != nil {
			return nil, fmt.Errorf("i18n: alias conflicts with declared fields: %w", err)
		}
	}
	return rw, nil
}

// expand builds the per-language replacements of a translatable field.
// Each copy drops the i18n flag; only the default language keeps required.
func (p *Plugin) expand(f *schema.Field) []*schema.Field {
	out := make([]*schema.Field, 0, len(p.opts.Languages))
	for _, lang := range p.opts.Languages {
		opts := f.Options.Without(schema.OptionI18n)
		if lang != p.opts.DefaultLanguage {
			delete(opts, schema.OptionRequired)
		}
		out = append(out, &schema.Field{
			Path:    f.Path.Child(lang),
			Type:    f.Type,
			Kind:    f.Kind,
			Options: opts,
			Lang:    lang,
		})
	}
	p.logger.Debug("translatable field expanded",
		slog.String("path", f.Name()),
		slog.Int("languages", len(out)),
	)
	return out
}

func (p *Plugin) commit(rw *rewrite) error {
	for _, child := range rw.nested {
		if err := p.commit(child); err != nil {
			return err
		}
	}
	if err := rw.target.Replace(rw.fields); err != nil {
		return err
	}
	for _, path := range rw.aliases {
		if err := rw.target.AddVirtual(p.alias(path)); err != nil {
			return err
		}
	}
	rw.target.Mark(transformedKey{})
	return nil
}

// alias reads and writes the default language slot of a translatable field.
func (p *Plugin) alias(path docpath.Path) *schema.Virtual {
	target := path.Child(p.opts.DefaultLanguage).String()
	return &schema.Virtual{
		Path: path,
		Get: func(doc schema.Accessor) any {
			return doc.Get(target)
		},
		Set: func(doc schema.Accessor, value any) error {
			return doc.Set(target, value)
		},
	}
}

package schema

import "maps"

// Recognized option keys. Any other key is carried through untouched.
const (
	OptionI18n     = "i18n"
	OptionRequired = "required"
	OptionDefault  = "default"
	OptionRef      = "ref"
)

// Options is the opaque configuration bag of a field declaration.
type Options map[string]any

func (o Options) Get(key string) (any, bool) {
	v, ok := o[key]
	return v, ok
}

func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// Bool reports whether key is set to boolean true.
func (o Options) Bool(key string) bool {
	b, _ := o[key].(bool)
	return b
}

// Clone returns a shallow copy. A nil bag clones to an empty one.
func (o Options) Clone() Options {
	if o == nil {
		return Options{}
	}
	return maps.Clone(o)
}

// Without returns a copy with the given keys removed.
func (o Options) Without(keys ...string) Options {
	c := o.Clone()
	for _, k := range keys {
		delete(c, k)
	}
	return c
}

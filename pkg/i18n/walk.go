package i18n

import (
	"github.com/platdesign/i18ngoose/pkg/docpath"
	"github.com/platdesign/i18ngoose/pkg/schema"
)

// Walk calls visit for every field owned directly by s, in declaration order.
//
// The field list is snapshotted before the first call, so visit may rewrite
// the schema. A field that is no longer part of s when its turn comes is
// skipped. Walk never descends into child schemas; callers decide how to
// recurse.
func Walk(s *schema.Schema, visit func(path docpath.Path, f *schema.Field)) {
	if s == nil {
		return
	}
	for _, f := range s.Fields() {
		if cur, ok := s.Field(f.Name()); !ok || cur != f {
			continue
		}
		visit(f.Path, f)
	}
}

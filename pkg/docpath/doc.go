// Package docpath addresses values inside plain nested documents.
//
// A document is a map[string]any whose values may be scalars, nested maps or
// slices of maps. A Path is parsed once from its dotted form and then used for
// repeated Get/Set/Delete traversals without re-splitting strings.
//
//	p := docpath.Parse("sub.test.de")
//	docpath.Set(doc, p, "Hallo")
//	v, ok := docpath.Get(doc, p)
//
// Numeric segments index into slices, so "items.0.title" reaches the title of
// the first element of items.
package docpath

// Package document implements schema-governed document instances.
//
// A Document stores its values as plain nested data (maps, slices, scalars)
// and uses its schema to cast assignments, resolve virtual fields, fill in
// defaults and check required fields. It is the host that higher level
// packages such as i18n plug into: they compute values and hand them to Set,
// and they post-process the plain data produced by ToObject and ToJSON.
//
//	doc := document.New(s)
//	if err := doc.Set("title.de", "Hallo"); err != nil {
//		return err
//	}
//	if err := doc.Validate(); err != nil {
//		return err
//	}
//	obj := doc.ToObject()
//
// Sub-documents are reached with Array and Embedded, which return views
// sharing storage with their parent, or with paths such as "items.0.name".
//
// Related documents attached with Populate are inlined by ToObject at their
// ref path and keep their own schema.
package document

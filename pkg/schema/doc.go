// Package schema describes the shape of documents.
//
// A Schema is an ordered list of field declarations. Leaves carry a storage
// Kind and an opaque Options bag; nested fields (TypeObject, TypeArray) own a
// child Schema that governs their sub-documents. Paths are dotted and relative
// to the owning schema, so a flattened group such as "sub.test" lives in the
// same schema as "title" while the fields of an array of sub-documents live in
// the array's child schema.
//
// Schemas are declared in code:
//
//	s := schema.MustNew(
//		schema.Scalar("title", schema.KindString, schema.Options{"i18n": true}),
//		schema.Array("items", schema.MustNew(
//			schema.Scalar("name", schema.KindString, nil),
//		), nil),
//	)
//
// or parsed from YAML/JSON with Parse.
//
// # Invariants
//
// Paths are unique within a schema and no leaf lives below another leaf. Replace
// checks both before swapping a new field list in, and leaves the schema
// unchanged on error.
//
// # Concurrency
//
// Building and rewriting a schema is single-threaded setup work. Once a schema
// is in use it must not be mutated. Memo is the only method safe to call
// concurrently; it caches values derived from the schema (compiled plans) for
// the lifetime of the schema.
package schema

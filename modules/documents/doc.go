// Package documents exposes the documents of one translatable schema over
// HTTP.
//
// Writes accept raw single-language JSON and name their language with the
// "lang" query parameter or the Content-Language header. Reads return the
// document localized to the requested language, or every language when none
// is given. Storage is pluggable: MemoryStorage for tests and local runs, the
// mongo Repository in production.
//
//	r.Mount("/articles", documents.Router(documents.Options{
//		Schema:    articles,
//		Storage:   documents.NewMemoryStorage(articles),
//		Languages: []string{"de", "en"},
//		Logger:    log,
//	}))
//
// Error responses are JSON objects with an "error" message. Validation
// failures answer 422 and list failing paths under "fields".
package documents

// Package i18n turns selected schema fields into per-language fields and
// moves documents between their raw single-language shape and their stored
// multi-language shape.
//
// A field declared with the "i18n" option, say "title", is replaced by one
// field per configured language ("title.de", "title.en"). Every expansion
// copies the original options; only the default language keeps "required".
// With a default language, "title" stays reachable as a virtual alias of
// "title.<default>". Embedded sub-documents and arrays of sub-documents are
// rewritten the same way.
//
// # Usage
//
// Transform a schema once, before any document is built from it:
//
//	s, err := i18n.Transform(s, i18n.Options{
//		Languages:       []string{"de", "en"},
//		DefaultLanguage: "de",
//	}, i18n.WithLogger(log))
//	if err != nil {
//		log.Fatalf("failed to transform schema: %v", err)
//	}
//
// Ingest raw input for one language and merge more languages later:
//
//	doc, err := i18n.InitFromRaw(s, "de", map[string]any{"title": "Hallo"})
//	doc, err = i18n.SetFromRaw(doc, "en", map[string]any{"title": "Hello"})
//
// Project a document onto a single language:
//
//	obj, err := i18n.ToLocalizedObject(doc, "en")
//	// obj["title"] == "Hello"
//
// Localization plans are compiled per schema on first use, cached on the
// schema and safe for concurrent use. A language without a value yields nil;
// there is no fallback.
//
// # HTTP
//
// Middleware stores the request language in the request context. The
// default extractor reads the "lang" query parameter, then Content-Language:
//
//	r.Use(i18n.Middleware(i18n.DefaultLangExtractor(
//		i18n.WithSupportedLanguages("de", "en"),
//	)))
//
// A code outside the supported languages is answered with 400. Region
// variants are not reduced to their base language.
//
// # Error Handling
//
// All configuration problems match ErrConfiguration:
//
//	if errors.Is(err, i18n.ErrConfiguration) {
//		// invalid options or missing language
//	}
//
// Transform validates and plans the complete rewrite before it changes any
// schema, so a failing call leaves the schema as it was.
package i18n

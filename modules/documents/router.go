package documents

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/platdesign/i18ngoose/pkg/i18n"
	"github.com/platdesign/i18ngoose/pkg/logger"
	"github.com/platdesign/i18ngoose/pkg/schema"
)

// Options configures the documents router.
type Options struct {
	// Schema is the transformed schema of the served documents. Required.
	Schema *schema.Schema
	// Storage persists documents. Required.
	Storage Storage
	// Languages lists the accepted language codes. Empty accepts any code.
	Languages []string
	// LangExtractor reads the request language. Defaults to the "lang" query
	// parameter, then the Content-Language header, limited to Languages.
	LangExtractor i18n.LangExtractor
	// Logger receives request failures. Defaults to a discard logger.
	Logger *slog.Logger
	// MaxBodySize limits request bodies in bytes. Defaults to 1 MiB.
	MaxBodySize int64
}

// Router serves the documents of one schema.
//
//	POST   /?lang=de     ingest a raw document, 201 {"id": ...}
//	GET    /{id}?lang=de localized document, or every language without lang
//	PUT    /{id}?lang=de merge a raw document into one language
//	DELETE /{id}         remove a document
//
// Example:
//
//	r := chi.NewRouter()
//	r.Mount("/articles", documents.Router(documents.Options{
//		Schema:    articles,
//		Storage:   mongo.NewRepository(db, "articles", articles),
//		Languages: []string{"de", "en"},
//	}))
func Router(opts Options) chi.Router {
	if opts.Schema == nil || opts.Storage == nil {
		panic("documents.Router: schema and storage are required")
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = 1 << 20
	}
	if opts.LangExtractor == nil {
		opts.LangExtractor = i18n.DefaultLangExtractor(i18n.WithSupportedLanguages(opts.Languages...))
	}

	h := &handler{
		schema:  opts.Schema,
		storage: opts.Storage,
		logger:  opts.Logger.With(logger.Component("documents")),
		maxBody: opts.MaxBodySize,
	}

	r := chi.NewRouter()
	r.Use(languageMiddleware(opts.LangExtractor))
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
	})
	r.Post("/", h.create)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.get)
		r.Put("/", h.update)
		r.Delete("/", h.delete)
	})
	return r
}

package i18n

import (
	"net/http"
)

// ErrorHandler answers a request whose language could not be accepted.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type middlewareConfig struct {
	errorHandler ErrorHandler
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

// WithErrorHandler replaces the default plain-text 400 response.
func WithErrorHandler(fn ErrorHandler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.errorHandler = fn
		}
	}
}

// Middleware returns an HTTP middleware that determines the request language
// and stores it in the request context with WithLanguage.
//
// If no extractor is provided, DefaultLangExtractor is used. A request that
// names no language passes through without one; handlers decide whether a
// language is required. An extractor error is answered by the error handler
// and the request stops there.
func Middleware(extr LangExtractor, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if extr == nil {
		extr = DefaultLangExtractor()
	}

	cfg := &middlewareConfig{
		errorHandler: func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang, err := extr(r)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}
			if lang == "" {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithLanguage(r.Context(), lang)))
		})
	}
}

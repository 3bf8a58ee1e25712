package i18n_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/platdesign/i18ngoose/pkg/i18n"
)

func TestWithLanguage(t *testing.T) {
	t.Parallel()

	ctx := i18n.WithLanguage(context.Background(), "de")
	lang, ok := i18n.LanguageFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "de", lang)

	lang, ok = i18n.LanguageFromContext(context.Background())
	assert.False(t, ok, "no fallback language")
	assert.Empty(t, lang)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	serve := func(mw func(http.Handler) http.Handler, target string) (*httptest.ResponseRecorder, string, bool) {
		var (
			got    string
			called bool
		)
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			got, _ = i18n.LanguageFromContext(r.Context())
		})
		rec := httptest.NewRecorder()
		mw(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec, got, called
	}

	t.Run("stores the language", func(t *testing.T) {
		t.Parallel()
		mw := i18n.Middleware(i18n.DefaultLangExtractor(i18n.WithSupportedLanguages("de", "en")))

		rec, lang, called := serve(mw, "/?lang=EN")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
		assert.Equal(t, "en", lang)
	})

	t.Run("no language passes through without a fallback", func(t *testing.T) {
		t.Parallel()
		mw := i18n.Middleware(nil)

		rec, lang, called := serve(mw, "/")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
		assert.Empty(t, lang)
	})

	t.Run("unsupported language is rejected", func(t *testing.T) {
		t.Parallel()
		mw := i18n.Middleware(i18n.DefaultLangExtractor(i18n.WithSupportedLanguages("de")))

		rec, _, called := serve(mw, "/?lang=en")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, called)
		assert.Contains(t, rec.Body.String(), "unsupported language")
	})

	t.Run("custom error handler", func(t *testing.T) {
		t.Parallel()
		var handled error
		mw := i18n.Middleware(
			i18n.DefaultLangExtractor(i18n.WithSupportedLanguages("de")),
			i18n.WithErrorHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
				handled = err
				w.WriteHeader(http.StatusTeapot)
			}),
		)

		rec, _, called := serve(mw, "/?lang=fr")
		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.False(t, called)
		assert.ErrorIs(t, handled, i18n.ErrUnsupportedLanguage)
	})

	t.Run("custom extractor", func(t *testing.T) {
		t.Parallel()
		mw := i18n.Middleware(func(*http.Request) (string, error) { return "de", nil })

		_, lang, _ := serve(mw, "/?lang=en")
		assert.Equal(t, "de", lang)
	})
}

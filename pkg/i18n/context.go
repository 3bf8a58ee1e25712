package i18n

import (
	"context"
)

type languageContextKey struct{}

// WithLanguage stores the language code for the current operation in ctx.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, languageContextKey{}, lang)
}

// LanguageFromContext returns the language stored with WithLanguage.
// There is no fallback: an unset language reports false.
func LanguageFromContext(ctx context.Context) (string, bool) {
	lang, _ := ctx.Value(languageContextKey{}).(string)
	return lang, lang != ""
}

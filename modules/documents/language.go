package documents

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/platdesign/i18ngoose/pkg/i18n"
	"github.com/platdesign/i18ngoose/pkg/logger"
)

// languageMiddleware resolves the request language with extr and answers
// rejected codes with a JSON 400.
func languageMiddleware(extr i18n.LangExtractor) func(http.Handler) http.Handler {
	return i18n.Middleware(extr, i18n.WithErrorHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
		writeError(w, http.StatusBadRequest, err)
	}))
}

// LanguageExtractor adds the request language to log records.
func LanguageExtractor(ctx context.Context) (slog.Attr, bool) {
	lang, ok := i18n.LanguageFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.Language(lang), true
}

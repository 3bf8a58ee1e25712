package i18n

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// Options configures which language slots translatable fields are expanded into.
// The env tags allow loading it with the config package.
type Options struct {
	// Languages lists the language codes in expansion order. Required.
	Languages []string `env:"I18N_LANGUAGES" envSeparator:","`
	// DefaultLanguage optionally names one of Languages. It keeps the
	// required flag of translatable fields and backs an alias at the
	// original field path.
	DefaultLanguage string `env:"I18N_DEFAULT_LANGUAGE"`
}

// Validate reports the first configuration problem, if any.
func (o Options) Validate() error {
	if len(o.Languages) == 0 {
		return ErrNoLanguages
	}
	for i, lang := range o.Languages {
		if lang == "" || strings.Contains(lang, ".") {
			return fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
		}
		if slices.Contains(o.Languages[:i], lang) {
			return fmt.Errorf("%w: %q", ErrDuplicateLanguage, lang)
		}
	}
	if o.DefaultLanguage != "" && !slices.Contains(o.Languages, o.DefaultLanguage) {
		return fmt.Errorf("%w: %q", ErrUnknownDefaultLanguage, o.DefaultLanguage)
	}
	return nil
}

// Option is a function that configures a Plugin.
type Option func(*Plugin)

// WithLogger provides a logger for schema transformation events.
// If not specified, a discard logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plugin) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

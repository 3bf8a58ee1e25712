package i18n

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// maxLangCodeLength is the maximum allowed length for a language code
const maxLangCodeLength = 35 // RFC 5646 recommends 35 characters max

// LangExtractor reads the language a request names. An empty code with a nil
// error means the request names no language.
type LangExtractor func(r *http.Request) (string, error)

// langValidator validates and normalizes language codes
type langValidator struct {
	supportedLangs []string
}

// newLangValidator creates a language validator with normalized supported languages
func newLangValidator(supportedLangs []string) *langValidator {
	normalized := make([]string, len(supportedLangs))
	for i, lang := range supportedLangs {
		normalized[i] = strings.ToLower(lang)
	}
	return &langValidator{supportedLangs: normalized}
}

// validate normalizes lang and checks it against the supported languages.
// Codes are matched exactly; "de-at" does not match "de".
func (v *langValidator) validate(lang string) (string, error) {
	// Oversized codes are treated as absent
	if lang == "" || len(lang) > maxLangCodeLength {
		return "", nil
	}

	normalizedLang := strings.ToLower(lang)
	if len(v.supportedLangs) == 0 || slices.Contains(v.supportedLangs, normalizedLang) {
		return normalizedLang, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, normalizedLang)
}

// ExtractorConfig holds configuration for the language extractor
type ExtractorConfig struct {
	QueryParamName string
	Headers        []string
	SupportedLangs []string
}

// ExtractorOption configures the language extractor
type ExtractorOption func(*ExtractorConfig)

// WithQueryParamName sets the query parameter name to check for language.
func WithQueryParamName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name == "" {
			return
		}
		c.QueryParamName = name
	}
}

// WithHeaders replaces the headers checked for language, in priority order.
func WithHeaders(names ...string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if len(names) == 0 {
			return
		}
		c.Headers = names
	}
}

// WithSupportedLanguages sets the list of supported languages for validation
func WithSupportedLanguages(langs ...string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if len(langs) == 0 {
			return
		}
		c.SupportedLangs = langs
	}
}

// DefaultLangExtractor creates a language extractor that checks its sources in priority order:
// 1. Query parameter (default name: "lang")
// 2. Headers (default: Content-Language)
//
// The first source carrying a code decides. A code outside SupportedLangs is
// reported as ErrUnsupportedLanguage; later sources are not consulted and no
// other language is substituted.
func DefaultLangExtractor(opts ...ExtractorOption) LangExtractor {
	config := &ExtractorConfig{
		QueryParamName: "lang",
		Headers:        []string{"Content-Language"},
	}

	for _, opt := range opts {
		opt(config)
	}

	validator := newLangValidator(config.SupportedLangs)

	return func(r *http.Request) (string, error) {
		if config.QueryParamName != "" {
			if lang := strings.TrimSpace(r.URL.Query().Get(config.QueryParamName)); lang != "" {
				return validator.validate(lang)
			}
		}

		for _, name := range config.Headers {
			if lang := strings.TrimSpace(r.Header.Get(name)); lang != "" {
				return validator.validate(lang)
			}
		}

		return "", nil
	}
}

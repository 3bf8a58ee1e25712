package i18n

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every error caused by invalid plugin options
// or a missing language argument. These errors are reported before any
// schema or document is touched.
var ErrConfiguration = errors.New("i18n: configuration error")

var (
	ErrNoLanguages            = fmt.Errorf("%w: at least one language is required", ErrConfiguration)
	ErrInvalidLanguage        = fmt.Errorf("%w: invalid language code", ErrConfiguration)
	ErrDuplicateLanguage      = fmt.Errorf("%w: duplicate language code", ErrConfiguration)
	ErrUnknownDefaultLanguage = fmt.Errorf("%w: default language is not one of the languages", ErrConfiguration)
	ErrNestedTranslatable     = fmt.Errorf("%w: only scalar fields can be translatable", ErrConfiguration)
	ErrAlreadyTransformed     = fmt.Errorf("%w: schema is already transformed", ErrConfiguration)
	ErrNilSchema              = fmt.Errorf("%w: nil schema", ErrConfiguration)
	ErrLanguageRequired       = fmt.Errorf("%w: language code is required", ErrConfiguration)
	ErrNilDocument            = fmt.Errorf("%w: nil document", ErrConfiguration)
)

// ErrUnsupportedLanguage reports a request naming a language outside the
// supported set.
var ErrUnsupportedLanguage = errors.New("i18n: unsupported language")

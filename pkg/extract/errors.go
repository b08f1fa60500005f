package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is returned when required text or language is missing.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnsupportedLanguage is returned when no locale serves the language.
	// It wraps ErrMalformedInput.
	ErrUnsupportedLanguage = fmt.Errorf("%w: unsupported language", ErrMalformedInput)
)

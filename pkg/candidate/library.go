package candidate

import (
	"strings"
	"time"
)

// Settings carries the per-call parse configuration handed to the date
// library.
type Settings struct {
	// Locale is a language tag with optional region ("en-US", "de").
	Locale string

	// Languages restricts parsing to these language codes. Empty means the
	// library may detect the language itself.
	Languages []string

	// BaseDate fills components missing from partial dates ("June 1").
	BaseDate time.Time
}

// Language returns the primary language subtag of the locale.
func (s Settings) Language() string {
	return LanguageOf(s.Locale)
}

// LanguageOf strips the region from a language tag: "de-AT" becomes "de".
func LanguageOf(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		return tag[:i]
	}
	return tag
}

// SearchResult is one date phrase found by the library's phrase search.
type SearchResult struct {
	Text string
	Date time.Time
}

// Library is the external date-parsing collaborator.
// Implementations must be safe for concurrent use.
type Library interface {
	// Parse resolves one date expression.
	Parse(text string, settings Settings) (time.Time, error)

	// Search finds date phrases in free text.
	Search(text string, settings Settings) ([]SearchResult, error)
}

// SecondOpinion is a stricter general-purpose parser consulted to catch
// strings the lenient library misreads.
type SecondOpinion interface {
	Parse(text string, base time.Time) (time.Time, error)
}

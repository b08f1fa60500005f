package types

import (
	"time"
)

// ParsedDate is a resolved date or datetime together with the text it was
// parsed from and that text's byte offsets in the source.
type ParsedDate struct {
	Value time.Time
	// HasTimezone is set when a timezone token was re-attached to Value.
	HasTimezone bool
	Text        string
	Start       int
	End         int
}

// DateAnnotation is one accepted date found in a document.
//
// Start and End are codepoint offsets into the original input so that
// []rune(text)[Start:End] == Source. ByteStart and ByteEnd address the same
// span in the UTF-8 string.
type DateAnnotation struct {
	Start     int       `json:"location_start"`
	End       int       `json:"location_end"`
	ByteStart int       `json:"-"`
	ByteEnd   int       `json:"-"`
	Value     time.Time `json:"value"`
	Source    string    `json:"source"`

	// Probability is the classifier score when the ML gate was applied.
	Probability *float64 `json:"probability,omitempty"`
}

// Overlaps reports whether two annotations share at least one byte.
func (a DateAnnotation) Overlaps(other DateAnnotation) bool {
	return a.ByteStart < other.ByteEnd && other.ByteStart < a.ByteEnd
}

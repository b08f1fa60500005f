package candidate

import (
	"regexp"
	"sort"
	"strings"

	"github.com/coolbeans/lexdate/pkg/lexer"
	"github.com/coolbeans/lexdate/pkg/types"
)

// DefaultFillers are the words removed by the token-replacement strategy
// when a locale does not provide its own list.
var DefaultFillers = []string{
	"standard", "daylight", "savings", "time", "date", "dated", "by", "due",
	"on", "to", "of", "at", "and", "the", "during", "until", "between", "through",
}

// ordinalPattern splits an ordinal token into its digits and suffix.
var ordinalPattern = regexp.MustCompile(`(?i)^(\d+)(?:st|nd|rd|th)$`)

// FillerTable builds the base replacement table mapping every filler word
// to the empty string.
func FillerTable(fillers []string) map[string]string {
	table := make(map[string]string, len(fillers))
	for _, filler := range fillers {
		table[normalizeKey(filler)] = ""
	}
	return table
}

// Replacements merges a base table with per-candidate entries into a new
// map. Entries in extra win. Neither input is modified.
func Replacements(base, extra map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(extra))
	for key, value := range base {
		merged[normalizeKey(key)] = value
	}
	for key, value := range extra {
		merged[normalizeKey(key)] = value
	}
	return merged
}

// candidateReplacements computes the per-candidate entries: ordinal digit
// tokens lose their suffix and captured timezones are removed so they can
// be re-attached after parsing.
func candidateReplacements(captures lexer.Captures) map[string]string {
	extra := make(map[string]string)
	for _, modifier := range captures.Get(lexer.GroupDigitsModifier) {
		if match := ordinalPattern.FindStringSubmatch(modifier); match != nil {
			extra[modifier] = match[1]
		}
	}
	for _, zone := range captures.Get(lexer.GroupTimezones) {
		extra[zone] = ""
		extra[types.CanonicalTimezone(zone)] = ""
	}
	return extra
}

// ReplaceWords substitutes every whole-word occurrence of a table key,
// matching case-insensitively. Keys never match inside a longer word, so
// "to" in "October" survives.
func ReplaceWords(text string, table map[string]string) string {
	if len(table) == 0 || text == "" {
		return text
	}

	keys := make([]string, 0, len(table))
	for key := range table {
		if key != "" {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	quoted := make([]string, len(keys))
	for i, key := range keys {
		words := strings.Fields(key)
		for j, word := range words {
			words[j] = regexp.QuoteMeta(word)
		}
		quoted[i] = strings.Join(words, `\s+`)
	}
	pattern, err := regexp.Compile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	if err != nil {
		return text
	}

	return pattern.ReplaceAllStringFunc(text, func(match string) string {
		if replacement, ok := table[normalizeKey(match)]; ok {
			return replacement
		}
		return match
	})
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.Join(strings.Fields(key), " "))
}

// pickTimezone applies the documented tie-break for candidates carrying
// several timezone tokens: the lexicographically last one wins.
func pickTimezone(zones []string) (string, bool) {
	if len(zones) == 0 {
		return "", false
	}
	sorted := append([]string{}, zones...)
	sort.Strings(sorted)
	return sorted[len(sorted)-1], true
}

// Package lexer splits free text into date-related tokens and coalesces runs
// of recognized tokens into date-candidate fragments.
//
// The tokenizer is gap-filling: concatenating the Text of every token it
// returns reproduces the input exactly. Fragments carry byte offsets into the
// text they were built from.
package lexer

// Group classifies a token or a capture inside a token.
type Group int

const (
	// GroupGap marks unclassified text between recognized tokens.
	GroupGap Group = iota
	GroupTime
	GroupDigitsModifier
	GroupDigits
	GroupDays
	GroupMonths
	GroupAbbreviations
	GroupDelimiters
	GroupExtraTokens
	GroupTimezones
	GroupTimePeriods
	GroupHours
	GroupMinutes
	GroupSeconds
	GroupMicroseconds

	numGroups
)

// groupNames maps groups to the names used in regex capture groups and output.
var groupNames = [...]string{
	GroupGap:            "",
	GroupTime:           "time",
	GroupDigitsModifier: "digits_modifier",
	GroupDigits:         "digits",
	GroupDays:           "days",
	GroupMonths:         "months",
	GroupAbbreviations:  "abbreviations",
	GroupDelimiters:     "delimiters",
	GroupExtraTokens:    "extra_tokens",
	GroupTimezones:      "timezones",
	GroupTimePeriods:    "time_periods",
	GroupHours:          "hours",
	GroupMinutes:        "minutes",
	GroupSeconds:        "seconds",
	GroupMicroseconds:   "microseconds",
}

// tokenGroupPriority is the order in which a token's captures are inspected
// to decide its group. The first group with a non-empty capture wins.
var tokenGroupPriority = [...]Group{
	GroupTime,
	GroupDigitsModifier,
	GroupDigits,
	GroupDays,
	GroupMonths,
	GroupAbbreviations,
	GroupDelimiters,
	GroupExtraTokens,
}

// String returns the capture name of the group, or "gap".
func (g Group) String() string {
	if g == GroupGap {
		return "gap"
	}
	if int(g) > 0 && int(g) < len(groupNames) {
		return groupNames[g]
	}
	return "unknown"
}

// Counted reports whether a token of this group counts toward a fragment's
// match total.
func (g Group) Counted() bool {
	return g != GroupGap && g != GroupDelimiters && g != GroupAbbreviations
}

// AllGroups returns every known non-gap group.
func AllGroups() []Group {
	groups := make([]Group, 0, numGroups-1)
	for g := GroupTime; g < numGroups; g++ {
		groups = append(groups, g)
	}
	return groups
}

// groupByName resolves a capture name back to its group.
func groupByName(name string) (Group, bool) {
	for g := GroupTime; g < numGroups; g++ {
		if groupNames[g] == name {
			return g, true
		}
	}
	return GroupGap, false
}

// Captures holds the strings captured for every known group. Every group is
// always present; Get never returns nil.
type Captures struct {
	values [numGroups][]string
}

// Add appends a captured string to a group.
func (c *Captures) Add(group Group, value string) {
	if group <= GroupGap || group >= numGroups {
		return
	}
	c.values[group] = append(c.values[group], value)
}

// Get returns the captures of a group. The result is an empty, non-nil slice
// when nothing was captured.
func (c Captures) Get(group Group) []string {
	if group <= GroupGap || group >= numGroups || c.values[group] == nil {
		return []string{}
	}
	return c.values[group]
}

// Count returns how many strings were captured for a group.
func (c Captures) Count(group Group) int {
	if group <= GroupGap || group >= numGroups {
		return 0
	}
	return len(c.values[group])
}

// Merge appends every capture of other onto c.
func (c *Captures) Merge(other Captures) {
	for g := GroupTime; g < numGroups; g++ {
		if len(other.values[g]) > 0 {
			c.values[g] = append(c.values[g], other.values[g]...)
		}
	}
}

// Clone returns a deep copy that shares no backing arrays with c.
func (c Captures) Clone() Captures {
	var out Captures
	for g := GroupTime; g < numGroups; g++ {
		out.values[g] = append([]string{}, c.values[g]...)
	}
	return out
}

// Map returns the captures keyed by group name, with an entry for every
// known group.
func (c Captures) Map() map[string][]string {
	out := make(map[string][]string, numGroups-1)
	for g := GroupTime; g < numGroups; g++ {
		out[groupNames[g]] = c.Get(g)
	}
	return out
}

// resolveGroup picks the token group from its captures using the fixed
// priority order.
func resolveGroup(c Captures) Group {
	for _, g := range tokenGroupPriority {
		if len(c.values[g]) > 0 {
			return g
		}
	}
	return GroupGap
}

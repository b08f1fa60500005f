package types

import (
	"sort"
	"strings"
)

// timezoneAbbreviations maps canonical abbreviations to fixed offsets.
var timezoneAbbreviations = map[string]Timezone{
	"UTC":  {Kind: TimezoneUTC, Name: "UTC"},
	"GMT":  {Kind: TimezoneUTC, Name: "GMT"},
	"Z":    {Kind: TimezoneUTC, Name: "Z"},
	"EST":  {Kind: TimezoneOffset, Hours: -5, Name: "EST"},
	"EDT":  {Kind: TimezoneOffset, Hours: -4, Name: "EDT"},
	"CST":  {Kind: TimezoneOffset, Hours: -6, Name: "CST"},
	"CDT":  {Kind: TimezoneOffset, Hours: -5, Name: "CDT"},
	"MST":  {Kind: TimezoneOffset, Hours: -7, Name: "MST"},
	"MDT":  {Kind: TimezoneOffset, Hours: -6, Name: "MDT"},
	"PST":  {Kind: TimezoneOffset, Hours: -8, Name: "PST"},
	"PDT":  {Kind: TimezoneOffset, Hours: -7, Name: "PDT"},
	"AKST": {Kind: TimezoneOffset, Hours: -9, Name: "AKST"},
	"AKDT": {Kind: TimezoneOffset, Hours: -8, Name: "AKDT"},
	"HST":  {Kind: TimezoneOffset, Hours: -10, Name: "HST"},
	"WET":  {Kind: TimezoneOffset, Hours: 0, Name: "WET"},
	"WEST": {Kind: TimezoneOffset, Hours: 1, Name: "WEST"},
	"BST":  {Kind: TimezoneOffset, Hours: 1, Name: "BST"},
	"CET":  {Kind: TimezoneOffset, Hours: 1, Name: "CET"},
	"CEST": {Kind: TimezoneOffset, Hours: 2, Name: "CEST"},
	"MEZ":  {Kind: TimezoneOffset, Hours: 1, Name: "MEZ"},
	"MESZ": {Kind: TimezoneOffset, Hours: 2, Name: "MESZ"},
	"EET":  {Kind: TimezoneOffset, Hours: 2, Name: "EET"},
	"EEST": {Kind: TimezoneOffset, Hours: 3, Name: "EEST"},
	"MSK":  {Kind: TimezoneOffset, Hours: 3, Name: "MSK"},
	"IST":  {Kind: TimezoneOffset, Hours: 5, Minutes: 30, Name: "IST"},
	"JST":  {Kind: TimezoneOffset, Hours: 9, Name: "JST"},
	"KST":  {Kind: TimezoneOffset, Hours: 9, Name: "KST"},
	"AWST": {Kind: TimezoneOffset, Hours: 8, Name: "AWST"},
	"ACST": {Kind: TimezoneOffset, Hours: 9, Minutes: 30, Name: "ACST"},
	"AEST": {Kind: TimezoneOffset, Hours: 10, Name: "AEST"},
	"AEDT": {Kind: TimezoneOffset, Hours: 11, Name: "AEDT"},
	"NZST": {Kind: TimezoneOffset, Hours: 12, Name: "NZST"},
	"NZDT": {Kind: TimezoneOffset, Hours: 13, Name: "NZDT"},
}

// timezoneNames maps spelled-out timezone names to their abbreviation.
var timezoneNames = map[string]string{
	"coordinated universal time":   "UTC",
	"greenwich mean time":          "GMT",
	"eastern standard time":        "EST",
	"eastern daylight time":        "EDT",
	"central standard time":        "CST",
	"central daylight time":        "CDT",
	"mountain standard time":       "MST",
	"mountain daylight time":       "MDT",
	"pacific standard time":        "PST",
	"pacific daylight time":        "PDT",
	"alaska standard time":         "AKST",
	"hawaii standard time":         "HST",
	"british summer time":          "BST",
	"central european time":        "CET",
	"central european summer time": "CEST",
	"eastern european time":        "EET",
	"japan standard time":          "JST",
}

// TimezoneAbbreviations returns every known abbreviation, sorted.
func TimezoneAbbreviations() []string {
	out := make([]string, 0, len(timezoneAbbreviations))
	for abbr := range timezoneAbbreviations {
		if len(abbr) > 1 {
			out = append(out, abbr)
		}
	}
	sort.Strings(out)
	return out
}

// TimezoneNames returns every known spelled-out timezone name in title case
// as it usually appears in documents, sorted.
func TimezoneNames() []string {
	out := make([]string, 0, len(timezoneNames))
	for name := range timezoneNames {
		words := strings.Fields(name)
		for i, word := range words {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
		out = append(out, strings.Join(words, " "))
	}
	sort.Strings(out)
	return out
}

// CanonicalTimezone maps a timezone token (abbreviation or spelled-out name)
// to its canonical abbreviation. Unknown tokens are returned unchanged.
func CanonicalTimezone(token string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(token), " "))
	if abbr, ok := timezoneNames[normalized]; ok {
		return abbr
	}
	return strings.ToUpper(strings.TrimSpace(token))
}

// LookupTimezone resolves a timezone token to a Timezone. Abbreviations and
// spelled-out names use the built-in table; anything else is tried as an
// IANA zone name.
func LookupTimezone(token string) (Timezone, bool) {
	if strings.TrimSpace(token) == "" {
		return Timezone{}, false
	}
	abbr := CanonicalTimezone(token)
	if tz, ok := timezoneAbbreviations[abbr]; ok {
		return tz, true
	}
	candidate := Timezone{Kind: TimezoneNamed, Name: strings.TrimSpace(token)}
	if _, err := candidate.Location(); err != nil {
		return Timezone{}, false
	}
	return candidate, true
}

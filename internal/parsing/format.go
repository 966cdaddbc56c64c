package parsing

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	toSeparator     = regexp.MustCompile(`(?i)\s+to\s+`)
	dashSeparator   = regexp.MustCompile(`\s*-\s*`)
	openEndedPeriod = regexp.MustCompile(` - [^0-9]*$`)

	missingStateComma = regexp.MustCompile(`^([A-Za-z\s]+)\s+([A-Z]{2})$`)
	commaSpacing      = regexp.MustCompile(`\s*,\s*`)
	altSeparator      = regexp.MustCompile(`\s*[-|]\s*`)

	bulletPrefix = regexp.MustCompile(`^\s*[-*\x{2022}\x{2023}\x{25E6}\x{2043}\x{2219}\x{00B7}]+`)
)

var monthAbbreviations = strings.NewReplacer(
	"January", "Jan", "February", "Feb", "March", "Mar", "April", "Apr",
	"June", "Jun", "July", "Jul", "August", "Aug", "September", "Sep",
	"October", "Oct", "November", "Nov", "December", "Dec",
)

// stateCodes maps US state names to postal codes
var stateCodes = []struct{ name, code string }{
	{"Alabama", "AL"}, {"Alaska", "AK"}, {"Arizona", "AZ"}, {"Arkansas", "AR"},
	{"California", "CA"}, {"Colorado", "CO"}, {"Connecticut", "CT"}, {"Delaware", "DE"},
	{"Florida", "FL"}, {"Georgia", "GA"}, {"Hawaii", "HI"}, {"Idaho", "ID"},
	{"Illinois", "IL"}, {"Indiana", "IN"}, {"Iowa", "IA"}, {"Kansas", "KS"},
	{"Kentucky", "KY"}, {"Louisiana", "LA"}, {"Maine", "ME"}, {"Maryland", "MD"},
	{"Massachusetts", "MA"}, {"Michigan", "MI"}, {"Minnesota", "MN"}, {"Mississippi", "MS"},
	{"Missouri", "MO"}, {"Montana", "MT"}, {"Nebraska", "NE"}, {"Nevada", "NV"},
	{"New Hampshire", "NH"}, {"New Jersey", "NJ"}, {"New Mexico", "NM"}, {"New York", "NY"},
	{"North Carolina", "NC"}, {"North Dakota", "ND"}, {"Ohio", "OH"}, {"Oklahoma", "OK"},
	{"Oregon", "OR"}, {"Pennsylvania", "PA"}, {"Rhode Island", "RI"}, {"South Carolina", "SC"},
	{"South Dakota", "SD"}, {"Tennessee", "TN"}, {"Texas", "TX"}, {"Utah", "UT"},
	{"Vermont", "VT"}, {"West Virginia", "WV"}, {"Virginia", "VA"}, {"Washington", "WA"},
	{"Wisconsin", "WI"}, {"Wyoming", "WY"},
}

var statePatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(stateCodes))
	for i, s := range stateCodes {
		patterns[i] = regexp.MustCompile(`(?i),\s*` + regexp.QuoteMeta(s.name) + `$`)
	}
	return patterns
}()

// NormalizeWorkPeriod rewrites a date range into "Mon YYYY - Mon YYYY" form:
// dashes unified, "to" replaced, month names abbreviated, and an end without
// any digits becomes "Till Date".
func NormalizeWorkPeriod(period string) string {
	if period == "" {
		return ""
	}

	normalized := strings.NewReplacer("–", "-", "—", "-").Replace(period)
	normalized = toSeparator.ReplaceAllString(normalized, " - ")
	normalized = dashSeparator.ReplaceAllString(normalized, " - ")
	normalized = monthAbbreviations.Replace(normalized)
	if openEndedPeriod.MatchString(normalized) {
		normalized = openEndedPeriod.ReplaceAllString(normalized, " - Till Date")
	}

	return strings.TrimSpace(normalized)
}

// NormalizeLocation rewrites a location into "City, ST" or "City, Country" form.
func NormalizeLocation(location string) string {
	if location == "" {
		return ""
	}

	normalized := strings.Join(strings.Fields(location), " ")
	for i, pattern := range statePatterns {
		normalized = pattern.ReplaceAllString(normalized, ", "+stateCodes[i].code)
	}
	normalized = missingStateComma.ReplaceAllString(normalized, "$1, $2")
	normalized = commaSpacing.ReplaceAllString(normalized, ", ")
	if !strings.Contains(normalized, ",") {
		normalized = altSeparator.ReplaceAllString(normalized, ", ")
	}

	return strings.TrimSpace(normalized)
}

// StripBulletPrefix removes leading bullet glyphs ("•", "-", "*", "--", ...)
// from a line. A glyph is only stripped when followed by whitespace or a
// letter or digit, so "-5%" loses its dash but "->" is kept.
func StripBulletPrefix(text string) string {
	stripped := text
	for {
		loc := bulletPrefix.FindStringIndex(stripped)
		if loc == nil {
			break
		}
		rest := stripped[loc[1]:]
		r, _ := utf8.DecodeRuneInString(rest)
		if rest == "" || !(unicode.IsSpace(r) || isASCIIAlnum(r)) {
			break
		}
		stripped = strings.TrimLeftFunc(rest, unicode.IsSpace)
	}
	return strings.TrimLeftFunc(stripped, unicode.IsSpace)
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

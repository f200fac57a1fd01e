// Package normalize provides the shared transaction-normalization utilities
// used by every bank parser: calendar conversion for Buddhist-era dates, Baht
// amount parsing, running-balance direction inference, and text folding that
// keeps Thai characters intact.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// buddhistEraOffset is the year difference between the Thai Buddhist calendar
// and the Gregorian calendar.
const buddhistEraOffset = 543

// DateConverter normalizes bank-local date renderings to Gregorian dates.
// The zero value is not usable; construct with NewDateConverter.
type DateConverter struct {
	// TwoDigitBuddhistCutoff decides how a two-digit year is expanded. Years
	// at or above the cutoff are read as Buddhist ("68" -> 2568 BE -> 2025),
	// years below it as 20xx Gregorian ("25" -> 2025). Thai statements in
	// circulation today cluster around BE 2560-2579 vs CE 2020-2039, so the
	// default of 60 separates them cleanly.
	TwoDigitBuddhistCutoff int
}

// DefaultTwoDigitBuddhistCutoff is the standard cutoff for two-digit years.
const DefaultTwoDigitBuddhistCutoff = 60

// NewDateConverter returns a converter with the given two-digit-year cutoff.
// A cutoff <= 0 selects the default.
func NewDateConverter(cutoff int) DateConverter {
	if cutoff <= 0 {
		cutoff = DefaultTwoDigitBuddhistCutoff
	}
	return DateConverter{TwoDigitBuddhistCutoff: cutoff}
}

// GregorianYear expands a source year to a four-digit Gregorian year.
// Four-digit years >= 2400 are Buddhist and shifted back 543 years; two-digit
// years follow the cutoff rule. Already-Gregorian four-digit years pass
// through unchanged, so the conversion is idempotent.
func (c DateConverter) GregorianYear(year int) int {
	switch {
	case year >= 2400:
		return year - buddhistEraOffset
	case year >= 100:
		return year
	case year >= c.TwoDigitBuddhistCutoff:
		return 2500 + year - buddhistEraOffset
	default:
		return 2000 + year
	}
}

// Date builds a normalized Gregorian date from source day/month/year parts.
func (c DateConverter) Date(day, month, year int) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month %d out of range", month)
	}
	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day %d out of range", day)
	}
	return time.Date(c.GregorianYear(year), time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

var dmyRe = regexp.MustCompile(`^(\d{1,2})([/-])(\d{1,2})[/-](\d{2,4})$`)

// ParseDMY parses "DD/MM/YY", "DD-MM-YY" and their four-digit-year variants,
// normalizing the year to Gregorian.
func (c DateConverter) ParseDMY(s string) (time.Time, error) {
	m := dmyRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[3])
	year, _ := strconv.Atoi(m[4])
	return c.Date(day, month, year)
}

// ThaiMonths maps the abbreviated Thai month names used by TTB statements to
// month numbers.
var ThaiMonths = map[string]time.Month{
	"ม.ค.":  time.January,
	"ก.พ.":  time.February,
	"มี.ค.": time.March,
	"เม.ย.": time.April,
	"พ.ค.":  time.May,
	"มิ.ย.": time.June,
	"ก.ค.":  time.July,
	"ส.ค.":  time.August,
	"ก.ย.":  time.September,
	"ต.ค.":  time.October,
	"พ.ย.":  time.November,
	"ธ.ค.":  time.December,
}

var thaiDateRe = regexp.MustCompile(`^(\d{1,2})\s+([ก-ฮ]\S+)\s+(\d{2})$`)

// ParseThaiDate parses a Thai-rendered date like "30 ก.ย. 68". The two-digit
// year is Buddhist (68 -> 2568 BE -> 2025 CE).
func (c DateConverter) ParseThaiDate(s string) (time.Time, error) {
	m := thaiDateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("unrecognized Thai date %q", s)
	}
	month, ok := ThaiMonths[m[2]]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown Thai month %q", m[2])
	}
	day, _ := strconv.Atoi(m[1])
	yy, _ := strconv.Atoi(m[3])
	return c.Date(day, int(month), 2500+yy)
}

// IsThaiDate reports whether s looks like a Thai-rendered date.
func IsThaiDate(s string) bool {
	m := thaiDateRe.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	_, ok := ThaiMonths[m[2]]
	return ok
}

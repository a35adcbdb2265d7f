// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// monthNumbers maps English month names and their three-letter
// abbreviations to two-digit month strings.
var monthNumbers = map[string]string{
	"january": "01", "february": "02", "march": "03", "april": "04",
	"may": "05", "june": "06", "july": "07", "august": "08",
	"september": "09", "october": "10", "november": "11", "december": "12",
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"jun": "06", "jul": "07", "aug": "08", "sep": "09",
	"oct": "10", "nov": "11", "dec": "12",
}

var (
	dotNumericRe    = regexp.MustCompile(`(\d{4})\.(\d{1,2})\.(\d{1,2})`)
	dotNumericDMYRe = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`)
	cjkDateRe       = regexp.MustCompile(`(\d{4})\s*年\s*(\d{1,2})\s*月(?:\s*(\d{1,2})\s*日?)?`)
	isoDateRe       = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	monthDayYearRe  = regexp.MustCompile(`([A-Za-z]+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?\s*,?\s+(\d{4})`)
	dayMonthYearRe  = regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]+)\.?\s*,?\s+(\d{4})`)
	numericYMDRe    = regexp.MustCompile(`(\d{4})[-/](\d{1,2})[-/](\d{1,2})`)
	numericMDYRe    = regexp.MustCompile(`(\d{1,2})[-/](\d{1,2})[-/](\d{4})`)
)

// NormalizeDate converts a raw date string into the canonical
// YYYY-MM-DD form. It tries, in order: dot-separated numeric, CJK
// year/month/day (a missing day defaults to the 15th), already-ISO,
// "Month DD, YYYY", "DD Month YYYY" (ordinal suffixes tolerated),
// slash/dash numeric Y-M-D, then slash/dash numeric M-D-Y. It returns
// "" when no form matches; callers must treat "" as unparseable, never
// as an epoch or zero date.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if m := dotNumericRe.FindStringSubmatch(s); m != nil {
		return ymd(m[1], m[2], m[3])
	}
	if m := dotNumericDMYRe.FindStringSubmatch(s); m != nil {
		return ymd(m[3], m[2], m[1])
	}
	if m := cjkDateRe.FindStringSubmatch(s); m != nil {
		day := m[3]
		if day == "" {
			day = "15"
		}
		return ymd(m[1], m[2], day)
	}
	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		return ymd(m[1], m[2], m[3])
	}
	if m := monthDayYearRe.FindStringSubmatch(s); m != nil {
		if month, ok := monthNumbers[strings.ToLower(m[1])]; ok {
			return ymd(m[3], month, m[2])
		}
	}
	if m := dayMonthYearRe.FindStringSubmatch(s); m != nil {
		if month, ok := monthNumbers[strings.ToLower(m[2])]; ok {
			return ymd(m[3], month, m[1])
		}
	}
	if m := numericYMDRe.FindStringSubmatch(s); m != nil {
		return ymd(m[1], m[2], m[3])
	}
	if m := numericMDYRe.FindStringSubmatch(s); m != nil {
		return ymd(m[3], m[1], m[2])
	}

	return ""
}

// ymd assembles a zero-padded YYYY-MM-DD string, rejecting impossible
// month or day values.
func ymd(year, month, day string) string {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return ""
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return ""
	}
	return fmt.Sprintf("%s-%02d-%02d", year, m, d)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dates finds and classifies paper lifecycle dates (received,
// revised, accepted, available online) inside blocks of raw text, and
// normalizes every accepted date to YYYY-MM-DD.
package dates

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/meshintel/paper-verifier/pkg/types"
)

// contextWindow is how much text after a keyword occurrence is searched
// for a date.
const contextWindow = 200

// maxOtherDates caps the unclassified date list.
const maxOtherDates = 5

// Keyword phrases per slot. Revised must be scanned before received:
// "Received in revised form" contains "Received".
var (
	receivedKeywords = []string{
		"Received", "Received date", "Received:", "Submitted",
		"Submitted on", "Submission date",
	}
	revisedKeywords = []string{
		"Received in revised form", "in revised form", "revised form",
		"Revised", "Revised:", "Received in revised",
	}
	acceptedKeywords = []string{
		"Accepted", "Accepted date", "Accepted:", "Acceptance date",
	}
	availableOnlineKeywords = []string{
		"Available online", "Available online:", "Published",
		"Published date", "Published:", "Publication date",
		"Date of publication", "Date:", "Date",
	}
)

// datePatterns are tried in order of specificity: fully qualified
// day+month+year forms before the bare-year fallback. The first pattern
// that matches a keyword's context window wins.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}(?:st|nd|rd|th)?\s+[A-Z][a-z]+\.?\s+\d{4}`),       // 6 April 2025
	regexp.MustCompile(`[A-Z][a-z]+\.?\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}`),     // December 25, 2025
	regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}`),                                  // 2025-04-06
	regexp.MustCompile(`\d{4}/\d{1,2}/\d{1,2}`),                                  // 2025/04/06
	regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{4}`),                            // 04-06-2025
	regexp.MustCompile(`\d{4}\.\d{1,2}\.\d{1,2}|\d{1,2}\.\d{1,2}\.\d{4}`),        // 2025.4.6
	regexp.MustCompile(`\d{4}\s*年\s*\d{1,2}\s*月(?:\s*\d{1,2}\s*日?)?`),          // 2025年4月6日
	regexp.MustCompile(`\d{4}`),                                                  // bare year
}

// yearRe pulls the four-digit year out of a date-shaped string.
var yearRe = regexp.MustCompile(`\d{4}`)

// invalidYears are placeholder years that show up in broken document
// metadata and must never count as evidence.
var invalidYears = map[int]bool{1900: true, 1990: true, 1997: true}

// Extract scans text (with title appended as extra search surface) for
// lifecycle dates and returns a DateSet with every entry normalized.
// Slots whose raw match fails normalization stay empty.
func Extract(text, title string) types.DateSet {
	surface := norm.NFKC.String(text)
	if title != "" {
		surface += " " + norm.NFKC.String(title)
	}

	var out types.DateSet

	// Revised runs first so its keyword hits can be excluded from the
	// received scan.
	out.Revised = findSlotDate(surface, revisedKeywords, nil)
	out.Received = findSlotDate(surface, receivedKeywords, isRevisedContext)
	out.Accepted = findSlotDate(surface, acceptedKeywords, nil)
	out.AvailableOnline = findSlotDate(surface, availableOnlineKeywords, nil)

	out.Other = collectOtherDates(surface, out)
	return out
}

// findSlotDate locates the first keyword occurrence whose following
// window contains a recognizable date, skipping occurrences rejected by
// the skip predicate. The returned date is normalized; "" means the
// slot stays empty.
func findSlotDate(text string, keywords []string, skip func(string) bool) string {
	lower := strings.ToLower(text)
	for _, keyword := range keywords {
		kw := strings.ToLower(keyword)
		offset := 0
		for {
			idx := strings.Index(lower[offset:], kw)
			if idx < 0 {
				break
			}
			idx += offset
			offset = idx + len(kw)

			if skip != nil && skip(lower[idx:boundedEnd(lower, idx, 30)]) {
				continue
			}

			window := collapseSpaces(text[idx:boundedEnd(text, idx, contextWindow)])
			for _, pattern := range datePatterns {
				if raw := pattern.FindString(window); raw != "" {
					return NormalizeDate(raw)
				}
			}
		}
	}
	return ""
}

// isRevisedContext reports whether a received-keyword occurrence is
// actually part of a "received in revised form" phrase.
func isRevisedContext(window string) bool {
	return strings.Contains(window, "received in revised form") ||
		strings.Contains(window, "in revised form")
}

// collectOtherDates gathers remaining date-shaped substrings across the
// whole text: normalized, deduplicated, restricted to a plausible year
// range, and capped. The revised date is appended so downstream date
// matching scans it even when a caller only walks Other.
func collectOtherDates(text string, claimed types.DateSet) []string {
	claimedSet := map[string]bool{
		claimed.Received:        true,
		claimed.Revised:         true,
		claimed.Accepted:        true,
		claimed.AvailableOnline: true,
	}

	seen := make(map[string]bool)
	var other []string

	add := func(normalized string) {
		if len(other) >= maxOtherDates {
			return
		}
		if normalized == "" || seen[normalized] || claimedSet[normalized] {
			return
		}
		if !plausibleYear(normalized) {
			return
		}
		seen[normalized] = true
		other = append(other, normalized)
	}

	collapsed := collapseSpaces(text)
	for _, pattern := range datePatterns[:len(datePatterns)-1] { // bare years are not date-shaped enough
		for _, raw := range pattern.FindAllString(collapsed, -1) {
			add(NormalizeDate(raw))
		}
	}

	if claimed.Revised != "" && !seen[claimed.Revised] && len(other) < maxOtherDates {
		other = append(other, claimed.Revised)
	}
	return other
}

// plausibleYear accepts normalized dates from 2000 through 2100,
// rejecting known placeholder years.
func plausibleYear(normalized string) bool {
	m := yearRe.FindString(normalized)
	if m == "" {
		return false
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return false
	}
	return year >= 2000 && year <= 2100 && !invalidYears[year]
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func boundedEnd(s string, start, span int) int {
	end := start + span
	if end > len(s) {
		end = len(s)
	}
	return end
}

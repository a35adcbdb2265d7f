// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"regexp"
	"strings"
)

var nonLatinRe = regexp.MustCompile(`[^a-z\s]`)

// normalizeName lowercases, strips everything but Latin letters and
// spaces, and collapses whitespace. Non-Latin names are expected to be
// romanized before they get here.
func normalizeName(name string) string {
	s := strings.ToLower(name)
	s = nonLatinRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// tokenContains reports a token-level match that tolerates spelling and
// segmentation differences: equality or substring in either direction.
func tokenContains(a, b string) bool {
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// Match reports whether two author names describe the same person. Both
// names are tokenized on whitespace; single-token names compare as
// plain strings. Multi-token names match when the token sets are equal
// regardless of order, when (surname, merged given name) pairs match in
// either surname-first or given-name-first orientation with substring
// tolerance, or when one full normalized name contains the other.
func Match(a, b string) bool {
	aNorm := normalizeName(a)
	bNorm := normalizeName(b)
	if aNorm == "" || bNorm == "" {
		return false
	}

	aWords := strings.Fields(aNorm)
	bWords := strings.Fields(bNorm)

	if len(aWords) < 2 || len(bWords) < 2 {
		return aNorm == bNorm
	}

	if aNorm == bNorm {
		return true
	}

	// Order-free token match, e.g. "Wang Mengmeng" vs "Mengmeng Wang".
	if tokenSetsEqual(aWords, bWords) {
		return true
	}

	// Surname plus merged given name, in both orientations. Substring
	// tolerance absorbs OCR noise like "jichen" vs "jichena".
	aSurname := aWords[0]
	aGiven := strings.Join(aWords[1:], "")

	bSurnameFirst := bWords[0]
	bGivenFirst := strings.Join(bWords[1:], "")
	bSurnameLast := bWords[len(bWords)-1]
	bGivenLast := strings.Join(bWords[:len(bWords)-1], "")

	if tokenContains(aSurname, bSurnameFirst) && tokenContains(aGiven, bGivenFirst) {
		return true
	}
	if tokenContains(aSurname, bSurnameLast) && tokenContains(aGiven, bGivenLast) {
		return true
	}

	// Full-name containment either way.
	return strings.Contains(aNorm, bNorm) || strings.Contains(bNorm, aNorm)
}

// tokenSetsEqual reports whether every token of each name appears in
// the other. After both containment loops pass, differing token counts
// can only come from duplicated tokens; the extra ≥2-coincidence check
// keeps a single repeated token from carrying the match. Merged
// syllables ("tian ji chen" vs "jichen tian") do not pass here; the
// merged-given-name comparison in Match handles those.
func tokenSetsEqual(a, b []string) bool {
	inB := make(map[string]bool, len(b))
	for _, w := range b {
		inB[w] = true
	}
	inA := make(map[string]bool, len(a))
	for _, w := range a {
		inA[w] = true
	}

	for _, w := range a {
		if !inB[w] {
			return false
		}
	}
	for _, w := range b {
		if !inA[w] {
			return false
		}
	}

	if len(a) == len(b) {
		return true
	}
	matched := 0
	for _, w := range a {
		if inB[w] {
			matched++
		}
	}
	return matched >= 2
}

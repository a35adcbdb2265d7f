// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package names finds candidate author names in raw text or structured
// metadata, detects equal-contribution markers, and produces
// romanization and ordering variants for matching.
package names

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Result holds everything the extractor learned about a text's authors.
type Result struct {
	FirstAuthor              string
	AllAuthors               []string
	EqualContribution        bool
	EqualContributionAuthors []string
	FirstAuthorHasEqual      bool
}

// scanLineLimit bounds how many leading lines the text scan considers.
const scanLineLimit = 30

// equalContributionWindow is how far around an equal-contribution
// marker the extractor looks for names, in characters. The line-based
// search uses equalContributionLineSpan instead.
var equalContributionWindow = 300

const equalContributionLineSpan = 2

// brandNameRe rejects metadata author fields that are actually device
// or vendor names left behind by document producers.
var brandNameRe = regexp.MustCompile(`(?i)^(compaq|hp|dell|lenovo|acer|microsoft|apple|samsung|huawei|xiaomi|computer|pc|desktop|laptop|server|system|device|machine|fields|admin|user|asus|administrator|test|open\s+access)$`)

// boilerplateAuthorRe rejects license and publisher boilerplate that
// ends up in author fields.
var boilerplateAuthorRe = regexp.MustCompile(`(?i)Open\s+Access|Creative\s+Commons|©\s*The\s*Author|This\s+article|Attribution|NoDerivatives|RESEARCH`)

// institutionRe rejects text-scan candidates that name an institution
// or journal rather than a person.
var institutionRe = regexp.MustCompile(`(?i)University|Institute|Department|Laboratory|College|School|Center|Centre|Academy|Journal|Proceedings|DOI|ISSN|Vol\.|No\.`)

var (
	authorLabelRe = regexp.MustCompile(`(?i)^(?:authors?|by)[:\s]\s*(.+)$`)
	capitalNameRe = regexp.MustCompile(`[A-Z][a-z]+(?:\s+[A-Z]\.?)?(?:\s+[A-Z][a-z]+)+`)
	markerGlyphRe = regexp.MustCompile(`[†‡*#]`)
	capitalWordRe = regexp.MustCompile(`[A-Z][a-z]+`)
	authorSplitRe = regexp.MustCompile(`[,;]`)
	equalNoteRe   = regexp.MustCompile(`(?i)\((?:contributed equally|equal contribution)\)`)
)

// equalContributionPhrases are the fixed English markers for co-first
// authorship.
var equalContributionPhrases = []string{
	"contributed equally",
	"equal contribution",
	"equally contributed",
	"these authors contributed equally",
}

// Extract inspects a structured metadata author field and the leading
// text, in that precedence order, and returns the author result. The
// metadata field wins only when it survives the brand-name and
// boilerplate filters; otherwise extraction falls back to label lines
// and then a capitalized-sequence scan of the first lines.
func Extract(text, metadataAuthor string) Result {
	text = norm.NFKC.String(text)

	var res Result

	if metadataAuthor != "" {
		for _, part := range splitAuthors(metadataAuthor) {
			if ValidAuthorName(part) {
				res.AllAuthors = append(res.AllAuthors, part)
			}
		}
	}

	if len(res.AllAuthors) == 0 {
		res.AllAuthors = authorsFromText(text)
	}

	res.EqualContribution, res.EqualContributionAuthors = equalContributionAuthors(text)
	if len(res.AllAuthors) > 0 {
		res.FirstAuthor = res.AllAuthors[0]
		res.FirstAuthorHasEqual = nameInSet(res.FirstAuthor, res.EqualContributionAuthors)
	}
	return res
}

// ValidAuthorName reports whether a candidate string plausibly names a
// person: not a brand or device name, not license boilerplate, not a
// short or all-lowercase single token, and carrying at least one
// capitalized word. CJK names pass on script alone.
func ValidAuthorName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	if HasCJK(name) {
		return len([]rune(name)) >= 2
	}
	if brandNameRe.MatchString(name) || boilerplateAuthorRe.MatchString(name) {
		return false
	}
	if len(name) < 5 {
		return false
	}
	if name == strings.ToLower(name) && !strings.Contains(name, " ") {
		return false
	}
	return capitalWordRe.MatchString(name)
}

// splitAuthors breaks an author list on commas and semicolons and
// strips marker glyphs and equal-contribution parentheticals.
func splitAuthors(s string) []string {
	var out []string
	for _, part := range authorSplitRe.Split(s, -1) {
		part = markerGlyphRe.ReplaceAllString(part, "")
		part = equalNoteRe.ReplaceAllString(part, "")
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// authorsFromText scans the leading lines for an explicit author label
// and then for capitalized multi-word sequences, filtering institution
// and journal names.
func authorsFromText(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > scanLineLimit {
		lines = lines[:scanLineLimit]
	}

	// Label lines first: "Authors: ..." / "By: ...".
	for _, line := range lines {
		m := authorLabelRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		var authors []string
		for _, part := range splitAuthors(m[1]) {
			if ValidAuthorName(part) {
				authors = append(authors, part)
			}
		}
		if len(authors) > 0 {
			return dedupeNames(authors)
		}
	}

	// Capitalized-sequence scan. The first non-empty line is taken to
	// be the title and skipped.
	var authors []string
	seenTitle := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !seenTitle {
			seenTitle = true
			continue
		}
		if institutionRe.MatchString(line) {
			continue
		}
		for _, cand := range capitalNameRe.FindAllString(line, -1) {
			if len(strings.Fields(cand)) < 2 || len(cand) < 5 {
				continue
			}
			if ValidAuthorName(cand) {
				authors = append(authors, cand)
			}
		}
		if len(authors) > 0 {
			break
		}
	}
	return dedupeNames(authors)
}

// equalContributionAuthors detects co-first markers and collects the
// capitalized names near them.
func equalContributionAuthors(text string) (bool, []string) {
	lower := strings.ToLower(text)
	found := false
	var authors []string

	for _, phrase := range equalContributionPhrases {
		idx := strings.Index(lower, phrase)
		if idx < 0 {
			continue
		}
		found = true
		authors = append(authors, namesNearOffset(text, idx, len(phrase))...)
	}

	// Marker glyphs directly after a name, with an equal-contribution
	// note nearby, also count.
	for _, glyph := range []string{"†", "‡", "*", "#"} {
		re := regexp.MustCompile(regexp.QuoteMeta(glyph) + `\s*(?i:contributed\s+equally|equal\s+contribution|these\s+authors\s+contributed\s+equally)`)
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		found = true
		start := loc[0] - equalContributionWindow
		if start < 0 {
			start = 0
		}
		before := text[start:loc[0]]
		nameBeforeMarker := regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s*` + regexp.QuoteMeta(glyph))
		for _, m := range nameBeforeMarker.FindAllStringSubmatch(before, -1) {
			if len(strings.Fields(m[1])) >= 2 {
				authors = append(authors, m[1])
			}
		}
	}

	return found, dedupeNames(authors)
}

// namesNearOffset collects multi-word capitalized names within the
// surrounding window of a phrase occurrence: two lines either side when
// the text has line structure, otherwise a character window.
func namesNearOffset(text string, idx, phraseLen int) []string {
	start := idx - equalContributionWindow
	if start < 0 {
		start = 0
	}
	end := idx + phraseLen + equalContributionWindow
	if end > len(text) {
		end = len(text)
	}
	window := text[start:end]

	lines := strings.Split(window, "\n")
	if len(lines) > 2*equalContributionLineSpan+1 {
		// Keep only the lines around the one containing the phrase.
		phraseLine := 0
		offset := 0
		for i, line := range lines {
			offset += len(line) + 1
			if offset > idx-start {
				phraseLine = i
				break
			}
		}
		lo := phraseLine - equalContributionLineSpan
		if lo < 0 {
			lo = 0
		}
		hi := phraseLine + equalContributionLineSpan + 1
		if hi > len(lines) {
			hi = len(lines)
		}
		lines = lines[lo:hi]
	}

	var out []string
	for _, line := range lines {
		for _, cand := range capitalNameRe.FindAllString(line, -1) {
			cand = markerGlyphRe.ReplaceAllString(cand, "")
			cand = strings.TrimSpace(cand)
			if len(strings.Fields(cand)) >= 2 {
				out = append(out, cand)
			}
		}
	}
	return out
}

// nameInSet reports whether a name matches any entry of set by surname
// token equality or substring containment.
func nameInSet(name string, set []string) bool {
	if name == "" || len(set) == 0 {
		return false
	}
	nameLower := strings.ToLower(name)
	nameFields := strings.Fields(nameLower)
	nameSurname := ""
	if len(nameFields) > 0 {
		nameSurname = nameFields[len(nameFields)-1]
	}

	for _, ec := range set {
		ecLower := strings.ToLower(ec)
		ecFields := strings.Fields(ecLower)
		if nameSurname != "" && len(ecFields) > 0 && nameSurname == ecFields[len(ecFields)-1] {
			return true
		}
		if strings.Contains(nameLower, ecLower) || strings.Contains(ecLower, nameLower) {
			return true
		}
	}
	return false
}

func dedupeNames(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, n := range in {
		key := strings.ToLower(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}

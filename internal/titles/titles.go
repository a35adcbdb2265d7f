// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package titles extracts paper titles from document metadata and raw
// text, and decides whether two titles name the same paper.
package titles

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/meshintel/paper-verifier/internal/textmatch"
)

// Extraction limits. Titles live near the top of the text, often split
// across lines by the renderer.
const (
	searchChars    = 5000
	scanLines      = 30
	mergeScanLines = 10
	minTitleLen    = 20
	maxTitleLen    = 500
)

// Candidate priorities. Position-based priority starts at singleLineBase
// minus the line index; labeled and auto-merged multi-line candidates
// outrank single lines.
const (
	singleLineBase     = 100
	labeledMergeBase   = 150
	keywordBonus       = 50
	autoMergeKeyword   = 120
	autoMergeNoKeyword = 80
)

// invalidLineRes matches header, footer and journal boilerplate that is
// never a title.
var invalidLineRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\d+\.\.\d+`),
	regexp.MustCompile(`^[A-Z0-9]{5,20}\s+\d+`),
	regexp.MustCompile(`(?i)^view\s+(article|journal|pdf)`),
	regexp.MustCompile(`(?i)^published\s+on`),
	regexp.MustCompile(`(?i)^downloaded\s+on`),
	regexp.MustCompile(`(?i)^doi:`),
	regexp.MustCompile(`(?i)^rsc\.li/`),
	regexp.MustCompile(`(?i)^check\s+for\s+updates`),
	regexp.MustCompile(`(?i)^cite\s+this:`),
	regexp.MustCompile(`(?i)^received\s+\d+`),
	regexp.MustCompile(`(?i)^accepted\s+\d+`),
	regexp.MustCompile(`(?i)^nanoscale|^paper$`),
	regexp.MustCompile(`(?i)^royal\s+society`),
}

var (
	titleLabelRe   = regexp.MustCompile(`(?i)^(title|标题)[:\s]+`)
	sectionHeadRe  = regexp.MustCompile(`(?i)^(introduction|abstract|keywords|摘要|关键词)`)
	continuationRe = regexp.MustCompile(`(?i)^(introduction|abstract|keywords|摘要|关键词|received|accepted|published)`)
	lowercaseRe    = regexp.MustCompile(`[a-z]`)
	cjkRe          = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]`)
	filenameExtRe  = regexp.MustCompile(`(?i)\.(pdf|docx?|tex|txt)$`)
)

// titleKeywords raise a candidate's priority when present.
var titleKeywords = []string{
	"computational", "screening", "analysis", "study", "investigation",
	"method", "approach", "framework", "model", "system",
	"基于", "研究", "方法", "分析", "系统",
}

type candidate struct {
	priority int
	text     string
}

// FromMetadata accepts a metadata title only when it looks like a real
// title rather than a filename, identifier, or boilerplate. Returns ""
// on rejection.
func FromMetadata(title string) string {
	title = strings.TrimSpace(norm.NFKC.String(title))
	if len([]rune(title)) < 10 {
		return ""
	}
	if filenameExtRe.MatchString(title) {
		return ""
	}
	lower := strings.ToLower(title)
	if strings.HasPrefix(lower, "doi:") || strings.HasPrefix(lower, "10.") {
		return ""
	}
	for _, re := range invalidLineRes {
		if re.MatchString(title) {
			return ""
		}
	}
	if !lowercaseRe.MatchString(title) && !cjkRe.MatchString(title) {
		return ""
	}
	return title
}

// FromText extracts the most likely title from the leading text. Three
// candidate generators compete on priority: single lines near the top,
// explicit "Title:" lines merged with their continuations, and an
// automatic merge of consecutive long leading lines for titles a
// renderer split. Returns "" when nothing qualifies.
func FromText(text string) string {
	if text == "" {
		return ""
	}
	text = norm.NFKC.String(text)
	if len(text) > searchChars {
		text = text[:searchChars]
	}
	lines := strings.Split(text, "\n")

	var cands []candidate
	cands = append(cands, singleLineCandidates(lines)...)
	cands = append(cands, labeledCandidates(lines)...)
	cands = append(cands, autoMergeCandidate(lines)...)

	best := candidate{priority: -1}
	for _, c := range cands {
		if c.priority > best.priority {
			best = c
		}
	}
	return trimTrailingAuthors(best.text)
}

// trailingAuthorsRe matches a run of capitalized names at the end of a
// candidate, where an author line bled into a merged title.
var trailingAuthorsRe = regexp.MustCompile(
	`(?:[A-Z][a-z]+\s+){1,2}[A-Z][a-z]+(?:\s*,\s*(?:[A-Z][a-z]+\s+){1,2}[A-Z][a-z]+)+\s*$` +
		`|(?:[A-Z][a-z]+\s+){1,2}[A-Z][a-z]+\s+and\s+(?:[A-Z][a-z]+\s+){1,2}[A-Z][a-z]+\s*$`)

// trailingAuthorMinIndex keeps the truncation away from the start of
// the candidate, so capitalized words opening a title are left alone.
var trailingAuthorMinIndex = 50

func trimTrailingAuthors(title string) string {
	loc := trailingAuthorsRe.FindStringIndex(title)
	if loc != nil && loc[0] > trailingAuthorMinIndex {
		title = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(title[:loc[0]]), ",;"))
	}
	return title
}

func singleLineCandidates(lines []string) []candidate {
	var out []candidate
	limit := len(lines)
	if limit > scanLines {
		limit = scanLines
	}
	for i := 0; i < limit; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		line = strings.TrimSpace(titleLabelRe.ReplaceAllString(line, ""))

		if invalidLine(line) || sectionHeadRe.MatchString(line) {
			continue
		}
		if runeLen(line) < minTitleLen || runeLen(line) > maxTitleLen {
			continue
		}
		if strings.Contains(line, "http") || strings.Contains(line, "@") ||
			strings.Contains(strings.ToLower(line), "doi:") {
			continue
		}
		if !lowercaseRe.MatchString(line) && !cjkRe.MatchString(line) {
			continue
		}
		// All-caps long lines are headers, not titles.
		if line == strings.ToUpper(line) && runeLen(line) > 15 {
			continue
		}

		p := singleLineBase - i
		if hasTitleKeyword(line) {
			p += keywordBonus
		}
		out = append(out, candidate{priority: p, text: line})
	}
	return out
}

// labeledCandidates merges a "Title:" line with continuation lines that
// look like a truncated title's remainder.
func labeledCandidates(lines []string) []candidate {
	var out []candidate
	limit := len(lines)
	if limit > 20 {
		limit = 20
	}
	for i := 0; i < limit; i++ {
		line := strings.TrimSpace(lines[i])
		if !titleLabelRe.MatchString(line) {
			continue
		}
		parts := []string{strings.TrimSpace(titleLabelRe.ReplaceAllString(line, ""))}
		for j := i + 1; j < len(lines) && j < i+5; j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" {
				break
			}
			if runeLen(next) > 10 &&
				(lowercaseRe.MatchString(next) || cjkRe.MatchString(next)) &&
				!continuationRe.MatchString(next) {
				parts = append(parts, next)
			} else {
				break
			}
		}
		if len(parts) > 1 {
			combined := strings.Join(parts, " ")
			if runeLen(combined) >= minTitleLen && runeLen(combined) <= maxTitleLen {
				out = append(out, candidate{priority: labeledMergeBase - i, text: combined})
			}
		}
	}
	return out
}

// autoMergeCandidate joins consecutive long leading lines, recovering
// titles the text layer broke across lines.
func autoMergeCandidate(lines []string) []candidate {
	var parts []string
	limit := len(lines)
	if limit > mergeScanLines {
		limit = mergeScanLines
	}
	for i := 0; i < limit; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			if len(parts) > 0 {
				break
			}
			continue
		}
		if invalidLine(line) {
			if len(parts) > 0 {
				break
			}
			continue
		}
		if runeLen(line) > minTitleLen &&
			(lowercaseRe.MatchString(line) || cjkRe.MatchString(line)) &&
			!continuationRe.MatchString(line) &&
			!strings.Contains(line, "http") && !strings.Contains(line, "@") {
			parts = append(parts, line)
		} else if len(parts) > 0 {
			break
		}
	}
	if len(parts) == 0 {
		return nil
	}
	combined := strings.Join(parts, " ")
	if runeLen(combined) < minTitleLen || runeLen(combined) > maxTitleLen {
		return nil
	}
	p := autoMergeNoKeyword
	if hasTitleKeyword(combined) {
		p = autoMergeKeyword
	}
	return []candidate{{priority: p, text: combined}}
}

func invalidLine(line string) bool {
	for _, re := range invalidLineRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func runeLen(s string) int { return len([]rune(s)) }

func hasTitleKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range titleKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Matching thresholds. A pair of titles counts as the same paper on
// exact normalized equality, containment of a long-enough title,
// high overall similarity, a long shared prefix, or a similar opening
// window. The values are empirically tuned; vars so embedders can
// recalibrate.
var (
	matchMinLen          = 10
	containShorterMinLen = 15
	containMinRatio      = 0.6
	similarityThreshold  = 0.75
	similarityMinLen     = 20
	prefixShare          = 0.7
	prefixMinLen         = 30
	openingWindow        = 50
	openingThreshold     = 0.8
)

var nonTitleCharRe = regexp.MustCompile(`[^a-z0-9\x{4e00}-\x{9fa5}]`)

// likelyFilenameRes match document metadata titles that are really the
// download filename a submission system assigned.
var likelyFilenameRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^view\s*(letter|pdf|file)$`),
	regexp.MustCompile(`(?i)^accept`),
	regexp.MustCompile(`(?i)^download`),
	regexp.MustCompile(`(?i)^file`),
	regexp.MustCompile(`(?i)^document`),
}

// LikelyFilename reports whether a document title looks like a
// submission-system filename rather than a paper title.
func LikelyFilename(title string) bool {
	title = strings.TrimSpace(title)
	for _, re := range likelyFilenameRes {
		if re.MatchString(title) {
			return true
		}
	}
	return false
}

// NormalizeForMatch lowercases and strips everything except Latin
// letters, digits and CJK ideographs. Spaces and punctuation do not
// survive, so length checks below count content characters only.
func NormalizeForMatch(title string) string {
	s := strings.ToLower(norm.NFKC.String(title))
	return nonTitleCharRe.ReplaceAllString(s, "")
}

// Match reports whether two titles plausibly name the same paper.
func Match(a, b string) bool {
	aNorm := []rune(NormalizeForMatch(a))
	bNorm := []rune(NormalizeForMatch(b))
	if len(aNorm) < matchMinLen || len(bNorm) < matchMinLen {
		return false
	}
	if string(aNorm) == string(bNorm) {
		return true
	}

	shorter, longer := aNorm, bNorm
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	// Containment of a substantial shorter title.
	if len(shorter) >= containShorterMinLen &&
		float64(len(shorter))/float64(len(longer)) >= containMinRatio &&
		strings.Contains(string(longer), string(shorter)) {
		return true
	}

	if len(aNorm) >= similarityMinLen && len(bNorm) >= similarityMinLen &&
		textmatch.Similarity(string(aNorm), string(bNorm)) > similarityThreshold {
		return true
	}

	// Long shared prefix, for truncated renderings. Each title
	// contributes its own 70% prefix; they only agree when the titles
	// run close in length.
	if len(aNorm) >= prefixMinLen && len(bNorm) >= prefixMinLen {
		aPrefix := aNorm[:int(float64(len(aNorm))*prefixShare)]
		bPrefix := bNorm[:int(float64(len(bNorm))*prefixShare)]
		if len(aPrefix) >= prefixMinLen && string(aPrefix) == string(bPrefix) {
			return true
		}
	}

	// Similar opening window, for titles that diverge in back matter.
	if len(aNorm) >= openingWindow && len(bNorm) >= openingWindow {
		if textmatch.Similarity(string(aNorm[:openingWindow]), string(bNorm[:openingWindow])) > openingThreshold {
			return true
		}
	}
	return false
}

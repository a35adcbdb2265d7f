// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recognize

import (
	"regexp"
	"sort"
	"strings"
)

const degenerateMinChars = 50

const promptEchoLen = 50

// echoesPrompt reports whether a reply parrots the instruction it was
// given instead of reading the page. Matching on the prompt's opening
// runes is enough: a real transcription never reproduces them.
func echoesPrompt(content, prompt string) bool {
	pr := []rune(prompt)
	if len(pr) > promptEchoLen {
		pr = pr[:promptEchoLen]
	}
	return strings.Contains(content, string(pr))
}

var whitespaceRe = regexp.MustCompile(`\s+`)
var punctOnlyRe = regexp.MustCompile(`^[\}\]\)\{\[,.:;"'` + "`" + `~!@#$%^&*+=<>|\\/-]+$`)

// IsDegenerate reports whether recognition output collapsed into a
// repeated-symbol artifact rather than real text. Short outputs are
// never degenerate: a page can legitimately carry little text.
func IsDegenerate(text string) bool {
	if text == "" {
		return false
	}
	stripped := whitespaceRe.ReplaceAllString(text, "")
	runes := []rune(stripped)
	if len(runes) < degenerateMinChars {
		return false
	}

	counts := make(map[rune]int)
	for _, r := range runes {
		counts[r]++
	}
	freqs := make([]int, 0, len(counts))
	for _, n := range counts {
		freqs = append(freqs, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(freqs)))
	topRatio := float64(freqs[0]) / float64(len(runes))

	// Almost nothing but one repeated character.
	if len(counts) <= 3 && topRatio > 0.8 {
		return true
	}
	// Pure punctuation dominated by a single symbol.
	if punctOnlyRe.MatchString(stripped) && topRatio > 0.6 {
		return true
	}
	return false
}

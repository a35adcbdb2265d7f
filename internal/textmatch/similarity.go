// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textmatch provides the edit-distance similarity ratio used by
// every matching component.
package textmatch

import "strings"

// Similarity returns a ratio in [0,1] describing how alike two strings
// are. Equal strings (after case folding) score 1. If either string is
// empty the score is 0. When one string contains the other the score is
// len(shorter)/len(longer). Otherwise the score is
// 1 - levenshtein(a,b)/max(len(a),len(b)).
//
// Inputs are short (names and titles), so there is no early
// termination: correctness over speed.
func Similarity(a, b string) float64 {
	if strings.EqualFold(a, b) {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	ra, rb := []rune(a), []rune(b)
	longer, shorter := ra, rb
	if len(rb) > len(ra) {
		longer, shorter = rb, ra
	}

	if strings.Contains(string(longer), string(shorter)) {
		return float64(len(shorter)) / float64(len(longer))
	}

	dist := levenshtein(ra, rb)
	return 1.0 - float64(dist)/float64(len(longer))
}

// levenshtein computes the classic edit distance with unit costs for
// insert, delete, and substitute.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(b); i++ {
		curr[0] = i
		for j := 1; j <= len(a); j++ {
			cost := 1
			if b[i-1] == a[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j-1]+cost, curr[j-1]+1, prev[j]+1)
		}
		prev, curr = curr, prev
	}
	return prev[len(a)]
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup decides whether a candidate paper record duplicates one
// already stored.
package dedup

import (
	"strings"

	"github.com/meshintel/paper-verifier/internal/textmatch"
	"github.com/meshintel/paper-verifier/pkg/types"
)

// similarityThreshold applies to both title and first-author similarity
// in the fuzzy rule; both must clear it simultaneously.
const similarityThreshold = 0.8

// Verdict reports the outcome of a duplicate check.
type Verdict struct {
	Duplicate bool
	Reason    string
	Matched   *types.MetadataRecord
}

// IsDuplicate compares the candidate against prior records. Rules run
// in order: identical source identifier, identical source URL, then
// title and first-author similarity both above the threshold. The
// first rule that holds wins. An empty prior collection is never a
// duplicate.
func IsDuplicate(candidate types.MetadataRecord, priors []types.MetadataRecord) Verdict {
	if len(priors) == 0 {
		return Verdict{}
	}

	for i := range priors {
		prior := &priors[i]

		if candidate.SourceID != "" && candidate.SourceID == prior.SourceID {
			return Verdict{Duplicate: true, Reason: "identical source id", Matched: prior}
		}
		if candidate.SourceURL != "" && candidate.SourceURL == prior.SourceURL {
			return Verdict{Duplicate: true, Reason: "identical source url", Matched: prior}
		}

		if candidate.Title == "" || candidate.FirstAuthor == "" {
			continue
		}
		titleSim := textmatch.Similarity(strings.ToLower(candidate.Title), strings.ToLower(prior.Title))
		authorSim := textmatch.Similarity(strings.ToLower(candidate.FirstAuthor), strings.ToLower(prior.FirstAuthor))
		if titleSim > similarityThreshold && authorSim > similarityThreshold {
			return Verdict{Duplicate: true, Reason: "title and author highly similar", Matched: prior}
		}
	}
	return Verdict{}
}

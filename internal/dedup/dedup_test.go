// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dedup

import (
	"testing"

	"github.com/meshintel/paper-verifier/pkg/types"
)

func TestIsDuplicateEmptyPriors(t *testing.T) {
	cand := types.MetadataRecord{Title: "Deep Learning for X", FirstAuthor: "Mengmeng Wang"}
	if v := IsDuplicate(cand, nil); v.Duplicate {
		t.Error("empty priors flagged duplicate")
	}
}

func TestIsDuplicateSourceID(t *testing.T) {
	cand := types.MetadataRecord{SourceID: "abc123def456"}
	priors := []types.MetadataRecord{{SourceID: "abc123def456", Title: "Something else"}}

	v := IsDuplicate(cand, priors)
	if !v.Duplicate {
		t.Fatal("Duplicate = false")
	}
	if v.Reason != "identical source id" {
		t.Errorf("Reason = %q", v.Reason)
	}
	if v.Matched == nil || v.Matched.SourceID != "abc123def456" {
		t.Errorf("Matched = %+v", v.Matched)
	}
}

func TestIsDuplicateSourceURL(t *testing.T) {
	cand := types.MetadataRecord{SourceURL: "https://example.org/paper/42"}
	priors := []types.MetadataRecord{{SourceURL: "https://example.org/paper/42"}}

	v := IsDuplicate(cand, priors)
	if !v.Duplicate || v.Reason != "identical source url" {
		t.Errorf("verdict = %+v", v)
	}
}

func TestIsDuplicateSimilarTitleAndAuthor(t *testing.T) {
	cand := types.MetadataRecord{
		Title:       "Computational screening of candidate materials for batteries",
		FirstAuthor: "Mengmeng Wang",
	}
	priors := []types.MetadataRecord{{
		Title:       "Computational screening of candidate materials for battery",
		FirstAuthor: "Mengmeng Wang",
	}}

	v := IsDuplicate(cand, priors)
	if !v.Duplicate {
		t.Fatal("Duplicate = false")
	}
	if v.Reason != "title and author highly similar" {
		t.Errorf("Reason = %q", v.Reason)
	}
}

func TestIsDuplicateRequiresBothSimilarities(t *testing.T) {
	cand := types.MetadataRecord{
		Title:       "Computational screening of candidate materials for batteries",
		FirstAuthor: "Mengmeng Wang",
	}
	priors := []types.MetadataRecord{{
		Title:       "Computational screening of candidate materials for batteries",
		FirstAuthor: "Jichen Tian",
	}}

	if v := IsDuplicate(cand, priors); v.Duplicate {
		t.Error("similar title with different author flagged duplicate")
	}
}

func TestIsDuplicateDifferentURLOnly(t *testing.T) {
	cand := types.MetadataRecord{
		Title:       "Completely unrelated paper about turbulence",
		FirstAuthor: "Alice Smith",
		SourceURL:   "https://example.org/a",
	}
	priors := []types.MetadataRecord{{
		Title:       "Deep Learning for X",
		FirstAuthor: "Mengmeng Wang",
		SourceURL:   "https://example.org/b",
	}}

	if v := IsDuplicate(cand, priors); v.Duplicate {
		t.Errorf("unrelated records flagged duplicate: %+v", v)
	}
}

func TestIsDuplicateEmptyKeysNeverMatch(t *testing.T) {
	cand := types.MetadataRecord{}
	priors := []types.MetadataRecord{{}}

	if v := IsDuplicate(cand, priors); v.Duplicate {
		t.Error("empty identifiers matched each other")
	}
}

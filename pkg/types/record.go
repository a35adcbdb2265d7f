// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-verifier
// pipeline: candidate metadata records from each source, the typed date
// collection, and the verification verdict.
package types

// Source identifies which pipeline stage produced a MetadataRecord.
type Source string

const (
	// SourceWeb is structured metadata scraped from a web page.
	SourceWeb Source = "web"

	// SourceDocument is text and embedded metadata extracted from a
	// downloaded document.
	SourceDocument Source = "document"

	// SourceRecognition is text produced by an optical-recognition pass,
	// optionally refined by a language-structuring pass.
	SourceRecognition Source = "recognition"
)

// DateSet holds the lifecycle dates found for a paper. Every non-empty
// field is a normalized YYYY-MM-DD string; extraction never stores raw
// or unparsed forms here.
type DateSet struct {
	// Received is the submission date.
	Received string `json:"received,omitempty" yaml:"received,omitempty"`

	// Revised is the revised-form date ("Received in revised form").
	Revised string `json:"revised,omitempty" yaml:"revised,omitempty"`

	// Accepted is the acceptance date.
	Accepted string `json:"accepted,omitempty" yaml:"accepted,omitempty"`

	// AvailableOnline is the publication or available-online date.
	AvailableOnline string `json:"available_online,omitempty" yaml:"available_online,omitempty"`

	// Other collects additional date-shaped strings found in the text,
	// deduplicated and capped at a small number.
	Other []string `json:"other,omitempty" yaml:"other,omitempty"`
}

// IsEmpty reports whether no date was found in any slot.
func (d DateSet) IsEmpty() bool {
	return d.Received == "" && d.Revised == "" && d.Accepted == "" &&
		d.AvailableOnline == "" && len(d.Other) == 0
}

// MetadataRecord is one candidate description of a paper, produced by
// exactly one source. Records are immutable once produced; the
// verification engine only reads them.
type MetadataRecord struct {
	// Source identifies the producing stage.
	Source Source `json:"source" yaml:"source"`

	// Title is the paper title, possibly empty.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// FirstAuthor is the first-listed author, the primary identity
	// anchor for matching.
	FirstAuthor string `json:"first_author,omitempty" yaml:"first_author,omitempty"`

	// AllAuthors lists authors in source order. May be empty even when
	// FirstAuthor is set.
	AllAuthors []string `json:"all_authors,omitempty" yaml:"all_authors,omitempty"`

	// Dates holds the typed lifecycle dates.
	Dates DateSet `json:"dates" yaml:"dates"`

	// EqualContribution reports whether the source carried an
	// equal-contribution marker (phrase or glyph).
	EqualContribution bool `json:"equal_contribution,omitempty" yaml:"equal_contribution,omitempty"`

	// EqualContributionAuthors lists the names flagged as co-first.
	EqualContributionAuthors []string `json:"equal_contribution_authors,omitempty" yaml:"equal_contribution_authors,omitempty"`

	// FirstAuthorHasEqual reports whether FirstAuthor appears in the
	// equal-contribution set.
	FirstAuthorHasEqual bool `json:"first_author_has_equal,omitempty" yaml:"first_author_has_equal,omitempty"`

	// SourceID is a stable per-source paper identifier (e.g. an arXiv
	// ID), used for exact duplicate checks.
	SourceID string `json:"source_id,omitempty" yaml:"source_id,omitempty"`

	// SourceURL is the canonical URL the evidence file came from.
	SourceURL string `json:"source_url,omitempty" yaml:"source_url,omitempty"`
}

// NameVariant is a derived, match-only rendering of an author name. It
// is never treated as the canonical identity and is owned transiently
// by one match attempt.
type NameVariant struct {
	// Original is the name as the source provided it.
	Original string

	// Romanized is the Latin rendering when the source script is
	// non-Latin; empty otherwise.
	Romanized string

	// SurnameFirst and GivenFirst are the two token orderings of the
	// matchable form, so later matching need not know which the source
	// used.
	SurnameFirst string
	GivenFirst   string
}

// Forms returns the distinct non-empty matchable strings of the variant.
func (v NameVariant) Forms() []string {
	var forms []string
	seen := make(map[string]bool)
	for _, f := range []string{v.Original, v.Romanized, v.SurnameFirst, v.GivenFirst} {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		forms = append(forms, f)
	}
	return forms
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AuthorMatchType distinguishes a first-author match from a match
// against the equal-contribution author set.
type AuthorMatchType string

const (
	AuthorMatchFirst AuthorMatchType = "first"
	AuthorMatchEqual AuthorMatchType = "equal"
)

// MatchDetails records the raw field values that were compared, for
// audit and debugging.
type MatchDetails struct {
	WebTitle          string   `json:"web_title,omitempty" yaml:"web_title,omitempty"`
	DocumentTitle     string   `json:"document_title,omitempty" yaml:"document_title,omitempty"`
	RecognitionTitle  string   `json:"recognition_title,omitempty" yaml:"recognition_title,omitempty"`
	WebAuthor         string   `json:"web_author,omitempty" yaml:"web_author,omitempty"`
	WebAuthorVariants []string `json:"web_author_variants,omitempty" yaml:"web_author_variants,omitempty"`
	DocumentAuthor    string   `json:"document_author,omitempty" yaml:"document_author,omitempty"`
	RecognitionAuthor string   `json:"recognition_author,omitempty" yaml:"recognition_author,omitempty"`
	WebDate           string   `json:"web_date,omitempty" yaml:"web_date,omitempty"`
}

// MatchResult is the verdict for one verification pass over exactly one
// (web, document, recognition) triple. Each boolean is true only when
// at least one of the document/recognition candidates satisfied that
// field's match predicate against the web candidate. A MatchResult is
// produced once per verification call and not mutated afterwards.
type MatchResult struct {
	// AuthorMatch reports whether any author predicate held.
	AuthorMatch bool `json:"author_match" yaml:"author_match"`

	// AuthorMatchType is "first" or "equal" when AuthorMatch is true.
	AuthorMatchType AuthorMatchType `json:"author_match_type,omitempty" yaml:"author_match_type,omitempty"`

	// AuthorMatchSource names the candidate source that matched.
	AuthorMatchSource Source `json:"author_match_source,omitempty" yaml:"author_match_source,omitempty"`

	// DateMatch reports whether the web date matched any candidate date.
	DateMatch bool `json:"date_match" yaml:"date_match"`

	// DateMatchType is the date slot that matched (received, revised,
	// accepted, available_online, other).
	DateMatchType string `json:"date_match_type,omitempty" yaml:"date_match_type,omitempty"`

	// DateMatchSource names the candidate source that matched.
	DateMatchSource Source `json:"date_match_source,omitempty" yaml:"date_match_source,omitempty"`

	// MatchedDate is the normalized date both sides agreed on.
	MatchedDate string `json:"matched_date,omitempty" yaml:"matched_date,omitempty"`

	// TitleMatch reports whether any title predicate held.
	TitleMatch bool `json:"title_match" yaml:"title_match"`

	// TitleMatchSource names the candidate source that matched.
	TitleMatchSource Source `json:"title_match_source,omitempty" yaml:"title_match_source,omitempty"`

	// Details carries the raw compared values.
	Details MatchDetails `json:"details" yaml:"details"`
}

// Passed reports whether the verification counts as an overall pass:
// any one of the three field matches suffices.
func (r MatchResult) Passed() bool {
	return r.AuthorMatch || r.DateMatch || r.TitleMatch
}

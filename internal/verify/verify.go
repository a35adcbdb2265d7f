// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify reconciles the three candidate descriptions of a paper
// into a single match verdict.
package verify

import (
	"strings"

	"github.com/meshintel/paper-verifier/internal/dates"
	"github.com/meshintel/paper-verifier/internal/names"
	"github.com/meshintel/paper-verifier/internal/titles"
	"github.com/meshintel/paper-verifier/pkg/types"
)

// Raw-length floors before a candidate title is even considered.
// Document metadata titles are frequently filenames, so the document
// side gets a lower floor plus the filename denylist; recognition
// titles are held to a higher one.
const (
	minRecognitionTitleLen = 10
	minDocumentTitleLen    = 5
)

// Verify compares the web record against the document and recognition
// records and reports which fields reconcile. Empty records are valid
// input: every predicate treats a missing field as "cannot match", and
// an all-false result is a normal outcome, not an error.
func Verify(web, doc, recog types.MetadataRecord) types.MatchResult {
	res := types.MatchResult{
		Details: types.MatchDetails{
			WebTitle:          web.Title,
			DocumentTitle:     doc.Title,
			RecognitionTitle:  recog.Title,
			WebAuthor:         web.FirstAuthor,
			DocumentAuthor:    doc.FirstAuthor,
			RecognitionAuthor: recog.FirstAuthor,
		},
	}

	matchDates(&res, web, doc, recog)
	matchTitles(&res, web, doc, recog)
	matchAuthors(&res, web, doc, recog)
	return res
}

// webDate picks the web record's preferred date: received when
// present, otherwise the online-availability date.
func webDate(web types.MetadataRecord) string {
	if web.Dates.Received != "" {
		return web.Dates.Received
	}
	return web.Dates.AvailableOnline
}

// candidateDates enumerates a record's dates in match-priority order.
type candidateDate struct {
	slot  string
	value string
}

func datesInOrder(ds types.DateSet) []candidateDate {
	out := []candidateDate{
		{"received", ds.Received},
		{"revised", ds.Revised},
		{"accepted", ds.Accepted},
		{"available_online", ds.AvailableOnline},
	}
	for _, d := range ds.Other {
		out = append(out, candidateDate{"other", d})
	}
	return out
}

// matchDates compares the normalized web date against every candidate
// date, document before recognition, each in slot-priority order.
// Equality is exact on normalized values; there is no fuzzy matching.
func matchDates(res *types.MatchResult, web, doc, recog types.MetadataRecord) {
	target := dates.NormalizeDate(webDate(web))
	res.Details.WebDate = target
	if target == "" {
		return
	}

	sources := []struct {
		source types.Source
		ds     types.DateSet
	}{
		{types.SourceDocument, doc.Dates},
		{types.SourceRecognition, recog.Dates},
	}
	for _, src := range sources {
		for _, cd := range datesInOrder(src.ds) {
			if cd.value == "" {
				continue
			}
			if dates.NormalizeDate(cd.value) == target {
				res.DateMatch = true
				res.DateMatchType = cd.slot
				res.DateMatchSource = src.source
				res.MatchedDate = target
				return
			}
		}
	}
}

// matchTitles checks the recognition title before the document title:
// recognition text comes from the page itself, while document metadata
// titles are often submission-system filenames.
func matchTitles(res *types.MatchResult, web, doc, recog types.MetadataRecord) {
	if web.Title == "" {
		return
	}

	if rt := strings.TrimSpace(recog.Title); len([]rune(rt)) >= minRecognitionTitleLen {
		if titles.Match(web.Title, rt) {
			res.TitleMatch = true
			res.TitleMatchSource = types.SourceRecognition
			return
		}
	}

	dt := strings.TrimSpace(doc.Title)
	if len([]rune(dt)) <= minDocumentTitleLen || titles.LikelyFilename(dt) {
		return
	}
	if titles.Match(web.Title, dt) {
		res.TitleMatch = true
		res.TitleMatchSource = types.SourceDocument
	}
}

// matchAuthors tries every variant of the web first author against the
// document then recognition first authors, then falls back to the
// equal-contribution author sets.
func matchAuthors(res *types.MatchResult, web, doc, recog types.MetadataRecord) {
	if web.FirstAuthor == "" {
		return
	}
	variants := names.Variants(web.FirstAuthor)
	forms := variants.Forms()
	res.Details.WebAuthorVariants = forms

	candidates := []struct {
		source types.Source
		name   string
	}{
		{types.SourceDocument, doc.FirstAuthor},
		{types.SourceRecognition, recog.FirstAuthor},
	}
	for _, form := range forms {
		for _, cand := range candidates {
			if cand.name == "" {
				continue
			}
			if names.Match(form, cand.name) {
				res.AuthorMatch = true
				res.AuthorMatchType = types.AuthorMatchFirst
				res.AuthorMatchSource = cand.source
				return
			}
		}
	}

	// Equal-contribution fallback: the web first author may be a
	// co-first author listed beyond position one in the candidate.
	equalSets := []struct {
		source types.Source
		set    []string
	}{
		{types.SourceDocument, doc.EqualContributionAuthors},
		{types.SourceRecognition, recog.EqualContributionAuthors},
	}
	for _, form := range forms {
		for _, es := range equalSets {
			for _, name := range es.set {
				if names.Match(form, name) {
					res.AuthorMatch = true
					res.AuthorMatchType = types.AuthorMatchEqual
					res.AuthorMatchSource = es.source
					return
				}
			}
		}
	}
}

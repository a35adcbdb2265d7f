// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext reads the text layer and document-information
// dictionary of a PDF and turns them into a document-source metadata
// record.
package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/meshintel/paper-verifier/internal/dates"
	"github.com/meshintel/paper-verifier/internal/names"
	"github.com/meshintel/paper-verifier/internal/titles"
	"github.com/meshintel/paper-verifier/pkg/types"
)

// Front matter lives on the first pages; reading more just slows the
// extractors down.
const (
	maxPages = 3
	maxChars = 5000
)

// Extraction is the raw material read from a PDF before any
// interpretation.
type Extraction struct {
	MetaTitle  string
	MetaAuthor string
	Text       string
}

// ReadFile opens a PDF and pulls the information-dictionary title and
// author plus the leading text layer.
func ReadFile(path string) (Extraction, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return Extraction{}, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	var ex Extraction

	info := r.Trailer().Key("Info")
	if !info.IsNull() {
		ex.MetaTitle = stringValue(info.Key("Title"))
		ex.MetaAuthor = stringValue(info.Key("Author"))
	}

	var b strings.Builder
	pages := r.NumPage()
	if pages > maxPages {
		pages = maxPages
	}
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
		if b.Len() >= maxChars {
			break
		}
	}
	text := b.String()
	if len(text) > maxChars {
		text = text[:maxChars]
	}
	ex.Text = text
	return ex, nil
}

func stringValue(v pdf.Value) string {
	if v.Kind() != pdf.String {
		return ""
	}
	return strings.TrimSpace(v.Text())
}

// Record reads a PDF and builds its document-source metadata record.
func Record(path string) (types.MetadataRecord, error) {
	ex, err := ReadFile(path)
	if err != nil {
		return types.MetadataRecord{}, err
	}
	return BuildRecord(ex), nil
}

// BuildRecord interprets a raw extraction: the metadata title is used
// when it survives validation, the text layer otherwise; authors and
// dates always come through the extractors so filename artifacts and
// producer-tool names never leak into the record.
func BuildRecord(ex Extraction) types.MetadataRecord {
	title := titles.FromMetadata(ex.MetaTitle)
	if title == "" {
		title = titles.FromText(ex.Text)
	}

	nameRes := names.Extract(ex.Text, ex.MetaAuthor)

	rec := types.MetadataRecord{
		Source:                   types.SourceDocument,
		Title:                    title,
		FirstAuthor:              nameRes.FirstAuthor,
		AllAuthors:               nameRes.AllAuthors,
		Dates:                    dates.Extract(ex.Text, title),
		EqualContribution:        nameRes.EqualContribution,
		EqualContributionAuthors: nameRes.EqualContributionAuthors,
		FirstAuthorHasEqual:      nameRes.FirstAuthorHasEqual,
	}
	return rec
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"testing"

	"github.com/meshintel/paper-verifier/pkg/types"
)

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile("testdata/does-not-exist.pdf"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestBuildRecordUsesMetadataTitle(t *testing.T) {
	ex := Extraction{
		MetaTitle:  "Computational screening of candidate materials",
		MetaAuthor: "Mengmeng Wang; Jichen Tian",
		Text: "Computational screening of candidate materials\n" +
			"Mengmeng Wang, Jichen Tian\n" +
			"Received 3 January 2024; Accepted 2 April 2024\n",
	}
	rec := BuildRecord(ex)
	if rec.Source != types.SourceDocument {
		t.Errorf("Source = %q", rec.Source)
	}
	if rec.Title != "Computational screening of candidate materials" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.FirstAuthor != "Mengmeng Wang" {
		t.Errorf("FirstAuthor = %q", rec.FirstAuthor)
	}
	if rec.Dates.Received != "2024-01-03" {
		t.Errorf("Received = %q", rec.Dates.Received)
	}
	if rec.Dates.Accepted != "2024-04-02" {
		t.Errorf("Accepted = %q", rec.Dates.Accepted)
	}
}

func TestBuildRecordFallsBackToTextTitle(t *testing.T) {
	ex := Extraction{
		MetaTitle: "manuscript_final_v3.pdf",
		Text: "Computational screening of candidate materials\n" +
			"Mengmeng Wang\n",
	}
	rec := BuildRecord(ex)
	if rec.Title != "Computational screening of candidate materials" {
		t.Errorf("Title = %q, want text-layer title", rec.Title)
	}
}

func TestBuildRecordRejectsProducerAuthor(t *testing.T) {
	ex := Extraction{
		MetaAuthor: "Compaq",
		Text: "A Study of Things\n" +
			"Mengmeng Wang\n",
	}
	rec := BuildRecord(ex)
	if rec.FirstAuthor == "Compaq" {
		t.Fatal("producer-tool author leaked into record")
	}
	if rec.FirstAuthor != "Mengmeng Wang" {
		t.Errorf("FirstAuthor = %q", rec.FirstAuthor)
	}
}

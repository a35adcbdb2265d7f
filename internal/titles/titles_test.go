// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package titles

import (
	"strings"
	"testing"
)

func TestFromMetadata(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain title", "Deep Learning for Molecular Screening", "Deep Learning for Molecular Screening"},
		{"too short", "Notes", ""},
		{"filename", "manuscript_final_v3.pdf", ""},
		{"doi", "doi:10.1039/d5nr03036f", ""},
		{"bare doi", "10.1039/d5nr03036f", ""},
		{"boilerplate", "View Article Online", ""},
		{"all caps header", "JOURNAL OF THINGS VOL 12", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromMetadata(tt.in); got != tt.want {
				t.Errorf("FromMetadata(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromTextSingleLine(t *testing.T) {
	text := "View Article Online\n" +
		"DOI: 10.1039/d5nr03036f\n" +
		"Computational screening of candidate materials\n" +
		"Mengmeng Wang, Jichen Tian\n"
	got := FromText(text)
	if got != "Computational screening of candidate materials" {
		t.Errorf("FromText = %q", got)
	}
}

func TestFromTextLabeledMultiLine(t *testing.T) {
	text := "Title: Evidence reconciliation across\n" +
		"heterogeneous document sources in large archives\n" +
		"\n" +
		"Abstract\n"
	got := FromText(text)
	want := "Evidence reconciliation across heterogeneous document sources in large archives"
	if got != want {
		t.Errorf("FromText = %q, want %q", got, want)
	}
}

func TestAutoMergeCandidate(t *testing.T) {
	lines := []string{
		"A hierarchical framework for evidence reconciliation",
		"across heterogeneous document sources in large archives",
		"",
		"Received 3 January 2024",
	}
	cands := autoMergeCandidate(lines)
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1", len(cands))
	}
	got := cands[0].text
	if !strings.Contains(got, "hierarchical framework") || !strings.Contains(got, "heterogeneous document sources") {
		t.Errorf("merged candidate = %q", got)
	}
	if cands[0].priority != autoMergeKeyword {
		t.Errorf("priority = %d, want %d", cands[0].priority, autoMergeKeyword)
	}
}

func TestFromTextTrimsTrailingAuthors(t *testing.T) {
	text := "Computational screening of metal organic frameworks for efficient carbon capture Jiaxiang Wu, Mei Li\n" +
		"State Key Laboratory of Clean Energy\n"
	got := FromText(text)
	want := "Computational screening of metal organic frameworks for efficient carbon capture"
	if got != want {
		t.Errorf("FromText = %q, want %q", got, want)
	}
}

func TestTrimTrailingAuthors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"comma separated names truncated",
			"Computational screening of metal organic frameworks for efficient carbon capture Jiaxiang Wu, Mei Li",
			"Computational screening of metal organic frameworks for efficient carbon capture",
		},
		{
			"and joined names truncated",
			"Computational screening of metal organic frameworks for efficient carbon capture Jiaxiang Wu and Mei Li",
			"Computational screening of metal organic frameworks for efficient carbon capture",
		},
		{
			"single trailing name kept",
			"Review of distributed consensus algorithms in modern datacenters Alice Smith",
			"Review of distributed consensus algorithms in modern datacenters Alice Smith",
		},
		{
			"names near the start kept",
			"Deep Learning, Wide Learning and beyond",
			"Deep Learning, Wide Learning and beyond",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trimTrailingAuthors(tt.in); got != tt.want {
				t.Errorf("trimTrailingAuthors(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromTextRejectsJunk(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"urls and emails only", "http://example.com/paper\ncontact@example.com\n"},
		{"boilerplate only", "View Article Online\nCheck for updates\nDOI: 10.1039/x\n"},
		{"section heads only", "Introduction\nAbstract\nKeywords\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromText(tt.text); got != "" {
				t.Errorf("FromText(%q) = %q, want empty", tt.text, got)
			}
		})
	}
}

func TestLikelyFilename(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"View Letter", true},
		{"viewletter", true},
		{"accepted_manuscript", true},
		{"Download", true},
		{"Document1", true},
		{"Deep Learning for Molecular Screening", false},
	}
	for _, tt := range tests {
		if got := LikelyFilename(tt.in); got != tt.want {
			t.Errorf("LikelyFilename(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeForMatch(t *testing.T) {
	got := NormalizeForMatch("Deep Learning: for X!  基于机器学习")
	want := "deeplearningforx基于机器学习"
	if got != want {
		t.Errorf("NormalizeForMatch = %q, want %q", got, want)
	}
}

func TestMatch(t *testing.T) {
	long := "Computational screening of candidate materials for solid-state batteries"
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"exact after normalization", "Deep Learning for X: A Survey!", "deep learning for x a survey", true},
		{"containment of substantial shorter", long, "Computational screening of candidate materials", true},
		{"contained subtitle variant", "Deep Learning for X", "Deep Learning for X: A Survey", true},
		{"short containment rejected", long, "Computational sc", false},
		{"high similarity", long, "Computational screening of candidate material for solid state batteries", true},
		{"different papers", long, "A study of unrelated phenomena in shallow water waves", false},
		{"both too short", "Short", "Short", false},
		{"one empty", long, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.a, tt.b); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

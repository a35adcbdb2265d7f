// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recognize

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meshintel/paper-verifier/pkg/types"
)

// mockBackend returns scripted responses in order.
type mockBackend struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (m *mockBackend) Complete(_ context.Context, msgs []Message, _ int) (string, error) {
	i := m.calls
	m.calls++
	for _, msg := range msgs {
		switch c := msg.Content.(type) {
		case string:
			m.prompts = append(m.prompts, c)
		case []ContentPart:
			for _, p := range c {
				if p.Type == "text" {
					m.prompts = append(m.prompts, p.Text)
				}
			}
		}
	}
	if i < len(m.errs) && m.errs[i] != nil {
		return "", m.errs[i]
	}
	if i < len(m.responses) {
		return m.responses[i], nil
	}
	return "", fmt.Errorf("unexpected call %d", i)
}

func TestIsDegenerate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"empty", "", false},
		{"short output never degenerate", "}}}}", false},
		{"normal text", strings.Repeat("The quick brown fox jumps over the lazy dog. ", 3), false},
		{"single repeated character", strings.Repeat("}", 80), true},
		{"three characters heavily skewed", strings.Repeat("}", 90) + strings.Repeat("ab", 2), true},
		{"punctuation dominated", strings.Repeat("}", 40) + strings.Repeat(".,;:", 5), true},
		{"diverse punctuation below threshold", strings.Repeat("{}[]()<>.,;:!?+-", 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDegenerate(tt.in); got != tt.want {
				t.Errorf("IsDegenerate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractTextFirstAttemptGood(t *testing.T) {
	backend := &mockBackend{responses: []string{"Deep Learning for X\nMengmeng Wang"}}
	got, err := ExtractText(context.Background(), backend, "data:image/png;base64,xxxx")
	require.NoError(t, err)
	require.Equal(t, "Deep Learning for X\nMengmeng Wang", got)
	require.Equal(t, 1, backend.calls)
}

func TestExtractTextRetriesOnDegenerate(t *testing.T) {
	garbage := strings.Repeat("}", 100)
	backend := &mockBackend{responses: []string{garbage, "Real page text here"}}
	got, err := ExtractText(context.Background(), backend, "data:image/png;base64,xxxx")
	require.NoError(t, err)
	require.Equal(t, "Real page text here", got)
	require.Equal(t, 2, backend.calls)
}

func TestExtractTextAllDegenerateReturnsLast(t *testing.T) {
	first := strings.Repeat("}", 100)
	second := strings.Repeat("]", 100)
	third := strings.Repeat("{", 100)
	backend := &mockBackend{responses: []string{first, second, third}}
	got, err := ExtractText(context.Background(), backend, "data:image/png;base64,xxxx")
	require.NoError(t, err)
	require.Equal(t, third, got)
	require.Equal(t, 3, backend.calls)
}

func TestExtractTextErrorStopsLadder(t *testing.T) {
	boom := fmt.Errorf("boom")
	backend := &mockBackend{
		responses: []string{"", "never reached"},
		errs:      []error{boom, nil},
	}
	_, err := ExtractText(context.Background(), backend, "data:image/png;base64,xxxx")
	require.Error(t, err)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, backend.calls)
}

func TestExtractTextPromptEchoRetries(t *testing.T) {
	echo := "好的，" + retryPrompts[0] + "\n以下是识别结果。"
	backend := &mockBackend{responses: []string{echo, "Real page text here"}}
	got, err := ExtractText(context.Background(), backend, "data:image/png;base64,xxxx")
	require.NoError(t, err)
	require.Equal(t, "Real page text here", got)
	require.Equal(t, 2, backend.calls)
}

func TestBuildInput(t *testing.T) {
	got, truncated := BuildInput("  a\n\nb\tc  ", 100)
	if got != "a b c" || truncated {
		t.Errorf("BuildInput = %q, %v", got, truncated)
	}

	long := strings.Repeat("x ", 5000)
	got, truncated = BuildInput(long, 0)
	if !truncated {
		t.Error("expected truncation at default limit")
	}
	if len([]rune(got)) != DefaultMaxInputChars {
		t.Errorf("truncated length = %d", len([]rune(got)))
	}
}

const sampleJSON = `{
  "document_type": "论文首页",
  "title": "Deep Learning for X",
  "first_author": "Mengmeng Wang",
  "is_co_first": true,
  "authors": "Mengmeng Wang; Jichen Tian",
  "dates": {
    "received": "3 January 2024",
    "received_in_revised": "Not mentioned",
    "accepted": "2024-04-02",
    "available_online": "Not mentioned"
  },
  "confidence_note": ""
}`

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{"bare object", sampleJSON, true},
		{"json fence", "Here you go:\n```json\n" + sampleJSON + "\n```", true},
		{"plain fence", "```\n" + sampleJSON + "\n```", true},
		{"object inside prose", "Sure! The result is " + sampleJSON + " as requested.", true},
		{"no json at all", "I could not read the image.", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, errStr := ExtractJSON(tt.in)
			if tt.ok {
				require.Empty(t, errStr)
				require.NotNil(t, s)
				require.Equal(t, "Deep Learning for X", s.Title)
				require.True(t, s.IsCoFirst)
			} else {
				require.Nil(t, s)
				require.NotEmpty(t, errStr)
			}
		})
	}
}

func TestStructureParsesAnswer(t *testing.T) {
	backend := &mockBackend{responses: []string{"```json\n" + sampleJSON + "\n```"}}
	res, err := Structure(context.Background(), backend, "some recognized text", 0)
	require.NoError(t, err)
	require.True(t, res.IsStructured())
	require.Equal(t, "Mengmeng Wang", res.Structured.FirstAuthor)
	require.False(t, res.TruncatedInput)
}

func TestStructureUnparseableIsNotAnError(t *testing.T) {
	backend := &mockBackend{responses: []string{"no json here"}}
	res, err := Structure(context.Background(), backend, "text", 0)
	require.NoError(t, err)
	require.False(t, res.IsStructured())
	require.NotEmpty(t, res.ParseError)
	require.Equal(t, "no json here", res.RawText)
}

func TestStructuredToRecord(t *testing.T) {
	s, errStr := ExtractJSON(sampleJSON)
	require.Empty(t, errStr)

	rec := s.ToRecord()
	require.Equal(t, types.SourceRecognition, rec.Source)
	require.Equal(t, "Deep Learning for X", rec.Title)
	require.Equal(t, "Mengmeng Wang", rec.FirstAuthor)
	require.Equal(t, []string{"Mengmeng Wang", "Jichen Tian"}, rec.AllAuthors)
	require.Equal(t, "2024-01-03", rec.Dates.Received)
	require.Equal(t, "", rec.Dates.Revised, "Not mentioned maps to empty")
	require.Equal(t, "2024-04-02", rec.Dates.Accepted)
	require.True(t, rec.EqualContribution)
	require.True(t, rec.FirstAuthorHasEqual)
}

func TestStructuredToRecordDropsUnparseableDates(t *testing.T) {
	s := &Structured{
		Title:       "Deep Learning for X",
		FirstAuthor: "Mengmeng Wang",
		Dates: StructuredDates{
			Received:        "2024-06",
			Accepted:        "sometime in spring",
			AvailableOnline: "12 June 2024",
		},
	}
	rec := s.ToRecord()
	require.Equal(t, "", rec.Dates.Received, "partial date never persists")
	require.Equal(t, "", rec.Dates.Accepted, "prose never persists")
	require.Equal(t, "2024-06-12", rec.Dates.AvailableOnline)
}

func TestRawRecordFallback(t *testing.T) {
	text := "Computational screening of candidate materials\n" +
		"Mengmeng Wang, Jichen Tian\n" +
		"Received: 16 January 2025\n"
	rec := RawRecord(text)
	require.Equal(t, types.SourceRecognition, rec.Source)
	require.Equal(t, "Computational screening of candidate materials", rec.Title)
	require.Equal(t, "Mengmeng Wang", rec.FirstAuthor)
	require.Equal(t, "2025-01-16", rec.Dates.Received)
}

func TestClientComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if body["model"] != "test-model" {
			t.Errorf("model = %v", body["model"])
		}
		fmt.Fprint(w, `{"choices":[{"message":{"content":"hello"}}]}`)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL + "/v1", APIKey: "test-key", Model: "test-model"}
	got, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, 100)
	require.NoError(t, err)
	require.Equal(t, "hello", got)
}

func TestClientCompleteMissingConfig(t *testing.T) {
	c := &Client{}
	_, err := c.Complete(context.Background(), nil, 10)
	require.Error(t, err)
}

func TestClientCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, APIKey: "k", Model: "m"}
	_, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, 10)
	require.Error(t, err)
	require.Contains(t, err.Error(), "400")
}

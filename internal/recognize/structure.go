// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recognize

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/meshintel/paper-verifier/internal/dates"
	"github.com/meshintel/paper-verifier/internal/names"
	"github.com/meshintel/paper-verifier/internal/titles"
	"github.com/meshintel/paper-verifier/pkg/types"
)

// structuringPrompt asks the model for a strict-JSON rendering of the
// paper metadata found in recognized text. Field names must stay in
// sync with the Structured type below.
const structuringPrompt = `你是学术文档信息抽取助手。下面是OCR识别得到的原始文本（可能包含论文首页、录用通知、邮件、网页截图等）。请从中提取论文关键信息并输出严格JSON。

重要提示：
1) 如果文本中包含"收件箱"、"草稿箱"等邮箱界面词汇，但同时也包含论文相关信息（如论文名称、作者、录用日期等），请判断为【邮件】类型，并提取其中的论文信息。
2) 不要因为出现"收件箱"就判为界面，要检查是否包含实际的论文/录用信息。
3) 对于邮件场景，重点关注：邮件主题、论文名称、作者、录用日期、发件人邮箱等信息。

日期提取规则（非常重要）：
1) received（投稿日期）：查找"Received"、"Received:"等关键词后的日期。这是论文最初投稿的日期。
2) received_in_revised（修改后投稿日期）：查找"Received in revised form"、"Revised"、"Revised:"等关键词后的日期。
3) accepted（接受日期）：查找"Accepted"、"Accepted:"、"录用日期"、"同意录用"等关键词后的日期。
4) available_online（在线发表日期）：查找"Available online"、"Published online"等关键词后的日期，通常出现在论文首页底部或期刊信息附近。

重要区分：
- "Received"和"Available online"是不同的日期类型，不要混淆。
- 如果文本中同时存在"Received"和"Available online"，必须分别提取，不要将"Received"的日期填入"available_online"字段。

要求：
1) 只输出一个JSON对象，不要输出任何额外文字、不要使用Markdown代码块。
2) 若缺失，填写 "Not mentioned"。
3) 日期请尽量标准化为 YYYY-MM-DD；若只出现到月份/年份，保留原样并在 confidence_note 说明不确定性。
4) first_author字段：提取第一作者的全名（如果作者列表中有多个作者，取第一个）。
5) is_co_first字段：判断第一作者是否为共一作者。如果作者列表中第一个作者名字旁边有"*"、"†"、"‡"等共一标记，或者明确标注"co-first author"、"共同第一作者"等，则填写true，否则填写false。

输出JSON格式（字段名必须一致）：
{
  "document_type": "[论文首页/录用通知/邮件/其他]",
  "title": "",
  "first_author": "",
  "is_co_first": false,
  "authors": "",
  "dates": {
    "received": "",
    "received_in_revised": "",
    "accepted": "",
    "available_online": ""
  },
  "confidence_note": ""
}`

// DefaultMaxInputChars bounds the recognized text handed to the
// structuring model.
const DefaultMaxInputChars = 8000

const structuringMaxTokens = 2048

// Structured is the model's parsed JSON answer.
type Structured struct {
	DocumentType   string          `json:"document_type"`
	Title          string          `json:"title"`
	FirstAuthor    string          `json:"first_author"`
	IsCoFirst      bool            `json:"is_co_first"`
	Authors        string          `json:"authors"`
	Dates          StructuredDates `json:"dates"`
	ConfidenceNote string          `json:"confidence_note"`
}

// StructuredDates mirrors the dates object of the structuring schema.
type StructuredDates struct {
	Received        string `json:"received"`
	ReceivedRevised string `json:"received_in_revised"`
	Accepted        string `json:"accepted"`
	AvailableOnline string `json:"available_online"`
}

// StructureResult is the outcome of a structuring pass. Structured is
// nil when the model's answer carried no parseable JSON; RawText then
// remains the only usable output.
type StructureResult struct {
	RawText        string
	Structured     *Structured
	ParseError     string
	TruncatedInput bool
}

// IsStructured reports whether a parseable JSON object came back.
func (r StructureResult) IsStructured() bool { return r.Structured != nil }

// BuildInput collapses whitespace and truncates the recognized text to
// maxChars. The second return reports whether truncation occurred.
func BuildInput(text string, maxChars int) (string, bool) {
	if text == "" {
		return "", false
	}
	if maxChars <= 0 {
		maxChars = DefaultMaxInputChars
	}
	cleaned := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	runes := []rune(cleaned)
	if len(runes) <= maxChars {
		return cleaned, false
	}
	return string(runes[:maxChars]), true
}

// Structure asks the model to render recognized text as paper metadata
// JSON. A transport failure is an error; an unparseable answer is not,
// the caller falls back to the raw recognized text.
func Structure(ctx context.Context, backend Backend, text string, maxChars int) (StructureResult, error) {
	input, truncated := BuildInput(text, maxChars)

	msgs := []Message{
		{Role: "system", Content: "你是一个严谨的JSON信息抽取器。"},
		{Role: "user", Content: structuringPrompt + "\n\nOCR文本如下：\n" + input},
	}
	content, err := backend.Complete(ctx, msgs, structuringMaxTokens)
	if err != nil {
		return StructureResult{TruncatedInput: truncated}, err
	}

	res := StructureResult{RawText: content, TruncatedInput: truncated}
	structured, parseErr := ExtractJSON(content)
	if parseErr != "" {
		res.ParseError = parseErr
		return res, nil
	}
	res.Structured = structured
	return res, nil
}

var (
	jsonFenceRe   = regexp.MustCompile("(?is)```json\\s*(.*?)\\s*```")
	anyFenceRe    = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
	braceSpanRe   = regexp.MustCompile(`(?s)\{.*\}`)
	authorSplitRe = regexp.MustCompile(`[,;]`)
)

// ExtractJSON recovers a Structured object from model output that may
// wrap its JSON in code fences or prose. The ladder tries a json code
// fence, any code fence, the first brace-balanced object, and finally
// the widest brace span. Returns a parse error string when nothing
// parses.
func ExtractJSON(text string) (*Structured, string) {
	if strings.TrimSpace(text) == "" {
		return nil, "empty"
	}

	if m := jsonFenceRe.FindStringSubmatch(text); m != nil && m[1] != "" {
		return parseStructured(m[1])
	}
	if m := anyFenceRe.FindStringSubmatch(text); m != nil && m[1] != "" {
		return parseStructured(m[1])
	}

	// First brace-balanced object.
	depth := 0
	start := -1
	for i, ch := range text {
		switch ch {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			depth--
			if depth == 0 && start >= 0 {
				if s, errStr := parseStructured(text[start : i+1]); errStr == "" {
					return s, ""
				}
				start = -1
			}
		}
	}

	// Widest brace span as a last resort.
	if m := braceSpanRe.FindString(text); m != "" {
		if s, errStr := parseStructured(m); errStr == "" {
			return s, ""
		}
	}
	return nil, "json_parse_failed"
}

func parseStructured(s string) (*Structured, string) {
	var out Structured
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err.Error()
	}
	return &out, ""
}

// notMentioned is the schema's explicit absence marker.
const notMentioned = "not mentioned"

func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if strings.ToLower(s) == notMentioned {
		return ""
	}
	return s
}

// ToRecord maps a structured answer onto a recognition-source metadata
// record. Dates are normalized; values the normalizer rejects are
// dropped so only YYYY-MM-DD forms ever enter a DateSet.
func (s *Structured) ToRecord() types.MetadataRecord {
	rec := types.MetadataRecord{
		Source:      types.SourceRecognition,
		Title:       cleanField(s.Title),
		FirstAuthor: cleanField(s.FirstAuthor),
	}
	if authors := cleanField(s.Authors); authors != "" {
		for _, a := range authorSplitRe.Split(authors, -1) {
			if a = strings.TrimSpace(a); a != "" {
				rec.AllAuthors = append(rec.AllAuthors, a)
			}
		}
	}
	rec.Dates = types.DateSet{
		Received:        dates.NormalizeDate(cleanField(s.Dates.Received)),
		Revised:         dates.NormalizeDate(cleanField(s.Dates.ReceivedRevised)),
		Accepted:        dates.NormalizeDate(cleanField(s.Dates.Accepted)),
		AvailableOnline: dates.NormalizeDate(cleanField(s.Dates.AvailableOnline)),
	}
	rec.EqualContribution = s.IsCoFirst
	rec.FirstAuthorHasEqual = s.IsCoFirst
	return rec
}

// RawRecord builds a recognition-source record straight from
// recognition text, for when the structuring pass produced no
// parseable answer.
func RawRecord(text string) types.MetadataRecord {
	found := names.Extract(text, "")
	return types.MetadataRecord{
		Source:                   types.SourceRecognition,
		Title:                    titles.FromText(text),
		FirstAuthor:              found.FirstAuthor,
		AllAuthors:               found.AllAuthors,
		Dates:                    dates.Extract(text, ""),
		EqualContribution:        found.EqualContribution,
		EqualContributionAuthors: found.EqualContributionAuthors,
		FirstAuthorHasEqual:      found.FirstAuthorHasEqual,
	}
}

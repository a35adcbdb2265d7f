// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recognize

import (
	"context"
	"fmt"
)

// retryPrompts is the recognition prompt ladder. When an attempt comes
// back degenerate the next, simpler prompt is tried; the last resort is
// an English phrasing. Source pages are predominantly Chinese-language
// acceptance documents, so the primary prompts are written in Chinese.
var retryPrompts = []string{
	"请只返回图片/PDF页面中的**全部可见文字**，按从上到下顺序逐行输出。不要做邮箱界面判断，不要加入---占位符，不要输出JSON，不要总结。输出所有识别到的文字，包括标题、正文、日期、作者等所有内容。",
	"请只返回图片中的全部可见文字，逐行输出。不要做界面判断，不要加入占位符。",
	"Extract all visible text from the image line by line. Output only the text, no placeholders.",
}

const recognitionMaxTokens = 4096

// ExtractText recognizes all visible text on a page image supplied as a
// data URL. Degenerate output, including a reply that merely echoes the
// prompt, triggers the next prompt on the ladder; when every attempt
// degenerates the last output is returned anyway so the caller can
// still try downstream extraction. Transport errors stop the ladder:
// only content quality is retried, not the service.
func ExtractText(ctx context.Context, backend Backend, imageDataURL string) (string, error) {
	lastContent := ""
	for i, prompt := range retryPrompts {
		msgs := []Message{{
			Role: "user",
			Content: []ContentPart{
				{Type: "text", Text: prompt},
				{Type: "image_url", ImageURL: &ImageURL{URL: imageDataURL, Detail: "high"}},
			},
		}}

		content, err := backend.Complete(ctx, msgs, recognitionMaxTokens)
		if err != nil {
			return "", fmt.Errorf("recognition attempt %d: %w", i+1, err)
		}

		lastContent = content
		if !IsDegenerate(content) && !echoesPrompt(content, prompt) {
			return content, nil
		}
	}
	return lastContent, nil
}

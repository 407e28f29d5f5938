package blog

import "strings"

const placeholder = "{{transcript}}"

// DefaultPrompt is used when no system prompt is configured.
const DefaultPrompt = `You are an experienced technical writer. Turn the following video transcript
into a well structured blog post written in Markdown. Use a clear title,
short sections with headings, and keep the speaker's key points and examples.
Do not mention that the text comes from a transcript.

Transcript:
{{transcript}}`

// Render substitutes every {{transcript}} in template. A template without the
// placeholder gets the transcript appended.
func Render(template, transcript string) string {
	if strings.TrimSpace(template) == "" {
		template = DefaultPrompt
	}
	if !strings.Contains(template, placeholder) {
		return template + "\n\n" + transcript
	}
	return strings.ReplaceAll(template, placeholder, transcript)
}

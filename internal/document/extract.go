package document

import (
	"strings"
)

// ParagraphText extracts the visible text of a paragraph by concatenating
// its runs. Tabs and breaks contribute whitespace; drawings and other
// non-text elements contribute nothing.
func ParagraphText(para *Paragraph) string {
	if para == nil {
		return ""
	}

	var sb strings.Builder
	for i := range para.Runs {
		sb.WriteString(runText(&para.Runs[i]))
	}
	return sb.String()
}

// runText extracts text from a single run.
func runText(run *Run) string {
	if run == nil {
		return ""
	}
	if run.Text != nil {
		return run.Text.Text
	}
	if run.Tab != nil {
		return "\t"
	}
	if run.Break != nil {
		if run.Break.Type == "page" {
			return "\n\n"
		}
		return "\n"
	}
	return ""
}

// ReplaceParagraphText replaces the paragraph content with a single run
// holding the new text. The first run's properties carry over when present;
// rewritten text cannot be mapped back onto the original run boundaries,
// so the run structure is collapsed.
func ReplaceParagraphText(para *Paragraph, text string) {
	if para == nil {
		return
	}

	var props *RunProps
	if len(para.Runs) > 0 {
		props = para.Runs[0].Properties
	}

	para.Runs = []Run{{
		Properties: props,
		Text: &Text{
			Text:  text,
			Space: "preserve",
		},
	}}
}

// IsBlank reports whether a paragraph holds no visible text. Blank
// paragraphs are never submitted for rewriting and are never touched.
func IsBlank(para *Paragraph) bool {
	return strings.TrimSpace(ParagraphText(para)) == ""
}

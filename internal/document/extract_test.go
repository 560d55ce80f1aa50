package document

import (
	"testing"
)

func TestParagraphText(t *testing.T) {
	t.Run("ConcatenatesRuns", func(t *testing.T) {
		para := &Paragraph{
			Runs: []Run{
				{Text: &Text{Text: "Hello "}},
				{Text: &Text{Text: "world"}},
				{Text: &Text{Text: "!"}},
			},
		}

		if got := ParagraphText(para); got != "Hello world!" {
			t.Errorf("Expected %q, got %q", "Hello world!", got)
		}
	})

	t.Run("SpecialElements", func(t *testing.T) {
		para := &Paragraph{
			Runs: []Run{
				{Text: &Text{Text: "Line 1"}},
				{Tab: &Tab{}},
				{Text: &Text{Text: "Line 2"}},
				{Break: &Break{}},
				{Text: &Text{Text: "Line 3"}},
			},
		}

		if got := ParagraphText(para); got != "Line 1\tLine 2\nLine 3" {
			t.Errorf("Expected %q, got %q", "Line 1\tLine 2\nLine 3", got)
		}
	})

	t.Run("NilParagraph", func(t *testing.T) {
		if got := ParagraphText(nil); got != "" {
			t.Errorf("Expected empty string, got %q", got)
		}
	})
}

func TestReplaceParagraphText(t *testing.T) {
	t.Run("CollapsesToSingleRun", func(t *testing.T) {
		bold := &RunProps{Bold: &Bold{}}
		para := &Paragraph{
			Runs: []Run{
				{Properties: bold, Text: &Text{Text: "old "}},
				{Text: &Text{Text: "text"}},
			},
		}

		ReplaceParagraphText(para, "new text")

		if len(para.Runs) != 1 {
			t.Fatalf("Expected 1 run, got %d", len(para.Runs))
		}
		if para.Runs[0].Text.Text != "new text" {
			t.Errorf("Expected %q, got %q", "new text", para.Runs[0].Text.Text)
		}
		if para.Runs[0].Properties != bold {
			t.Error("Expected first run's properties to carry over")
		}
		if para.Runs[0].Text.Space != "preserve" {
			t.Error("Expected xml:space preserve on the new run")
		}
	})

	t.Run("EmptyParagraphGetsRun", func(t *testing.T) {
		para := &Paragraph{}
		ReplaceParagraphText(para, "fresh")

		if len(para.Runs) != 1 || para.Runs[0].Text.Text != "fresh" {
			t.Errorf("Expected single fresh run, got %+v", para.Runs)
		}
		if para.Runs[0].Properties != nil {
			t.Error("Expected no explicit run properties on a paragraph that had none")
		}
	})
}

func TestIsBlank(t *testing.T) {
	tests := []struct {
		name  string
		para  *Paragraph
		blank bool
	}{
		{"NoRuns", &Paragraph{}, true},
		{"WhitespaceOnly", &Paragraph{Runs: []Run{{Text: &Text{Text: "   "}}}}, true},
		{"TabOnly", &Paragraph{Runs: []Run{{Tab: &Tab{}}}}, true},
		{"HasText", &Paragraph{Runs: []Run{{Text: &Text{Text: "x"}}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBlank(tt.para); got != tt.blank {
				t.Errorf("IsBlank = %v, want %v", got, tt.blank)
			}
		})
	}
}

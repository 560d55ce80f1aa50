package document

// RunFormat is the captured style of one run. Nil fields mean the
// attribute was not set on the run, which is distinct from an explicit
// value; absent attributes stay absent on restore.
type RunFormat struct {
	Bold      *bool
	Italic    *bool
	Underline *string
	FontName  *string
	FontSize  *string
	FontColor *string
}

// ParagraphFormat is the captured paragraph-level style.
type ParagraphFormat struct {
	Alignment       *string
	LeftIndent      *string
	RightIndent     *string
	FirstLineIndent *string
	SpaceBefore     *string
	SpaceAfter      *string
	LineSpacing     *string
}

// Snapshot is a value-type copy of a paragraph's visual formatting,
// detached from its text. Captured before a rewrite, immutable once
// captured, and applied at most once to the paragraph it came from.
type Snapshot struct {
	Runs      []RunFormat
	Paragraph ParagraphFormat
}

// Capture reads the current style of a paragraph into a Snapshot. It is a
// pure read; the paragraph is not modified.
func Capture(para *Paragraph) *Snapshot {
	snap := &Snapshot{}

	for i := range para.Runs {
		snap.Runs = append(snap.Runs, captureRun(para.Runs[i].Properties))
	}

	if pp := para.Properties; pp != nil {
		if pp.Align != nil {
			snap.Paragraph.Alignment = strPtr(pp.Align.Val)
		}
		if pp.Indent != nil {
			if pp.Indent.Left != "" {
				snap.Paragraph.LeftIndent = strPtr(pp.Indent.Left)
			}
			if pp.Indent.Right != "" {
				snap.Paragraph.RightIndent = strPtr(pp.Indent.Right)
			}
			if pp.Indent.FirstLine != "" {
				snap.Paragraph.FirstLineIndent = strPtr(pp.Indent.FirstLine)
			}
		}
		if pp.Spacing != nil {
			if pp.Spacing.Before != "" {
				snap.Paragraph.SpaceBefore = strPtr(pp.Spacing.Before)
			}
			if pp.Spacing.After != "" {
				snap.Paragraph.SpaceAfter = strPtr(pp.Spacing.After)
			}
			if pp.Spacing.Line != "" {
				snap.Paragraph.LineSpacing = strPtr(pp.Spacing.Line)
			}
		}
	}

	return snap
}

// Apply writes the rewritten text into the paragraph and restores the
// captured formatting. All runs are cleared and the text lands in a single
// run carrying the first captured run's style; style variation across the
// original runs is deliberately collapsed, since one rewritten string
// cannot be split back onto the original sub-spans. A paragraph that had
// no runs gets a fresh run with no explicit properties, so it inherits the
// document's normal-paragraph style.
func (s *Snapshot) Apply(para *Paragraph, text string) {
	var props *RunProps
	if len(s.Runs) > 0 {
		props = s.Runs[0].toRunProps()
	}

	para.Runs = []Run{{
		Properties: props,
		Text: &Text{
			Text:  text,
			Space: "preserve",
		},
	}}

	s.applyParagraphFormat(para)
}

// captureRun copies run properties into a RunFormat value.
func captureRun(props *RunProps) RunFormat {
	var rf RunFormat
	if props == nil {
		return rf
	}
	if props.Bold != nil {
		rf.Bold = boolPtr(onOff(props.Bold.Val))
	}
	if props.Italic != nil {
		rf.Italic = boolPtr(onOff(props.Italic.Val))
	}
	if props.Underline != nil {
		rf.Underline = strPtr(props.Underline.Val)
	}
	if props.Font != nil && props.Font.ASCII != "" {
		rf.FontName = strPtr(props.Font.ASCII)
	}
	if props.Size != nil {
		rf.FontSize = strPtr(props.Size.Val)
	}
	if props.Color != nil {
		rf.FontColor = strPtr(props.Color.Val)
	}
	return rf
}

// toRunProps rebuilds run properties from a captured format. Returns nil
// when nothing was captured so the run carries no explicit style at all.
func (rf RunFormat) toRunProps() *RunProps {
	if rf.Bold == nil && rf.Italic == nil && rf.Underline == nil &&
		rf.FontName == nil && rf.FontSize == nil && rf.FontColor == nil {
		return nil
	}

	props := &RunProps{}
	if rf.Bold != nil {
		props.Bold = &Bold{Val: onOffVal(*rf.Bold)}
	}
	if rf.Italic != nil {
		props.Italic = &Italic{Val: onOffVal(*rf.Italic)}
	}
	if rf.Underline != nil {
		props.Underline = &Underline{Val: *rf.Underline}
	}
	if rf.FontName != nil {
		props.Font = &RunFont{ASCII: *rf.FontName, HAnsi: *rf.FontName}
	}
	if rf.FontSize != nil {
		props.Size = &FontSize{Val: *rf.FontSize}
	}
	if rf.FontColor != nil {
		props.Color = &Color{Val: *rf.FontColor}
	}
	return props
}

// applyParagraphFormat restores the captured paragraph attributes.
func (s *Snapshot) applyParagraphFormat(para *Paragraph) {
	pf := s.Paragraph
	if pf.Alignment == nil && pf.LeftIndent == nil && pf.RightIndent == nil &&
		pf.FirstLineIndent == nil && pf.SpaceBefore == nil && pf.SpaceAfter == nil &&
		pf.LineSpacing == nil {
		return
	}

	if para.Properties == nil {
		para.Properties = &ParagraphProps{}
	}
	pp := para.Properties

	if pf.Alignment != nil {
		pp.Align = &ParagraphAlign{Val: *pf.Alignment}
	}
	if pf.LeftIndent != nil || pf.RightIndent != nil || pf.FirstLineIndent != nil {
		if pp.Indent == nil {
			pp.Indent = &ParagraphIndent{}
		}
		if pf.LeftIndent != nil {
			pp.Indent.Left = *pf.LeftIndent
		}
		if pf.RightIndent != nil {
			pp.Indent.Right = *pf.RightIndent
		}
		if pf.FirstLineIndent != nil {
			pp.Indent.FirstLine = *pf.FirstLineIndent
		}
	}
	if pf.SpaceBefore != nil || pf.SpaceAfter != nil || pf.LineSpacing != nil {
		if pp.Spacing == nil {
			pp.Spacing = &ParagraphSpacing{}
		}
		if pf.SpaceBefore != nil {
			pp.Spacing.Before = *pf.SpaceBefore
		}
		if pf.SpaceAfter != nil {
			pp.Spacing.After = *pf.SpaceAfter
		}
		if pf.LineSpacing != nil {
			pp.Spacing.Line = *pf.LineSpacing
		}
	}
}

// onOff interprets a WordprocessingML toggle attribute value.
func onOff(val string) bool {
	return val != "0" && val != "false" && val != "off"
}

// onOffVal renders a toggle back; an empty val means "on" in OOXML.
func onOffVal(on bool) string {
	if on {
		return ""
	}
	return "0"
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

package document

import (
	"encoding/xml"
)

// DOCX XML namespaces
const (
	WordprocessingMLNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	RelationshipsNamespace    = "http://schemas.openxmlformats.org/package/2006/relationships"
)

// WordDocument represents the main document.xml structure
type WordDocument struct {
	XMLName xml.Name `xml:"document"`
	Body    Body     `xml:"body"`
}

// Body represents the document body
type Body struct {
	Paragraphs []Paragraph `xml:"p"`
	Tables     []Table     `xml:"tbl"`
}

// Paragraph represents a paragraph element
type Paragraph struct {
	XMLName    xml.Name        `xml:"p"`
	Properties *ParagraphProps `xml:"pPr"`
	Runs       []Run           `xml:"r"`
}

// ParagraphProps represents paragraph properties
type ParagraphProps struct {
	Style   *ParagraphStyle   `xml:"pStyle"`
	Spacing *ParagraphSpacing `xml:"spacing"`
	Indent  *ParagraphIndent  `xml:"ind"`
	Align   *ParagraphAlign   `xml:"jc"`
}

// ParagraphStyle represents paragraph style
type ParagraphStyle struct {
	Val string `xml:"val,attr"`
}

// ParagraphSpacing represents paragraph spacing
type ParagraphSpacing struct {
	After  string `xml:"after,attr,omitempty"`
	Before string `xml:"before,attr,omitempty"`
	Line   string `xml:"line,attr,omitempty"`
}

// ParagraphIndent represents paragraph indentation
type ParagraphIndent struct {
	Left      string `xml:"left,attr,omitempty"`
	Right     string `xml:"right,attr,omitempty"`
	FirstLine string `xml:"firstLine,attr,omitempty"`
	Hanging   string `xml:"hanging,attr,omitempty"`
}

// ParagraphAlign represents paragraph alignment
type ParagraphAlign struct {
	Val string `xml:"val,attr"`
}

// Run represents a text run
type Run struct {
	XMLName    xml.Name  `xml:"r"`
	Properties *RunProps `xml:"rPr"`
	Text       *Text     `xml:"t"`
	Tab        *Tab      `xml:"tab"`
	Break      *Break    `xml:"br"`
	Drawing    *Drawing  `xml:"drawing"`
}

// RunProps represents run properties
type RunProps struct {
	Bold      *Bold      `xml:"b"`
	Italic    *Italic    `xml:"i"`
	Underline *Underline `xml:"u"`
	Color     *Color     `xml:"color"`
	Size      *FontSize  `xml:"sz"`
	Font      *RunFont   `xml:"rFonts"`
}

// Text represents actual text content
type Text struct {
	XMLName xml.Name `xml:"t"`
	Space   string   `xml:"http://www.w3.org/XML/1998/namespace space,attr,omitempty"`
	Text    string   `xml:",chardata"`
}

// Tab represents a tab character
type Tab struct {
	XMLName xml.Name `xml:"tab"`
}

// Break represents a line break
type Break struct {
	XMLName xml.Name `xml:"br"`
	Type    string   `xml:"type,attr,omitempty"`
}

// Bold represents bold formatting
type Bold struct {
	Val string `xml:"val,attr,omitempty"`
}

// Italic represents italic formatting
type Italic struct {
	Val string `xml:"val,attr,omitempty"`
}

// Underline represents underline formatting
type Underline struct {
	Val string `xml:"val,attr,omitempty"`
}

// Color represents text color
type Color struct {
	Val string `xml:"val,attr"`
}

// FontSize represents font size in half-points
type FontSize struct {
	Val string `xml:"val,attr"`
}

// RunFont represents font settings
type RunFont struct {
	ASCII    string `xml:"ascii,attr,omitempty"`
	HAnsi    string `xml:"hAnsi,attr,omitempty"`
	EastAsia string `xml:"eastAsia,attr,omitempty"`
}

// Drawing represents a drawing/image element. The actual DrawingML
// structure is complex; the raw content is carried verbatim so images
// survive a round trip untouched.
type Drawing struct {
	XMLName xml.Name `xml:"drawing"`
	Content string   `xml:",innerxml"`
}

// Table represents a table element
type Table struct {
	XMLName xml.Name   `xml:"tbl"`
	Rows    []TableRow `xml:"tr"`
}

// TableRow represents a table row
type TableRow struct {
	XMLName xml.Name    `xml:"tr"`
	Cells   []TableCell `xml:"tc"`
}

// TableCell represents a table cell
type TableCell struct {
	XMLName    xml.Name    `xml:"tc"`
	Paragraphs []Paragraph `xml:"p"`
}

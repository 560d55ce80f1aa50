package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const documentPart = "word/document.xml"

// Document-level failure kinds. Anything else coming out of Open or Save
// is an I/O error from the underlying filesystem.
var (
	// ErrNotFound means the input path does not exist.
	ErrNotFound = errors.New("input file not found")

	// ErrInvalidFormat means the file is not a readable DOCX container.
	ErrInvalidFormat = errors.New("invalid document format")
)

// part is one entry of the DOCX zip container, kept verbatim so untouched
// parts round-trip byte-identical.
type part struct {
	name string
	data []byte
}

// File is an opened DOCX document. The parsed document.xml is mutable;
// every other container part is carried through unchanged.
type File struct {
	path   string
	parts  []part
	doc    *WordDocument
	logger *zap.Logger
}

// Open reads and parses a DOCX file. The whole container is held in
// memory; nothing touches the source file afterwards.
func Open(path string, logger *zap.Logger) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a zip archive", ErrInvalidFormat, path)
	}

	f := &File{path: path, logger: logger}
	for _, entry := range zipReader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		reader, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: cannot open part %s", ErrInvalidFormat, entry.Name)
		}
		content, err := io.ReadAll(reader)
		reader.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: cannot read part %s", ErrInvalidFormat, entry.Name)
		}
		f.parts = append(f.parts, part{name: entry.Name, data: content})
	}

	raw := f.partData(documentPart)
	if raw == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidFormat, documentPart)
	}

	var doc WordDocument
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: cannot parse %s: %v", ErrInvalidFormat, documentPart, err)
	}
	f.doc = &doc

	logger.Debug("document opened",
		zap.String("path", path),
		zap.Int("parts", len(f.parts)),
		zap.Int("paragraphs", len(doc.Body.Paragraphs)),
		zap.Int("tables", len(doc.Body.Tables)))

	return f, nil
}

// Path returns the source path the file was opened from.
func (f *File) Path() string {
	return f.path
}

// BodyParagraphs returns pointers to the top-level paragraphs in document
// order. The pointers stay valid for the lifetime of the File.
func (f *File) BodyParagraphs() []*Paragraph {
	paras := make([]*Paragraph, len(f.doc.Body.Paragraphs))
	for i := range f.doc.Body.Paragraphs {
		paras[i] = &f.doc.Body.Paragraphs[i]
	}
	return paras
}

// CellParagraphs returns pointers to every table-cell paragraph, walking
// tables, rows and cells in document order.
func (f *File) CellParagraphs() []*Paragraph {
	var paras []*Paragraph
	for ti := range f.doc.Body.Tables {
		table := &f.doc.Body.Tables[ti]
		for ri := range table.Rows {
			row := &table.Rows[ri]
			for ci := range row.Cells {
				cell := &row.Cells[ci]
				for pi := range cell.Paragraphs {
					paras = append(paras, &cell.Paragraphs[pi])
				}
			}
		}
	}
	return paras
}

// Save serializes the document to the given path. The write is atomic at
// the file level: content goes to a temp file in the target directory
// first and is renamed into place only after a successful write.
func Save(f *File, path string) error {
	data, err := xml.MarshalIndent(f.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", documentPart, err)
	}
	xmlDeclaration := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	docXML := append([]byte(xmlDeclaration), data...)

	tmp, err := os.CreateTemp(filepath.Dir(path), ".humanizer-*.docx")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := writeZip(tmp, f.parts, docXML); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move output into place: %w", err)
	}

	f.logger.Debug("document saved", zap.String("path", path))
	return nil
}

// writeZip writes all container parts, substituting the updated
// document.xml while keeping the original entry order.
func writeZip(w io.Writer, parts []part, docXML []byte) error {
	zipWriter := zip.NewWriter(w)
	for _, p := range parts {
		writer, err := zipWriter.Create(p.name)
		if err != nil {
			return err
		}
		content := p.data
		if p.name == documentPart {
			content = docXML
		}
		if _, err := writer.Write(content); err != nil {
			return err
		}
	}
	return zipWriter.Close()
}

// partData returns the raw bytes of a named container part, or nil.
func (f *File) partData(name string) []byte {
	for _, p := range f.parts {
		if p.name == name {
			return p.data
		}
	}
	return nil
}

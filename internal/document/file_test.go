package document

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

// writeDocx assembles a minimal DOCX container around the given
// document.xml body and writes it to a temp file.
func writeDocx(t *testing.T, documentXML string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range map[string]string{
		"[Content_Types].xml": contentTypesXML,
		"word/document.xml":   documentXML,
		"word/styles.xml":     `<?xml version="1.0"?><styles/>`,
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(data)); err != nil {
			t.Fatalf("failed to write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}

	path := filepath.Join(t.TempDir(), "test.docx")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("failed to write docx: %v", err)
	}
	return path
}

const sampleDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:pPr><w:jc w:val="center"/></w:pPr>
      <w:r><w:rPr><w:b/></w:rPr><w:t>First paragraph.</w:t></w:r>
    </w:p>
    <w:p/>
    <w:p><w:r><w:t>Second paragraph.</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Cell one</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Cell two</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

func TestOpenParsesParagraphsAndTables(t *testing.T) {
	path := writeDocx(t, sampleDocumentXML)

	f, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	paras := f.BodyParagraphs()
	if len(paras) != 3 {
		t.Fatalf("Expected 3 body paragraphs, got %d", len(paras))
	}
	if got := ParagraphText(paras[0]); got != "First paragraph." {
		t.Errorf("Expected %q, got %q", "First paragraph.", got)
	}
	if !IsBlank(paras[1]) {
		t.Error("Expected second paragraph blank")
	}

	cells := f.CellParagraphs()
	if len(cells) != 2 {
		t.Fatalf("Expected 2 cell paragraphs, got %d", len(cells))
	}
	if got := ParagraphText(cells[1]); got != "Cell two" {
		t.Errorf("Expected %q, got %q", "Cell two", got)
	}
}

func TestOpenErrors(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "missing.docx"), zap.NewNop())
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("NotAZip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "garbage.docx")
		if err := os.WriteFile(path, []byte("not a zip archive"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Open(path, zap.NewNop())
		if !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("Expected ErrInvalidFormat, got %v", err)
		}
	})

	t.Run("MissingDocumentPart", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		w, _ := zw.Create("[Content_Types].xml")
		w.Write([]byte(contentTypesXML))
		zw.Close()

		path := filepath.Join(t.TempDir(), "empty.docx")
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Open(path, zap.NewNop())
		if !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("Expected ErrInvalidFormat, got %v", err)
		}
	})
}

func TestSaveRoundTrip(t *testing.T) {
	path := writeDocx(t, sampleDocumentXML)

	f, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	ReplaceParagraphText(f.BodyParagraphs()[0], "Rewritten opening.")

	outPath := filepath.Join(t.TempDir(), "out.docx")
	if err := Save(f, outPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reopened, err := Open(outPath, zap.NewNop())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}

	paras := reopened.BodyParagraphs()
	if got := ParagraphText(paras[0]); got != "Rewritten opening." {
		t.Errorf("Expected rewritten text after round trip, got %q", got)
	}
	if got := ParagraphText(paras[2]); got != "Second paragraph." {
		t.Errorf("Untouched paragraph changed: %q", got)
	}

	// Untouched container parts survive byte-identical.
	if got := reopened.partData("word/styles.xml"); string(got) != `<?xml version="1.0"?><styles/>` {
		t.Errorf("styles.xml not preserved verbatim: %q", got)
	}
}

func TestSavePreservesDrawings(t *testing.T) {
	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:drawing><wp:inline xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"><wp:extent cx="990600" cy="792480"/></wp:inline></w:drawing></w:r></w:p>
    <w:p><w:r><w:t>Some text.</w:t></w:r></w:p>
  </w:body>
</w:document>`
	path := writeDocx(t, documentXML)

	f, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	paras := f.BodyParagraphs()
	if len(paras) != 2 {
		t.Fatalf("Expected 2 paragraphs, got %d", len(paras))
	}

	// A drawing-only paragraph holds no visible text and must never be
	// submitted for rewriting.
	if !IsBlank(paras[0]) {
		t.Error("drawing-only paragraph should be blank")
	}

	ReplaceParagraphText(paras[1], "Rewritten text.")

	outPath := filepath.Join(t.TempDir(), "out.docx")
	if err := Save(f, outPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reopened, err := Open(outPath, zap.NewNop())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}

	runs := reopened.BodyParagraphs()[0].Runs
	if len(runs) != 1 || runs[0].Drawing == nil {
		t.Fatal("drawing element lost on round trip")
	}
	if !strings.Contains(runs[0].Drawing.Content, "inline") ||
		!strings.Contains(runs[0].Drawing.Content, `cx="990600"`) {
		t.Errorf("drawing content not carried verbatim: %q", runs[0].Drawing.Content)
	}
}

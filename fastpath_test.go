package extractous

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestFastXlsx(t *testing.T) {
	data := buildXlsx(t, []string{"Name", "City"}, [][]string{
		{"s:0", "v:42"},
		{"s:1", "v:7"},
	})

	text, meta, err := fastXlsx(data)
	if err != nil {
		t.Fatalf("fastXlsx: %v", err)
	}
	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d: %q", len(lines), text)
	}
	if lines[0] != "Name\t42" {
		t.Errorf("row 1 = %q, want %q", lines[0], "Name\t42")
	}
	if lines[1] != "City\t7" {
		t.Errorf("row 2 = %q, want %q", lines[1], "City\t7")
	}
	if meta.Get("Sheet-Count") != "1" {
		t.Errorf("Sheet-Count = %q", meta.Get("Sheet-Count"))
	}
}

func TestFastXlsx_NotAnArchive(t *testing.T) {
	if _, _, err := fastXlsx([]byte("not a zip")); !IsKind(err, KindParse) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestFastHTML(t *testing.T) {
	page := []byte(`<!DOCTYPE html>
<html><head><title>Page Title</title><style>body { color: red }</style></head>
<body><script>var x = "invisible";</script>
<h1>Welcome</h1><p>Visible paragraph text.</p>
<div style="display:none">hidden text</div>
</body></html>`)

	e := NewExtractor()
	text, meta, err := e.fastHTML(page, false)
	if err != nil {
		t.Fatalf("fastHTML: %v", err)
	}
	if !strings.Contains(text, "Welcome") || !strings.Contains(text, "Visible paragraph") {
		t.Errorf("missing visible content: %q", text)
	}
	if strings.Contains(text, "invisible") || strings.Contains(text, "color: red") {
		t.Errorf("script/style leaked into text: %q", text)
	}
	if strings.Contains(text, "hidden text") {
		t.Errorf("hidden element leaked into text: %q", text)
	}
	if meta.Get("Title") != "Page Title" {
		t.Errorf("Title = %q", meta.Get("Title"))
	}
}

func TestFastHTML_Markup(t *testing.T) {
	page := []byte(`<html><body><h1>Heading</h1><p>Body text.</p></body></html>`)
	e := NewExtractor().WithOutputMode(OutputModeMarkup)
	text, _, err := e.fastHTML(page, false)
	if err != nil {
		t.Fatalf("fastHTML markup: %v", err)
	}
	if !strings.Contains(text, "# Heading") {
		t.Errorf("expected Markdown heading, got %q", text)
	}
}

func TestFastHTML_RemoteLandmark(t *testing.T) {
	// WHAT: On remote pages, <main>/<article> content wins over chrome.
	page := []byte(`<html><body>
<nav><a href="/">Home</a><a href="/about">About</a></nav>
<article><p>The actual story goes here.</p></article>
</body></html>`)
	e := NewExtractor()
	text, _, err := e.fastHTML(page, true)
	if err != nil {
		t.Fatalf("fastHTML: %v", err)
	}
	if !strings.Contains(text, "actual story") {
		t.Errorf("article text missing: %q", text)
	}
	if strings.Contains(text, "About") {
		t.Errorf("navigation chrome leaked: %q", text)
	}
}

func TestFastXML(t *testing.T) {
	text, meta, err := fastXML([]byte(`<?xml version="1.0"?><note><to>Ada</to><body>Call me</body></note>`))
	if err != nil {
		t.Fatalf("fastXML: %v", err)
	}
	if text != "Ada Call me" {
		t.Errorf("text = %q", text)
	}
	if meta.Get("Content-Type") != "application/xml" {
		t.Errorf("Content-Type = %q", meta.Get("Content-Type"))
	}
}

func TestFastPDF(t *testing.T) {
	rs := bytes.NewReader(buildTextPDF("Hello World from fast path extraction"))
	text, meta, err := fastPDF(rs)
	if err != nil {
		t.Skipf("pdfcpu rejected minimal fixture: %v", err)
	}
	if !strings.Contains(text, "Hello World") {
		// pdfcpu may not surface text from hand-built minimal PDFs.
		t.Logf("text = %q", text)
	}
	if meta.Get("Content-Type") != "application/pdf" {
		t.Errorf("Content-Type = %q", meta.Get("Content-Type"))
	}
	if meta.Get("Page-Count") != "1" {
		t.Errorf("Page-Count = %q", meta.Get("Page-Count"))
	}
}

func TestFastPathFile_Text(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	content := "plain text fast path content"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	e := NewExtractor()
	text, meta, err := e.fastPathFile(path)
	if err != nil {
		t.Fatalf("fastPathFile: %v", err)
	}
	if text != content {
		t.Errorf("text = %q", text)
	}
	if meta.Get("Content-Type") != "text/plain" {
		t.Errorf("Content-Type = %q", meta.Get("Content-Type"))
	}
	if meta.Get("File-Size") != strconv.Itoa(len(content)) {
		t.Errorf("File-Size = %q", meta.Get("File-Size"))
	}
}

func TestFastPathFile_Unsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.pptx")
	if err := os.WriteFile(path, []byte("PK\x03\x04"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := NewExtractor().fastPathFile(path); !IsKind(err, KindParse) {
		t.Errorf("expected parse error for pptx, got %v", err)
	}
}

func TestFastText_InvalidUTF8(t *testing.T) {
	e := NewExtractor()
	if _, _, err := e.fastText([]byte{0x80, 0x81, 0x82}, FormatText); !IsKind(err, KindEncoding) {
		t.Errorf("expected encoding error, got %v", err)
	}
}

func TestDecodeCharSet(t *testing.T) {
	if s, err := decodeCharSet([]byte("hello"), CharSetUTF8); err != nil || s != "hello" {
		t.Errorf("UTF-8: %q, %v", s, err)
	}
	if _, err := decodeCharSet([]byte("caf\xe9"), CharSetUSASCII); !IsKind(err, KindEncoding) {
		t.Errorf("US-ASCII should reject high bytes, got %v", err)
	}
	// "Hi" in UTF-16BE.
	if s, err := decodeCharSet([]byte{0x00, 'H', 0x00, 'i'}, CharSetUTF16BE); err != nil || s != "Hi" {
		t.Errorf("UTF-16BE: %q, %v", s, err)
	}
}

func TestFastPathBytes_Truncates(t *testing.T) {
	e := NewExtractor().WithMaxStringLength(20)
	long := strings.Repeat("word ", 50)
	text, _, err := e.fastPathBytes([]byte(long), FormatText)
	if err != nil {
		t.Fatal(err)
	}
	if len(text) > 23 {
		t.Errorf("fast-path output exceeds cap: %d bytes", len(text))
	}
}

// buildXlsx assembles a minimal OOXML spreadsheet. Cell specs are
// "s:<shared index>" or "v:<literal>".
func buildXlsx(t *testing.T, shared []string, rows [][]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	var ss strings.Builder
	ss.WriteString(`<?xml version="1.0"?><sst>`)
	for _, s := range shared {
		ss.WriteString("<si><t>" + s + "</t></si>")
	}
	ss.WriteString("</sst>")
	f, err := w.Create("xl/sharedStrings.xml")
	if err != nil {
		t.Fatal(err)
	}
	f.Write([]byte(ss.String()))

	var sheet strings.Builder
	sheet.WriteString(`<?xml version="1.0"?><worksheet><sheetData>`)
	for _, row := range rows {
		sheet.WriteString("<row>")
		for _, cell := range row {
			kind, val, _ := strings.Cut(cell, ":")
			if kind == "s" {
				sheet.WriteString(`<c t="s"><v>` + val + "</v></c>")
			} else {
				sheet.WriteString("<c><v>" + val + "</v></c>")
			}
		}
		sheet.WriteString("</row>")
	}
	sheet.WriteString("</sheetData></worksheet>")
	f, err = w.Create("xl/worksheets/sheet1.xml")
	if err != nil {
		t.Fatal(err)
	}
	f.Write([]byte(sheet.String()))

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// buildTextPDF writes a minimal single-page PDF with one text-showing
// content stream.
func buildTextPDF(text string) []byte {
	escaped := strings.ReplaceAll(text, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "(", `\(`)
	escaped = strings.ReplaceAll(escaped, ")", `\)`)

	stream := "BT\n/F1 12 Tf\n72 720 Td\n(" + escaped + ") Tj\nET"

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, 6)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")

	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n")

	offsets[4] = b.Len()
	b.WriteString("4 0 obj\n<< /Length " + strconv.Itoa(len(stream)) + " >>\nstream\n")
	b.WriteString(stream)
	b.WriteString("\nendstream\nendobj\n")

	offsets[5] = b.Len()
	b.WriteString("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xref := b.Len()
	b.WriteString("xref\n0 6\n0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		off := strconv.Itoa(offsets[i])
		b.WriteString(strings.Repeat("0", 10-len(off)) + off + " 00000 n \n")
	}
	b.WriteString("trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n" + strconv.Itoa(xref) + "\n%%EOF\n")

	return []byte(b.String())
}

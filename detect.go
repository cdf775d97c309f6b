package extractous

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format identifies a document type.
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatDocx    Format = "docx"
	FormatXlsx    Format = "xlsx"
	FormatPptx    Format = "pptx"
	FormatHTML    Format = "html"
	FormatXML     Format = "xml"
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatText    Format = "text"
	FormatUnknown Format = "unknown"
)

var extensionFormats = map[string]Format{
	".pdf":  FormatPDF,
	".docx": FormatDocx,
	".xlsx": FormatXlsx,
	".pptx": FormatPptx,
	".html": FormatHTML,
	".htm":  FormatHTML,
	".xml":  FormatXML,
	".csv":  FormatCSV,
	".json": FormatJSON,
	".txt":  FormatText,
	".md":   FormatText,
	".rst":  FormatText,
}

// DetectFormat classifies the file at path. Extension lookup wins when it
// matches (no I/O at all); otherwise the file's leading 16 bytes are
// classified by magic sequence.
func DetectFormat(path string) Format {
	if ext := strings.ToLower(filepath.Ext(path)); ext != "" {
		if f, ok := extensionFormats[ext]; ok {
			return f
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown
	}
	defer f.Close()
	return detectFormatFromReader(f)
}

// detectFormatFromReader classifies by reading the leading 16 bytes.
func detectFormatFromReader(r io.Reader) Format {
	var buf [16]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil && err != io.ErrUnexpectedEOF {
		return FormatUnknown
	}
	return DetectFormatFromBytes(buf[:n])
}

// DetectFormatFromBytes classifies a byte buffer by magic sequence, then
// by textual heuristics. It is deterministic and total: every input maps
// to exactly one Format, with Unknown for anything under 4 bytes or not
// recognizably textual.
func DetectFormatFromBytes(data []byte) Format {
	if len(data) < 4 {
		return FormatUnknown
	}

	switch string(data[:4]) {
	case "%PDF":
		return FormatPDF
	case "PK\x03\x04":
		return detectOfficeFormat(data)
	case "<htm", "<HTM", "<!DO":
		return FormatHTML
	case "<?xm":
		return FormatXML
	case "{\n  ":
		// Pretty-printed JSON object. Other brace/bracket openings are
		// caught by the textual heuristics below.
		return FormatJSON
	}
	return detectTextFormat(data)
}

// detectOfficeFormat disambiguates a ZIP archive by scanning its first
// ~100 bytes for the OOXML directory prefixes. This relies on the first
// local file header naming a path under word/, xl/ or ppt/, which holds
// for archives written by the usual producers but is not guaranteed by
// the ZIP format; a correct implementation would parse the central
// directory. Ambiguous archives default to Docx, the most common case.
func detectOfficeFormat(data []byte) Format {
	head := data
	if len(head) > 100 {
		head = head[:100]
	}
	switch {
	case bytes.Contains(head, []byte("word/")):
		return FormatDocx
	case bytes.Contains(head, []byte("xl/")):
		return FormatXlsx
	case bytes.Contains(head, []byte("ppt/")):
		return FormatPptx
	}
	return FormatDocx
}

// detectTextFormat applies textual heuristics to a buffer that matched no
// magic sequence. Non-UTF-8 input is Unknown.
func detectTextFormat(data []byte) Format {
	if !utf8.Valid(data) {
		return FormatUnknown
	}
	text := string(data)

	// CSV: at least two lines and a plausible column count on the first.
	// A trailing newline alone is not a second line. The upper bound
	// avoids classifying comma-heavy prose as CSV.
	if first, rest, ok := strings.Cut(text, "\n"); ok && rest != "" {
		if n := strings.Count(first, ","); n >= 1 && n < 20 {
			return FormatCSV
		}
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype") {
		return FormatHTML
	}

	trimmed := strings.TrimLeft(text, " \t\r\n")
	switch {
	case strings.HasPrefix(trimmed, "<?xml"), strings.HasPrefix(trimmed, "<"):
		return FormatXML
	case strings.HasPrefix(trimmed, "{"), strings.HasPrefix(trimmed, "["):
		return FormatJSON
	}
	return FormatText
}

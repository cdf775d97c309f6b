package extractous

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"unicode/utf8"
)

// The fast-path parsers run in-process and skip the runtime boundary for
// formats Go handles well. They are a best-effort optimization: any
// failure is swallowed by the orchestrator, which falls back to the
// bridge, so a parser here may reject anything it cannot handle cleanly
// rather than produce degraded output.

// fastPathSupported reports whether an in-process parser exists for the
// format. Docx and Pptx always cross the bridge: their text model
// (revisions, headers, embedded parts) is what the foreign toolkit is for.
func fastPathSupported(f Format) bool {
	switch f {
	case FormatPDF, FormatXlsx, FormatHTML, FormatXML, FormatCSV, FormatJSON, FormatText:
		return true
	}
	return false
}

// fastPathFile extracts the file at path in-process. The format is
// re-detected here rather than passed in so byte-level detection can
// correct a misleading extension.
func (e Extractor) fastPathFile(path string) (string, Metadata, error) {
	format := DetectFormat(path)
	if !fastPathSupported(format) {
		return "", nil, parseError("fast path", fmt.Errorf("no in-process parser for %s", format))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, ioError("fast path", err)
	}
	return e.fastPathBytes(data, format)
}

// fastPathBytes extracts an in-memory buffer in-process.
func (e Extractor) fastPathBytes(data []byte, format Format) (string, Metadata, error) {
	if format == FormatUnknown {
		format = DetectFormatFromBytes(data)
	}
	if !fastPathSupported(format) {
		return "", nil, parseError("fast path", fmt.Errorf("no in-process parser for %s", format))
	}

	var (
		text string
		meta Metadata
		err  error
	)
	switch format {
	case FormatPDF:
		text, meta, err = fastPDF(bytes.NewReader(data))
	case FormatXlsx:
		text, meta, err = fastXlsx(data)
	case FormatHTML:
		text, meta, err = e.fastHTML(data, false)
	case FormatXML:
		text, meta, err = fastXML(data)
	case FormatCSV, FormatJSON, FormatText:
		text, meta, err = e.fastText(data, format)
	}
	if err != nil {
		return "", nil, err
	}

	meta.Add("File-Size", strconv.Itoa(len(data)))
	if e.maxStringLength >= 0 && len(text) > e.maxStringLength {
		text = TruncateTextSmart(text, e.maxStringLength)
	}
	return text, meta, nil
}

// fastText handles the already-textual formats. The configured charset is
// honored: the buffer is transcoded to UTF-8, and undecodable input is an
// encoding error rather than silently mangled text.
func (e Extractor) fastText(data []byte, format Format) (string, Metadata, error) {
	text, err := decodeCharSet(data, e.encoding)
	if err != nil {
		return "", nil, err
	}

	meta := Metadata{}
	switch format {
	case FormatCSV:
		meta.Set("Content-Type", "text/csv")
	case FormatJSON:
		meta.Set("Content-Type", "application/json")
	default:
		meta.Set("Content-Type", "text/plain")
	}
	return text, meta, nil
}

func validUTF8(data []byte) error {
	if !utf8.Valid(data) {
		return encodingError("decode", fmt.Errorf("input is not valid UTF-8"))
	}
	return nil
}

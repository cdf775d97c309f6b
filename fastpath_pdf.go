package extractous

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// fastPDF extracts text from a PDF via pdfcpu content streams. Extraction
// quality metrics ride along as metadata entries so callers can decide
// whether the output is trustworthy or the document needs the OCR-capable
// bridge path instead.
func fastPDF(rs io.ReadSeeker) (string, Metadata, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(rs, conf)
	if err != nil {
		return "", nil, parseError("pdf", fmt.Errorf("pdfcpu read: %w", err))
	}

	var sb strings.Builder
	totalChars := 0
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		pageText := extractPageText(ctx, pageNr)
		if pageText == "" {
			continue
		}
		totalChars += len([]rune(pageText))
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(pageText)
	}

	if sb.Len() == 0 {
		// Likely a scanned document; the bridge path can OCR it.
		return "", nil, parseError("pdf", fmt.Errorf("no text content found"))
	}

	text := sb.String()
	var charsPerPage float64
	if ctx.PageCount > 0 {
		charsPerPage = float64(totalChars) / float64(ctx.PageCount)
	}

	meta := Metadata{}
	meta.Set("Content-Type", "application/pdf")
	meta.Set("X-Parsed-By", "pdfcpu")
	meta.Set("Page-Count", strconv.Itoa(ctx.PageCount))
	meta.Set("Chars-Per-Page", strconv.FormatFloat(charsPerPage, 'f', 1, 64))
	meta.Set("Printable-Ratio", strconv.FormatFloat(printableRatio(text), 'f', 3, 64))
	meta.Set("Wordlike-Ratio", strconv.FormatFloat(wordlikeRatio(text), 'f', 3, 64))
	return text, meta, nil
}

// extractPageText extracts text from a single page's content stream.
func extractPageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return extractTextFromStream(data)
}

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// extractTextFromStream parses PDF content stream operators for text.
func extractTextFromStream(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		// Tj / TJ show-text operators carry string literals.
		if bytes.HasSuffix(line, []byte("Tj")) || bytes.HasSuffix(line, []byte("TJ")) {
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodePDFString(m[1]))
			}
		}

		// ' operator: move to next line and show text.
		if bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")) {
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				if text := decodePDFString(m[1]); text != "" {
					sb.WriteByte('\n')
					sb.WriteString(text)
				}
			}
		}

		// Text positioning operators become separators.
		if bytes.HasSuffix(line, []byte("Td")) || bytes.HasSuffix(line, []byte("TD")) {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		}
		if bytes.Equal(line, []byte("T*")) {
			sb.WriteByte('\n')
		}
	}

	return cleanPDFText(sb.String())
}

// decodePDFString handles basic PDF escape sequences.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
			switch raw[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '\\', '(', ')':
				sb.WriteByte(raw[i])
			default:
				// Octal escape (e.g. \040 for space).
				if raw[i] >= '0' && raw[i] <= '7' {
					val := int(raw[i] - '0')
					for j := 0; j < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; j++ {
						i++
						val = val*8 + int(raw[i]-'0')
					}
					sb.WriteByte(byte(val))
				} else {
					sb.WriteByte(raw[i])
				}
			}
		} else {
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}

// cleanPDFText collapses whitespace and drops non-printable characters
// from extracted content-stream text.
func cleanPDFText(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		} else if unicode.IsPrint(r) {
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}

// printableRatio returns the fraction of printable characters. Private Use
// Area runes, the replacement character and non-whitespace control chars
// count against it; they indicate CIDFont text without a ToUnicode map.
func printableRatio(text string) float64 {
	if len(text) == 0 {
		return 1.0
	}
	total, printable := 0, 0
	for _, r := range text {
		total++
		if isGarbageRune(r) {
			continue
		}
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			printable++
		}
	}
	return float64(printable) / float64(total)
}

func isGarbageRune(r rune) bool {
	if r >= 0xE000 && r <= 0xF8FF {
		return true
	}
	if r == 0xFFFD {
		return true
	}
	if r < 0x0020 && r != '\n' && r != '\r' && r != '\t' {
		return true
	}
	return false
}

// wordlikeRatio returns the fraction of tokens that look like words
// (2-15 runes). Character-by-character extraction breaks this ratio.
func wordlikeRatio(text string) float64 {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0
	}
	wordlike := 0
	for _, f := range fields {
		if n := len([]rune(f)); n >= 2 && n <= 15 {
			wordlike++
		}
	}
	return float64(wordlike) / float64(len(fields))
}

package extractous

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Post-processing only runs on text above this size; smaller outputs are
// not worth the extra pass.
const cleaningThreshold = 5000

// Backward-scan window for TruncateTextSmart. If no whitespace boundary
// exists this close to the limit, the cut happens at the exact limit
// instead of scanning arbitrarily far back through unbroken text.
const truncateScanWindow = 50

// NormalizeWhitespace collapses every run of whitespace to a single space
// and trims leading and trailing whitespace. It is idempotent.
func NormalizeWhitespace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		} else {
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

// TruncateTextSmart cuts s down to at most max bytes of content, preferring
// the nearest whitespace boundary before the limit so words stay whole. The
// cut never splits a multi-byte character, and an ellipsis marks that
// truncation happened. Text already within the limit is returned unchanged.
func TruncateTextSmart(s string, max int) string {
	if max < 0 {
		max = 0
	}
	if len(s) <= max {
		return s
	}

	at := max
	for at > 0 && !isASCIISpace(s[at]) {
		at--
	}
	if at < max-truncateScanWindow {
		at = max
	}
	for at > 0 && !utf8.RuneStart(s[at]) {
		at--
	}
	return s[:at] + "..."
}

func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// TextStats counts characters by class.
type TextStats struct {
	Total       int
	Alphabetic  int
	Numeric     int
	Whitespace  int
	Punctuation int
}

// AnalyzeText computes character-class counts over s in one pass.
func AnalyzeText(s string) TextStats {
	var st TextStats
	for _, r := range s {
		st.Total++
		switch {
		case unicode.IsLetter(r):
			st.Alphabetic++
		case unicode.IsNumber(r):
			st.Numeric++
		case unicode.IsSpace(r):
			st.Whitespace++
		case isASCIIPunct(r):
			st.Punctuation++
		}
	}
	return st
}

// isASCIIPunct matches the ASCII punctuation and symbol range, i.e. every
// printable ASCII character that is not a letter, digit or space.
func isASCIIPunct(r rune) bool {
	switch {
	case r >= '!' && r <= '/':
		return true
	case r >= ':' && r <= '@':
		return true
	case r >= '[' && r <= '`':
		return true
	case r >= '{' && r <= '~':
		return true
	}
	return false
}

// IsMeaningful reports whether the counted text looks like real content:
// at least 10 characters, mostly alphanumeric, not dominated by
// whitespace.
func (st TextStats) IsMeaningful() bool {
	if st.Total < 10 {
		return false
	}
	textRatio := float64(st.Alphabetic+st.Numeric) / float64(st.Total)
	spaceRatio := float64(st.Whitespace) / float64(st.Total)
	return textRatio > 0.6 && spaceRatio < 0.4
}

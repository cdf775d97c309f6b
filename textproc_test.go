package extractous

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Hello    world  \n\n  test  ", "Hello world test"},
		{"a\tb\r\nc", "a b c"},
		{"", ""},
		{"   \n\t  ", ""},
		{"already clean", "already clean"},
	}
	for _, tt := range tests {
		if got := NormalizeWhitespace(tt.in); got != tt.want {
			t.Errorf("NormalizeWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeWhitespace_Idempotent(t *testing.T) {
	in := "  multiple   runs\n\nof \t whitespace  "
	once := NormalizeWhitespace(in)
	twice := NormalizeWhitespace(once)
	if once != twice {
		t.Errorf("not idempotent: %q then %q", once, twice)
	}
	if strings.Contains(once, "  ") {
		t.Errorf("result contains consecutive spaces: %q", once)
	}
	if once != strings.TrimSpace(once) {
		t.Errorf("result has leading/trailing whitespace: %q", once)
	}
}

func TestTruncateTextSmart_NoOp(t *testing.T) {
	s := "short text"
	if got := TruncateTextSmart(s, 100); got != s {
		t.Errorf("text within limit must be unchanged, got %q", got)
	}
	if got := TruncateTextSmart(s, len(s)); got != s {
		t.Errorf("text at exact limit must be unchanged, got %q", got)
	}
}

func TestTruncateTextSmart_WordBoundary(t *testing.T) {
	s := "This is a long sentence that should be truncated at word boundaries"
	got := TruncateTextSmart(s, 30)
	if len(got) > 33 {
		t.Errorf("length %d exceeds limit+ellipsis", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated result must end with ellipsis, got %q", got)
	}
	if strings.Contains(got, "truncat") {
		t.Errorf("cut should land on a word boundary, got %q", got)
	}
}

func TestTruncateTextSmart_NoBoundary(t *testing.T) {
	// WHAT: Unbroken text has no whitespace within the scan window, so
	// the cut happens at the exact limit.
	s := strings.Repeat("x", 200)
	got := TruncateTextSmart(s, 100)
	if len(got) != 103 {
		t.Errorf("expected cut at exact limit, got length %d", len(got))
	}
}

func TestTruncateTextSmart_MultiByte(t *testing.T) {
	// WHAT: The cut never lands inside a multi-byte character.
	s := strings.Repeat("é", 100) // 2 bytes each
	for max := 10; max < 30; max++ {
		got := TruncateTextSmart(s, max)
		if !utf8.ValidString(got) {
			t.Fatalf("max=%d produced invalid UTF-8: %q", max, got)
		}
		if len(got) > max+3 {
			t.Fatalf("max=%d: length %d exceeds limit+ellipsis", max, len(got))
		}
	}
}

func TestAnalyzeText(t *testing.T) {
	st := AnalyzeText("Hello world! 123")
	if st.Total != 16 {
		t.Errorf("total = %d, want 16", st.Total)
	}
	if st.Alphabetic != 10 {
		t.Errorf("alphabetic = %d, want 10", st.Alphabetic)
	}
	if st.Numeric != 3 {
		t.Errorf("numeric = %d, want 3", st.Numeric)
	}
	if st.Whitespace != 2 {
		t.Errorf("whitespace = %d, want 2", st.Whitespace)
	}
	if st.Punctuation != 1 {
		t.Errorf("punctuation = %d, want 1", st.Punctuation)
	}
}

func TestIsMeaningful(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"normal sentence", "The quick brown fox jumps over the lazy dog", true},
		{"too short", "hi there", false},
		{"mostly whitespace", "a b c d e f g h i j k l m n o p", false},
		{"mostly symbols", "!@#$%^&*()!@#$%^&*()", false},
	}
	for _, tt := range tests {
		if got := AnalyzeText(tt.text).IsMeaningful(); got != tt.want {
			t.Errorf("%s: IsMeaningful = %v, want %v", tt.name, got, tt.want)
		}
	}
}

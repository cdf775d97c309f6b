package extractous

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
)

// The extraction tests below exercise sources the fast path can fully
// serve, so they run without the native bridge library loaded.

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractFileToString(t *testing.T) {
	content := "The quarterly report covers revenue and expenses."
	path := writeFixture(t, "report.txt", content)

	text, meta, err := NewExtractor().ExtractFileToString(path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != content {
		t.Errorf("text = %q", text)
	}
	if meta.Get("Content-Type") != "text/plain" {
		t.Errorf("Content-Type = %q", meta.Get("Content-Type"))
	}
}

func TestExtractFileToString_Missing(t *testing.T) {
	_, _, err := NewExtractor().ExtractFileToString(filepath.Join(t.TempDir(), "nope.txt"))
	if !IsKind(err, KindIO) {
		t.Errorf("expected io error, got %v", err)
	}
}

func TestExtractFileToString_InvalidConfig(t *testing.T) {
	// WHY: Configuration errors must surface before any I/O happens.
	_, _, err := NewExtractor().WithEncoding("EBCDIC").ExtractFileToString("whatever.txt")
	if !IsKind(err, KindConfig) {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestExtractBytesToString_MatchesFile(t *testing.T) {
	content := "<html><head><title>T</title></head><body><p>Same content either way.</p></body></html>"
	path := writeFixture(t, "page.html", content)
	e := NewExtractor()

	fromFile, _, err := e.ExtractFileToString(path)
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	fromBytes, _, err := e.ExtractBytesToString([]byte(content))
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	if fromFile != fromBytes {
		t.Errorf("file and bytes paths disagree:\n file: %q\nbytes: %q", fromFile, fromBytes)
	}
}

func TestExtractFile_Stream(t *testing.T) {
	content := "streamed text content"
	path := writeFixture(t, "doc.txt", content)

	r, meta, err := NewExtractor().ExtractFile(path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != content {
		t.Errorf("stream = %q", got)
	}
	if meta.Get("File-Size") != strconv.Itoa(len(content)) {
		t.Errorf("File-Size = %q", meta.Get("File-Size"))
	}

	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("double close must be a no-op, got %v", err)
	}
	if n, err := r.Read(make([]byte, 8)); n != 0 || err != io.EOF {
		t.Errorf("read after close = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestPostProcess_Cleaning(t *testing.T) {
	// WHAT: Above the cleaning threshold, enabled text cleaning collapses
	// whitespace and records the pass in metadata.
	messy := strings.Repeat("some   spaced\t\twords\n\n", 400) // well past the threshold
	e := NewExtractor().WithTextCleaning(true)

	text, meta, err := e.ExtractBytesToString([]byte(messy))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if strings.Contains(text, "  ") || strings.Contains(text, "\n") {
		t.Error("whitespace not normalized")
	}
	if meta.Get("Text-Processing") != "lightweight" {
		t.Errorf("Text-Processing = %q", meta.Get("Text-Processing"))
	}
}

func TestPostProcess_SkipsSmallText(t *testing.T) {
	small := "short   text with   gaps"
	text, meta, err := NewExtractor().WithTextCleaning(true).ExtractBytesToString([]byte(small))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != small {
		t.Errorf("small text must pass through untouched, got %q", text)
	}
	if meta.Get("Text-Processing") != "" {
		t.Error("no processing marker expected for small text")
	}
}

func TestExtractFilesToString(t *testing.T) {
	good1 := writeFixture(t, "a.txt", "first document")
	good2 := writeFixture(t, "b.txt", "second document")
	missing := filepath.Join(t.TempDir(), "gone.txt")

	results := NewExtractor().ExtractFilesToString(context.Background(),
		[]string{good1, missing, good2})

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Err != nil || results[0].Text != "first document" {
		t.Errorf("result 0 = %+v", results[0])
	}
	if !IsKind(results[1].Err, KindIO) {
		t.Errorf("result 1 should carry an io error, got %v", results[1].Err)
	}
	if results[2].Err != nil || results[2].Text != "second document" {
		t.Errorf("failing source must not abort the batch: %+v", results[2])
	}
}

func TestExtractFilesToString_Parallel(t *testing.T) {
	// WHAT: Parallel batches preserve input order in the result slice.
	dir := t.TempDir()
	paths := make([]string, 8)
	for i := range paths {
		paths[i] = filepath.Join(dir, "f"+strconv.Itoa(i)+".txt")
		if err := os.WriteFile(paths[i], []byte("doc "+strconv.Itoa(i)), 0644); err != nil {
			t.Fatal(err)
		}
	}

	e := NewExtractor().WithParallel(true).WithWorkers(3)
	results := e.ExtractFilesToString(context.Background(), paths)
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("result %d: %v", i, r.Err)
		}
		if r.Text != "doc "+strconv.Itoa(i) {
			t.Errorf("result %d out of order: %q", i, r.Text)
		}
		if r.Path != paths[i] {
			t.Errorf("result %d path = %q", i, r.Path)
		}
	}
}

func TestExtractFilesToString_InvalidConfig(t *testing.T) {
	// WHAT: Invalid configuration fails the whole batch up front with one
	// config error per source.
	// WHY: A zero-size worker pool must never be dispatched to; it would
	// leave the batch waiting on workers that do not exist.
	good1 := writeFixture(t, "a.txt", "first")
	good2 := writeFixture(t, "b.txt", "second")

	e := NewExtractor().WithParallel(true).WithWorkers(0)
	done := make(chan []FileResult, 1)
	go func() {
		done <- e.ExtractFilesToString(context.Background(), []string{good1, good2})
	}()

	select {
	case results := <-done:
		for i, r := range results {
			if !IsKind(r.Err, KindConfig) {
				t.Errorf("result %d: expected config error, got %v", i, r.Err)
			}
			if r.Text != "" {
				t.Errorf("result %d: no text expected, got %q", i, r.Text)
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("batch with invalid worker count did not return")
	}
}

func TestExtractFilesToString_CanceledContext(t *testing.T) {
	path := writeFixture(t, "a.txt", "content")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := NewExtractor().ExtractFilesToString(ctx, []string{path})
	if !IsKind(results[0].Err, KindIO) {
		t.Errorf("canceled context should yield io errors, got %v", results[0].Err)
	}
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("cause should be context.Canceled, got %v", results[0].Err)
	}
}

func TestRunPipeline_FallsThrough(t *testing.T) {
	e := NewExtractor()
	calls := []string{}
	text, _, err := runPipeline(e.logger, "test", []candidate[string]{
		{name: "skipped", enabled: false, run: func() (string, Metadata, error) {
			calls = append(calls, "skipped")
			return "", nil, nil
		}},
		{name: "soft", enabled: true, bestEffort: true, run: func() (string, Metadata, error) {
			calls = append(calls, "soft")
			return "", nil, parseError("soft", errors.New("cannot handle"))
		}},
		{name: "final", enabled: true, run: func() (string, Metadata, error) {
			calls = append(calls, "final")
			return "ok", Metadata{}, nil
		}},
	})
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	if text != "ok" {
		t.Errorf("text = %q", text)
	}
	if len(calls) != 2 || calls[0] != "soft" || calls[1] != "final" {
		t.Errorf("stage order = %v", calls)
	}
}

func TestRunPipeline_LastErrorSurfaces(t *testing.T) {
	e := NewExtractor()
	soft := parseError("soft", errors.New("soft failure"))
	hard := ioError("hard", errors.New("hard failure"))
	_, _, err := runPipeline(e.logger, "test", []candidate[string]{
		{name: "soft", enabled: true, bestEffort: true, run: func() (string, Metadata, error) {
			return "", nil, soft
		}},
		{name: "hard", enabled: true, run: func() (string, Metadata, error) {
			return "", nil, hard
		}},
	})
	if !errors.Is(err, hard) {
		t.Errorf("last stage's error must surface, got %v", err)
	}
}

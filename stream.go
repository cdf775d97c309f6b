package extractous

import (
	"io"
	"strings"
)

// StreamReader streams extracted text without materializing the whole
// document. On the bridge path each Read crosses the runtime boundary
// once, so wrap it in a bufio.Reader when doing many small reads.
//
// A StreamReader is owned by a single reader; it is not safe for
// concurrent use. Close releases the underlying resource and is a no-op
// when called again.
type StreamReader struct {
	rc     io.ReadCloser
	closed bool
}

func newStreamReader(rc io.ReadCloser) *StreamReader {
	return &StreamReader{rc: rc}
}

// newStringStream wraps already-extracted text in a StreamReader, used
// when a fast-path parser satisfied a streaming request.
func newStringStream(text string) *StreamReader {
	return &StreamReader{rc: io.NopCloser(strings.NewReader(text))}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	if r.closed {
		return 0, io.EOF
	}
	return r.rc.Read(p)
}

// Close releases the underlying stream. Double-close is a no-op.
func (r *StreamReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.rc.Close()
}

package extractous

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/sangam14/extractous/tika"
)

// candidate is one stage of the extraction pipeline. Stages are tried in
// order; a best-effort stage's failure falls through to the next stage,
// anything else surfaces immediately.
type candidate[T any] struct {
	name       string
	enabled    bool
	bestEffort bool
	run        func() (T, Metadata, error)
}

// runPipeline executes the ordered candidate list. When every enabled
// stage fails, the last stage's error is returned.
func runPipeline[T any](logger *slog.Logger, source string, cands []candidate[T]) (T, Metadata, error) {
	var zero T
	var lastErr error
	for _, c := range cands {
		if !c.enabled {
			continue
		}
		logger.Debug("extraction stage", "stage", c.name, "source", source)
		v, meta, err := c.run()
		if err == nil {
			return v, meta, nil
		}
		lastErr = err
		if !c.bestEffort {
			return zero, nil, err
		}
		logger.Warn("extraction stage failed, falling back",
			"stage", c.name, "source", source, "error", err)
	}
	if lastErr == nil {
		lastErr = parseError("extract", fmt.Errorf("no extraction stage applies"))
	}
	return zero, nil, lastErr
}

// ExtractFile extracts the file at path, returning a stream of extracted
// text plus metadata. The caller must Close the stream.
//
// Pipeline: the in-process fast path runs first when enabled and the
// detected format supports it; large files go through a memory-mapped
// read into the byte-buffer bridge path; everything else crosses the
// bridge directly.
func (e Extractor) ExtractFile(path string) (*StreamReader, Metadata, error) {
	if err := e.validate(); err != nil {
		return nil, nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, ioError("extract file", err)
	}
	useMmap := e.useMmap && info.Size() > e.mmapThreshold

	return runPipeline(e.logger, path, []candidate[*StreamReader]{
		{
			name:       "fast-path",
			enabled:    e.fastPath && fastPathSupported(DetectFormat(path)),
			bestEffort: true,
			run: func() (*StreamReader, Metadata, error) {
				text, meta, err := e.fastPathFile(path)
				if err != nil {
					return nil, nil, err
				}
				return newStringStream(text), meta, nil
			},
		},
		{
			name:    "mmap-bridge",
			enabled: useMmap,
			run: func() (*StreamReader, Metadata, error) {
				return e.extractMapped(path, info.Size())
			},
		},
		{
			name:    "bridge",
			enabled: !useMmap,
			run: func() (*StreamReader, Metadata, error) {
				r, meta, err := tika.ParseFile(path, string(e.encoding), e.tikaConfig())
				if err != nil {
					return nil, nil, bridgeError("extract file", err)
				}
				return newStreamReader(r), Metadata(meta), nil
			},
		},
	})
}

// ExtractBytes extracts an in-memory document, returning a stream of
// extracted text plus metadata. The buffer may be reused once the call
// returns; the bridge path copies it across the boundary.
func (e Extractor) ExtractBytes(data []byte) (*StreamReader, Metadata, error) {
	if err := e.validate(); err != nil {
		return nil, nil, err
	}
	return runPipeline(e.logger, "buffer", []candidate[*StreamReader]{
		{
			name:       "fast-path",
			enabled:    e.fastPath,
			bestEffort: true,
			run: func() (*StreamReader, Metadata, error) {
				text, meta, err := e.fastPathBytes(data, FormatUnknown)
				if err != nil {
					return nil, nil, err
				}
				return newStringStream(text), meta, nil
			},
		},
		{
			name:    "bridge",
			enabled: true,
			run: func() (*StreamReader, Metadata, error) {
				r, meta, err := tika.ParseBytes(data, string(e.encoding), e.tikaConfig())
				if err != nil {
					return nil, nil, bridgeError("extract bytes", err)
				}
				return newStreamReader(r), Metadata(meta), nil
			},
		},
	})
}

// ExtractURL fetches and extracts a remote document, returning a stream
// of extracted text plus metadata.
func (e Extractor) ExtractURL(url string) (*StreamReader, Metadata, error) {
	if err := e.validate(); err != nil {
		return nil, nil, err
	}
	return runPipeline(e.logger, url, []candidate[*StreamReader]{
		{
			name:       "fast-path",
			enabled:    e.fastPath,
			bestEffort: true,
			run: func() (*StreamReader, Metadata, error) {
				text, meta, err := e.fastPathURL(url)
				if err != nil {
					return nil, nil, err
				}
				return newStringStream(text), meta, nil
			},
		},
		{
			name:    "bridge",
			enabled: true,
			run: func() (*StreamReader, Metadata, error) {
				r, meta, err := tika.ParseURL(url, string(e.encoding), e.tikaConfig())
				if err != nil {
					return nil, nil, bridgeError("extract url", err)
				}
				return newStreamReader(r), Metadata(meta), nil
			},
		},
	})
}

// ExtractFileToString extracts the file at path into a string capped at
// the configured maximum length, post-processed when text cleaning is
// enabled.
func (e Extractor) ExtractFileToString(path string) (string, Metadata, error) {
	if err := e.validate(); err != nil {
		return "", nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", nil, ioError("extract file", err)
	}
	useMmap := e.useMmap && info.Size() > e.mmapThreshold

	text, meta, err := runPipeline(e.logger, path, []candidate[string]{
		{
			name:       "fast-path",
			enabled:    e.fastPath && fastPathSupported(DetectFormat(path)),
			bestEffort: true,
			run: func() (string, Metadata, error) {
				return e.fastPathFile(path)
			},
		},
		{
			name:    "mmap-bridge",
			enabled: useMmap,
			run: func() (string, Metadata, error) {
				return e.extractMappedToString(path)
			},
		},
		{
			name:    "bridge",
			enabled: !useMmap,
			run: func() (string, Metadata, error) {
				text, meta, err := tika.ParseFileToString(path, e.maxStringLength, e.tikaConfig())
				if err != nil {
					return "", nil, bridgeError("extract file", err)
				}
				return text, Metadata(meta), nil
			},
		},
	})
	if err != nil {
		return "", nil, err
	}
	return e.postProcess(text, meta)
}

// ExtractBytesToString extracts an in-memory document into a capped,
// post-processed string.
func (e Extractor) ExtractBytesToString(data []byte) (string, Metadata, error) {
	if err := e.validate(); err != nil {
		return "", nil, err
	}
	text, meta, err := runPipeline(e.logger, "buffer", []candidate[string]{
		{
			name:       "fast-path",
			enabled:    e.fastPath,
			bestEffort: true,
			run: func() (string, Metadata, error) {
				return e.fastPathBytes(data, FormatUnknown)
			},
		},
		{
			name:    "bridge",
			enabled: true,
			run: func() (string, Metadata, error) {
				text, meta, err := tika.ParseBytesToString(data, e.maxStringLength, e.tikaConfig())
				if err != nil {
					return "", nil, bridgeError("extract bytes", err)
				}
				return text, Metadata(meta), nil
			},
		},
	})
	if err != nil {
		return "", nil, err
	}
	return e.postProcess(text, meta)
}

// ExtractURLToString fetches and extracts a remote document into a
// capped, post-processed string.
func (e Extractor) ExtractURLToString(url string) (string, Metadata, error) {
	if err := e.validate(); err != nil {
		return "", nil, err
	}
	text, meta, err := runPipeline(e.logger, url, []candidate[string]{
		{
			name:       "fast-path",
			enabled:    e.fastPath,
			bestEffort: true,
			run: func() (string, Metadata, error) {
				return e.fastPathURL(url)
			},
		},
		{
			name:    "bridge",
			enabled: true,
			run: func() (string, Metadata, error) {
				text, meta, err := tika.ParseURLToString(url, e.maxStringLength, e.tikaConfig())
				if err != nil {
					return "", nil, bridgeError("extract url", err)
				}
				return text, Metadata(meta), nil
			},
		},
	})
	if err != nil {
		return "", nil, err
	}
	return e.postProcess(text, meta)
}

// extractMapped routes a large file through a read-only memory map into
// the byte-buffer bridge path. The bridge copies the view across the
// boundary during the call, so the mapping is released before returning.
func (e Extractor) extractMapped(path string, size int64) (*StreamReader, Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, ioError("extract file", err)
	}
	defer f.Close()

	data, unmap, err := mapFile(f, size)
	if err != nil {
		return nil, nil, ioError("extract file", fmt.Errorf("mmap: %w", err))
	}
	defer unmap()

	r, meta, err := tika.ParseBytes(data, string(e.encoding), e.tikaConfig())
	if err != nil {
		return nil, nil, bridgeError("extract file", err)
	}
	return newStreamReader(r), Metadata(meta), nil
}

func (e Extractor) extractMappedToString(path string) (string, Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, ioError("extract file", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", nil, ioError("extract file", err)
	}
	data, unmap, err := mapFile(f, info.Size())
	if err != nil {
		return "", nil, ioError("extract file", fmt.Errorf("mmap: %w", err))
	}
	defer unmap()

	text, meta, err := tika.ParseBytesToString(data, e.maxStringLength, e.tikaConfig())
	if err != nil {
		return "", nil, bridgeError("extract file", err)
	}
	return text, Metadata(meta), nil
}

// fastPathURL fetches a remote document and extracts it in-process when
// it turns out to be HTML. Anything else falls through to the bridge,
// which re-fetches on the foreign side.
func (e Extractor) fastPathURL(url string) (string, Metadata, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", nil, ioError("fetch url", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", nil, ioError("fetch url", fmt.Errorf("status %s", resp.Status))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, ioError("fetch url", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/html") && DetectFormatFromBytes(data) != FormatHTML {
		return "", nil, parseError("fast path", fmt.Errorf("remote content type %q is not HTML", contentType))
	}

	text, meta, err := e.fastHTML(data, true)
	if err != nil {
		return "", nil, err
	}
	meta.Set("Content-Length", fmt.Sprintf("%d", len(data)))
	if e.maxStringLength >= 0 && len(text) > e.maxStringLength {
		text = TruncateTextSmart(text, e.maxStringLength)
	}
	return text, meta, nil
}

// postProcess applies the configured cleaning and truncation to a string
// outcome. Cleaning only runs on text large enough to be worth the pass.
func (e Extractor) postProcess(text string, meta Metadata) (string, Metadata, error) {
	if !e.textCleaning {
		return text, meta, nil
	}
	if len(text) > cleaningThreshold {
		text = NormalizeWhitespace(text)
		meta.Set("Text-Processing", "lightweight")
	}
	if len(text) > e.maxStringLength {
		text = TruncateTextSmart(text, e.maxStringLength)
	}
	return text, meta, nil
}

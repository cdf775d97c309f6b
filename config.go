package extractous

import (
	"fmt"
	"log/slog"

	"github.com/sangam14/extractous/tika"
)

// CharSet names the character encoding used to decode extracted text on
// the streaming path. Values are Java charset names, passed through to the
// foreign runtime unchanged.
type CharSet string

const (
	CharSetUTF8    CharSet = "UTF-8"
	CharSetUSASCII CharSet = "US-ASCII"
	CharSetUTF16BE CharSet = "UTF-16BE"
)

func (c CharSet) valid() bool {
	switch c {
	case CharSetUTF8, CharSetUSASCII, CharSetUTF16BE:
		return true
	}
	return false
}

// OutputMode selects between plain-text and markup-preserving output on
// the fast-path parsers.
type OutputMode string

const (
	// OutputModeText yields plain extracted text.
	OutputModeText OutputMode = "text"

	// OutputModeMarkup preserves document structure: the HTML fast path
	// renders Markdown instead of flattened text.
	OutputModeMarkup OutputMode = "markup"
)

// Default tuning values, matching the foreign toolkit's own defaults where
// one exists on both sides.
const (
	DefaultMaxStringLength = 500_000
	DefaultMmapThreshold   = 512 * 1024
)

// Extractor is an immutable extraction configuration and the public entry
// point for all operations. Every With method returns a modified copy, so
// a base Extractor can be shared across goroutines and derived from freely:
//
//	base := extractous.NewExtractor()
//	ocr := base.WithOCRConfig(tika.DefaultTesseractOCRConfig().WithLanguage("deu"))
type Extractor struct {
	maxStringLength int
	encoding        CharSet
	outputMode      OutputMode
	pdfConfig       tika.PDFParserConfig
	officeConfig    tika.OfficeParserConfig
	ocrConfig       tika.TesseractOCRConfig
	useMmap         bool
	mmapThreshold   int64
	fastPath        bool
	textCleaning    bool
	parallel        bool
	workers         int
	logger          *slog.Logger
}

// NewExtractor returns an Extractor with default configuration: 500KB
// string cap, UTF-8, fast-path parsers and mmap enabled, text cleaning
// and parallel batches disabled.
func NewExtractor() Extractor {
	cfg := tika.DefaultConfig()
	return Extractor{
		maxStringLength: DefaultMaxStringLength,
		encoding:        CharSetUTF8,
		outputMode:      OutputModeText,
		pdfConfig:       cfg.PDF,
		officeConfig:    cfg.Office,
		ocrConfig:       cfg.OCR,
		useMmap:         true,
		mmapThreshold:   DefaultMmapThreshold,
		fastPath:        true,
		workers:         4,
		logger:          slog.Default(),
	}
}

// WithMaxStringLength caps the text returned by the *ToString operations.
func (e Extractor) WithMaxStringLength(n int) Extractor {
	e.maxStringLength = n
	return e
}

// WithEncoding sets the charset used to decode streamed text. Not used by
// the *ToString operations.
func (e Extractor) WithEncoding(cs CharSet) Extractor {
	e.encoding = cs
	return e
}

// WithOutputMode selects plain-text or markup-preserving output.
func (e Extractor) WithOutputMode(m OutputMode) Extractor {
	e.outputMode = m
	return e
}

// WithPDFConfig sets the PDF parser tuning.
func (e Extractor) WithPDFConfig(c tika.PDFParserConfig) Extractor {
	e.pdfConfig = c
	return e
}

// WithOfficeConfig sets the Office parser tuning.
func (e Extractor) WithOfficeConfig(c tika.OfficeParserConfig) Extractor {
	e.officeConfig = c
	return e
}

// WithOCRConfig sets the Tesseract OCR tuning.
func (e Extractor) WithOCRConfig(c tika.TesseractOCRConfig) Extractor {
	e.ocrConfig = c
	return e
}

// WithMmap enables or disables memory-mapped reads for large files.
func (e Extractor) WithMmap(enabled bool) Extractor {
	e.useMmap = enabled
	return e
}

// WithMmapThreshold sets the file size above which mmap is used.
func (e Extractor) WithMmapThreshold(bytes int64) Extractor {
	e.mmapThreshold = bytes
	return e
}

// WithFastPath enables or disables the in-process fast-path parsers.
func (e Extractor) WithFastPath(enabled bool) Extractor {
	e.fastPath = enabled
	return e
}

// WithTextCleaning enables whitespace normalization and smart truncation
// on string results.
func (e Extractor) WithTextCleaning(enabled bool) Extractor {
	e.textCleaning = enabled
	return e
}

// WithParallel enables the worker pool for batch extraction.
func (e Extractor) WithParallel(enabled bool) Extractor {
	e.parallel = enabled
	return e
}

// WithWorkers sets the batch worker-pool size. Only used when parallel
// batches are enabled.
func (e Extractor) WithWorkers(n int) Extractor {
	e.workers = n
	return e
}

// WithLogger sets the logger for pipeline decisions and swallowed
// fast-path failures.
func (e Extractor) WithLogger(l *slog.Logger) Extractor {
	e.logger = l
	return e
}

// validate checks the cross-cutting options. Parser config descriptors are
// not validated here; the foreign side owns their semantics.
func (e Extractor) validate() error {
	if e.maxStringLength < 0 {
		return configError("validate", fmt.Errorf("max string length %d is negative", e.maxStringLength))
	}
	if !e.encoding.valid() {
		return configError("validate", fmt.Errorf("unsupported charset %q", e.encoding))
	}
	if e.outputMode != OutputModeText && e.outputMode != OutputModeMarkup {
		return configError("validate", fmt.Errorf("unknown output mode %q", e.outputMode))
	}
	if e.mmapThreshold < 0 {
		return configError("validate", fmt.Errorf("mmap threshold %d is negative", e.mmapThreshold))
	}
	if e.workers < 1 {
		return configError("validate", fmt.Errorf("worker count %d is below 1", e.workers))
	}
	switch e.pdfConfig.OCRStrategy {
	case tika.OCRStrategyNoOCR, tika.OCRStrategyOCROnly,
		tika.OCRStrategyOCRAndTextExtraction, tika.OCRStrategyAuto:
	default:
		return configError("validate", fmt.Errorf("unknown OCR strategy %q", e.pdfConfig.OCRStrategy))
	}
	return nil
}

func (e Extractor) tikaConfig() tika.Config {
	return tika.Config{PDF: e.pdfConfig, Office: e.officeConfig, OCR: e.ocrConfig}
}

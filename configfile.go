package extractous

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sangam14/extractous/tika"
)

// ConfigFileName is the file DiscoverConfig looks for.
const ConfigFileName = "extractous.yaml"

// fileConfig is the YAML shape of an extractor configuration. Pointer
// fields distinguish "absent" from zero so an omitted key keeps its
// default.
type fileConfig struct {
	MaxStringLength *int    `yaml:"max_string_length"`
	Encoding        *string `yaml:"encoding"`
	OutputMode      *string `yaml:"output_mode"`
	UseMmap         *bool   `yaml:"use_mmap"`
	MmapThreshold   *int64  `yaml:"mmap_threshold"`
	FastPath        *bool   `yaml:"fast_path"`
	TextCleaning    *bool   `yaml:"text_cleaning"`
	Parallel        *bool   `yaml:"parallel"`
	Workers         *int    `yaml:"workers"`

	PDF struct {
		OCRStrategy           *string `yaml:"ocr_strategy"`
		ExtractInlineImages   *bool   `yaml:"extract_inline_images"`
		ExtractMarkedContent  *bool   `yaml:"extract_marked_content"`
		ExtractAnnotationText *bool   `yaml:"extract_annotation_text"`
	} `yaml:"pdf"`

	Office struct {
		ExtractMacros            *bool `yaml:"extract_macros"`
		IncludeDeletedContent    *bool `yaml:"include_deleted_content"`
		IncludeHeadersAndFooters *bool `yaml:"include_headers_and_footers"`
		IncludeShapeBasedContent *bool `yaml:"include_shape_based_content"`
	} `yaml:"office"`

	OCR struct {
		Language       *string `yaml:"language"`
		Density        *int    `yaml:"density"`
		Depth          *int    `yaml:"depth"`
		TimeoutSeconds *int    `yaml:"timeout_seconds"`
		ApplyRotation  *bool   `yaml:"apply_rotation"`
	} `yaml:"ocr"`
}

// LoadConfig reads a YAML configuration file and applies it on top of the
// default Extractor. Unknown charsets, output modes and out-of-range
// values are config errors.
func LoadConfig(path string) (Extractor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Extractor{}, ioError("load config", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Extractor{}, configError("load config", fmt.Errorf("parse %s: %w", path, err))
	}

	e := fc.apply(NewExtractor())
	if err := e.validate(); err != nil {
		return Extractor{}, err
	}
	return e, nil
}

// DiscoverConfig searches dir and its parents for extractous.yaml and
// loads the first one found. The second return value is false when no
// config file exists, in which case the default Extractor is returned.
func DiscoverConfig(dir string) (Extractor, bool, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return NewExtractor(), false, ioError("discover config", err)
	}
	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			e, err := LoadConfig(path)
			return e, err == nil, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return NewExtractor(), false, nil
		}
		dir = parent
	}
}

func (fc fileConfig) apply(e Extractor) Extractor {
	if fc.MaxStringLength != nil {
		e = e.WithMaxStringLength(*fc.MaxStringLength)
	}
	if fc.Encoding != nil {
		e = e.WithEncoding(CharSet(*fc.Encoding))
	}
	if fc.OutputMode != nil {
		e = e.WithOutputMode(OutputMode(*fc.OutputMode))
	}
	if fc.UseMmap != nil {
		e = e.WithMmap(*fc.UseMmap)
	}
	if fc.MmapThreshold != nil {
		e = e.WithMmapThreshold(*fc.MmapThreshold)
	}
	if fc.FastPath != nil {
		e = e.WithFastPath(*fc.FastPath)
	}
	if fc.TextCleaning != nil {
		e = e.WithTextCleaning(*fc.TextCleaning)
	}
	if fc.Parallel != nil {
		e = e.WithParallel(*fc.Parallel)
	}
	if fc.Workers != nil {
		e = e.WithWorkers(*fc.Workers)
	}

	pdf := e.pdfConfig
	if fc.PDF.OCRStrategy != nil {
		pdf = pdf.WithOCRStrategy(tika.OCRStrategy(*fc.PDF.OCRStrategy))
	}
	if fc.PDF.ExtractInlineImages != nil {
		pdf = pdf.WithExtractInlineImages(*fc.PDF.ExtractInlineImages)
	}
	if fc.PDF.ExtractMarkedContent != nil {
		pdf = pdf.WithExtractMarkedContent(*fc.PDF.ExtractMarkedContent)
	}
	if fc.PDF.ExtractAnnotationText != nil {
		pdf = pdf.WithExtractAnnotationText(*fc.PDF.ExtractAnnotationText)
	}
	e = e.WithPDFConfig(pdf)

	office := e.officeConfig
	if fc.Office.ExtractMacros != nil {
		office = office.WithExtractMacros(*fc.Office.ExtractMacros)
	}
	if fc.Office.IncludeDeletedContent != nil {
		office = office.WithIncludeDeletedContent(*fc.Office.IncludeDeletedContent)
	}
	if fc.Office.IncludeHeadersAndFooters != nil {
		office = office.WithIncludeHeadersAndFooters(*fc.Office.IncludeHeadersAndFooters)
	}
	if fc.Office.IncludeShapeBasedContent != nil {
		office = office.WithIncludeShapeBasedContent(*fc.Office.IncludeShapeBasedContent)
	}
	e = e.WithOfficeConfig(office)

	ocr := e.ocrConfig
	if fc.OCR.Language != nil {
		ocr = ocr.WithLanguage(*fc.OCR.Language)
	}
	if fc.OCR.Density != nil {
		ocr = ocr.WithDensity(*fc.OCR.Density)
	}
	if fc.OCR.Depth != nil {
		ocr = ocr.WithDepth(*fc.OCR.Depth)
	}
	if fc.OCR.TimeoutSeconds != nil {
		ocr = ocr.WithTimeoutSeconds(*fc.OCR.TimeoutSeconds)
	}
	if fc.OCR.ApplyRotation != nil {
		ocr = ocr.WithApplyRotation(*fc.OCR.ApplyRotation)
	}
	return e.WithOCRConfig(ocr)
}

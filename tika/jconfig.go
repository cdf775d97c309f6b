package tika

/*
#include "bridge.h"
*/
import "C"

// OCRStrategy selects how the PDF parser combines OCR output with the
// text layer. Values mirror the foreign enum names.
type OCRStrategy string

const (
	OCRStrategyNoOCR                OCRStrategy = "NO_OCR"
	OCRStrategyOCROnly              OCRStrategy = "OCR_ONLY"
	OCRStrategyOCRAndTextExtraction OCRStrategy = "OCR_AND_TEXT_EXTRACTION"
	OCRStrategyAuto                 OCRStrategy = "AUTO"
)

// PDFParserConfig configures the foreign PDF parser. The zero value is not
// useful; start from DefaultPDFParserConfig and derive with the With
// methods, which copy rather than mutate.
type PDFParserConfig struct {
	OCRStrategy                   OCRStrategy
	ExtractInlineImages           bool
	ExtractUniqueInlineImagesOnly bool
	ExtractMarkedContent          bool
	ExtractAnnotationText         bool
}

func DefaultPDFParserConfig() PDFParserConfig {
	return PDFParserConfig{
		OCRStrategy:           OCRStrategyAuto,
		ExtractAnnotationText: true,
	}
}

func (c PDFParserConfig) WithOCRStrategy(s OCRStrategy) PDFParserConfig {
	c.OCRStrategy = s
	return c
}

func (c PDFParserConfig) WithExtractInlineImages(v bool) PDFParserConfig {
	c.ExtractInlineImages = v
	return c
}

func (c PDFParserConfig) WithExtractUniqueInlineImagesOnly(v bool) PDFParserConfig {
	c.ExtractUniqueInlineImagesOnly = v
	return c
}

func (c PDFParserConfig) WithExtractMarkedContent(v bool) PDFParserConfig {
	c.ExtractMarkedContent = v
	return c
}

func (c PDFParserConfig) WithExtractAnnotationText(v bool) PDFParserConfig {
	c.ExtractAnnotationText = v
	return c
}

// OfficeParserConfig configures the foreign Microsoft Office parsers.
type OfficeParserConfig struct {
	ExtractMacros                 bool
	IncludeDeletedContent         bool
	IncludeMoveFromContent        bool
	IncludeShapeBasedContent      bool
	IncludeHeadersAndFooters      bool
	ConcatenatePhoneticRuns       bool
	ExtractAllAlternativesFromMSG bool
}

func DefaultOfficeParserConfig() OfficeParserConfig {
	return OfficeParserConfig{
		IncludeShapeBasedContent: true,
		IncludeHeadersAndFooters: true,
		ConcatenatePhoneticRuns:  true,
	}
}

func (c OfficeParserConfig) WithExtractMacros(v bool) OfficeParserConfig {
	c.ExtractMacros = v
	return c
}

func (c OfficeParserConfig) WithIncludeDeletedContent(v bool) OfficeParserConfig {
	c.IncludeDeletedContent = v
	return c
}

func (c OfficeParserConfig) WithIncludeMoveFromContent(v bool) OfficeParserConfig {
	c.IncludeMoveFromContent = v
	return c
}

func (c OfficeParserConfig) WithIncludeShapeBasedContent(v bool) OfficeParserConfig {
	c.IncludeShapeBasedContent = v
	return c
}

func (c OfficeParserConfig) WithIncludeHeadersAndFooters(v bool) OfficeParserConfig {
	c.IncludeHeadersAndFooters = v
	return c
}

func (c OfficeParserConfig) WithConcatenatePhoneticRuns(v bool) OfficeParserConfig {
	c.ConcatenatePhoneticRuns = v
	return c
}

func (c OfficeParserConfig) WithExtractAllAlternativesFromMSG(v bool) OfficeParserConfig {
	c.ExtractAllAlternativesFromMSG = v
	return c
}

// TesseractOCRConfig configures the foreign OCR pass.
type TesseractOCRConfig struct {
	Density                  int
	Depth                    int
	TimeoutSeconds           int
	EnableImagePreprocessing bool
	ApplyRotation            bool
	Language                 string
}

func DefaultTesseractOCRConfig() TesseractOCRConfig {
	return TesseractOCRConfig{
		Density:        300,
		Depth:          4,
		TimeoutSeconds: 120,
		Language:       "eng",
	}
}

func (c TesseractOCRConfig) WithDensity(v int) TesseractOCRConfig {
	c.Density = v
	return c
}

func (c TesseractOCRConfig) WithDepth(v int) TesseractOCRConfig {
	c.Depth = v
	return c
}

func (c TesseractOCRConfig) WithTimeoutSeconds(v int) TesseractOCRConfig {
	c.TimeoutSeconds = v
	return c
}

func (c TesseractOCRConfig) WithEnableImagePreprocessing(v bool) TesseractOCRConfig {
	c.EnableImagePreprocessing = v
	return c
}

func (c TesseractOCRConfig) WithApplyRotation(v bool) TesseractOCRConfig {
	c.ApplyRotation = v
	return c
}

func (c TesseractOCRConfig) WithLanguage(lang string) TesseractOCRConfig {
	c.Language = lang
	return c
}

// Foreign class names for the parser config descriptors.
const (
	pdfConfigClass    = "org/apache/tika/parser/pdf/PDFParserConfig"
	officeConfigClass = "org/apache/tika/parser/microsoft/OfficeParserConfig"
	ocrConfigClass    = "org/apache/tika/parser/ocr/TesseractOCRConfig"
)

// materialize builds a fresh foreign PDFParserConfig and applies every
// field through its setter. Descriptors are materialized per parse call
// and never cached, so config changes between calls always take effect.
func (c PDFParserConfig) materialize(e env) (C.bridge_ref, error) {
	obj, err := e.newObject(pdfConfigClass, "()V")
	if err != nil {
		return nil, err
	}
	strategy, err := e.newString(string(c.OCRStrategy))
	if err != nil {
		return nil, err
	}
	defer e.deleteLocal(strategy)
	if err := e.callVoid(obj, "setOcrStrategy", "(Ljava/lang/String;)V", objArg(strategy)); err != nil {
		return nil, err
	}
	setters := []struct {
		name string
		val  bool
	}{
		{"setExtractInlineImages", c.ExtractInlineImages},
		{"setExtractUniqueInlineImagesOnly", c.ExtractUniqueInlineImagesOnly},
		{"setExtractMarkedContent", c.ExtractMarkedContent},
		{"setExtractAnnotationText", c.ExtractAnnotationText},
	}
	for _, s := range setters {
		if err := e.callVoid(obj, s.name, "(Z)V", boolArg(s.val)); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func (c OfficeParserConfig) materialize(e env) (C.bridge_ref, error) {
	obj, err := e.newObject(officeConfigClass, "()V")
	if err != nil {
		return nil, err
	}
	setters := []struct {
		name string
		val  bool
	}{
		{"setExtractMacros", c.ExtractMacros},
		{"setIncludeDeletedContent", c.IncludeDeletedContent},
		{"setIncludeMoveFromContent", c.IncludeMoveFromContent},
		{"setIncludeShapeBasedContent", c.IncludeShapeBasedContent},
		{"setIncludeHeadersAndFooters", c.IncludeHeadersAndFooters},
		{"setConcatenatePhoneticRuns", c.ConcatenatePhoneticRuns},
		{"setExtractAllAlternativesFromMSG", c.ExtractAllAlternativesFromMSG},
	}
	for _, s := range setters {
		if err := e.callVoid(obj, s.name, "(Z)V", boolArg(s.val)); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func (c TesseractOCRConfig) materialize(e env) (C.bridge_ref, error) {
	obj, err := e.newObject(ocrConfigClass, "()V")
	if err != nil {
		return nil, err
	}
	ints := []struct {
		name string
		val  int
	}{
		{"setDensity", c.Density},
		{"setDepth", c.Depth},
		{"setTimeoutSeconds", c.TimeoutSeconds},
	}
	for _, s := range ints {
		if err := e.callVoid(obj, s.name, "(I)V", intArg(int32(s.val))); err != nil {
			return nil, err
		}
	}
	if err := e.callVoid(obj, "setEnableImagePreprocessing", "(Z)V", boolArg(c.EnableImagePreprocessing)); err != nil {
		return nil, err
	}
	if err := e.callVoid(obj, "setApplyRotation", "(Z)V", boolArg(c.ApplyRotation)); err != nil {
		return nil, err
	}
	lang, err := e.newString(c.Language)
	if err != nil {
		return nil, err
	}
	defer e.deleteLocal(lang)
	if err := e.callVoid(obj, "setLanguage", "(Ljava/lang/String;)V", objArg(lang)); err != nil {
		return nil, err
	}
	return obj, nil
}

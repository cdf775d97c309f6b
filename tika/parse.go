package tika

/*
#include "bridge.h"
*/
import "C"

import "fmt"

// Entry-point class and JNI descriptors of the native toolkit. These are a
// fixed ABI surface: the descriptors must match the Java signatures exactly
// or method lookup fails at call time.
const (
	mainClass = "ai/yobix/TikaNativeMain"

	configParams = "Lorg/apache/tika/parser/pdf/PDFParserConfig;" +
		"Lorg/apache/tika/parser/microsoft/OfficeParserConfig;" +
		"Lorg/apache/tika/parser/ocr/TesseractOCRConfig;"

	sigParseFile  = "(Ljava/lang/String;Ljava/lang/String;" + configParams + ")Lai/yobix/ReaderResult;"
	sigParseBytes = "([BLjava/lang/String;" + configParams + ")Lai/yobix/ReaderResult;"
	sigParseURL   = "(Ljava/lang/String;Ljava/lang/String;" + configParams + ")Lai/yobix/ReaderResult;"

	sigParseToString      = "(Ljava/lang/String;I" + configParams + ")Lai/yobix/StringResult;"
	sigParseBytesToString = "([BI" + configParams + ")Lai/yobix/StringResult;"
	sigParseURLToString   = "(Ljava/lang/String;I" + configParams + ")Lai/yobix/StringResult;"
)

// Config bundles the three parser config descriptors every parse call
// takes. Each descriptor is materialized into a fresh foreign object
// immediately before the call; the foreign objects are call-scoped and
// never reused.
type Config struct {
	PDF    PDFParserConfig
	Office OfficeParserConfig
	OCR    TesseractOCRConfig
}

// DefaultConfig returns descriptors whose fields mirror the foreign side's
// own defaults, so an unset field never diverges from what the toolkit
// would pick on its own.
func DefaultConfig() Config {
	return Config{
		PDF:    DefaultPDFParserConfig(),
		Office: DefaultOfficeParserConfig(),
		OCR:    DefaultTesseractOCRConfig(),
	}
}

func (c Config) materialize(e env) (pdf, office, ocr C.bridge_ref, err error) {
	if pdf, err = c.PDF.materialize(e); err != nil {
		return nil, nil, nil, err
	}
	if office, err = c.Office.materialize(e); err != nil {
		return nil, nil, nil, err
	}
	if ocr, err = c.OCR.materialize(e); err != nil {
		return nil, nil, nil, err
	}
	return pdf, office, ocr, nil
}

// ParseFile parses the file at path and returns a Reader streaming the
// extracted text decoded as charsetName, plus the document metadata.
func ParseFile(path, charsetName string, cfg Config) (*Reader, map[string][]string, error) {
	e, release, err := attach()
	if err != nil {
		return nil, nil, err
	}
	defer release()

	jPath, err := e.newString(path)
	if err != nil {
		return nil, nil, err
	}
	defer e.deleteLocal(jPath)
	return parseToReader(e, "parseFile", sigParseFile, jPath, charsetName, cfg)
}

// ParseBytes parses an in-memory buffer. The buffer is copied into the
// foreign heap for the duration of the call, so the caller may reuse or
// unmap it as soon as ParseBytes returns.
func ParseBytes(data []byte, charsetName string, cfg Config) (*Reader, map[string][]string, error) {
	e, release, err := attach()
	if err != nil {
		return nil, nil, err
	}
	defer release()

	jData, err := e.byteArrayFrom(data)
	if err != nil {
		return nil, nil, err
	}
	defer e.deleteLocal(jData)
	return parseToReader(e, "parseBytes", sigParseBytes, jData, charsetName, cfg)
}

// ParseURL fetches and parses a remote document. The fetch happens on the
// foreign side and blocks until the server responds.
func ParseURL(url, charsetName string, cfg Config) (*Reader, map[string][]string, error) {
	e, release, err := attach()
	if err != nil {
		return nil, nil, err
	}
	defer release()

	jURL, err := e.newString(url)
	if err != nil {
		return nil, nil, err
	}
	defer e.deleteLocal(jURL)
	return parseToReader(e, "parseUrl", sigParseURL, jURL, charsetName, cfg)
}

// ParseFileToString parses the file at path and returns up to maxLength
// characters of extracted text. The cap is enforced on the foreign side by
// the content handler, not by truncating an already-materialized string.
func ParseFileToString(path string, maxLength int, cfg Config) (string, map[string][]string, error) {
	e, release, err := attach()
	if err != nil {
		return "", nil, err
	}
	defer release()

	jPath, err := e.newString(path)
	if err != nil {
		return "", nil, err
	}
	defer e.deleteLocal(jPath)
	return parseToString(e, "parseToString", sigParseToString, jPath, maxLength, cfg)
}

// ParseBytesToString parses an in-memory buffer into a capped string.
func ParseBytesToString(data []byte, maxLength int, cfg Config) (string, map[string][]string, error) {
	e, release, err := attach()
	if err != nil {
		return "", nil, err
	}
	defer release()

	jData, err := e.byteArrayFrom(data)
	if err != nil {
		return "", nil, err
	}
	defer e.deleteLocal(jData)
	return parseToString(e, "parseBytesToString", sigParseBytesToString, jData, maxLength, cfg)
}

// ParseURLToString fetches and parses a remote document into a capped string.
func ParseURLToString(url string, maxLength int, cfg Config) (string, map[string][]string, error) {
	e, release, err := attach()
	if err != nil {
		return "", nil, err
	}
	defer release()

	jURL, err := e.newString(url)
	if err != nil {
		return "", nil, err
	}
	defer e.deleteLocal(jURL)
	return parseToString(e, "parseUrlToString", sigParseURLToString, jURL, maxLength, cfg)
}

func parseToReader(e env, method, sig string, source C.bridge_ref, charsetName string, cfg Config) (*Reader, map[string][]string, error) {
	jCharset, err := e.newString(charsetName)
	if err != nil {
		return nil, nil, err
	}
	defer e.deleteLocal(jCharset)

	pdf, office, ocr, err := cfg.materialize(e)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		e.deleteLocal(pdf)
		e.deleteLocal(office)
		e.deleteLocal(ocr)
	}()

	res, err := e.callStaticObject(mainClass, method, sig,
		objArg(source), objArg(jCharset), objArg(pdf), objArg(office), objArg(ocr))
	if err != nil {
		return nil, nil, err
	}
	defer e.deleteLocal(res)

	if err := unwrapStatus(e, res, method); err != nil {
		return nil, nil, err
	}

	stream, err := e.callObject(res, "getReader",
		"()Lorg/apache/commons/io/input/ReaderInputStream;")
	if err != nil {
		return nil, nil, err
	}
	meta, err := unwrapMetadata(e, res)
	if err != nil {
		e.deleteLocal(stream)
		return nil, nil, err
	}

	r, err := newReader(e, stream)
	e.deleteLocal(stream)
	if err != nil {
		return nil, nil, err
	}
	return r, meta, nil
}

func parseToString(e env, method, sig string, source C.bridge_ref, maxLength int, cfg Config) (string, map[string][]string, error) {
	pdf, office, ocr, err := cfg.materialize(e)
	if err != nil {
		return "", nil, err
	}
	defer func() {
		e.deleteLocal(pdf)
		e.deleteLocal(office)
		e.deleteLocal(ocr)
	}()

	res, err := e.callStaticObject(mainClass, method, sig,
		objArg(source), intArg(int32(maxLength)), objArg(pdf), objArg(office), objArg(ocr))
	if err != nil {
		return "", nil, err
	}
	defer e.deleteLocal(res)

	if err := unwrapStatus(e, res, method); err != nil {
		return "", nil, err
	}

	jContent, err := e.callObject(res, "getContent", "()Ljava/lang/String;")
	if err != nil {
		return "", nil, err
	}
	defer e.deleteLocal(jContent)
	content, err := e.goString(jContent, "content")
	if err != nil {
		return "", nil, err
	}

	meta, err := unwrapMetadata(e, res)
	if err != nil {
		return "", nil, err
	}
	return content, meta, nil
}

// unwrapStatus reads the result envelope's status byte and turns a
// non-zero status into the matching sentinel error with the foreign-side
// message attached.
func unwrapStatus(e env, res C.bridge_ref, op string) error {
	status, err := e.callByte(res, "getStatus", "()B")
	if err != nil {
		return err
	}
	if status == statusOK {
		return nil
	}

	jMsg, err := e.callObject(res, "getErrorMessage", "()Ljava/lang/String;")
	if err != nil {
		return err
	}
	defer e.deleteLocal(jMsg)
	msg, err := e.goString(jMsg, "error message")
	if err != nil {
		return err
	}

	switch status {
	case statusIO:
		return fmt.Errorf("%w: %s: %s", ErrIO, op, msg)
	case statusParse, statusURISyntax:
		return fmt.Errorf("%w: %s: %s", ErrParse, op, msg)
	default:
		return fmt.Errorf("%w: %s: unknown status %d: %s", ErrBridge, op, status, msg)
	}
}

// unwrapMetadata converts the envelope's java.util.HashMap<String,String>
// into a Go map by walking its entry set. Duplicate keys cannot occur on
// the foreign side, but values are returned as slices so callers can merge
// metadata from several sources without losing entries.
func unwrapMetadata(e env, res C.bridge_ref) (map[string][]string, error) {
	jMap, err := e.callObject(res, "getMetadata", "()Ljava/util/HashMap;")
	if err != nil {
		return nil, err
	}
	defer e.deleteLocal(jMap)

	entries, err := e.callObject(jMap, "entrySet", "()Ljava/util/Set;")
	if err != nil {
		return nil, err
	}
	defer e.deleteLocal(entries)

	iter, err := e.callObject(entries, "iterator", "()Ljava/util/Iterator;")
	if err != nil {
		return nil, err
	}
	defer e.deleteLocal(iter)

	meta := make(map[string][]string)
	for {
		more, err := e.callBool(iter, "hasNext", "()Z")
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		entry, err := e.callObject(iter, "next", "()Ljava/lang/Object;")
		if err != nil {
			return nil, err
		}
		key, value, err := unwrapEntry(e, entry)
		e.deleteLocal(entry)
		if err != nil {
			return nil, err
		}
		meta[key] = append(meta[key], value)
	}
	return meta, nil
}

func unwrapEntry(e env, entry C.bridge_ref) (string, string, error) {
	jKey, err := e.callObject(entry, "getKey", "()Ljava/lang/Object;")
	if err != nil {
		return "", "", err
	}
	defer e.deleteLocal(jKey)
	key, err := e.goString(jKey, "metadata key")
	if err != nil {
		return "", "", err
	}

	jVal, err := e.callObject(entry, "getValue", "()Ljava/lang/Object;")
	if err != nil {
		return "", "", err
	}
	defer e.deleteLocal(jVal)
	value, err := e.goString(jVal, "metadata value")
	if err != nil {
		return "", "", err
	}
	return key, value, nil
}

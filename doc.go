// Package extractous extracts plain text and metadata from documents.
//
// Supported sources: local files, in-memory byte buffers, and remote URLs.
// Format-specific parsing is delegated to the embedded Tika native runtime
// (see the tika subpackage) and, for a handful of formats, to in-process
// fast-path parsers that skip the runtime boundary entirely:
//   - .pdf   — pdfcpu content-stream extraction
//   - .xlsx  — archive/zip → xl/worksheets + sharedStrings.xml
//   - .html  — golang.org/x/net/html DOM walk
//   - .xml   — token-level text collection
//
// Everything else (doc, docx, pptx, odt, epub, rtf, images via OCR, ...)
// crosses the bridge into the Tika runtime.
//
// Usage:
//
//	ex := extractous.NewExtractor().WithMaxStringLength(100_000)
//	text, meta, err := ex.ExtractFileToString("report.pdf")
//	fmt.Println(text, meta.Get("Content-Type"))
//
// Streamed extraction avoids holding the whole document in memory:
//
//	r, meta, err := ex.ExtractFile("report.pdf")
//	defer r.Close()
//	io.Copy(os.Stdout, bufio.NewReader(r))
package extractous

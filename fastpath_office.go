package extractous

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// fastXlsx extracts cell text from an OOXML spreadsheet by walking the
// archive directly: shared strings first, then each worksheet's cell
// values. One line of output per row, cells separated by tabs.
func fastXlsx(data []byte) (string, Metadata, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, parseError("xlsx", fmt.Errorf("open archive: %w", err))
	}

	shared, err := readSharedStrings(zr)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	sheets := 0
	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, "xl/worksheets/sheet") || !strings.HasSuffix(f.Name, ".xml") {
			continue
		}
		sheets++
		if err := appendSheetText(&sb, f, shared); err != nil {
			return "", nil, err
		}
	}
	if sheets == 0 {
		return "", nil, parseError("xlsx", fmt.Errorf("no worksheets in archive"))
	}

	meta := Metadata{}
	meta.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	meta.Set("Sheet-Count", strconv.Itoa(sheets))
	return strings.TrimRight(sb.String(), "\n"), meta, nil
}

// readSharedStrings loads xl/sharedStrings.xml, which cell values of type
// "s" index into. A workbook without one is fine; all cells are inline.
func readSharedStrings(zr *zip.Reader) ([]string, error) {
	f, err := zr.Open("xl/sharedStrings.xml")
	if err != nil {
		return nil, nil
	}
	defer f.Close()

	var shared []string
	decoder := xml.NewDecoder(f)
	var current strings.Builder
	var inSI, inT bool
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError("xlsx", fmt.Errorf("shared strings: %w", err))
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "si":
				inSI = true
				current.Reset()
			case "t":
				inT = true
			}
		case xml.CharData:
			if inSI && inT {
				current.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inT = false
			case "si":
				inSI = false
				shared = append(shared, current.String())
			}
		}
	}
	return shared, nil
}

// appendSheetText walks one worksheet's cells. Cells with t="s" resolve
// through the shared string table; everything else uses the literal <v>.
func appendSheetText(sb *strings.Builder, f *zip.File, shared []string) error {
	rc, err := f.Open()
	if err != nil {
		return parseError("xlsx", fmt.Errorf("open %s: %w", f.Name, err))
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var cellType string
	var value strings.Builder
	var inV bool
	rowHasCells := false

	flushCell := func() {
		v := value.String()
		if cellType == "s" {
			if idx, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && idx >= 0 && idx < len(shared) {
				v = shared[idx]
			}
		}
		if v != "" {
			if rowHasCells {
				sb.WriteByte('\t')
			}
			sb.WriteString(v)
			rowHasCells = true
		}
		value.Reset()
	}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return parseError("xlsx", fmt.Errorf("parse %s: %w", f.Name, err))
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "row":
				rowHasCells = false
			case "c":
				cellType = ""
				for _, attr := range t.Attr {
					if attr.Name.Local == "t" {
						cellType = attr.Value
					}
				}
			case "v", "t":
				inV = true
				value.Reset()
			}
		case xml.CharData:
			if inV {
				value.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "v", "t":
				inV = false
			case "c":
				flushCell()
			case "row":
				if rowHasCells {
					sb.WriteByte('\n')
				}
			}
		}
	}
	return nil
}

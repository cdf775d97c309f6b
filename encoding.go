package extractous

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// decodeCharSet transcodes raw document bytes to a UTF-8 string according
// to the configured charset. On the bridge path the foreign runtime does
// this decoding; the in-process text parsers apply the same charset here
// so both paths agree on what the configured encoding means.
func decodeCharSet(data []byte, cs CharSet) (string, error) {
	switch cs {
	case CharSetUTF8, "":
		if err := validUTF8(data); err != nil {
			return "", err
		}
		return string(data), nil

	case CharSetUSASCII:
		for i, b := range data {
			if b >= 0x80 {
				return "", encodingError("decode",
					fmt.Errorf("byte 0x%02x at offset %d is outside US-ASCII", b, i))
			}
		}
		return string(data), nil

	case CharSetUTF16BE:
		dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
		out, err := dec.Bytes(data)
		if err != nil {
			return "", encodingError("decode", fmt.Errorf("UTF-16BE: %w", err))
		}
		return string(out), nil

	default:
		return "", configError("decode", fmt.Errorf("unsupported charset %q", cs))
	}
}

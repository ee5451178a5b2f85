package csvio

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding represents a character encoding.
type Encoding string

const (
	// EncodingUTF8 is UTF-8 encoding (default).
	EncodingUTF8 Encoding = "utf-8"

	// EncodingUTF16LE is UTF-16 Little Endian.
	EncodingUTF16LE Encoding = "utf-16le"

	// EncodingUTF16BE is UTF-16 Big Endian.
	EncodingUTF16BE Encoding = "utf-16be"

	// EncodingLatin1 is ISO-8859-1 (Latin-1).
	EncodingLatin1 Encoding = "iso-8859-1"
)

// BOM (Byte Order Mark) constants
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DetectEncoding reports the encoding of content and whether it starts with
// a byte order mark. Content without a BOM that is not valid UTF-8 is treated
// as Latin-1, which accepts every byte sequence.
func DetectEncoding(content []byte) (Encoding, bool) {
	switch {
	case bytes.HasPrefix(content, bomUTF8):
		return EncodingUTF8, true
	case bytes.HasPrefix(content, bomUTF16LE):
		return EncodingUTF16LE, true
	case bytes.HasPrefix(content, bomUTF16BE):
		return EncodingUTF16BE, true
	case utf8.Valid(content):
		return EncodingUTF8, false
	default:
		return EncodingLatin1, false
	}
}

// ParseEncoding parses an encoding name as used in configuration.
func ParseEncoding(name string) (Encoding, error) {
	switch name {
	case "", "utf-8", "utf8", "UTF-8":
		return EncodingUTF8, nil
	case "utf-16le", "UTF-16LE":
		return EncodingUTF16LE, nil
	case "utf-16be", "UTF-16BE":
		return EncodingUTF16BE, nil
	case "iso-8859-1", "latin1", "latin-1", "ISO-8859-1":
		return EncodingLatin1, nil
	default:
		return "", fmt.Errorf("unknown encoding %q", name)
	}
}

// textEncoding returns the x/text encoding for enc, or nil for UTF-8.
func textEncoding(enc Encoding, bom bool) encoding.Encoding {
	policy := unicode.IgnoreBOM
	if bom {
		policy = unicode.UseBOM
	}
	switch enc {
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, policy)
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, policy)
	case EncodingLatin1:
		return charmap.ISO8859_1
	default:
		return nil
	}
}

// toUTF8 decodes content in the given encoding to UTF-8, dropping any BOM.
func toUTF8(content []byte, enc Encoding, bom bool) ([]byte, error) {
	if enc == EncodingUTF8 {
		if bom {
			return content[len(bomUTF8):], nil
		}
		return content, nil
	}
	return textEncoding(enc, bom).NewDecoder().Bytes(content)
}

// fromUTF8 encodes UTF-8 text into the given encoding, adding a BOM if asked.
func fromUTF8(text []byte, enc Encoding, bom bool) ([]byte, error) {
	if enc == EncodingUTF8 {
		if bom {
			return append(append([]byte{}, bomUTF8...), text...), nil
		}
		return text, nil
	}
	out, err := textEncoding(enc, bom).NewEncoder().Bytes(text)
	if err != nil {
		return nil, fmt.Errorf("encoding as %s: %w", enc, err)
	}
	return out, nil
}

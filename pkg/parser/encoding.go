package parser

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeHTML rewraps raw page bytes as UTF-8. Browser-saved pages
// occasionally carry a UTF-16 BOM or a legacy single-byte encoding, and the
// downstream parsers assume valid UTF-8.
func DecodeHTML(raw []byte) ([]byte, error) {
	// BOM-marked input is decoded per its BOM; everything else passes through.
	decoded, _, err := transform.Bytes(unicode.BOMOverride(encoding.Nop.NewDecoder()), raw)
	if err == nil && utf8.Valid(decoded) {
		return decoded, nil
	}

	// Not valid UTF-8: assume a legacy Windows-1252 save.
	decoded, _, err = transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

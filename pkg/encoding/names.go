// Package encoding decodes names found in mesh files that predate UTF-8.
package encoding

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// legacy lists the encodings tried, in order, for names that are not UTF-8.
// Windows-1252 maps every byte, so it always succeeds.
var legacy = []encoding.Encoding{
	korean.EUCKR,
	charmap.Windows1252,
}

// DecodeName returns name as a UTF-8 string. Valid UTF-8 is returned as is;
// anything else is decoded as EUC-KR, falling back to Windows-1252.
func DecodeName(name []byte) string {
	if utf8.Valid(name) {
		return string(name)
	}
	for _, enc := range legacy {
		if s, ok := decode(enc, name); ok {
			return s
		}
	}
	return string(name)
}

// decode converts data, failing if the decoder substitutes any byte.
func decode(enc encoding.Encoding, data []byte) (string, bool) {
	result, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil || !utf8.Valid(result) {
		return "", false
	}
	for _, r := range string(result) {
		if r == utf8.RuneError {
			return "", false
		}
	}
	return string(result), true
}

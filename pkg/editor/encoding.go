package editor

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultEncoding is used for every opened file and every new document.
const DefaultEncoding = "utf-8"

var errInvalidUTF8 = errors.New("invalid UTF-8")

func lookupEncoding(name string) (encoding.Encoding, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultEncoding
	}
	return htmlindex.Get(name)
}

// decodeText turns file bytes into text. UTF-8 input is validated rather than
// repaired, so a file with broken bytes is refused instead of silently
// rewritten on the next save.
func decodeText(data []byte, name string) (string, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return "", err
	}
	if canonical, _ := htmlindex.Name(enc); canonical == DefaultEncoding {
		if !utf8.Valid(data) {
			return "", errInvalidUTF8
		}
		return string(data), nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// encodeText turns text into file bytes, failing on characters the encoding
// cannot represent.
func encodeText(text, name string) ([]byte, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	if canonical, _ := htmlindex.Name(enc); canonical == DefaultEncoding {
		if !utf8.ValidString(text) {
			return nil, errInvalidUTF8
		}
		return []byte(text), nil
	}
	return enc.NewEncoder().Bytes([]byte(text))
}

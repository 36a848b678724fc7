// Package textenc decodes document bytes into text.
//
// Markdown sources are expected to be UTF-8, but documents exported from
// legacy Windows tooling occasionally arrive as Latin-1. Decode tries
// UTF-8 first and falls back to Latin-1 before giving up.
package textenc

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Decode interprets raw file bytes as text.
// UTF-8 input is returned as-is; invalid UTF-8 is decoded as Latin-1.
func Decode(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding as latin-1: %w", err)
	}
	return string(decoded), nil
}

// Package literal parses command-line value literals for superblock fields.
//
// A literal is one of:
//
//   - a decimal unsigned integer: 131072
//   - a 0x-prefixed hexadecimal integer: 0x20000
//   - for the magic field, four characters packed first-character-lowest:
//     hsqs
//   - for the compression field, a compressor name: ZLIB, LZMA, LZO, XZ,
//     LZ4 or ZSTD
//
// Named forms are tried first; a literal that does not match one falls
// back to the numeric forms.
package literal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ecnx/squtil/internal/superblock"
)

// ErrMalformed is returned for a literal that matches no accepted form.
var ErrMalformed = errors.New("malformed value")

var compressors = []struct {
	name string
	id   uint16
}{
	{"ZLIB", superblock.CompressionZlib},
	{"LZMA", superblock.CompressionLzma},
	{"LZO", superblock.CompressionLzo},
	{"XZ", superblock.CompressionXz},
	{"LZ4", superblock.CompressionLz4},
	{"ZSTD", superblock.CompressionZstd},
}

// Parse converts arg into the value to store in field.
func Parse(field, arg string) (uint64, error) {
	if v, ok := parseNamed(field, arg); ok {
		return v, nil
	}
	v, err := ParseUint(arg)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", field, arg, err)
	}
	return v, nil
}

func parseNamed(field, arg string) (uint64, bool) {
	switch field {
	case superblock.FieldMagic:
		return PackMagic(arg)
	case superblock.FieldCompression:
		id, ok := CompressionID(arg)
		return uint64(id), ok
	}
	return 0, false
}

// ParseUint parses a decimal or 0x-prefixed hexadecimal unsigned 64-bit
// integer.
func ParseUint(arg string) (uint64, error) {
	base, digits := 10, arg
	if rest, ok := strings.CutPrefix(arg, "0x"); ok {
		base, digits = 16, rest
	}
	if digits == "" || strings.ContainsAny(digits[:1], "+-") {
		return 0, ErrMalformed
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return v, nil
}

// PackMagic packs a four character code into a 32-bit value with the
// first character in the lowest byte. Codes starting with a digit are
// rejected so numeric literals are never mistaken for one.
func PackMagic(code string) (uint64, bool) {
	if len(code) != 4 || (code[0] >= '0' && code[0] <= '9') {
		return 0, false
	}
	return uint64(code[0]) | uint64(code[1])<<8 | uint64(code[2])<<16 | uint64(code[3])<<24, true
}

// UnpackMagic is the inverse of PackMagic. Non-printable bytes become '.'.
func UnpackMagic(v uint32) string {
	b := []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
	for i, c := range b {
		if c < 0x20 || c > 0x7e {
			b[i] = '.'
		}
	}
	return string(b)
}

// CompressionID returns the id of a compressor name. Names are
// case-sensitive.
func CompressionID(name string) (uint16, bool) {
	for _, c := range compressors {
		if c.name == name {
			return c.id, true
		}
	}
	return 0, false
}

// CompressionName returns the name of a compressor id, or "" if unknown.
func CompressionName(id uint16) string {
	for _, c := range compressors {
		if c.id == id {
			return c.name
		}
	}
	return ""
}

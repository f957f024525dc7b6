// Package textenc turns raw file bytes into UTF-8 text.
//
// By default input must be UTF-8; a byte order mark selects UTF-8, UTF-16LE or
// UTF-16BE instead. Any WHATWG encoding label ("latin1", "shift_jis",
// "windows-1251", ...) can be requested explicitly.
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Sentinel errors for decoding.
var (
	ErrBinary          = errors.New("binary content")
	ErrNotText         = errors.New("not a text file")
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// Auto is the encoding name for BOM-aware UTF-8 decoding.
const Auto = "auto"

// sniffLen bounds the binary check to the first 8 KiB.
const sniffLen = 8 << 10

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts data to a UTF-8 string using the named encoding.
// An empty name or "auto" means UTF-8 with byte order mark detection.
// Data with a NUL byte in its first 8 KiB is binary for every single-byte
// and UTF-8 based encoding.
func Decode(data []byte, name string) (string, error) {
	if IsAuto(name) {
		return decodeAuto(data)
	}

	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}
	if !isWide(enc) && LooksBinary(data) {
		return "", ErrBinary
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: decoding as %s: %v", ErrNotText, name, err)
	}
	return string(out), nil
}

// Lookup resolves a WHATWG encoding label.
func Lookup(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(strings.TrimSpace(name))
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// IsAuto reports whether name selects BOM-aware UTF-8 decoding.
func IsAuto(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	return n == "" || n == Auto
}

// LooksBinary reports whether data contains a NUL byte within the sniffed prefix.
// Data starting with a UTF-16 byte order mark is text.
func LooksBinary(data []byte) bool {
	if hasUTF16BOM(data) {
		return false
	}
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	return bytes.IndexByte(data, 0) != -1
}

func decodeAuto(data []byte) (string, error) {
	if hasUTF16BOM(data) || bytes.HasPrefix(data, bomUTF8) {
		dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
		out, _, err := transform.Bytes(dec, data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNotText, err)
		}
		return string(out), nil
	}
	if LooksBinary(data) {
		return "", ErrBinary
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: invalid UTF-8", ErrNotText)
	}
	return string(data), nil
}

// isWide reports whether enc uses multi-byte code units, where NUL bytes are
// ordinary text.
func isWide(enc encoding.Encoding) bool {
	name, err := htmlindex.Name(enc)
	return err == nil && strings.HasPrefix(name, "utf-16")
}

func hasUTF16BOM(data []byte) bool {
	return bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE)
}

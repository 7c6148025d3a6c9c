package main

import (
	"bytes"
	"fmt"
)

// cEscapes mirrors the escape table used by Python's str.encode
// "unicode_escape"/C literal conventions for the small set of control
// characters that have a short C escape.
var cEscapes = map[byte]string{
	0x07: `\a`,
	0x08: `\b`,
	0x09: `\t`,
	0x0a: `\n`,
	0x0b: `\v`,
	0x0c: `\f`,
	0x0d: `\r`,
	0x22: `\"`,
	0x27: `\'`,
	0x5c: `\\`,
}

// encodeFormat selects how a compiled blob is written to disk by
// "blobfs create".
type encodeFormat string

const (
	formatRaw encodeFormat = "raw"
	formatC   encodeFormat = "c"
	formatPy  encodeFormat = "py"
)

func encode(blob []byte, format encodeFormat) ([]byte, error) {
	switch format {
	case formatRaw, "":
		return encodeRaw(blob), nil
	case formatC:
		return encodeC(blob), nil
	case formatPy:
		return encodePy(blob), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want raw, c or py)", format)
	}
}

// encodeRaw returns blob unchanged.
func encodeRaw(blob []byte) []byte {
	return blob
}

// encodeC renders blob as a double-quoted C string literal, escaping
// control and non-ASCII bytes as octal sequences.
func encodeC(blob []byte) []byte {
	var buf bytes.Buffer
	buf.WriteByte('"')
	for _, c := range blob {
		if esc, ok := cEscapes[c]; ok {
			buf.WriteString(esc)
			continue
		}
		if c >= 32 && c < 127 {
			buf.WriteByte(c)
			continue
		}
		fmt.Fprintf(&buf, "\\%03o", c)
	}
	buf.WriteByte('"')
	return buf.Bytes()
}

// encodePy renders blob as a Python bytes literal in the style of
// repr(bytes): printable ASCII verbatim, the standard backslash escapes,
// and \xHH for everything else. The literal is always single-quoted,
// with any ' escaped; repr's switch to double quotes is not reproduced.
func encodePy(blob []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("b'")
	for _, c := range blob {
		switch c {
		case '\\':
			buf.WriteString(`\\`)
		case '\'':
			buf.WriteString(`\'`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if c >= 32 && c < 127 {
				buf.WriteByte(c)
			} else {
				fmt.Fprintf(&buf, "\\x%02x", c)
			}
		}
	}
	buf.WriteByte('\'')
	return buf.Bytes()
}

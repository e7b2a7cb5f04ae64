package format

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseValue parses a numeric literal in any of the accepted notations:
// decimal ("1024"), hexadecimal ("0x400"), or binary ("0b100"). Underscores
// may be used as digit separators ("0x1234_5678").
func ParseValue(s string) (uint64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if clean == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidValue)
	}

	base := 10
	switch {
	case strings.HasPrefix(clean, "0x"), strings.HasPrefix(clean, "0X"):
		base = 16
		clean = clean[2:]
	case strings.HasPrefix(clean, "0b"), strings.HasPrefix(clean, "0B"):
		base = 2
		clean = clean[2:]
	}

	v, err := strconv.ParseUint(clean, base, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}
	return v, nil
}

// ValueToBytes parses a numeric literal and returns its big-endian byte
// encoding, trimmed to the minimal width (at least one byte). A literal
// "0x0102" therefore yields {0x01, 0x02}, preserving leading zero digits
// that the writer spelled out explicitly.
func ValueToBytes(s string) ([]byte, error) {
	v, err := ParseValue(s)
	if err != nil {
		return nil, err
	}

	width := byteWidth(s, v)
	out := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	return out, nil
}

// byteWidth determines the encoded width of a literal. Hexadecimal and
// binary literals keep the width the author wrote (two hex digits or eight
// bits per byte); decimal literals use the minimal width for the value.
func byteWidth(s string, v uint64) int {
	clean := strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	digits := 0
	perByte := 0
	switch {
	case strings.HasPrefix(clean, "0x"), strings.HasPrefix(clean, "0X"):
		digits = len(clean) - 2
		perByte = 2
	case strings.HasPrefix(clean, "0b"), strings.HasPrefix(clean, "0B"):
		digits = len(clean) - 2
		perByte = 8
	}
	if perByte > 0 {
		w := (digits + perByte - 1) / perByte
		if w < 1 {
			w = 1
		}
		return w
	}

	w := 1
	for v > 0xFF {
		v >>= 8
		w++
	}
	return w
}

// FormatValue renders a value as grouped hexadecimal with a fixed digit
// count derived from the bit width, e.g. FormatValue(0x1234, 32) returns
// "0x0000_1234".
func FormatValue(v uint64, bits int) string {
	digits := (bits + 3) / 4
	raw := fmt.Sprintf("%0*X", digits, v)
	var groups []string
	for len(raw) > 4 {
		groups = append([]string{raw[len(raw)-4:]}, groups...)
		raw = raw[:len(raw)-4]
	}
	groups = append([]string{raw}, groups...)
	return "0x" + strings.Join(groups, "_")
}

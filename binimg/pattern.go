package binimg

import (
	"bytes"
	"crypto/rand"
	"fmt"

	"github.com/dvorakm/binimg/internal/format"
)

// Pattern tokens with special fill behavior. Anything else must parse as a
// numeric literal whose byte encoding is repeated across the block.
const (
	PatternZeros = "zeros"
	PatternOnes  = "ones"
	PatternRand  = "rand"
	PatternInc   = "inc"
)

// Pattern produces fill blocks for unoccupied image space.
type Pattern struct {
	spec string
}

// NewPattern builds a fill pattern from its specification string.
// Recognized tokens:
//
//	zeros - all 0x00
//	ones  - all 0xFF
//	rand  - cryptographically random bytes
//	inc   - bytes incrementing 0x00..0xFF, repeating
//
// Any other specification must parse as a numeric literal (decimal, 0x hex
// or 0b binary); its byte encoding is repeated end-to-end across the block.
func NewPattern(spec string) (*Pattern, error) {
	if _, err := format.ParseValue(spec); err != nil {
		switch spec {
		case PatternZeros, PatternOnes, PatternRand, PatternInc:
		default:
			return nil, fmt.Errorf("%w: %q", ErrPattern, spec)
		}
	}
	return &Pattern{spec: spec}, nil
}

// Block returns a buffer of exactly size bytes filled with the pattern.
// The rand pattern is non-deterministic; all others are pure.
func (p *Pattern) Block(size int) []byte {
	if size <= 0 {
		return nil
	}

	switch p.spec {
	case PatternZeros:
		return make([]byte, size)

	case PatternOnes:
		return bytes.Repeat([]byte{0xFF}, size)

	case PatternRand:
		block := make([]byte, size)
		rand.Read(block)
		return block

	case PatternInc:
		block := make([]byte, size)
		for i := range block {
			block[i] = byte(i)
		}
		return block
	}

	// NewPattern guarantees the literal parses.
	lit, _ := format.ValueToBytes(p.spec)
	repeats := (size + len(lit) - 1) / len(lit)
	return bytes.Repeat(lit, repeats)[:size]
}

// String renders the pattern for display. Numeric literals render in
// canonical hexadecimal; tokens render verbatim.
func (p *Pattern) String() string {
	if v, err := format.ParseValue(p.spec); err == nil {
		return fmt.Sprintf("%#x", v)
	}
	return p.spec
}

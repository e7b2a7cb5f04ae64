package binimg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPattern_Zeros(t *testing.T) {
	p, err := NewPattern("zeros")
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0, 0}, p.Block(5))
}

func TestPattern_Ones(t *testing.T) {
	p, err := NewPattern("ones")
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xFF, 0xFF}, p.Block(3))
}

func TestPattern_Inc(t *testing.T) {
	p, err := NewPattern("inc")
	require.NoError(t, err)

	block := p.Block(300)
	require.Len(t, block, 300)
	require.Equal(t, byte(0), block[0])
	require.Equal(t, byte(255), block[255])
	require.Equal(t, byte(0), block[256])
}

func TestPattern_Rand(t *testing.T) {
	p, err := NewPattern("rand")
	require.NoError(t, err)
	// Non-deterministic: only the length is checked.
	require.Len(t, p.Block(64), 64)
}

func TestPattern_Literal(t *testing.T) {
	p, err := NewPattern("0xAA55")
	require.NoError(t, err)

	// Repeated end-to-end, truncated to exactly the requested size.
	require.Equal(t, []byte{0xAA, 0x55, 0xAA, 0x55, 0xAA}, p.Block(5))
	require.Equal(t, []byte{0xAA, 0x55}, p.Block(2))
}

func TestPattern_DecimalLiteral(t *testing.T) {
	p, err := NewPattern("165") // 0xA5
	require.NoError(t, err)
	require.Equal(t, bytes.Repeat([]byte{0xA5}, 4), p.Block(4))
}

func TestPattern_ZeroSize(t *testing.T) {
	p, err := NewPattern("zeros")
	require.NoError(t, err)
	require.Empty(t, p.Block(0))
}

func TestPattern_Invalid(t *testing.T) {
	for _, spec := range []string{"", "random", "0x", "fill"} {
		_, err := NewPattern(spec)
		require.Error(t, err, spec)
		require.ErrorIs(t, err, ErrPattern, spec)
	}
}

func TestPattern_String(t *testing.T) {
	cases := map[string]string{
		"zeros":  "zeros",
		"inc":    "inc",
		"4369":   "0x1111",
		"0xff":   "0xff",
		"0b1010": "0xa",
	}
	for spec, want := range cases {
		p, err := NewPattern(spec)
		require.NoError(t, err)
		require.Equal(t, want, p.String(), spec)
	}
}

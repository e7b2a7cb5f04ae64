package binimg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustPattern(t *testing.T, spec string) *Pattern {
	t.Helper()
	p, err := NewPattern(spec)
	require.NoError(t, err)
	return p
}

func TestExport_Layered(t *testing.T) {
	parent := New("parent", 4, 0)
	parent.Pattern = mustPattern(t, "zeros")

	child := New("child", 2, 1)
	child.Content = []byte{0xAA, 0xBB}
	parent.Add(child)

	require.Equal(t, []byte{0x00, 0xAA, 0xBB, 0x00}, parent.Export())
}

func TestExport_LengthLaw(t *testing.T) {
	root := New("root", 0, 0)
	root.Pattern = mustPattern(t, "ones")
	a := New("a", 0x10, 0x20)
	a.Pattern = mustPattern(t, "inc")
	b := New("b", 0, 0x40)
	b.Content = []byte{1, 2, 3}
	root.Add(a)
	root.Add(b)

	for _, img := range []*Image{root, a, b} {
		require.Len(t, img.Export(), img.Len(), img.Name)
	}
}

func TestExport_PatternBackground(t *testing.T) {
	img := New("fill", 6, 0)
	img.Pattern = mustPattern(t, "0xA5")
	require.Equal(t, bytes.Repeat([]byte{0xA5}, 6), img.Export())
}

func TestExport_ContentOverPattern(t *testing.T) {
	img := New("boot", 6, 0)
	img.Pattern = mustPattern(t, "ones")
	img.Content = []byte{1, 2}
	require.Equal(t, []byte{1, 2, 0xFF, 0xFF, 0xFF, 0xFF}, img.Export())
}

func TestExport_ChildWinsOverContent(t *testing.T) {
	parent := New("parent", 4, 0)
	parent.Content = []byte{9, 9, 9, 9}

	child := New("child", 2, 1)
	child.Content = []byte{0xAA, 0xBB}
	parent.Add(child)

	require.Equal(t, []byte{9, 0xAA, 0xBB, 9}, parent.Export())
}

func TestExport_UnvalidatedOverlapLaterSiblingWins(t *testing.T) {
	// Export never validates: overlapping siblings compose silently with
	// the later offset-ordered sibling overwriting the earlier one.
	parent := New("parent", 8, 0)
	a := New("a", 4, 0)
	a.Content = []byte{1, 1, 1, 1}
	b := New("b", 4, 2)
	b.Content = []byte{2, 2, 2, 2}
	parent.Add(a)
	parent.Add(b)

	require.Error(t, parent.Validate())
	require.Equal(t, []byte{1, 1, 2, 2, 2, 2, 0, 0}, parent.Export())
}

func TestExport_ClampsOversizedChild(t *testing.T) {
	parent := New("parent", 6, 0)
	child := New("child", 2, 2) // declares 2 bytes but carries 4
	child.Content = []byte{1, 2, 3, 4}
	parent.Add(child)

	require.Equal(t, []byte{0, 0, 1, 2, 0, 0}, parent.Export())
}

func TestExport_ContentLongerThanDeclared(t *testing.T) {
	img := New("trunc", 2, 0)
	img.Content = []byte{1, 2, 3, 4}
	require.Equal(t, []byte{1, 2}, img.Export())
}

func TestSegments(t *testing.T) {
	root := New("root", 0x100, 0x6000_0000)
	root.Pattern = mustPattern(t, "zeros")

	boot := New("boot", 0, 0x10)
	boot.Content = []byte{0xDE, 0xAD}
	fill := New("fill", 4, 0x40)
	fill.Pattern = mustPattern(t, "ones")
	root.Add(boot)
	root.Add(fill)

	segs := root.Segments()
	require.Len(t, segs, 3)

	// Root pattern first, then children in tree order, own addresses absolute.
	require.Equal(t, 0x6000_0000, segs[0].Address)
	require.Len(t, segs[0].Data, 0x100)
	require.Equal(t, Segment{Address: 0x6000_0010, Data: []byte{0xDE, 0xAD}}, segs[1])
	require.Equal(t, Segment{Address: 0x6000_0040, Data: []byte{0xFF, 0xFF, 0xFF, 0xFF}}, segs[2])
}

func TestMergeSegments(t *testing.T) {
	merged := MergeSegments([]Segment{
		{Address: 0x100, Data: []byte{1, 1, 1, 1}},
		{Address: 0x102, Data: []byte{2, 2}}, // later wins
		{Address: 0x200, Data: []byte{3}},
	})

	require.Equal(t, []Segment{
		{Address: 0x100, Data: []byte{1, 1, 2, 2}},
		{Address: 0x200, Data: []byte{3}},
	}, merged)
}

func TestMergeSegments_Empty(t *testing.T) {
	require.Nil(t, MergeSegments(nil))
}

package binimg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadBinaryImage_FlatBinary(t *testing.T) {
	raw := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	path := writeTemp(t, "app.bin", raw)

	img, err := LoadBinaryImage(path, nil)
	require.NoError(t, err)
	require.Equal(t, "app.bin", img.Name)

	children := img.Children()
	require.Len(t, children, 1)
	require.Equal(t, "Segment 0", children[0].Name)
	require.Equal(t, 0, children[0].Offset)
	require.Equal(t, raw, children[0].Content)
	require.Equal(t, raw, img.Export())
}

func TestLoadBinaryImage_Missing(t *testing.T) {
	_, err := LoadBinaryImage(filepath.Join(t.TempDir(), "nope.bin"), nil)
	require.ErrorIs(t, err, ErrLoad)
}

func TestLoadBinaryImage_Empty(t *testing.T) {
	path := writeTemp(t, "empty.bin", nil)
	_, err := LoadBinaryImage(path, nil)
	require.ErrorIs(t, err, ErrLoad)
}

func TestLoadBinaryImage_SearchPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fw.bin"), []byte{1}, 0o644))

	img, err := LoadBinaryImage("fw.bin", &LoadOptions{SearchPaths: []string{dir}})
	require.NoError(t, err)
	require.Equal(t, []byte{1}, img.Export())
}

func TestSaveLoad_SRecRoundTrip(t *testing.T) {
	dir := t.TempDir()

	// Two regions with a gap, based at a flash-like address.
	img := New("fw", 0, 0x6000_0000)
	a := New("a", 0, 0)
	a.Content = []byte{1, 2, 3, 4}
	b := New("b", 0, 0x100)
	b.Content = []byte{5, 6}
	img.Add(a)
	img.Add(b)
	require.NoError(t, img.Validate())

	path := filepath.Join(dir, "fw.s19")
	require.NoError(t, img.Save(path, "s19"))

	loaded, err := LoadBinaryImage(path, nil)
	require.NoError(t, err)

	// The leading gap is absorbed: the root offset carries the base address.
	require.Equal(t, 0x6000_0000, loaded.Offset)
	children := loaded.Children()
	require.Len(t, children, 2)
	require.Equal(t, 0, children[0].Offset)
	require.Equal(t, []byte{1, 2, 3, 4}, children[0].Content)
	require.Equal(t, 0x100, children[1].Offset)
	require.Equal(t, []byte{5, 6}, children[1].Content)
}

func TestSave_Bin(t *testing.T) {
	img := New("fw", 4, 0)
	img.Pattern = mustPattern(t, "inc")

	path := filepath.Join(t.TempDir(), "out.bin")
	require.NoError(t, img.Save(path, "BIN"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 1, 2, 3}, raw)
}

func TestSave_InvalidFormat(t *testing.T) {
	img := New("fw", 4, 0)
	err := img.Save(filepath.Join(t.TempDir(), "out.xyz"), "XYZ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid output file format")
}

func TestSaveLoad_HexRoundTrip(t *testing.T) {
	dir := t.TempDir()

	img := New("fw", 0, 0)
	seg := New("seg", 0, 0x20)
	seg.Content = []byte{0xCA, 0xFE}
	img.Add(seg)

	path := filepath.Join(dir, "fw.hex")
	require.NoError(t, img.Save(path, "HEX"))

	loaded, err := LoadBinaryImage(path, nil)
	require.NoError(t, err)
	require.Equal(t, 0x20, loaded.Offset)
	require.Equal(t, []byte{0xCA, 0xFE}, loaded.Children()[0].Content)
}

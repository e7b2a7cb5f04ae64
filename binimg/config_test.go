package binimg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const testConfig = `
name: flash
size: 0x100
pattern: zeros
regions:
  - binary_file:
      name: boot
      path: boot.bin
      offset: 0x10
  - binary_block:
      name: filler
      size: 0x20
      offset: 0x40
      pattern: ones
  - binary_block:
      size: 4
      offset: 0x80
      pattern: "0xA5"
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "boot.bin"), []byte{1, 2, 3}, 0o644))
	path := filepath.Join(dir, "image.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))
	return path
}

func TestFromConfig(t *testing.T) {
	path := writeTestConfig(t)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "flash", cfg.Name)
	require.Equal(t, 0x100, cfg.Size)

	img, err := FromConfig(cfg, []string{filepath.Dir(path)})
	require.NoError(t, err)
	require.NoError(t, img.Validate())

	children := img.Children()
	require.Len(t, children, 3)

	require.Equal(t, "boot", children[0].Name)
	require.Equal(t, 0x10, children[0].Offset)
	require.Equal(t, []byte{1, 2, 3}, children[0].Content)

	require.Equal(t, "filler", children[1].Name)
	require.Equal(t, 0x20, children[1].Size)
	require.NotNil(t, children[1].Pattern)

	// Unnamed block gets a generated name carrying its region index.
	require.Equal(t, "Binary block(#2)", children[2].Name)

	out := img.Export()
	require.Len(t, out, 0x100)
	require.Equal(t, []byte{1, 2, 3}, out[0x10:0x13])
	require.Equal(t, byte(0xFF), out[0x40])
	require.Equal(t, byte(0xA5), out[0x80])
	require.Equal(t, byte(0x00), out[0x00])
}

func TestFromConfig_MissingFile(t *testing.T) {
	cfg := &Config{
		Pattern: "zeros",
		Regions: []Region{
			{BinaryFile: &BinaryFileRegion{Path: "missing.bin", Offset: 0}},
		},
	}
	_, err := FromConfig(cfg, nil)
	require.ErrorIs(t, err, ErrLoad)
}

func TestFromConfig_BadPattern(t *testing.T) {
	cfg := &Config{Pattern: "sparkles"}
	_, err := FromConfig(cfg, nil)
	require.ErrorIs(t, err, ErrPattern)
}

func TestFromConfig_Defaults(t *testing.T) {
	cfg := &Config{Pattern: "zeros", Size: 8}
	img, err := FromConfig(cfg, nil)
	require.NoError(t, err)
	require.Equal(t, "Base Image", img.Name)
}

func TestConfigTemplate_Parses(t *testing.T) {
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(ConfigTemplate()), &cfg))
	require.Equal(t, "my_image", cfg.Name)
	require.NotEmpty(t, cfg.Regions)

	_, err := FromConfig(&cfg, nil)
	// The template references an example file that does not exist here.
	require.ErrorIs(t, err, ErrLoad)
}

package binimg

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config describes a merged binary image: a base block with a fill
// pattern and a list of regions placed inside it.
type Config struct {
	// Name labels the resulting root image.
	Name string `yaml:"name"`
	// Size fixes the total image size; 0 derives it from the regions.
	Size int `yaml:"size"`
	// Pattern fills space not covered by any region.
	Pattern string `yaml:"pattern"`
	// Regions lists the sub-images in any order.
	Regions []Region `yaml:"regions"`
}

// Region is one entry of a Config: exactly one of BinaryFile or
// BinaryBlock should be set.
type Region struct {
	BinaryFile  *BinaryFileRegion  `yaml:"binary_file,omitempty"`
	BinaryBlock *BinaryBlockRegion `yaml:"binary_block,omitempty"`
}

// BinaryFileRegion places the contents of a file at an offset.
type BinaryFileRegion struct {
	Name   string `yaml:"name,omitempty"`
	Path   string `yaml:"path"`
	Offset int    `yaml:"offset"`
}

// BinaryBlockRegion places a pure fill block at an offset.
type BinaryBlockRegion struct {
	Name    string `yaml:"name,omitempty"`
	Size    int    `yaml:"size"`
	Offset  int    `yaml:"offset"`
	Pattern string `yaml:"pattern"`
}

// LoadConfig reads and decodes a YAML image configuration.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("binimg: reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("binimg: parsing config: %w", err)
	}
	return &cfg, nil
}

// FromConfig builds an image tree from a configuration. File regions are
// loaded from disk, resolved against the search paths when relative.
// The tree is not validated; callers decide when to run Validate.
func FromConfig(cfg *Config, searchPaths []string) (*Image, error) {
	name := cfg.Name
	if name == "" {
		name = "Base Image"
	}
	pattern, err := NewPattern(cfg.Pattern)
	if err != nil {
		return nil, err
	}

	root := New(name, cfg.Size, 0)
	root.Pattern = pattern

	for i, region := range cfg.Regions {
		if bf := region.BinaryFile; bf != nil {
			path, err := findFile(bf.Path, searchPaths)
			if err != nil {
				return nil, err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrLoad, err)
			}
			name := bf.Name
			if name == "" {
				name = bf.Path
			}
			child := New(name, len(content), bf.Offset)
			child.Content = content
			root.Add(child)
		}

		if bb := region.BinaryBlock; bb != nil {
			pattern, err := NewPattern(bb.Pattern)
			if err != nil {
				return nil, err
			}
			name := bb.Name
			if name == "" {
				name = fmt.Sprintf("Binary block(#%d)", i)
			}
			child := New(name, bb.Size, bb.Offset)
			child.Pattern = pattern
			root.Add(child)
		}
	}
	return root, nil
}

// findFile resolves a path against the search paths. An absolute path or
// one that resolves from the working directory is used as-is.
func findFile(path string, searchPaths []string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if !filepath.IsAbs(path) {
		for _, dir := range searchPaths {
			candidate := filepath.Join(dir, path)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("%w: file %q not found", ErrLoad, path)
}

// ConfigTemplate returns a commented YAML configuration example suitable
// as a starting point for a merge config.
func ConfigTemplate() string {
	return `# Binary Image merge configuration.

# Name of the final image.
name: my_image
# Total size of the image. Omit or set to 0 to derive it from the regions.
size: 0x10000
# Fill pattern for space not covered by any region:
# zeros, ones, rand, inc, or a repeated numeric literal such as "0xA5".
pattern: zeros

# Regions placed inside the image, in any order.
regions:
  - binary_file:
      name: bootloader
      path: bootloader.bin
      offset: 0x0
  - binary_block:
      name: filler
      size: 0x100
      offset: 0x8000
      pattern: ones
`
}

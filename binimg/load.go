package binimg

import (
	"bytes"
	"debug/elf"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/marcinbor85/gohex"
	"github.com/sirupsen/logrus"

	"github.com/dvorakm/binimg/internal/srec"
)

var loadLog = logrus.WithField("component", "binimg.load")

var elfMagic = []byte{0x7F, 'E', 'L', 'F'}

// LoadOptions adjust how LoadBinaryImage wraps decoded segments.
type LoadOptions struct {
	// Name overrides the root image name (default: file base name).
	Name string
	// Size fixes the declared size of the root image.
	Size int
	// Offset places the root image inside a future parent.
	Offset int
	// Description overrides the generated description.
	Description string
	// Pattern fills space between segments.
	Pattern *Pattern
	// SearchPaths are tried in order when path is relative and missing.
	SearchPaths []string
}

// LoadBinaryImage decodes a firmware file into an image tree: one child
// per decoded segment, with the leading address gap absorbed into the
// root offset so the first segment starts at local offset 0.
//
// The format is sniffed from the content: ELF (program headers), Intel
// HEX, Motorola S-record, and finally flat binary at address zero.
func LoadBinaryImage(path string, opts *LoadOptions) (*Image, error) {
	if opts == nil {
		opts = &LoadOptions{}
	}

	resolved, err := findFile(path, opts.SearchPaths)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	segments, err := decodeSegments(resolved, data)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: %s: no data segments decoded", ErrLoad, path)
	}

	name := opts.Name
	if name == "" {
		name = filepath.Base(resolved)
	}
	description := opts.Description
	if description == "" {
		description = fmt.Sprintf("The image loaded from: %s .", resolved)
	}

	img := New(name, opts.Size, opts.Offset)
	img.Description = description
	img.Pattern = opts.Pattern

	for i, seg := range segments {
		child := New(fmt.Sprintf("Segment %d", i), len(seg.Data), seg.Address)
		child.Content = seg.Data
		child.Pattern = opts.Pattern
		img.Add(child)
	}

	// Normalize the arbitrary absolute addresses to a zero-based window.
	if err := img.UpdateOffsets(); err != nil {
		return nil, err
	}
	return img, nil
}

// decodeSegments sniffs the file format and extracts its data segments.
func decodeSegments(path string, data []byte) ([]Segment, error) {
	if bytes.HasPrefix(data, elfMagic) {
		loadLog.Warn("ELF file support is experimental. Take that with care.")
		segs, err := elfSegments(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
		}
		return segs, nil
	}

	if segs, err := intelHexSegments(data); err == nil {
		return segs, nil
	}

	if looksLikeSRec(data) {
		if segs, err := srecSegments(data); err == nil {
			return segs, nil
		}
		// A flat binary can start with an 'S'; fall through.
	}

	// Flat binary at address zero.
	if len(data) == 0 {
		return nil, nil
	}
	return []Segment{{Address: 0, Data: data}}, nil
}

// elfSegments extracts the PT_LOAD program segments with file content,
// keyed by their physical load address.
func elfSegments(data []byte) ([]Segment, error) {
	f, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var segs []Segment
	for _, prog := range f.Progs {
		if prog.Type != elf.PT_LOAD || prog.Filesz == 0 {
			continue
		}
		raw, err := io.ReadAll(io.NewSectionReader(prog, 0, int64(prog.Filesz)))
		if err != nil {
			return nil, err
		}
		segs = append(segs, Segment{Address: int(prog.Paddr), Data: raw})
	}
	return segs, nil
}

// intelHexSegments decodes the data as Intel HEX.
func intelHexSegments(data []byte) ([]Segment, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	var segs []Segment
	for _, s := range mem.GetDataSegments() {
		segs = append(segs, Segment{Address: int(s.Address), Data: s.Data})
	}
	return segs, nil
}

// looksLikeSRec reports whether the first non-blank byte starts an
// S-record line.
func looksLikeSRec(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 1 && trimmed[0] == 'S' && trimmed[1] >= '0' && trimmed[1] <= '9'
}

// srecSegments decodes the data as Motorola S-records.
func srecSegments(data []byte) ([]Segment, error) {
	decoded, err := srec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var segs []Segment
	for _, s := range decoded {
		segs = append(segs, Segment{Address: int(s.Address), Data: s.Data})
	}
	return segs, nil
}

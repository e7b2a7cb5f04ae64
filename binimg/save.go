package binimg

import (
	"fmt"
	"os"
	"strings"

	"github.com/marcinbor85/gohex"
	"github.com/sirupsen/logrus"

	"github.com/dvorakm/binimg/internal/srec"
)

var saveLog = logrus.WithField("component", "binimg.save")

// Output file formats accepted by Save.
const (
	FormatBin = "BIN"
	FormatHex = "HEX"
	FormatS19 = "S19"
)

// Save writes the image in the requested format (case-insensitive).
// BIN writes the flat Export buffer; HEX and S19 encode the merged
// per-node segments, preserving address gaps between regions.
//
// Like Export, Save does not validate the tree first.
func (img *Image) Save(path, fileFormat string) error {
	fileFormat = strings.ToUpper(fileFormat)
	saveLog.WithFields(logrus.Fields{"path": path, "format": fileFormat}).Debug("saving image")

	switch fileFormat {
	case FormatBin:
		return writeFile(path, img.Export())

	case FormatHex:
		merged := MergeSegments(img.Segments())
		mem := gohex.NewMemory()
		for _, seg := range merged {
			if err := mem.AddBinary(uint32(seg.Address), seg.Data); err != nil {
				return fmt.Errorf("binimg: encoding hex: %w", err)
			}
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("binimg: writing %s: %w", path, err)
		}
		defer f.Close()
		return mem.DumpIntelHex(f, 16)

	case FormatS19:
		merged := MergeSegments(img.Segments())
		records := make([]srec.Segment, 0, len(merged))
		for _, seg := range merged {
			records = append(records, srec.Segment{Address: uint32(seg.Address), Data: seg.Data})
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("binimg: writing %s: %w", path, err)
		}
		defer f.Close()
		return srec.Encode(f, records, img.Name)

	default:
		return fmt.Errorf("binimg: invalid output file format: %s", fileFormat)
	}
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("binimg: writing %s: %w", path, err)
	}
	return nil
}

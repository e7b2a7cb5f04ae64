package format

import "fmt"

// SizeFmt renders a byte count with a human-readable unit. With
// useKibibyte the units are 1024-based (kiB, MiB, ...), otherwise
// 1000-based (kB, MB, ...). Values below one unit render as plain bytes.
//
// Example:
//
//	SizeFmt(2048, false) = "2.0 kB"
//	SizeFmt(2048, true)  = "2.0 kiB"
//	SizeFmt(16, false)   = "16 B"
func SizeFmt(size int, useKibibyte bool) string {
	base := 1000.0
	units := []string{"kB", "MB", "GB", "TB"}
	if useKibibyte {
		base = 1024.0
		units = []string{"kiB", "MiB", "GiB", "TiB"}
	}

	v := float64(size)
	if v < base {
		return fmt.Sprintf("%d B", size)
	}
	unit := ""
	for _, u := range units {
		v /= base
		unit = u
		if v < base {
			break
		}
	}
	return fmt.Sprintf("%.1f %s", v, unit)
}

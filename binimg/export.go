package binimg

// Segment is a contiguous block of bytes at an absolute address, the
// exchange unit for textual output encoders (Intel HEX, S-record).
type Segment struct {
	Address int
	Data    []byte
}

// Export flattens the subtree into a single buffer of exactly Len() bytes.
//
// Composition is layered, bottom-up, in a fixed order at every node:
// the fill pattern (all-zero when none is set), then the node's own
// content at local offset 0, then each sub-image in ascending offset
// order. Sub-images therefore always win over directly attached content,
// and on an unvalidated tree a later-ordered sibling silently overwrites
// an earlier one in any shared range. Export never validates; callers
// needing correctness guarantees must call Validate first.
func (img *Image) Export() []byte {
	length := img.Len()
	if length <= 0 {
		return nil
	}
	var ret []byte
	if img.Pattern != nil {
		ret = img.Pattern.Block(length)
	} else {
		ret = make([]byte, length)
	}

	if len(img.Content) > 0 {
		copy(ret, img.Content)
	}

	for _, c := range img.children {
		if c.Offset < 0 || c.Offset >= length {
			continue
		}
		exported := c.Export()
		if n := c.Len(); n < len(exported) {
			exported = exported[:n]
		}
		copy(ret[c.Offset:], exported)
	}
	return ret
}

// Segments lists one segment per content- or pattern-bearing node in the
// subtree: the node's own pattern block first, then its own content, each
// at the node's absolute address. Sub-images contribute their own entries;
// segments appear in tree order, so later entries overwrite earlier ones
// when an encoder merges them. This mirrors the Export layering.
func (img *Image) Segments() []Segment {
	var segs []Segment
	img.appendSegments(&segs)
	return segs
}

func (img *Image) appendSegments(segs *[]Segment) {
	addr := img.AbsoluteAddress()
	if img.Pattern != nil {
		*segs = append(*segs, Segment{Address: addr, Data: img.Pattern.Block(img.Len())})
	}
	if len(img.Content) > 0 {
		*segs = append(*segs, Segment{Address: addr, Data: img.Content})
	}
	for _, c := range img.children {
		c.appendSegments(segs)
	}
}

// MergeSegments flattens a segment list into disjoint, ascending segments
// with later entries overwriting earlier ones, the semantics textual
// encoders expect from Segments output.
func MergeSegments(segs []Segment) []Segment {
	if len(segs) == 0 {
		return nil
	}

	lo, hi := segs[0].Address, segs[0].Address+len(segs[0].Data)
	for _, s := range segs[1:] {
		if s.Address < lo {
			lo = s.Address
		}
		if end := s.Address + len(s.Data); end > hi {
			hi = end
		}
	}

	buf := make([]byte, hi-lo)
	used := make([]bool, hi-lo)
	for _, s := range segs {
		off := s.Address - lo
		copy(buf[off:], s.Data)
		for i := range s.Data {
			used[off+i] = true
		}
	}

	var out []Segment
	for i := 0; i < len(used); {
		if !used[i] {
			i++
			continue
		}
		j := i
		for j < len(used) && used[j] {
			j++
		}
		out = append(out, Segment{Address: lo + i, Data: buf[i:j:j]})
		i = j
	}
	return out
}

package binimg

import "fmt"

// Validate checks the structural invariants of the subtree rooted at img:
// non-negative offsets, positive effective lengths, every sub-image fitting
// inside its parent's effective length, and no two siblings sharing bytes.
//
// The walk is depth-first: sub-images are validated before the sibling
// checks at this level, so the deepest defect is reported first. Validate
// is read-only and must be called explicitly; neither Add nor Export runs
// it implicitly.
func (img *Image) Validate() error {
	if img.Offset < 0 {
		return fmt.Errorf("binimg: image %s has negative offset %d", img.FullName(), img.Offset)
	}
	length := img.Len()
	if length <= 0 {
		return fmt.Errorf("binimg: image %s has non-positive size %d", img.FullName(), length)
	}

	for _, c := range img.children {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	for _, c := range img.children {
		if c.Offset+c.Len() > length {
			return fmt.Errorf("%w: %s (end %#x) exceeds %s (size %#x)",
				ErrFit, c.Name, c.Offset+c.Len(), img.Name, length)
		}
	}

	// Pairwise sibling ranges, inclusive ends. Quadratic, but fan-out is
	// tens of regions at most.
	for i, c := range img.children {
		begin := c.Offset
		end := begin + c.Len() - 1
		for _, sibling := range img.children[i+1:] {
			sibBegin := sibling.Offset
			sibEnd := sibBegin + sibling.Len() - 1
			if end < sibBegin || begin > sibEnd {
				continue
			}
			return fmt.Errorf("%w:\n%s\noverlaps the:\n%s", ErrOverlap, c.Info(), sibling.Info())
		}
	}
	return nil
}

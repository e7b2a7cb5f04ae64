// Package binimg assembles, validates and exports hierarchical binary
// memory images used to compose firmware and flash artifacts.
//
// An Image is a node in an ownership tree: it occupies a range of its
// parent's address space at a fixed offset, optionally carries literal
// content or a fill pattern, and owns an offset-ordered list of sub-images.
// Construction, validation and export are separate explicit steps: Add
// never checks bounds, Validate never mutates, and Export never validates
// (see Export for the exact layering contract on unvalidated trees).
package binimg

import (
	"fmt"

	"github.com/dvorakm/binimg/internal/format"
)

// nameSeparator joins parent and child names in FullName.
const nameSeparator = "=>"

// Image is one node of a binary image tree.
//
// Size is the declared size; zero means the effective length is derived
// from the content and sub-image extents (see Len). The parent pointer is
// a non-owning back-reference used only for name and address composition.
type Image struct {
	// Name is a display label, not required to be unique.
	Name string
	// Description is optional free text shown by Info and Draw.
	Description string
	// Offset is the position relative to the parent's coordinate origin.
	Offset int
	// Size is the declared size; 0 derives the size from contents.
	Size int
	// Content is optional literal data placed at local offset 0.
	Content []byte
	// Pattern optionally fills space not covered by content or sub-images.
	Pattern *Pattern

	parent   *Image
	children []*Image
}

// New creates a standalone image node with no parent and no sub-images.
func New(name string, size, offset int) *Image {
	return &Image{Name: name, Size: size, Offset: offset}
}

// Add inserts a sub-image, keeping the child list sorted ascending by
// offset. The child is placed directly before the first existing child
// with a strictly greater offset, so an equal-offset newcomer lands after
// all previously inserted children at that offset. No bounds or overlap
// checks happen here; call Validate separately.
func (img *Image) Add(child *Image) {
	child.parent = img
	for i, c := range img.children {
		if child.Offset < c.Offset {
			img.children = append(img.children, nil)
			copy(img.children[i+1:], img.children[i:])
			img.children[i] = child
			return
		}
	}
	img.children = append(img.children, child)
}

// Parent returns the owning image, or nil for a root.
func (img *Image) Parent() *Image { return img.parent }

// Children returns the sub-images in ascending offset order. The returned
// slice is the image's own list; callers must not reorder it.
func (img *Image) Children() []*Image { return img.children }

// Len returns the effective length: the declared size if nonzero,
// otherwise the extent needed to cover the content and every sub-image.
func (img *Image) Len() int {
	if img.Size != 0 {
		return img.Size
	}
	max := len(img.Content)
	for _, c := range img.children {
		if end := c.Offset + c.Len(); end > max {
			max = end
		}
	}
	return max
}

// FullName returns the node name prefixed by all ancestor names.
func (img *Image) FullName() string {
	if img.parent != nil {
		return img.parent.FullName() + nameSeparator + img.Name
	}
	return img.Name
}

// AbsoluteAddress returns the image offset relative to the tree root.
func (img *Image) AbsoluteAddress() int {
	if img.parent != nil {
		return img.parent.AbsoluteAddress() + img.Offset
	}
	return img.Offset
}

// AlignedStart returns the absolute address aligned down to the given
// alignment, typically an erase-sector size.
func (img *Image) AlignedStart(alignment int) int {
	return format.AlignDown(img.AbsoluteAddress(), alignment)
}

// AlignedLength returns the length of the aligned window covering the
// image, measured from AlignedStart.
func (img *Image) AlignedLength(alignment int) int {
	end := format.AlignUp(img.AbsoluteAddress()+img.Len(), alignment)
	return end - img.AlignedStart(alignment)
}

// UpdateOffsets absorbs the leading gap before the first sub-image: the
// smallest child offset is subtracted from every child and added to this
// image's own offset, so the first child starts at local offset 0 while
// the subtree keeps its absolute position. Fails when the image has no
// sub-images.
func (img *Image) UpdateOffsets() error {
	if len(img.children) == 0 {
		return fmt.Errorf("%w: %s: cannot update offsets", ErrNoChildren, img.FullName())
	}

	min := img.children[0].Offset
	for _, c := range img.children[1:] {
		if c.Offset < min {
			min = c.Offset
		}
	}
	for _, c := range img.children {
		c.Offset -= min
	}
	img.Offset += min
	return nil
}

// Info returns a human-readable per-node summary. The exact formatting
// carries no contract; use Segments or Export for machine consumption.
func (img *Image) Info() string {
	size := img.Len()
	ret := fmt.Sprintf("Name:   %s\n", img.FullName())
	ret += fmt.Sprintf("Starts: %s\n", format.FormatValue(uint64(img.AbsoluteAddress()), 32))
	ret += fmt.Sprintf("Ends:   %s\n", format.FormatValue(uint64(img.AbsoluteAddress()+size-1), 32))
	ret += fmt.Sprintf("Size:   %s\n", format.SizeFmt(size, false))
	if img.Pattern != nil {
		ret += fmt.Sprintf("Pattern:%s\n", img.Pattern)
	}
	if img.Description != "" {
		ret += img.Description + "\n"
	}
	return ret
}

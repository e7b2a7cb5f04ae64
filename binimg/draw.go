package binimg

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dvorakm/binimg/internal/format"
)

// minimalDrawWidth is the narrowest table Draw will produce.
const minimalDrawWidth = 30

var (
	// drawPalette cycles through per-level block colors.
	drawPalette = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}

	drawErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// colorPicker hands out a different palette style on each call.
type colorPicker struct {
	index int
}

func newColorPicker() *colorPicker {
	return &colorPicker{index: len(drawPalette)}
}

// next returns the next palette style, skipping the unwanted one (used to
// keep a child block distinguishable from its parent frame).
func (cp *colorPicker) next(unwanted *lipgloss.Style) lipgloss.Style {
	cp.index++
	if cp.index >= len(drawPalette) {
		cp.index = 0
	}
	if unwanted != nil && drawPalette[cp.index].GetForeground() == unwanted.GetForeground() {
		return cp.next(unwanted)
	}
	return drawPalette[cp.index]
}

// MinDrawWidth returns the narrowest width at which the subtree renders.
func (img *Image) MinDrawWidth() int {
	width := minimalDrawWidth
	if w := len(fmt.Sprintf("+--0x0000_0000--%s--+", img.Name)); w > width {
		width = w
	}
	if w := len(fmt.Sprintf("|Size: %s|", format.SizeFmt(img.Len(), false))); w > width {
		width = w
	}
	for _, c := range img.children {
		if w := c.MinDrawWidth() + 2; w > width { // +2 for the framing borders
			width = w
		}
	}
	return width
}

// Draw renders the subtree as a nested ASCII box diagram, one frame per
// image with its offset, size, description, pattern and gap rows between
// non-contiguous sub-images. A subtree that fails Validate renders in the
// error style. Presentation only; nothing machine-readable attaches to
// the output.
func (img *Image) Draw() string {
	return img.draw(0, nil)
}

func (img *Image) draw(width int, forced *lipgloss.Style) string {
	picker := newColorPicker()

	var style lipgloss.Style
	if img.Validate() != nil {
		style = drawErrorStyle
	} else if forced != nil {
		style = *forced
	} else {
		style = picker.next(nil)
	}

	minWidth := img.MinDrawWidth()
	if width == 0 && img.parent == nil {
		width = minWidth
	}
	if width < minWidth {
		// The caller passed a frame too narrow for this subtree; widen it
		// rather than emitting a broken table.
		width = minWidth
	}

	var b strings.Builder
	if img.parent == nil {
		b.WriteString("\n")
	}

	centered := func(text string) {
		pad := width - len(text) - 2
		if pad < 0 {
			text = text[:len(text)+pad]
			pad = 0
		}
		left := pad / 2
		b.WriteString(style.Render(fmt.Sprintf("|%s%s%s|", strings.Repeat(" ", left), text, strings.Repeat(" ", pad-left))))
		b.WriteString("\n")
	}

	header := fmt.Sprintf("+--%s--%s--", format.FormatValue(uint64(img.Offset), 32), img.Name)
	b.WriteString(style.Render(header + strings.Repeat("-", max(0, width-len(header)-1)) + "+"))
	b.WriteString("\n")

	centered(fmt.Sprintf("Size: %s", format.SizeFmt(img.Len(), false)))
	for _, line := range wrapText(img.Description, width-2) {
		centered(line)
	}
	if img.Pattern != nil {
		centered(fmt.Sprintf("Pattern: %s", img.Pattern))
	}

	nextFree := 0
	border := style.Render("|")
	for _, c := range img.children {
		if c.Offset != nextFree {
			centered(fmt.Sprintf("Gap: %s", format.SizeFmt(c.Offset-nextFree, false)))
		}
		nextFree = c.Offset + c.Len()

		childStyle := picker.next(&style)
		inner := c.draw(width-2, &childStyle)
		for _, line := range strings.Split(strings.TrimSuffix(inner, "\n"), "\n") {
			b.WriteString(border + line + border + "\n")
		}
	}

	footer := fmt.Sprintf("+--%s--", format.FormatValue(uint64(img.Offset+img.Len()-1), 32))
	b.WriteString(style.Render(footer + strings.Repeat("-", max(0, width-len(footer)-1)) + "+"))
	b.WriteString("\n")

	return b.String()
}

// wrapText splits text into lines no longer than width, breaking at spaces.
func wrapText(text string, width int) []string {
	if text == "" || width <= 0 {
		return nil
	}
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	// Hard-break any word longer than the width.
	var out []string
	for _, l := range lines {
		for len(l) > width {
			out = append(out, l[:width])
			l = l[width:]
		}
		out = append(out, l)
	}
	return out
}

package terminal

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/flappy-term/component"
	"github.com/lixenwraith/flappy-term/render"
)

// Font is a cell font: an attribute set plus letter shaping
// Size is accepted for interface parity; terminal cells have one size
type Font struct {
	Name     string
	Attrs    tcell.AttrMask
	Upper    bool
	Tracking int // blank cells inserted between glyphs

	view *viewport // converts cells to virtual units; nil means 1:1
}

// Shape applies case folding; the result is what will be drawn
func (f *Font) Shape(text string) string {
	if f.Upper {
		return strings.ToUpper(text)
	}
	return text
}

// Cells returns the drawn width in cells
func (f *Font) Cells(text string) int {
	shaped := f.Shape(text)
	n := 0
	w := 0
	for _, r := range shaped {
		w += runeAdvance(r)
		n++
	}
	if n > 1 {
		w += f.Tracking * (n - 1)
	}
	return w
}

// Measure returns the drawn width in virtual viewport units
func (f *Font) Measure(text string, _ float64) float64 {
	cells := float64(f.Cells(text))
	if f.view == nil {
		return cells
	}
	return f.view.toVirtualX(cells)
}

// Fonts returns the font table for both selectors, measured in this surface's units
func (s *Surface) Fonts() render.FontTable {
	return render.FontTable{
		component.FontRetro: &Font{
			Name: "retro",
			view: &s.view,
		},
		component.FontFlappy: &Font{
			Name:     "flappy",
			Attrs:    tcell.AttrBold,
			Upper:    true,
			Tracking: 1,
			view:     &s.view,
		},
	}
}

// runeAdvance is the cell advance of a glyph; zero-width runes still take a cell
func runeAdvance(r rune) int {
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}
